package engine

import (
	"strings"

	"github.com/piwi3910/TreeFit/internal/model"
)

// Grid is the occupancy map of one region. A Grid is never modified after
// construction: Place returns a successor so sibling search branches stay
// independent.
type Grid struct {
	Width  int
	Height int

	// WidestRowWidth and HighestColumnHeight bound every occupied cell,
	// measured from the origin. Both only ever grow.
	WidestRowWidth      int
	HighestColumnHeight int

	cells      []bool // row-major, Width*Height
	placements []model.Placement
}

// NewGrid returns an empty grid of the given size.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]bool, width*height),
	}
}

// CellAt reports whether (row, col) is occupied. Coordinates outside the
// grid read as empty.
func (g *Grid) CellAt(row, col int) bool {
	if row < 0 || row >= g.Height || col < 0 || col >= g.Width {
		return false
	}
	return g.cells[row*g.Width+col]
}

// CanPlace reports whether shape fits with its top-left corner at (row, col)
// without leaving the grid or covering an occupied cell.
func (g *Grid) CanPlace(shape model.Shape, row, col int) bool {
	if row < 0 || col < 0 {
		return false
	}
	if row+shape.Height() > g.Height || col+shape.Width() > g.Width {
		return false
	}
	for r := 0; r < shape.Height(); r++ {
		for c := 0; c < shape.Width(); c++ {
			if shape.Filled(r, c) && g.cells[(row+r)*g.Width+col+c] {
				return false
			}
		}
	}
	return true
}

// Place returns a copy of the grid with shape's filled cells occupied at
// (row, col). The caller must have checked CanPlace.
func (g *Grid) Place(shape model.Shape, row, col int) *Grid {
	return g.place(shape, row, col, model.Placement{PresentIndex: -1, Variant: -1, Row: row, Col: col})
}

// placeVariant is Place with the placement recorded for witness output.
func (g *Grid) placeVariant(p model.Present, variant, row, col int) *Grid {
	return g.place(p.ShapeVariations[variant], row, col, model.Placement{
		PresentIndex: p.Index,
		Variant:      variant,
		Row:          row,
		Col:          col,
	})
}

func (g *Grid) place(shape model.Shape, row, col int, rec model.Placement) *Grid {
	next := g.Clone()
	for r := 0; r < shape.Height(); r++ {
		for c := 0; c < shape.Width(); c++ {
			if shape.Filled(r, c) {
				next.cells[(row+r)*g.Width+col+c] = true
			}
		}
	}
	next.WidestRowWidth = max(g.WidestRowWidth, col+shape.Width())
	next.HighestColumnHeight = max(g.HighestColumnHeight, row+shape.Height())
	next.placements = append(next.placements, rec)
	return next
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]bool, len(g.cells))
	copy(cells, g.cells)
	placements := make([]model.Placement, len(g.placements), len(g.placements)+1)
	copy(placements, g.placements)
	return &Grid{
		Width:               g.Width,
		Height:              g.Height,
		WidestRowWidth:      g.WidestRowWidth,
		HighestColumnHeight: g.HighestColumnHeight,
		cells:               cells,
		placements:          placements,
	}
}

// FilledCount returns the number of occupied cells.
func (g *Grid) FilledCount() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// Placements returns the placements that produced this grid, in order.
func (g *Grid) Placements() []model.Placement {
	out := make([]model.Placement, len(g.placements))
	copy(out, g.placements)
	return out
}

func (g *Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			if g.CellAt(r, c) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		if r < g.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
