package engine

import (
	"iter"
	"sort"

	"github.com/piwi3910/TreeFit/internal/model"
)

// Span is a half-open coordinate range [From, To).
type Span struct {
	From int
	To   int
}

// PlacementsAt yields one successor grid for every variation of p that fits
// with its top-left corner at (row, col), in the present's variation order.
func PlacementsAt(g *Grid, p model.Present, row, col int) iter.Seq[*Grid] {
	return func(yield func(*Grid) bool) {
		for v, shape := range p.ShapeVariations {
			if !g.CanPlace(shape, row, col) {
				continue
			}
			if !yield(g.placeVariant(p, v, row, col)) {
				return
			}
		}
	}
}

// PlacementsIn yields every placement of p anchored inside rows x cols,
// scanning row by row.
func PlacementsIn(g *Grid, p model.Present, rows, cols Span) iter.Seq[*Grid] {
	return func(yield func(*Grid) bool) {
		for r := rows.From; r < rows.To; r++ {
			for c := cols.From; c < cols.To; c++ {
				for next := range PlacementsAt(g, p, r, c) {
					if !yield(next) {
						return
					}
				}
			}
		}
	}
}

// Placements yields every legal placement of one instance of p on g,
// most compact first:
//
//  1. anchors inside the current envelope, ordered by the envelope area
//     each placement would leave behind;
//  2. anchors to the right of the envelope;
//  3. anchors below the envelope.
//
// Anchor ranges stop where the narrowest (shortest) variation would
// overhang the grid.
func Placements(g *Grid, p model.Present) iter.Seq[*Grid] {
	minW, minH := p.MinSpan()
	lastCol := g.Width - minW + 1
	lastRow := g.Height - minH + 1

	return func(yield func(*Grid) bool) {
		for next := range envelopePlacements(g, p) {
			if !yield(next) {
				return
			}
		}

		right := PlacementsIn(g, p,
			Span{From: 0, To: g.HighestColumnHeight},
			Span{From: g.WidestRowWidth, To: lastCol})
		for next := range right {
			if !yield(next) {
				return
			}
		}

		below := PlacementsIn(g, p,
			Span{From: g.HighestColumnHeight, To: lastRow},
			Span{From: 0, To: lastCol})
		for next := range below {
			if !yield(next) {
				return
			}
		}
	}
}

// candidate is a legal placement that has not been materialised yet.
type candidate struct {
	variant int
	row     int
	col     int
	extent  int // envelope area after placing
}

// envelopePlacements ranks the fits anchored inside the envelope before
// building any grid. Grids are created only as the consumer pulls them.
func envelopePlacements(g *Grid, p model.Present) iter.Seq[*Grid] {
	return func(yield func(*Grid) bool) {
		var candidates []candidate
		for r := 0; r < g.HighestColumnHeight; r++ {
			for c := 0; c < g.WidestRowWidth; c++ {
				for v, shape := range p.ShapeVariations {
					if !g.CanPlace(shape, r, c) {
						continue
					}
					w := max(g.WidestRowWidth, c+shape.Width())
					h := max(g.HighestColumnHeight, r+shape.Height())
					candidates = append(candidates, candidate{variant: v, row: r, col: c, extent: w * h})
				}
			}
		}

		// Stable so equal extents keep row-major, variation order
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].extent < candidates[j].extent
		})

		for _, cand := range candidates {
			if !yield(g.placeVariant(p, cand.variant, cand.row, cand.col)) {
				return
			}
		}
	}
}
