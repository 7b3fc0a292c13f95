package model

import (
	"fmt"
	"strings"
)

// Shape is an immutable height x width cell matrix. true marks a filled cell.
// Two shapes are equal when their cell patterns are identical.
type Shape struct {
	cells [][]bool
}

// NewShape builds a shape from a row-major boolean matrix. The rows are
// copied, so the caller may reuse the input.
func NewShape(rows [][]bool) (Shape, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Shape{}, fmt.Errorf("empty matrix: %w", ErrInvalidShape)
	}
	width := len(rows[0])
	filled := 0
	cells := make([][]bool, len(rows))
	for r, row := range rows {
		if len(row) != width {
			return Shape{}, fmt.Errorf("row %d has %d cells, want %d: %w", r, len(row), width, ErrInvalidShape)
		}
		cells[r] = make([]bool, width)
		copy(cells[r], row)
		for _, c := range row {
			if c {
				filled++
			}
		}
	}
	if filled == 0 {
		return Shape{}, fmt.Errorf("no filled cells: %w", ErrInvalidShape)
	}
	return Shape{cells: cells}, nil
}

// ParseShape builds a shape from text rows where '#' is filled and '.' is empty.
func ParseShape(lines []string) (Shape, error) {
	rows := make([][]bool, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		row := make([]bool, 0, len(line))
		for _, ch := range line {
			switch ch {
			case '#':
				row = append(row, true)
			case '.':
				row = append(row, false)
			default:
				return Shape{}, fmt.Errorf("row %d: unexpected character %q: %w", i, ch, ErrInvalidShape)
			}
		}
		rows = append(rows, row)
	}
	return NewShape(rows)
}

// MustParseShape is like ParseShape but panics on malformed input.
// Intended for tests and literals.
func MustParseShape(lines ...string) Shape {
	s, err := ParseShape(lines)
	if err != nil {
		panic(err)
	}
	return s
}

// Height returns the number of rows.
func (s Shape) Height() int { return len(s.cells) }

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s.cells) == 0 {
		return 0
	}
	return len(s.cells[0])
}

// Filled reports whether the cell at (row, col) is filled.
// Coordinates outside the matrix read as empty.
func (s Shape) Filled(row, col int) bool {
	if row < 0 || row >= s.Height() || col < 0 || col >= s.Width() {
		return false
	}
	return s.cells[row][col]
}

// Area returns the number of filled cells.
func (s Shape) Area() int {
	n := 0
	for _, row := range s.cells {
		for _, c := range row {
			if c {
				n++
			}
		}
	}
	return n
}

// Equal compares two shapes cell for cell.
func (s Shape) Equal(other Shape) bool {
	if s.Height() != other.Height() || s.Width() != other.Width() {
		return false
	}
	for r, row := range s.cells {
		for c, v := range row {
			if other.cells[r][c] != v {
				return false
			}
		}
	}
	return true
}

// Rotate returns the shape turned 90 degrees clockwise.
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	cells := make([][]bool, w)
	for r := 0; r < w; r++ {
		cells[r] = make([]bool, h)
		for c := 0; c < h; c++ {
			cells[r][c] = s.cells[h-1-c][r]
		}
	}
	return Shape{cells: cells}
}

// FlipVertical returns the shape turned upside down.
func (s Shape) FlipVertical() Shape {
	h := s.Height()
	cells := make([][]bool, h)
	for r := 0; r < h; r++ {
		cells[r] = s.cells[h-1-r]
	}
	return Shape{cells: cells}
}

// Variations returns the distinct rotations and reflections of the shape.
// The order is fixed: the shape and its rotations first, then the flipped
// shape and its rotations, skipping any variant already seen.
func (s Shape) Variations() []Shape {
	bases := []Shape{s}
	if flipped := s.FlipVertical(); !flipped.Equal(s) {
		bases = append(bases, flipped)
	}

	variations := make([]Shape, 0, 8)
	for _, base := range bases {
		current := base
		for i := 0; i < 4; i++ {
			if !containsShape(variations, current) {
				variations = append(variations, current)
			}
			current = current.Rotate()
		}
	}
	return variations
}

func containsShape(shapes []Shape, s Shape) bool {
	for _, existing := range shapes {
		if existing.Equal(s) {
			return true
		}
	}
	return false
}

// Rows renders the shape back into '#'/'.' text rows.
func (s Shape) Rows() []string {
	rows := make([]string, len(s.cells))
	for r, row := range s.cells {
		var b strings.Builder
		for _, c := range row {
			if c {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		rows[r] = b.String()
	}
	return rows
}

func (s Shape) String() string {
	return strings.Join(s.Rows(), "\n")
}
