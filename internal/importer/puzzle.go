package importer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/TreeFit/internal/model"
)

// ParsePuzzle reads the text puzzle format: numbered shape blocks followed
// by region lines.
//
//	0:
//	###
//	##.
//
//	4x4: 0 2
//
// Shape indices must run from 0 without gaps. A region line gives the
// region's width and height followed by one count per present.
func ParsePuzzle(r io.Reader) (model.Puzzle, error) {
	p := &puzzleParser{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.line++
		if err := p.feed(strings.TrimRight(scanner.Text(), " \t\r")); err != nil {
			return model.Puzzle{}, err
		}
	}
	if err := scanner.Err(); err != nil {
		return model.Puzzle{}, fmt.Errorf("read puzzle: %w", err)
	}
	if err := p.flushShape(); err != nil {
		return model.Puzzle{}, err
	}
	if p.puzzle.Presents == nil {
		p.puzzle.Presents = []model.Present{}
	}
	if p.puzzle.Regions == nil {
		p.puzzle.Regions = []model.TreeRegion{}
	}
	return p.puzzle, nil
}

// ImportPuzzleFile opens path and parses it with ParsePuzzle.
func ImportPuzzleFile(path string) (model.Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Puzzle{}, fmt.Errorf("open puzzle: %w", err)
	}
	defer f.Close()
	return ParsePuzzle(f)
}

type puzzleParser struct {
	puzzle model.Puzzle
	line   int

	inShape    bool
	shapeIndex int
	shapeLine  int
	rows       []string
}

func (p *puzzleParser) feed(text string) error {
	trimmed := strings.TrimSpace(text)

	if p.inShape {
		if trimmed == "" {
			return p.flushShape()
		}
		if isShapeRow(trimmed) {
			p.rows = append(p.rows, trimmed)
			return nil
		}
		if err := p.flushShape(); err != nil {
			return err
		}
	}

	if trimmed == "" {
		return nil
	}

	head, rest, ok := strings.Cut(trimmed, ":")
	if !ok {
		return p.errorf("expected a shape header or region line, got %q", trimmed)
	}
	head = strings.TrimSpace(head)

	if strings.Contains(head, "x") {
		return p.parseRegion(head, rest)
	}

	if len(p.puzzle.Regions) > 0 {
		return p.errorf("shape %q appears after the first region", head)
	}
	if strings.TrimSpace(rest) != "" {
		return p.errorf("unexpected text after shape header %q", head)
	}
	idx, err := strconv.Atoi(head)
	if err != nil {
		return p.errorf("invalid shape index %q", head)
	}
	if idx != len(p.puzzle.Presents) {
		return p.errorf("shape index %d out of order, expected %d", idx, len(p.puzzle.Presents))
	}
	p.inShape = true
	p.shapeIndex = idx
	p.shapeLine = p.line
	p.rows = nil
	return nil
}

func (p *puzzleParser) flushShape() error {
	if !p.inShape {
		return nil
	}
	p.inShape = false
	shape, err := model.ParseShape(p.rows)
	if err != nil {
		return fmt.Errorf("line %d: shape %d: %w", p.shapeLine, p.shapeIndex, err)
	}
	present, err := model.NewPresent(p.shapeIndex, shape)
	if err != nil {
		return fmt.Errorf("line %d: %w", p.shapeLine, err)
	}
	p.puzzle.Presents = append(p.puzzle.Presents, present)
	return nil
}

func (p *puzzleParser) parseRegion(size, counts string) error {
	ws, hs, _ := strings.Cut(size, "x")
	w, errW := strconv.Atoi(strings.TrimSpace(ws))
	h, errH := strconv.Atoi(strings.TrimSpace(hs))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return p.errorf("invalid region size %q", size)
	}

	fields := strings.Fields(counts)
	if len(fields) > len(p.puzzle.Presents) {
		return p.errorf("region %s lists %d counts for %d shapes", size, len(fields), len(p.puzzle.Presents))
	}
	values := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return p.errorf("invalid count %q for shape %d", f, i)
		}
		values[i] = n
	}

	label := fmt.Sprintf("Region %d", len(p.puzzle.Regions)+1)
	p.puzzle.Regions = append(p.puzzle.Regions, model.NewTreeRegion(label, w, h, values))
	return nil
}

func (p *puzzleParser) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", p.line, fmt.Sprintf(format, args...), model.ErrInvalidPuzzle)
}

func isShapeRow(s string) bool {
	for _, r := range s {
		if r != '#' && r != '.' {
			return false
		}
	}
	return true
}
