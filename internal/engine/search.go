package engine

import (
	"iter"

	"github.com/piwi3910/TreeFit/internal/model"
)

// SearchStats counts the work done by a search.
type SearchStats struct {
	NodesVisited int // Grids examined, including the starting grid
}

// Search yields every grid reachable from g that places all remaining
// presents, depth first in placement priority order. remaining[i] is the
// number of presents[i] still to place; it is not modified.
//
// Callers normally take only the first grid: nothing beyond what has been
// pulled is ever computed.
func Search(g *Grid, presents []model.Present, remaining []int) iter.Seq[*Grid] {
	return SearchWithStats(g, presents, remaining, nil)
}

// SearchWithStats is Search with node counting. stats may be nil.
func SearchWithStats(g *Grid, presents []model.Present, remaining []int, stats *SearchStats) iter.Seq[*Grid] {
	s := &searcher{presents: presents, stats: stats}
	counts := make([]int, min(len(remaining), len(presents)))
	copy(counts, remaining)
	return func(yield func(*Grid) bool) {
		s.walk(g, counts, yield)
	}
}

type searcher struct {
	presents []model.Present
	stats    *SearchStats
}

// walk returns false once the consumer has stopped pulling.
func (s *searcher) walk(g *Grid, remaining []int, yield func(*Grid) bool) bool {
	if s.stats != nil {
		s.stats.NodesVisited++
	}

	next := nextPresent(remaining)
	if next < 0 {
		return yield(g)
	}

	rest := make([]int, len(remaining))
	copy(rest, remaining)
	rest[next]--

	for child := range Placements(g, s.presents[next]) {
		if !s.walk(child, rest, yield) {
			return false
		}
	}
	return true
}

// nextPresent returns the lowest index with a positive count, or -1.
func nextPresent(remaining []int) int {
	for i, n := range remaining {
		if n > 0 {
			return i
		}
	}
	return -1
}
