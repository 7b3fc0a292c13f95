package engine

import (
	"iter"
	"testing"

	"github.com/piwi3910/TreeFit/internal/model"
	"github.com/stretchr/testify/require"
)

func testPresent(t *testing.T, index int, rows ...string) model.Present {
	t.Helper()
	shape, err := model.ParseShape(rows)
	require.NoError(t, err)
	p, err := model.NewPresent(index, shape)
	require.NoError(t, err)
	return p
}

func searchOnlySettings() model.SolverSettings {
	s := model.DefaultSettings()
	s.UsePrecheck = false
	return s
}

// collect pulls at most n grids from seq.
func collect(seq iter.Seq[*Grid], n int) []*Grid {
	var out []*Grid
	for g := range seq {
		out = append(out, g)
		if len(out) >= n {
			break
		}
	}
	return out
}

func lastPlacement(t *testing.T, g *Grid) model.Placement {
	t.Helper()
	ps := g.Placements()
	require.NotEmpty(t, ps)
	return ps[len(ps)-1]
}
