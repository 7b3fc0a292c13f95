package export

import (
	"testing"

	"github.com/piwi3910/TreeFit/internal/engine"
	"github.com/piwi3910/TreeFit/internal/model"
)

// buildTestReport evaluates a small puzzle that produces one region for
// every decision: search-fit, bound-accept, area-reject and invalid.
func buildTestReport(t *testing.T) model.Report {
	t.Helper()

	var presents []model.Present
	for i, rows := range [][]string{{"##", "#."}, {"##"}} {
		p, err := model.NewPresent(i, model.MustParseShape(rows...))
		if err != nil {
			t.Fatalf("NewPresent(%d): %v", i, err)
		}
		presents = append(presents, p)
	}

	puzzle := model.Puzzle{
		Presents: presents,
		Regions: []model.TreeRegion{
			model.NewTreeRegion("Searched", 3, 3, []int{2, 0}),
			model.NewTreeRegion("Bound", 4, 4, []int{1, 1}),
			model.NewTreeRegion("Too small", 2, 2, []int{2, 0}),
			model.NewTreeRegion("Invalid", 3, 3, []int{1, 1, 1}),
		},
	}

	report := engine.New(model.DefaultSettings()).Run("test puzzle", puzzle)
	if report.FitCount != 2 {
		t.Fatalf("test report: expected 2 fitting regions, got %d", report.FitCount)
	}
	return report
}
