package engine

import (
	"fmt"

	"github.com/piwi3910/TreeFit/internal/model"
)

// Run evaluates every region of the puzzle in order and tallies the ones
// that fit.
func (e *Evaluator) Run(name string, puzzle model.Puzzle) model.Report {
	report := model.Report{
		Name:     name,
		Presents: puzzle.Presents,
		Results:  make([]model.RegionResult, 0, len(puzzle.Regions)),
	}
	for _, region := range puzzle.Regions {
		result := e.EvaluateRegion(region, puzzle.Presents)
		if result.Fits {
			report.FitCount++
		}
		report.Results = append(report.Results, result)
	}
	e.logger().Info("puzzle evaluated", "name", name, "regions", len(puzzle.Regions), "fit", report.FitCount)
	return report
}

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.SolverSettings
}

// ComparisonResult holds the report and computed statistics for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Report        model.Report
	FitCount      int
	SearchCount   int // Regions that needed the backtracking search
	NodesVisited  int
	TotalDuration float64 // ms
}

// Disagreement is a region on which two scenarios gave different answers.
type Disagreement struct {
	Region   model.TreeRegion
	Verdicts map[string]bool // scenario name -> fits
}

func (d Disagreement) String() string {
	return fmt.Sprintf("region %q (%dx%d): %v", d.Region.Label, d.Region.Width, d.Region.Height, d.Verdicts)
}

// CompareScenarios runs the puzzle under each scenario and returns the
// results in scenario order.
func CompareScenarios(scenarios []ComparisonScenario, puzzle model.Puzzle) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		ev := New(scenario.Settings)
		report := ev.Run(scenario.Name, puzzle)

		cr := ComparisonResult{
			Scenario: scenario,
			Report:   report,
			FitCount: report.FitCount,
		}
		for _, r := range report.Results {
			if r.SearchRan() {
				cr.SearchCount++
			}
			cr.NodesVisited += r.NodesVisited
			cr.TotalDuration += r.DurationMS
		}
		results = append(results, cr)
	}

	return results
}

// FindDisagreements lists the regions on which the compared scenarios do
// not all agree. Every result must come from the same puzzle.
func FindDisagreements(results []ComparisonResult) []Disagreement {
	if len(results) < 2 {
		return nil
	}
	var out []Disagreement
	for i, base := range results[0].Report.Results {
		verdicts := map[string]bool{results[0].Scenario.Name: base.Fits}
		agree := true
		for _, other := range results[1:] {
			if i >= len(other.Report.Results) {
				continue
			}
			fits := other.Report.Results[i].Fits
			verdicts[other.Scenario.Name] = fits
			if fits != base.Fits {
				agree = false
			}
		}
		if !agree {
			out = append(out, Disagreement{Region: base.Region, Verdicts: verdicts})
		}
	}
	return out
}

// BuildDefaultScenarios returns the base settings plus a variant that
// skips the pre-check, so the pre-check's verdicts can be verified against
// the full search.
func BuildDefaultScenarios(base model.SolverSettings) []ComparisonScenario {
	withCheck := base
	withCheck.UsePrecheck = true
	searchOnly := base
	searchOnly.UsePrecheck = false

	return []ComparisonScenario{
		{Name: "Pre-check", Settings: withCheck},
		{Name: "Search only", Settings: searchOnly},
	}
}
