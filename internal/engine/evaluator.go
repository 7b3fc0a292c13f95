package engine

import (
	"log/slog"
	"time"

	"github.com/piwi3910/TreeFit/internal/model"
)

// Evaluator decides whether regions can hold their presents.
// It keeps no state between regions.
type Evaluator struct {
	Settings model.SolverSettings
	Logger   *slog.Logger
}

func New(settings model.SolverSettings) *Evaluator {
	return &Evaluator{Settings: settings, Logger: slog.Default()}
}

// Evaluate reports whether every present requested by region fits into it.
func Evaluate(region model.TreeRegion, presents []model.Present) bool {
	return New(model.DefaultSettings()).Evaluate(region, presents)
}

// Evaluate reports whether every present requested by region fits into it.
func (e *Evaluator) Evaluate(region model.TreeRegion, presents []model.Present) bool {
	return e.EvaluateRegion(region, presents).Fits
}

// EvaluateRegion evaluates one region and reports how the answer was reached.
func (e *Evaluator) EvaluateRegion(region model.TreeRegion, presents []model.Present) model.RegionResult {
	start := time.Now()
	result := model.RegionResult{
		Region: region,
		Stats:  model.CalculateAreaStats(region, presents),
	}

	if e.Settings.ValidateRegion {
		if err := region.Validate(presents); err != nil {
			result.Decision = model.DecisionInvalid
			result.Error = err.Error()
			e.logger().Warn("region rejected", "region", region.Label, "error", err)
			return e.finish(result, start)
		}
	}

	if e.Settings.UsePrecheck {
		switch Precheck(region, presents) {
		case VerdictReject:
			result.Decision = model.DecisionAreaReject
			return e.finish(result, start)
		case VerdictAccept:
			result.Fits = true
			result.Decision = model.DecisionBoundAccept
			return e.finish(result, start)
		}
	}

	var stats SearchStats
	grid := NewGrid(region.Width, region.Height)
	for witness := range SearchWithStats(grid, presents, region.PresentsToFit, &stats) {
		result.Fits = true
		if e.Settings.KeepWitness {
			result.Witness = witness.Placements()
		}
		break
	}
	result.NodesVisited = stats.NodesVisited
	if result.Fits {
		result.Decision = model.DecisionSearchFit
	} else {
		result.Decision = model.DecisionSearchNoFit
	}
	return e.finish(result, start)
}

func (e *Evaluator) finish(result model.RegionResult, start time.Time) model.RegionResult {
	result.DurationMS = float64(time.Since(start).Microseconds()) / 1000.0
	e.logger().Debug("region evaluated",
		"region", result.Region.Label,
		"size", []int{result.Region.Width, result.Region.Height},
		"fits", result.Fits,
		"decision", string(result.Decision),
		"nodes", result.NodesVisited,
		"duration_ms", result.DurationMS,
	)
	return result
}

func (e *Evaluator) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}
