package engine

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/piwi3910/TreeFit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_MonominoesFillSquare(t *testing.T) {
	presents := []model.Present{testPresent(t, 0, "#")}
	assert.True(t, Evaluate(model.NewTreeRegion("r", 2, 2, []int{4}), presents))
}

func TestEvaluate_OversizedPresentRejectedByPrecheck(t *testing.T) {
	presents := []model.Present{testPresent(t, 0, "###", "###", "###")}
	region := model.NewTreeRegion("r", 2, 2, []int{1})

	result := New(model.DefaultSettings()).EvaluateRegion(region, presents)
	assert.False(t, result.Fits)
	assert.Equal(t, model.DecisionAreaReject, result.Decision)
	assert.False(t, result.SearchRan())
	assert.Zero(t, result.NodesVisited)
}

func TestEvaluate_LTrominoInSquare(t *testing.T) {
	presents := []model.Present{testPresent(t, 0, "#.", "##")}
	region := model.NewTreeRegion("r", 2, 2, []int{1})

	assert.True(t, Evaluate(region, presents))
	assert.True(t, New(searchOnlySettings()).Evaluate(region, presents))
}

func TestEvaluate_DominoesInThreeCells(t *testing.T) {
	presents := []model.Present{testPresent(t, 0, "##")}
	region := model.NewTreeRegion("r", 1, 3, []int{2})

	result := New(model.DefaultSettings()).EvaluateRegion(region, presents)
	assert.False(t, result.Fits)
	assert.Equal(t, model.DecisionAreaReject, result.Decision)

	assert.False(t, New(searchOnlySettings()).Evaluate(region, presents))
}

func TestEvaluate_InconclusiveGoesToSearch(t *testing.T) {
	presents := []model.Present{testPresent(t, 0, "#.", "##")}
	region := model.NewTreeRegion("r", 2, 3, []int{2})

	result := New(model.DefaultSettings()).EvaluateRegion(region, presents)
	assert.True(t, result.Fits)
	assert.Equal(t, model.DecisionSearchFit, result.Decision)
	assert.Len(t, result.Witness, 2)
	assert.Positive(t, result.NodesVisited)

	tees := []model.Present{testPresent(t, 0, "###", ".#.")}
	result = New(model.DefaultSettings()).EvaluateRegion(model.NewTreeRegion("t", 4, 2, []int{2}), tees)
	assert.False(t, result.Fits)
	assert.Equal(t, model.DecisionSearchNoFit, result.Decision)
	assert.Empty(t, result.Witness)
}

func TestEvaluate_WitnessOptional(t *testing.T) {
	presents := []model.Present{testPresent(t, 0, "#.", "##")}
	settings := model.DefaultSettings()
	settings.KeepWitness = false

	result := New(settings).EvaluateRegion(model.NewTreeRegion("r", 2, 3, []int{2}), presents)
	assert.True(t, result.Fits)
	assert.Nil(t, result.Witness)
}

func TestEvaluate_InvalidRegion(t *testing.T) {
	presents := []model.Present{testPresent(t, 0, "#")}

	result := New(model.DefaultSettings()).EvaluateRegion(model.NewTreeRegion("r", 2, 2, []int{1, 1}), presents)
	assert.False(t, result.Fits)
	assert.Equal(t, model.DecisionInvalid, result.Decision)
	assert.NotEmpty(t, result.Error)

	result = New(model.DefaultSettings()).EvaluateRegion(model.NewTreeRegion("r", 0, 2, []int{1}), presents)
	assert.Equal(t, model.DecisionInvalid, result.Decision)
}

func TestEvaluate_EmptyRequestFits(t *testing.T) {
	presents := []model.Present{testPresent(t, 0, "###")}
	region := model.NewTreeRegion("r", 1, 1, []int{0})

	assert.True(t, Evaluate(region, presents))
	assert.True(t, New(searchOnlySettings()).Evaluate(region, presents))
}

// soundnessCases are small enough for an exhaustive search.
func soundnessCases(t *testing.T) ([]model.Present, []model.TreeRegion) {
	presents := []model.Present{
		testPresent(t, 0, "#"),
		testPresent(t, 1, "##"),
		testPresent(t, 2, "#.", "##"),
	}
	regions := []model.TreeRegion{
		model.NewTreeRegion("5 mono in 2x2", 2, 2, []int{5}),
		model.NewTreeRegion("3 L in 4x2", 4, 2, []int{0, 0, 3}),
		model.NewTreeRegion("2 domino + L in 2x3", 2, 3, []int{0, 2, 1}),
		model.NewTreeRegion("4 L in 4x4", 4, 4, []int{0, 0, 4}),
		model.NewTreeRegion("mono + domino + L in 4x2", 4, 2, []int{1, 1, 1}),
		model.NewTreeRegion("6 mono in 6x2", 6, 2, []int{6}),
		model.NewTreeRegion("2 L in 2x3", 2, 3, []int{0, 0, 2}),
		model.NewTreeRegion("domino pair in 4x1", 4, 1, []int{0, 2}),
	}
	return presents, regions
}

func TestPrecheck_AreaRejectIsSound(t *testing.T) {
	presents, regions := soundnessCases(t)
	search := New(searchOnlySettings())

	rejected := 0
	for _, r := range regions {
		if AreaBound(r, presents) {
			continue
		}
		rejected++
		assert.False(t, search.Evaluate(r, presents), "region %q rejected by area but search found a packing", r.Label)
	}
	require.Positive(t, rejected)
}

func TestPrecheck_GridAcceptIsSound(t *testing.T) {
	presents, regions := soundnessCases(t)
	search := New(searchOnlySettings())

	accepted := 0
	for _, r := range regions {
		if !AreaBound(r, presents) || !GridBound(r, presents) {
			continue
		}
		accepted++
		assert.True(t, search.Evaluate(r, presents), "region %q accepted by bound but search found nothing", r.Label)
	}
	require.Positive(t, accepted)
}

func TestEvaluate_PrecheckAgreesWithSearch(t *testing.T) {
	presents, regions := soundnessCases(t)
	withCheck := New(model.DefaultSettings())
	searchOnly := New(searchOnlySettings())

	for _, r := range regions {
		assert.Equal(t, searchOnly.Evaluate(r, presents), withCheck.Evaluate(r, presents), "region %q", r.Label)
	}
}

func TestEvaluate_LogsDecision(t *testing.T) {
	var buf bytes.Buffer
	ev := New(model.DefaultSettings())
	ev.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	presents := []model.Present{testPresent(t, 0, "#")}
	ev.Evaluate(model.NewTreeRegion("logged", 2, 2, []int{4}), presents)

	out := buf.String()
	assert.True(t, strings.Contains(out, "region=logged"), out)
	assert.True(t, strings.Contains(out, "decision=bound-accept"), out)
}

func TestEvaluator_NilLoggerFallsBack(t *testing.T) {
	ev := &Evaluator{Settings: model.DefaultSettings()}
	presents := []model.Present{testPresent(t, 0, "#")}
	assert.True(t, ev.Evaluate(model.NewTreeRegion("r", 1, 1, []int{1}), presents))
}
