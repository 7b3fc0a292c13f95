package engine

import (
	"testing"

	"github.com/piwi3910/TreeFit/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAreaBound(t *testing.T) {
	presents := []model.Present{
		testPresent(t, 0, "##"),
		testPresent(t, 1, "#.", "##"),
	}

	assert.True(t, AreaBound(model.NewTreeRegion("exact", 2, 2, []int{2}), presents))
	assert.True(t, AreaBound(model.NewTreeRegion("mixed", 5, 1, []int{1, 1}), presents))
	assert.False(t, AreaBound(model.NewTreeRegion("over", 3, 1, []int{2}), presents))
	assert.False(t, AreaBound(model.NewTreeRegion("over2", 2, 2, []int{1, 1}), presents))
}

func TestGridBound(t *testing.T) {
	presents := []model.Present{
		testPresent(t, 0, "#"),
		testPresent(t, 1, "###", "#..", "#.."),
	}

	// The largest present is 3x3 even when only monominoes are requested.
	assert.False(t, GridBound(model.NewTreeRegion("small", 2, 2, []int{1}), presents))
	assert.True(t, GridBound(model.NewTreeRegion("one slot", 3, 3, []int{1}), presents))
	assert.True(t, GridBound(model.NewTreeRegion("four slots", 6, 7, []int{2, 2}), presents))
	assert.False(t, GridBound(model.NewTreeRegion("five", 6, 7, []int{3, 2}), presents))
	assert.True(t, GridBound(model.NewTreeRegion("nothing", 1, 1, nil), presents))
}

func TestGridBound_NoPresents(t *testing.T) {
	assert.False(t, GridBound(model.NewTreeRegion("r", 3, 3, []int{1}), nil))
}

func TestPrecheck(t *testing.T) {
	presents := []model.Present{testPresent(t, 0, "#.", "##")}

	assert.Equal(t, VerdictReject, Precheck(model.NewTreeRegion("r", 2, 2, []int{2}), presents))
	assert.Equal(t, VerdictAccept, Precheck(model.NewTreeRegion("a", 4, 4, []int{4}), presents))
	assert.Equal(t, VerdictInconclusive, Precheck(model.NewTreeRegion("i", 2, 3, []int{2}), presents))
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "reject", VerdictReject.String())
	assert.Equal(t, "accept", VerdictAccept.String())
	assert.Equal(t, "inconclusive", VerdictInconclusive.String())
}
