package engine

import "github.com/piwi3910/TreeFit/internal/model"

// Verdict is the outcome of the cheap feasibility tests.
type Verdict int

const (
	VerdictInconclusive Verdict = iota // Search is needed
	VerdictReject                      // Cannot fit, by area alone
	VerdictAccept                      // Fits, by the bounding-rectangle bound
)

func (v Verdict) String() string {
	switch v {
	case VerdictReject:
		return "reject"
	case VerdictAccept:
		return "accept"
	default:
		return "inconclusive"
	}
}

// Precheck runs the area bound and then the grid bound.
func Precheck(region model.TreeRegion, presents []model.Present) Verdict {
	if !AreaBound(region, presents) {
		return VerdictReject
	}
	if GridBound(region, presents) {
		return VerdictAccept
	}
	return VerdictInconclusive
}

// AreaBound reports whether the requested presents cover no more cells than
// the region has. Failing it proves the region infeasible.
func AreaBound(region model.TreeRegion, presents []model.Present) bool {
	required := 0
	for i, n := range region.PresentsToFit {
		if i >= len(presents) {
			break
		}
		required += presents[i].CoveredArea * n
	}
	return required <= region.Area()
}

// GridBound reports whether every requested present fits in its own cell of
// a uniform grid sized by the largest present width and height. Passing it
// proves the region feasible.
//
// The maximum is taken over every present type in the list, not just the
// requested ones.
func GridBound(region model.TreeRegion, presents []model.Present) bool {
	total := region.TotalPresents()
	if total == 0 {
		return true
	}

	maxW, maxH := 0, 0
	for _, p := range presents {
		maxW = max(maxW, p.Width)
		maxH = max(maxH, p.Height)
	}
	if maxW == 0 || maxH == 0 {
		return false
	}

	slots := (region.Width / maxW) * (region.Height / maxH)
	return slots >= total
}
