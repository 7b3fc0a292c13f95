package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Present is a shape that has to be placed under a tree, together with all
// of its distinct rotations and reflections.
type Present struct {
	ID              string  `json:"id"`
	Index           int     `json:"index"` // Position in the puzzle's present list
	Label           string  `json:"label"`
	Width           int     `json:"width"`  // Width of the shape as given
	Height          int     `json:"height"` // Height of the shape as given
	CoveredArea     int     `json:"covered_area"`
	ShapeVariations []Shape `json:"-"`
}

// NewPresent precomputes the variations of shape. The shape must have been
// built with NewShape or ParseShape.
func NewPresent(index int, shape Shape) (Present, error) {
	if shape.Height() == 0 || shape.Width() == 0 {
		return Present{}, fmt.Errorf("present %d: %w", index, ErrInvalidShape)
	}
	area := shape.Area()
	if area == 0 {
		return Present{}, fmt.Errorf("present %d has no filled cells: %w", index, ErrInvalidShape)
	}
	return Present{
		ID:              uuid.New().String()[:8],
		Index:           index,
		Label:           fmt.Sprintf("Present %d", index),
		Width:           shape.Width(),
		Height:          shape.Height(),
		CoveredArea:     area,
		ShapeVariations: shape.Variations(),
	}, nil
}

// Shape returns the present's shape in its original orientation.
func (p Present) Shape() Shape {
	if len(p.ShapeVariations) == 0 {
		return Shape{}
	}
	return p.ShapeVariations[0]
}

// MinSpan returns the smallest width and height any variation occupies.
func (p Present) MinSpan() (int, int) {
	if len(p.ShapeVariations) == 0 {
		return p.Width, p.Height
	}
	minW, minH := p.ShapeVariations[0].Width(), p.ShapeVariations[0].Height()
	for _, v := range p.ShapeVariations[1:] {
		if v.Width() < minW {
			minW = v.Width()
		}
		if v.Height() < minH {
			minH = v.Height()
		}
	}
	return minW, minH
}

// TreeRegion is a rectangular area under a tree along with how many of each
// present type must fit into it. PresentsToFit is indexed like the puzzle's
// present list; missing trailing entries count as zero.
type TreeRegion struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	PresentsToFit []int  `json:"presents_to_fit"`
}

func NewTreeRegion(label string, w, h int, counts []int) TreeRegion {
	cp := make([]int, len(counts))
	copy(cp, counts)
	return TreeRegion{
		ID:            uuid.New().String()[:8],
		Label:         label,
		Width:         w,
		Height:        h,
		PresentsToFit: cp,
	}
}

// Area returns the number of cells in the region.
func (r TreeRegion) Area() int {
	return r.Width * r.Height
}

// TotalPresents returns how many individual presents are requested.
func (r TreeRegion) TotalPresents() int {
	total := 0
	for _, n := range r.PresentsToFit {
		total += n
	}
	return total
}

// Validate checks the region against the present list it refers to.
func (r TreeRegion) Validate(presents []Present) error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("region %q is %dx%d: %w", r.Label, r.Width, r.Height, ErrInvalidRegion)
	}
	if len(r.PresentsToFit) > len(presents) {
		return fmt.Errorf("region %q lists %d present counts but only %d presents exist: %w",
			r.Label, len(r.PresentsToFit), len(presents), ErrInvalidRegion)
	}
	for i, n := range r.PresentsToFit {
		if n < 0 {
			return fmt.Errorf("region %q has negative count %d for present %d: %w", r.Label, n, i, ErrInvalidRegion)
		}
	}
	return nil
}

// Puzzle is a parsed input: the shared present list plus every region to evaluate.
type Puzzle struct {
	Presents []Present    `json:"presents"`
	Regions  []TreeRegion `json:"regions"`
}

// Validate checks that presents are indexed in order and every region is well formed.
func (p Puzzle) Validate() error {
	for i, pr := range p.Presents {
		if pr.Index != i {
			return fmt.Errorf("present at position %d has index %d: %w", i, pr.Index, ErrInvalidPuzzle)
		}
	}
	for _, r := range p.Regions {
		if err := r.Validate(p.Presents); err != nil {
			return err
		}
	}
	return nil
}

// Placement records one present variant dropped onto a grid.
type Placement struct {
	PresentIndex int `json:"present"`
	Variant      int `json:"variant"`
	Row          int `json:"row"`
	Col          int `json:"col"`
}

// Decision tells which stage of the evaluator settled a region.
type Decision string

const (
	DecisionAreaReject  Decision = "area-reject"  // Presents cover more cells than the region has
	DecisionBoundAccept Decision = "bound-accept" // Bounding rectangles tile the region trivially
	DecisionSearchFit   Decision = "search-fit"   // Backtracking found a witness
	DecisionSearchNoFit Decision = "search-no-fit"
	DecisionInvalid     Decision = "invalid" // Region failed validation
)

// RegionResult is the outcome of evaluating one region.
type RegionResult struct {
	Region       TreeRegion  `json:"region"`
	Fits         bool        `json:"fits"`
	Decision     Decision    `json:"decision"`
	Witness      []Placement `json:"witness,omitempty"` // Placements of the first packing found
	NodesVisited int         `json:"nodes_visited"`
	DurationMS   float64     `json:"duration_ms"`
	Stats        AreaStats   `json:"stats"`
	Error        string      `json:"error,omitempty"`
}

// SearchRan reports whether the backtracking search was invoked.
func (rr RegionResult) SearchRan() bool {
	return rr.Decision == DecisionSearchFit || rr.Decision == DecisionSearchNoFit
}

// Report holds the results of evaluating every region of a puzzle.
type Report struct {
	Name     string         `json:"name"`
	Presents []Present      `json:"presents"`
	Results  []RegionResult `json:"results"`
	FitCount int            `json:"fit_count"`
}

// RegionCount returns the number of evaluated regions.
func (r Report) RegionCount() int {
	return len(r.Results)
}

// SolverSettings tunes the region evaluator.
type SolverSettings struct {
	UsePrecheck    bool `json:"use_precheck" mapstructure:"use_precheck"`       // Run the cheap area/bound tests before searching
	KeepWitness    bool `json:"keep_witness" mapstructure:"keep_witness"`       // Record the placements of the first packing found
	ValidateRegion bool `json:"validate_region" mapstructure:"validate_region"` // Reject malformed regions instead of searching them
}

func DefaultSettings() SolverSettings {
	return SolverSettings{
		UsePrecheck:    true,
		KeepWitness:    true,
		ValidateRegion: true,
	}
}

// RunRecord is a short summary of one solve run, kept in the history file.
type RunRecord struct {
	ID          string `json:"id"`
	Input       string `json:"input"`
	CreatedAt   string `json:"created_at"`
	RegionCount int    `json:"region_count"`
	FitCount    int    `json:"fit_count"`
}

// NewRunRecord summarises report. createdAt is an RFC 3339 timestamp.
func NewRunRecord(input string, report Report, createdAt string) RunRecord {
	return RunRecord{
		ID:          uuid.New().String()[:8],
		Input:       input,
		CreatedAt:   createdAt,
		RegionCount: report.RegionCount(),
		FitCount:    report.FitCount,
	}
}
