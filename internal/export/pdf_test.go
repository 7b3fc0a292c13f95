package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/TreeFit/internal/model"
)

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")

	if err := ExportPDF(path, buildTestReport(t)); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_EmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ExportPDF(path, model.Report{})
	if !errors.Is(err, ErrEmptyReport) {
		t.Fatalf("expected ErrEmptyReport, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for an empty report")
	}
}

func TestExportPDF_ManyRegions(t *testing.T) {
	base := buildTestReport(t)
	report := model.Report{Name: "many", Presents: base.Presents}
	for i := 0; i < 60; i++ {
		r := base.Results[i%len(base.Results)]
		r.Region.Label = fmt.Sprintf("Region %d", i+1)
		report.Results = append(report.Results, r)
	}

	path := filepath.Join(t.TempDir(), "many.pdf")
	if err := ExportPDF(path, report); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
}

func TestPlacementCells(t *testing.T) {
	report := buildTestReport(t)
	result := report.Results[0]
	if len(result.Witness) != 2 {
		t.Fatalf("expected 2 witness placements, got %d", len(result.Witness))
	}

	seen := map[[2]int]bool{}
	for _, p := range result.Witness {
		cells := placementCells(p, report.Presents)
		if len(cells) != 3 {
			t.Errorf("expected 3 cells per L-tromino, got %d", len(cells))
		}
		for _, rc := range cells {
			if rc[0] < 0 || rc[0] >= 3 || rc[1] < 0 || rc[1] >= 3 {
				t.Errorf("cell %v outside the 3x3 region", rc)
			}
			if seen[rc] {
				t.Errorf("cell %v covered twice", rc)
			}
			seen[rc] = true
		}
	}
}

func TestPlacementCells_OutOfRange(t *testing.T) {
	report := buildTestReport(t)
	bad := []model.Placement{
		{PresentIndex: -1, Variant: -1},
		{PresentIndex: 5, Variant: 0},
		{PresentIndex: 0, Variant: 99},
	}
	for _, p := range bad {
		if cells := placementCells(p, report.Presents); cells != nil {
			t.Errorf("placementCells(%+v) = %v, want nil", p, cells)
		}
	}
}

func TestVerdictText(t *testing.T) {
	tests := []struct {
		result model.RegionResult
		want   string
	}{
		{model.RegionResult{Fits: true, Decision: model.DecisionSearchFit}, "FITS"},
		{model.RegionResult{Decision: model.DecisionAreaReject}, "NO FIT"},
		{model.RegionResult{Decision: model.DecisionInvalid}, "INVALID"},
	}
	for _, tt := range tests {
		if got := verdictText(tt.result); got != tt.want {
			t.Errorf("verdictText(%s) = %q, want %q", tt.result.Decision, got, tt.want)
		}
	}
}

func TestSearchTotals(t *testing.T) {
	report := buildTestReport(t)
	searched, nodes := searchTotals(report)
	if searched != 1 {
		t.Errorf("expected 1 searched region, got %d", searched)
	}
	if nodes < 3 {
		t.Errorf("expected at least 3 nodes for a two-present witness, got %d", nodes)
	}
}

func TestColorFor(t *testing.T) {
	if colorFor(0) != colorFor(len(presentColors)) {
		t.Error("colors should wrap around")
	}
	if colorFor(-1) == colorFor(0) {
		t.Error("unknown presents should get the neutral color")
	}
}
