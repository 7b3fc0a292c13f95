package model

import (
	"math"
	"testing"
)

func TestCalculateAreaStatsBasic(t *testing.T) {
	presents := []Present{
		mustPresent(t, 0, "###", "#..", "###"), // 7 cells
		mustPresent(t, 1, "##"),                // 2 cells
	}
	region := NewTreeRegion("r", 4, 4, []int{1, 3})

	stats := CalculateAreaStats(region, presents)

	if stats.RequiredArea != 13 {
		t.Errorf("expected required area 13, got %d", stats.RequiredArea)
	}
	if stats.RegionArea != 16 {
		t.Errorf("expected region area 16, got %d", stats.RegionArea)
	}
	if stats.Slack != 3 {
		t.Errorf("expected slack 3, got %d", stats.Slack)
	}
	if stats.PresentCount != 4 {
		t.Errorf("expected 4 presents, got %d", stats.PresentCount)
	}
	if math.Abs(stats.FillPercent-81.25) > 0.001 {
		t.Errorf("expected fill 81.25%%, got %.3f", stats.FillPercent)
	}
}

func TestCalculateAreaStatsOverfull(t *testing.T) {
	presents := []Present{mustPresent(t, 0, "##")}
	region := NewTreeRegion("r", 1, 3, []int{2})

	stats := CalculateAreaStats(region, presents)
	if stats.Slack != -1 {
		t.Errorf("expected slack -1, got %d", stats.Slack)
	}
	if stats.FillPercent <= 100 {
		t.Errorf("expected fill above 100%%, got %.2f", stats.FillPercent)
	}
}

func TestCalculateAreaStatsIgnoresUnknownPresents(t *testing.T) {
	presents := []Present{mustPresent(t, 0, "#")}
	region := NewTreeRegion("r", 2, 2, []int{1, 5})

	stats := CalculateAreaStats(region, presents)
	if stats.RequiredArea != 1 {
		t.Errorf("expected required area 1, got %d", stats.RequiredArea)
	}
}

func TestCalculateAreaStatsZeroRegion(t *testing.T) {
	stats := CalculateAreaStats(TreeRegion{}, nil)
	if stats.FillPercent != 0 {
		t.Errorf("expected zero fill for empty region, got %f", stats.FillPercent)
	}
}

func mustPresent(t *testing.T, index int, rows ...string) Present {
	t.Helper()
	shape, err := ParseShape(rows)
	if err != nil {
		t.Fatalf("ParseShape(%v): %v", rows, err)
	}
	p, err := NewPresent(index, shape)
	if err != nil {
		t.Fatalf("NewPresent: %v", err)
	}
	return p
}
