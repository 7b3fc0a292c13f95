package model

// AreaStats summarises how much of a region the requested presents cover.
type AreaStats struct {
	RequiredArea int     `json:"required_area"` // Filled cells over all requested presents
	RegionArea   int     `json:"region_area"`   // Width x Height of the region
	Slack        int     `json:"slack"`         // RegionArea - RequiredArea, negative when overfull
	FillPercent  float64 `json:"fill_percent"`  // RequiredArea as a percentage of RegionArea
	PresentCount int     `json:"present_count"` // Individual presents requested
}

// CalculateAreaStats computes the area bookkeeping for one region.
// Counts for presents beyond the end of the list are ignored.
func CalculateAreaStats(region TreeRegion, presents []Present) AreaStats {
	required := 0
	for i, n := range region.PresentsToFit {
		if i >= len(presents) {
			break
		}
		required += presents[i].CoveredArea * n
	}

	regionArea := region.Area()
	stats := AreaStats{
		RequiredArea: required,
		RegionArea:   regionArea,
		Slack:        regionArea - required,
		PresentCount: region.TotalPresents(),
	}
	if regionArea > 0 {
		stats.FillPercent = float64(required) / float64(regionArea) * 100.0
	}
	return stats
}
