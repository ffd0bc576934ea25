package domain

import "math"

// HeatmapLevels is the number of non-empty density levels.
const HeatmapLevels = 4

// HeatmapDay is one heatmap cell.
type HeatmapDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// BucketHeatmap assigns each day a level from 0 to HeatmapLevels relative to
// the busiest day in the slice. Empty days are always level 0.
func BucketHeatmap(days []HeatmapDay) []HeatmapDay {
	peak := 0
	for _, d := range days {
		peak = max(peak, d.Count)
	}

	out := make([]HeatmapDay, len(days))
	for i, d := range days {
		d.Level = 0
		if d.Count > 0 && peak > 0 {
			d.Level = int(math.Ceil(float64(HeatmapLevels*d.Count) / float64(peak)))
		}
		out[i] = d
	}
	return out
}
