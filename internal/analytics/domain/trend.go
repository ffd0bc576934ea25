package domain

// TrendDirection labels a trend ratio.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// trendBand is the ratio inside which a change counts as stable.
const trendBand = 0.05

// Trend compares the last 14-day total with the 14 days before it.
type Trend struct {
	Ratio     float64        `json:"ratio"`
	Current   int            `json:"current"`
	Previous  int            `json:"previous"`
	Direction TrendDirection `json:"direction"`
}

// Percent returns the ratio as percentage points.
func (t Trend) Percent() float64 {
	return t.Ratio * 100
}

// ComputeTrend returns (current-previous)/previous. A zero baseline yields 1
// when there is any current activity and 0 otherwise.
func ComputeTrend(current, previous int) Trend {
	var ratio float64
	switch {
	case previous > 0:
		ratio = float64(current-previous) / float64(previous)
	case current > 0:
		ratio = 1
	}

	direction := TrendStable
	if ratio > trendBand {
		direction = TrendUp
	} else if ratio < -trendBand {
		direction = TrendDown
	}

	return Trend{
		Ratio:     ratio,
		Current:   current,
		Previous:  previous,
		Direction: direction,
	}
}
