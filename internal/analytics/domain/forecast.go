package domain

import (
	"math"
	"time"

	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
)

// ForecastStatus is the outcome of a completion forecast.
type ForecastStatus string

const (
	ForecastComplete   ForecastStatus = "complete"
	ForecastNoEstimate ForecastStatus = "no_estimate"
	ForecastEstimated  ForecastStatus = "estimated"
)

// CompletionForecast projects when the remaining topics will be studied at
// the historical average pace. EstimatedDate is set only when Status is
// ForecastEstimated.
type CompletionForecast struct {
	Status        ForecastStatus `json:"status"`
	Remaining     int            `json:"remaining"`
	TopicsPerDay  float64        `json:"topicsPerDay"`
	DaysRemaining int            `json:"daysRemaining"`
	EstimatedDate string         `json:"estimatedDate,omitempty"`
}

// Label renders the forecast for humans.
func (f CompletionForecast) Label() string {
	switch f.Status {
	case ForecastComplete:
		return "complete"
	case ForecastEstimated:
		return f.EstimatedDate
	default:
		return "no estimate"
	}
}

// ForecastCompletion applies a constant-rate linear projection.
func ForecastCompletion(stats study.OverallStats, l *Ledger, now time.Time) CompletionForecast {
	remaining := stats.TotalTopics - stats.StudiedTopics
	if remaining <= 0 {
		return CompletionForecast{Status: ForecastComplete}
	}

	noEstimate := CompletionForecast{Status: ForecastNoEstimate, Remaining: remaining}
	if l.Len() < 2 {
		return noEstimate
	}

	today := StartOfDay(now)
	earliest, _ := l.EarliestDate()
	first, ok := study.ParseDate(earliest, today.Location())
	if !ok {
		return noEstimate
	}
	totalDays := max(1, daysBetween(first, today))

	perDay := float64(stats.StudiedTopics) / float64(totalDays)
	if perDay <= 0 {
		return noEstimate
	}

	daysRemaining := int(math.Ceil(float64(remaining) / perDay))
	return CompletionForecast{
		Status:        ForecastEstimated,
		Remaining:     remaining,
		TopicsPerDay:  perDay,
		DaysRemaining: daysRemaining,
		EstimatedDate: study.FormatDate(today.AddDate(0, 0, daysRemaining)),
	}
}

// daysBetween counts calendar days from a to b, rounding away DST shifts.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Round(24*time.Hour) / (24 * time.Hour))
}
