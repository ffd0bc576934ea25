package domain

import (
	"math"
	"time"
)

// WeekTotals sums one week's activity.
type WeekTotals struct {
	Start            string  `json:"start"`
	QuestionsMade    int     `json:"questionsMade"`
	QuestionsCorrect int     `json:"questionsCorrect"`
	Accuracy         float64 `json:"accuracy"`
}

// WeekComparison is the week-over-week summary. AccuracyDelta is in whole
// percentage points.
type WeekComparison struct {
	ThisWeek       WeekTotals `json:"thisWeek"`
	LastWeek       WeekTotals `json:"lastWeek"`
	QuestionsDelta int        `json:"questionsDelta"`
	AccuracyDelta  int        `json:"accuracyDelta"`
}

// Accuracy returns correct/total, or 0 for an empty total.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// TotalsFor sums the ledger over a week.
func TotalsFor(l *Ledger, w Week) WeekTotals {
	days := WeekWindow(l, w)
	made, correct := SumMade(days), SumCorrect(days)
	return WeekTotals{
		Start:            days[0].Date,
		QuestionsMade:    made,
		QuestionsCorrect: correct,
		Accuracy:         Accuracy(correct, made),
	}
}

// CompareWeeks compares the current Monday-start week with the previous one.
func CompareWeeks(l *Ledger, now time.Time) WeekComparison {
	this := TotalsFor(l, CurrentWeek(now))
	last := TotalsFor(l, PreviousWeek(now))
	return WeekComparison{
		ThisWeek:       this,
		LastWeek:       last,
		QuestionsDelta: this.QuestionsMade - last.QuestionsMade,
		AccuracyDelta:  roundHalfUp((this.Accuracy - last.Accuracy) * 100),
	}
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
