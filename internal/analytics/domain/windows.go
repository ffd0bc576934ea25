package domain

import (
	"time"

	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
)

// Window lengths in days.
const (
	EvolutionDays = 14
	HeatmapDays   = 28
	WeekDays      = 7
)

// StartOfDay truncates t to local midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday of the week containing t. A Sunday belongs
// to the week that started six days earlier.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	weekday := int(day.Weekday())
	offset := 1 - weekday
	if weekday == 0 {
		offset = -6
	}
	return day.AddDate(0, 0, offset)
}

// trailing returns n consecutive days ending endOffset days before today,
// oldest first, zero-filling dates absent from the ledger.
func trailing(l *Ledger, now time.Time, n, endOffset int) []ActivityDay {
	today := StartOfDay(now)
	out := make([]ActivityDay, n)
	for i := 0; i < n; i++ {
		d := today.AddDate(0, 0, i-(n-1)-endOffset)
		out[i] = l.Day(study.FormatDate(d))
	}
	return out
}

// EvolutionWindow returns today and the preceding 13 days, oldest first.
func EvolutionWindow(l *Ledger, now time.Time) []ActivityDay {
	return trailing(l, now, EvolutionDays, 0)
}

// PreviousWindowTotal sums questions made 14 to 27 days before today.
func PreviousWindowTotal(l *Ledger, now time.Time) int {
	return SumMade(trailing(l, now, EvolutionDays, EvolutionDays))
}

// HeatmapWindow returns today and the preceding 27 days reduced to counts and
// bucketed into density levels.
func HeatmapWindow(l *Ledger, now time.Time) []HeatmapDay {
	days := trailing(l, now, HeatmapDays, 0)
	out := make([]HeatmapDay, len(days))
	for i, d := range days {
		out[i] = HeatmapDay{Date: d.Date, Count: d.QuestionsMade}
	}
	return BucketHeatmap(out)
}

// SumMade totals questions made across days.
func SumMade(days []ActivityDay) int {
	total := 0
	for _, d := range days {
		total += d.QuestionsMade
	}
	return total
}

// SumCorrect totals correct answers across days.
func SumCorrect(days []ActivityDay) int {
	total := 0
	for _, d := range days {
		total += d.QuestionsCorrect
	}
	return total
}

// Week is a Monday-start seven-day window.
type Week struct {
	Start time.Time
}

// CurrentWeek returns the week containing now.
func CurrentWeek(now time.Time) Week {
	return Week{Start: StartOfWeek(now)}
}

// PreviousWeek returns the week before the one containing now.
func PreviousWeek(now time.Time) Week {
	return Week{Start: StartOfWeek(now).AddDate(0, 0, -WeekDays)}
}

// Days returns the seven dates of the week, Monday first.
func (w Week) Days() []time.Time {
	out := make([]time.Time, WeekDays)
	for i := range out {
		out[i] = w.Start.AddDate(0, 0, i)
	}
	return out
}

// End returns the exclusive end of the week (the next Monday).
func (w Week) End() time.Time {
	return w.Start.AddDate(0, 0, WeekDays)
}

// Contains reports whether the YYYY-MM-DD date falls in the week.
func (w Week) Contains(date string) bool {
	if !study.ValidDate(date) {
		return false
	}
	first := study.FormatDate(w.Start)
	last := study.FormatDate(w.Start.AddDate(0, 0, WeekDays-1))
	return date >= first && date <= last
}

// ContainsTime reports whether t falls on a calendar day of the week.
func (w Week) ContainsTime(t time.Time) bool {
	return w.Contains(study.FormatDate(t.In(w.Start.Location())))
}

// WeekWindow returns the week's seven ledger days, zero-filled.
func WeekWindow(l *Ledger, w Week) []ActivityDay {
	days := w.Days()
	out := make([]ActivityDay, len(days))
	for i, d := range days {
		out[i] = l.Day(study.FormatDate(d))
	}
	return out
}
