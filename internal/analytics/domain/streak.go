package domain

import (
	"time"

	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
)

// StreakInfo holds the current and longest activity streaks in days.
type StreakInfo struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// ComputeStreak derives streaks from the ledger's active dates. The current
// streak only counts when today itself is active.
func ComputeStreak(l *Ledger, now time.Time) StreakInfo {
	active := l.ActiveDates()
	set := make(map[string]struct{}, len(active))
	for _, d := range active {
		set[d] = struct{}{}
	}

	current := 0
	for d := StartOfDay(now); ; d = d.AddDate(0, 0, -1) {
		if _, ok := set[study.FormatDate(d)]; !ok {
			break
		}
		current++
	}

	return StreakInfo{Current: current, Longest: longestRun(active)}
}

// longestRun returns the longest run of calendar-consecutive dates in an
// ascending list.
func longestRun(dates []string) int {
	longest, run := 0, 0
	var prev time.Time
	for i, date := range dates {
		d, ok := study.ParseDate(date, time.UTC)
		if !ok {
			continue
		}
		if i > 0 && d.Equal(prev.AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
		prev = d
	}
	return longest
}
