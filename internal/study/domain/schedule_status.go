package domain

import (
	"fmt"
	"time"
)

// DeadlineUrgency categorizes how close a topic deadline is.
type DeadlineUrgency string

const (
	DeadlineNone    DeadlineUrgency = "none"
	DeadlineOverdue DeadlineUrgency = "overdue"
	DeadlineUrgent  DeadlineUrgency = "urgent"
	DeadlineSoon    DeadlineUrgency = "soon"
	DeadlineOK      DeadlineUrgency = "ok"
)

// DeadlineStatus is the classification of a topic deadline.
type DeadlineStatus struct {
	Urgency  DeadlineUrgency `json:"urgency"`
	Label    string          `json:"label"`
	DaysLeft int             `json:"daysLeft"`
}

// ReviewClass is the style class attached to a review due status.
type ReviewClass string

const (
	ReviewNone    ReviewClass = "review-none"
	ReviewOverdue ReviewClass = "review-overdue"
	ReviewToday   ReviewClass = "review-today"
	ReviewSoon    ReviewClass = "review-soon"
	ReviewLater   ReviewClass = "review-later"
)

// ReviewStatus is the due classification of a topic's next review.
type ReviewStatus struct {
	Label string      `json:"label"`
	Class ReviewClass `json:"class"`
}

// ClassifyDeadline evaluates a deadline string against now.
func ClassifyDeadline(deadline string, now time.Time) DeadlineStatus {
	days, ok := daysUntil(deadline, now)
	if !ok {
		return DeadlineStatus{Urgency: DeadlineNone, Label: "no deadline"}
	}
	switch {
	case days < 0:
		return DeadlineStatus{Urgency: DeadlineOverdue, Label: fmt.Sprintf("overdue by %s", pluralDays(-days)), DaysLeft: days}
	case days == 0:
		return DeadlineStatus{Urgency: DeadlineUrgent, Label: "due today", DaysLeft: 0}
	case days <= 3:
		return DeadlineStatus{Urgency: DeadlineUrgent, Label: "in " + pluralDays(days), DaysLeft: days}
	case days <= 7:
		return DeadlineStatus{Urgency: DeadlineSoon, Label: "in " + pluralDays(days), DaysLeft: days}
	default:
		return DeadlineStatus{Urgency: DeadlineOK, Label: "in " + pluralDays(days), DaysLeft: days}
	}
}

// ClassifyReview evaluates a next-review date string against now.
func ClassifyReview(nextReview string, now time.Time) ReviewStatus {
	days, ok := daysUntil(nextReview, now)
	if !ok {
		return ReviewStatus{Label: "not scheduled", Class: ReviewNone}
	}
	switch {
	case days < 0:
		return ReviewStatus{Label: "overdue " + pluralDays(-days), Class: ReviewOverdue}
	case days == 0:
		return ReviewStatus{Label: "review today", Class: ReviewToday}
	case days == 1:
		return ReviewStatus{Label: "review tomorrow", Class: ReviewSoon}
	case days <= 3:
		return ReviewStatus{Label: "review in " + pluralDays(days), Class: ReviewSoon}
	default:
		return ReviewStatus{Label: "review in " + pluralDays(days), Class: ReviewLater}
	}
}

// daysUntil returns the calendar-day distance from today to the date prefix
// of s.
func daysUntil(s string, now time.Time) (int, bool) {
	date, ok := DatePrefix(s)
	if !ok {
		return 0, false
	}
	target, _ := ParseDate(date, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// Round absorbs the 23h/25h days around DST switches.
	return int(target.Sub(today).Round(24*time.Hour) / (24 * time.Hour)), true
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
