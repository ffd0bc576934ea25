// Package domain holds the user's study targets and the clamp rules that keep
// them in range.
package domain

import (
	"context"
	"errors"
	"math"
	"strings"
)

// ErrUnknownGoalField is returned when an update names no known target.
var ErrUnknownGoalField = errors.New("unknown goal field")

// GoalField names one configurable target.
type GoalField string

const (
	FieldDailyQuestions GoalField = "dailyQuestionsTarget"
	FieldWeeklyReviews  GoalField = "weeklyReviewTarget"
	FieldWeeklyEssays   GoalField = "weeklyEssayTarget"
)

// Fields lists every goal field in display order.
var Fields = []GoalField{FieldDailyQuestions, FieldWeeklyReviews, FieldWeeklyEssays}

var aliases = map[string]GoalField{
	"dailyquestionstarget": FieldDailyQuestions,
	"daily-questions":      FieldDailyQuestions,
	"daily":                FieldDailyQuestions,
	"weeklyreviewtarget":   FieldWeeklyReviews,
	"weekly-reviews":       FieldWeeklyReviews,
	"reviews":              FieldWeeklyReviews,
	"weeklyessaytarget":    FieldWeeklyEssays,
	"weekly-essays":        FieldWeeklyEssays,
	"essays":               FieldWeeklyEssays,
}

// ParseGoalField resolves a field name or one of its CLI aliases.
func ParseGoalField(s string) (GoalField, error) {
	if f, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return "", ErrUnknownGoalField
}

// Range is an inclusive integer bound.
type Range struct {
	Min int
	Max int
}

var clampTable = map[GoalField]Range{
	FieldDailyQuestions: {Min: 1, Max: 200},
	FieldWeeklyReviews:  {Min: 1, Max: 100},
	FieldWeeklyEssays:   {Min: 1, Max: 14},
}

// ClampRange returns the valid range for a field.
func ClampRange(field GoalField) (Range, bool) {
	r, ok := clampTable[field]
	return r, ok
}

// Clamp rounds raw and bounds it to the range. Non-finite input maps to Min.
func (r Range) Clamp(raw float64) int {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return r.Min
	}
	rounded := math.Round(raw)
	if rounded < float64(r.Min) {
		return r.Min
	}
	if rounded > float64(r.Max) {
		return r.Max
	}
	return int(rounded)
}

// StudyGoals are the daily and weekly targets.
type StudyGoals struct {
	DailyQuestionsTarget int `json:"dailyQuestionsTarget"`
	WeeklyReviewTarget   int `json:"weeklyReviewTarget"`
	WeeklyEssayTarget    int `json:"weeklyEssayTarget"`
}

// DefaultGoals returns the targets used before the user sets any.
func DefaultGoals() StudyGoals {
	return StudyGoals{
		DailyQuestionsTarget: 30,
		WeeklyReviewTarget:   10,
		WeeklyEssayTarget:    1,
	}
}

// Get returns the value of a field.
func (g StudyGoals) Get(field GoalField) (int, error) {
	switch field {
	case FieldDailyQuestions:
		return g.DailyQuestionsTarget, nil
	case FieldWeeklyReviews:
		return g.WeeklyReviewTarget, nil
	case FieldWeeklyEssays:
		return g.WeeklyEssayTarget, nil
	}
	return 0, ErrUnknownGoalField
}

// With returns a copy of g with field set to value.
func (g StudyGoals) With(field GoalField, value int) (StudyGoals, error) {
	switch field {
	case FieldDailyQuestions:
		g.DailyQuestionsTarget = value
	case FieldWeeklyReviews:
		g.WeeklyReviewTarget = value
	case FieldWeeklyEssays:
		g.WeeklyEssayTarget = value
	default:
		return g, ErrUnknownGoalField
	}
	return g, nil
}

// Normalize clamps every field, replacing stored values that fell out of
// range (hand-edited settings, older versions).
func (g StudyGoals) Normalize() StudyGoals {
	for _, f := range Fields {
		v, _ := g.Get(f)
		r := clampTable[f]
		g, _ = g.With(f, r.Clamp(float64(v)))
	}
	return g
}

// Repository persists the goals object as a whole.
type Repository interface {
	// Load returns the stored goals. Implementations return DefaultGoals when
	// nothing has been stored yet.
	Load(ctx context.Context) (StudyGoals, error)
	Save(ctx context.Context, goals StudyGoals) error
}

// Manager validates goal updates and forwards the full object to the store.
type Manager struct {
	repo Repository
}

// NewManager creates a manager backed by repo.
func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo}
}

// UpdateGoal clamps raw into field's range and persists the updated goals.
// Out-of-range input is clamped, never rejected.
func (m *Manager) UpdateGoal(ctx context.Context, current StudyGoals, field GoalField, raw float64) (StudyGoals, error) {
	r, ok := ClampRange(field)
	if !ok {
		return current, ErrUnknownGoalField
	}
	updated, err := current.With(field, r.Clamp(raw))
	if err != nil {
		return current, err
	}
	if err := m.repo.Save(ctx, updated); err != nil {
		return current, err
	}
	return updated, nil
}
