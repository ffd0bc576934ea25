package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
)

func TestComputeStreak(t *testing.T) {
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

	t.Run("counts back from today", func(t *testing.T) {
		l := LedgerFromDays(
			ActivityDay{Date: "2024-03-08", QuestionsMade: 1},
			ActivityDay{Date: "2024-03-09", QuestionsMade: 1},
			ActivityDay{Date: "2024-03-10", QuestionsMade: 1},
		)

		streak := ComputeStreak(l, now)

		assert.Equal(t, 3, streak.Current)
		assert.Equal(t, 3, streak.Longest)
	})

	t.Run("inactive today breaks current streak", func(t *testing.T) {
		l := LedgerFromDays(
			ActivityDay{Date: "2024-03-08", QuestionsMade: 1},
			ActivityDay{Date: "2024-03-09", QuestionsMade: 1},
		)

		streak := ComputeStreak(l, now)

		assert.Zero(t, streak.Current)
		assert.Equal(t, 2, streak.Longest)
	})

	t.Run("zero total days are not active", func(t *testing.T) {
		l := LedgerFromDays(
			ActivityDay{Date: "2024-03-09", QuestionsMade: 1},
			ActivityDay{Date: "2024-03-10", QuestionsMade: 0},
		)

		assert.Zero(t, ComputeStreak(l, now).Current)
	})

	t.Run("longest run spans month boundary", func(t *testing.T) {
		l := LedgerFromDays(
			ActivityDay{Date: "2024-01-30", QuestionsMade: 1},
			ActivityDay{Date: "2024-01-31", QuestionsMade: 1},
			ActivityDay{Date: "2024-02-01", QuestionsMade: 1},
			ActivityDay{Date: "2024-02-02", QuestionsMade: 1},
			ActivityDay{Date: "2024-02-04", QuestionsMade: 1},
			ActivityDay{Date: "2024-03-10", QuestionsMade: 1},
		)

		streak := ComputeStreak(l, now)

		assert.Equal(t, 1, streak.Current)
		assert.Equal(t, 4, streak.Longest)
	})

	t.Run("empty ledger", func(t *testing.T) {
		assert.Equal(t, StreakInfo{}, ComputeStreak(LedgerFromDays(), now))
	})
}

func TestComputeTrend(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		previous  int
		ratio     float64
		direction TrendDirection
	}{
		{"no activity", 0, 0, 0, TrendStable},
		{"activity after empty baseline", 5, 0, 1, TrendUp},
		{"halved", 10, 20, -0.5, TrendDown},
		{"doubled", 40, 20, 1, TrendUp},
		{"flat", 20, 20, 0, TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTrend(tt.current, tt.previous)
			assert.InDelta(t, tt.ratio, got.Ratio, 1e-9)
			assert.Equal(t, tt.direction, got.Direction)
			assert.Equal(t, tt.current, got.Current)
			assert.Equal(t, tt.previous, got.Previous)
		})
	}
}

func TestCompareWeeks(t *testing.T) {
	now := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)

	t.Run("deltas between weeks", func(t *testing.T) {
		l := LedgerFromDays(
			ActivityDay{Date: "2024-03-11", QuestionsMade: 10, QuestionsCorrect: 8},
			ActivityDay{Date: "2024-03-13", QuestionsMade: 10, QuestionsCorrect: 6},
			ActivityDay{Date: "2024-03-05", QuestionsMade: 10, QuestionsCorrect: 5},
			ActivityDay{Date: "2024-03-03", QuestionsMade: 99, QuestionsCorrect: 99},
		)

		cmp := CompareWeeks(l, now)

		assert.Equal(t, 20, cmp.ThisWeek.QuestionsMade)
		assert.Equal(t, 14, cmp.ThisWeek.QuestionsCorrect)
		assert.Equal(t, "2024-03-11", cmp.ThisWeek.Start)
		assert.Equal(t, 10, cmp.LastWeek.QuestionsMade)
		assert.Equal(t, "2024-03-04", cmp.LastWeek.Start)
		assert.Equal(t, 10, cmp.QuestionsDelta)
		assert.Equal(t, 20, cmp.AccuracyDelta)
	})

	t.Run("empty previous week has zero accuracy", func(t *testing.T) {
		l := LedgerFromDays(ActivityDay{Date: "2024-03-12", QuestionsMade: 3, QuestionsCorrect: 2})

		cmp := CompareWeeks(l, now)

		assert.Zero(t, cmp.LastWeek.Accuracy)
		assert.Equal(t, 67, cmp.AccuracyDelta)
		assert.Equal(t, 3, cmp.QuestionsDelta)
	})
}

func TestBucketHeatmap(t *testing.T) {
	t.Run("levels relative to peak", func(t *testing.T) {
		days := BucketHeatmap([]HeatmapDay{
			{Date: "a", Count: 0}, {Date: "b", Count: 1}, {Date: "c", Count: 2},
			{Date: "d", Count: 4}, {Date: "e", Count: 8},
		})

		levels := make([]int, len(days))
		for i, d := range days {
			levels[i] = d.Level
		}
		assert.Equal(t, []int{0, 1, 1, 2, 4}, levels)
	})

	t.Run("all empty", func(t *testing.T) {
		days := BucketHeatmap([]HeatmapDay{{Date: "a"}, {Date: "b"}})
		assert.Zero(t, days[0].Level)
		assert.Zero(t, days[1].Level)
	})
}

func TestForecastCompletion(t *testing.T) {
	now := time.Date(2024, 3, 11, 15, 0, 0, 0, time.UTC)
	history := LedgerFromDays(
		ActivityDay{Date: "2024-03-01", QuestionsMade: 3},
		ActivityDay{Date: "2024-03-05", QuestionsMade: 2},
	)

	t.Run("complete regardless of history", func(t *testing.T) {
		got := ForecastCompletion(study.OverallStats{TotalTopics: 4, StudiedTopics: 4}, LedgerFromDays(), now)
		assert.Equal(t, ForecastComplete, got.Status)
		assert.Equal(t, "complete", got.Label())
	})

	t.Run("single ledger date has no estimate", func(t *testing.T) {
		l := LedgerFromDays(ActivityDay{Date: "2024-03-01", QuestionsMade: 3})
		got := ForecastCompletion(study.OverallStats{TotalTopics: 4, StudiedTopics: 1}, l, now)
		assert.Equal(t, ForecastNoEstimate, got.Status)
		assert.Equal(t, 3, got.Remaining)
	})

	t.Run("zero pace has no estimate", func(t *testing.T) {
		got := ForecastCompletion(study.OverallStats{TotalTopics: 4}, history, now)
		assert.Equal(t, ForecastNoEstimate, got.Status)
		assert.Equal(t, "no estimate", got.Label())
	})

	t.Run("linear projection", func(t *testing.T) {
		got := ForecastCompletion(study.OverallStats{TotalTopics: 10, StudiedTopics: 5}, history, now)

		require.Equal(t, ForecastEstimated, got.Status)
		assert.InDelta(t, 0.5, got.TopicsPerDay, 1e-9)
		assert.Equal(t, 10, got.DaysRemaining)
		assert.Equal(t, "2024-03-21", got.EstimatedDate)
	})

	t.Run("earliest date today counts as one day", func(t *testing.T) {
		l := LedgerFromDays(
			ActivityDay{Date: "2024-03-11", QuestionsMade: 1},
			ActivityDay{Date: "2024-03-12", QuestionsMade: 1},
		)
		got := ForecastCompletion(study.OverallStats{TotalTopics: 5, StudiedTopics: 2}, l, now)

		require.Equal(t, ForecastEstimated, got.Status)
		assert.Equal(t, 2, got.DaysRemaining)
	})
}
