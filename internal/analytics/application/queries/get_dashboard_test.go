package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/studyflow/internal/analytics/domain"
	goals "github.com/felixgeelhaar/studyflow/internal/goals/domain"
	goalpersistence "github.com/felixgeelhaar/studyflow/internal/goals/infrastructure/persistence"
	sessions "github.com/felixgeelhaar/studyflow/internal/sessions/domain"
	sessionpersistence "github.com/felixgeelhaar/studyflow/internal/sessions/infrastructure/persistence"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/kvstore"
	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
	studypersistence "github.com/felixgeelhaar/studyflow/internal/study/infrastructure/persistence"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// Wednesday of the week starting Monday 2024-01-01.
var now = time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)

func sampleCatalog() *study.Catalog {
	return &study.Catalog{
		Subjects: []study.Subject{{
			ID:   "math",
			Name: "Math",
			Groups: []study.TopicGroup{{
				ID:   "algebra",
				Name: "Algebra",
				Topics: []study.Topic{
					{
						ID:          "functions",
						Name:        "Functions",
						Studied:     true,
						DateStudied: "2024-01-01",
						ReviewHistory: []study.ReviewSnapshot{
							{Date: "2024-01-01", QuestionsTotal: 5, QuestionsCorrect: 3},
							{Date: "2024-01-03", QuestionsTotal: 8, QuestionsCorrect: 5},
						},
						FSRSNextReview: "2024-01-04",
					},
					{
						ID:   "matrices",
						Name: "Matrices",
						QuestionLogs: []study.QuestionLog{
							{Date: "2024-01-02", QuestionsMade: 10, QuestionsCorrect: 7},
						},
						FSRSNextReview: "2024-01-02",
						Deadline:       "2024-01-05",
					},
				},
			}},
		}},
		Essays: []study.Essay{{ID: "e1", Title: "Climate", Date: "2024-01-02"}},
	}
}

type failingGoals struct{}

func (failingGoals) Load(context.Context) (goals.StudyGoals, error) {
	return goals.StudyGoals{}, errors.New("corrupt")
}

func (failingGoals) Save(context.Context, goals.StudyGoals) error { return nil }

type failingCatalog struct{}

func (failingCatalog) Load(context.Context) (*study.Catalog, error) {
	return nil, errors.New("store unavailable")
}

func (failingCatalog) Save(context.Context, *study.Catalog) error { return nil }

func seed(t *testing.T) (kvstore.Store, *GetDashboardHandler, *observability.InMemoryMetrics) {
	t.Helper()
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	catalogs := studypersistence.NewKVCatalogRepository(store)
	require.NoError(t, catalogs.Save(ctx, sampleCatalog()))

	sessionRepo := sessionpersistence.NewKVSessionRepository(store)
	require.NoError(t, sessionRepo.Save(ctx, []sessions.StudySession{
		{ID: "s1", SubjectID: "math", StartTime: now.Add(-4 * time.Hour), EndTime: now.Add(-3*time.Hour - 30*time.Minute), DurationMinutes: 30},
		{ID: "s2", SubjectID: "math", StartTime: now.AddDate(0, 0, -1), EndTime: now.AddDate(0, 0, -1).Add(45 * time.Minute), DurationMinutes: 45},
	}))

	metrics := observability.NewInMemoryMetrics()
	h := NewGetDashboardHandler(
		catalogs,
		sessionRepo,
		goalpersistence.NewKVGoalsRepository(store),
		domain.NewTopicCollator("en"),
		metrics,
		observability.NopLogger(),
	)
	return store, h, metrics
}

func TestGetDashboardHandler_Handle(t *testing.T) {
	ctx := context.Background()
	_, h, metrics := seed(t)

	view, err := h.Handle(ctx, GetDashboardQuery{Now: now})
	require.NoError(t, err)

	t.Run("evolution and trend", func(t *testing.T) {
		require.Len(t, view.Evolution, domain.EvolutionDays)
		assert.Equal(t, "2024-01-03", view.Evolution[13].Date)
		assert.Equal(t, 3, view.Evolution[13].QuestionsMade)
		assert.Equal(t, 2, view.Evolution[13].QuestionsCorrect)
		assert.Equal(t, 18, view.EvolutionTotal)
		assert.Equal(t, 12, view.EvolutionCorrect)
		assert.Zero(t, view.PreviousTotal)
		assert.Equal(t, domain.TrendUp, view.Trend.Direction)
		assert.InDelta(t, 1.0, view.Trend.Ratio, 0.0001)
	})

	t.Run("heatmap and streak", func(t *testing.T) {
		require.Len(t, view.Heatmap, domain.HeatmapDays)
		assert.Equal(t, 4, view.Heatmap[26].Level)
		assert.Equal(t, domain.StreakInfo{Current: 3, Longest: 3}, view.Streak)
	})

	t.Run("week totals", func(t *testing.T) {
		assert.Equal(t, 3, view.QuestionsToday)
		assert.Equal(t, 18, view.QuestionsThisWeek)
		assert.Equal(t, 18, view.Weeks.QuestionsDelta)
		assert.Equal(t, 30, view.MinutesToday)
		assert.Equal(t, 75, view.MinutesThisWeek)
	})

	t.Run("reviews", func(t *testing.T) {
		require.Len(t, view.ReviewCalendar, 7)
		assert.Equal(t, "Matrices", view.ReviewCalendar[1].Topics[0].TopicName)
		assert.True(t, view.ReviewCalendar[2].IsToday)
		assert.Equal(t, "Functions", view.ReviewCalendar[3].Topics[0].TopicName)
		assert.Equal(t, 1, view.DueReviews)
	})

	t.Run("forecast and stats", func(t *testing.T) {
		assert.Equal(t, domain.ForecastEstimated, view.Forecast.Status)
		assert.Equal(t, "2024-01-05", view.Forecast.EstimatedDate)
		assert.Equal(t, 2, view.Overall.TotalTopics)
		require.Len(t, view.Subjects, 1)
	})

	t.Run("goals", func(t *testing.T) {
		assert.Equal(t, goals.DefaultGoals(), view.Goals)
		require.Len(t, view.GoalProgress, 3)
		assert.Equal(t, 3, view.GoalProgress[0].Current)
		assert.Equal(t, 2, view.GoalProgress[1].Current)
		assert.Equal(t, 1, view.GoalProgress[2].Current)
		assert.True(t, view.GoalProgress[2].Achieved())
	})

	t.Run("deadlines", func(t *testing.T) {
		require.Len(t, view.Deadlines, 1)
		assert.Equal(t, "Matrices", view.Deadlines[0].TopicName)
		assert.Equal(t, study.DeadlineUrgent, view.Deadlines[0].Status.Urgency)
	})

	t.Run("records timing", func(t *testing.T) {
		op := observability.T(observability.OperationKey, "dashboard")
		assert.Len(t, metrics.GetTimings(observability.MetricOperationDuration, op), 1)
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricOperationTotal, op))
	})
}

func TestGetDashboardHandler_Degrades(t *testing.T) {
	ctx := context.Background()

	t.Run("goal load failure uses defaults", func(t *testing.T) {
		store := kvstore.NewMemoryStore()
		catalogs := studypersistence.NewKVCatalogRepository(store)
		h := NewGetDashboardHandler(catalogs, sessionpersistence.NewKVSessionRepository(store),
			failingGoals{}, nil, nil, observability.NopLogger())

		view, err := h.Handle(ctx, GetDashboardQuery{Now: now})

		require.NoError(t, err)
		assert.Equal(t, goals.DefaultGoals(), view.Goals)
		assert.Len(t, view.Evolution, domain.EvolutionDays)
		assert.Equal(t, domain.ForecastComplete, view.Forecast.Status)
	})

	t.Run("catalog load failure is returned", func(t *testing.T) {
		store := kvstore.NewMemoryStore()
		metrics := observability.NewInMemoryMetrics()
		h := NewGetDashboardHandler(failingCatalog{}, sessionpersistence.NewKVSessionRepository(store),
			goalpersistence.NewKVGoalsRepository(store), nil, metrics, observability.NopLogger())

		_, err := h.Handle(ctx, GetDashboardQuery{Now: now})

		assert.Error(t, err)
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricOperationErrors,
			observability.T(observability.OperationKey, "dashboard")))
	})
}
