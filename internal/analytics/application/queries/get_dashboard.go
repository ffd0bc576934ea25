// Package queries assembles the dashboard view from the catalog, the session
// ledger and the goals.
package queries

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/felixgeelhaar/studyflow/internal/analytics/domain"
	goals "github.com/felixgeelhaar/studyflow/internal/goals/domain"
	sessions "github.com/felixgeelhaar/studyflow/internal/sessions/domain"
	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// UpcomingDeadlineLimit caps the deadlines listed on the dashboard.
const UpcomingDeadlineLimit = 5

// DeadlineView is an unstudied topic with a deadline.
type DeadlineView struct {
	SubjectName string               `json:"subjectName"`
	TopicName   string               `json:"topicName"`
	Deadline    string               `json:"deadline"`
	Status      study.DeadlineStatus `json:"status"`
}

// DashboardView is the complete read-side projection. It is built fresh for
// every query and never written back.
type DashboardView struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Today       string    `json:"today"`

	Evolution         []domain.ActivityDay `json:"evolution"`
	EvolutionTotal    int                  `json:"evolutionTotal"`
	EvolutionCorrect  int                  `json:"evolutionCorrect"`
	EvolutionAccuracy float64              `json:"evolutionAccuracy"`
	PreviousTotal     int                  `json:"previousTotal"`
	Trend             domain.Trend         `json:"trend"`

	Heatmap []domain.HeatmapDay   `json:"heatmap"`
	Streak  domain.StreakInfo     `json:"streak"`
	Weeks   domain.WeekComparison `json:"weeks"`

	ReviewCalendar []domain.WeeklyReviewDay `json:"reviewCalendar"`
	Due            []domain.ReviewItem      `json:"due"`
	DueReviews     int                      `json:"dueReviews"`

	Forecast domain.CompletionForecast `json:"forecast"`
	Overall  study.OverallStats        `json:"overall"`
	Subjects []study.SubjectStats      `json:"subjects"`

	QuestionsToday    int `json:"questionsToday"`
	QuestionsThisWeek int `json:"questionsThisWeek"`
	MinutesToday      int `json:"minutesToday"`
	MinutesThisWeek   int `json:"minutesThisWeek"`

	Goals        goals.StudyGoals     `json:"goals"`
	GoalProgress []goals.GoalProgress `json:"goalProgress"`

	Deadlines []DeadlineView `json:"deadlines"`
}

// GetDashboardQuery builds the dashboard as of Now.
type GetDashboardQuery struct {
	// Now defaults to the current time.
	Now time.Time
}

// GetDashboardHandler handles dashboard queries.
type GetDashboardHandler struct {
	catalogs study.CatalogRepository
	sessions sessions.Repository
	goals    goals.Repository
	collator domain.Collator
	metrics  observability.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewGetDashboardHandler creates a new dashboard handler. A nil collator
// orders review topics by byte value.
func NewGetDashboardHandler(
	catalogs study.CatalogRepository,
	sessionRepo sessions.Repository,
	goalRepo goals.Repository,
	collator domain.Collator,
	metrics observability.Metrics,
	logger *slog.Logger,
) *GetDashboardHandler {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GetDashboardHandler{
		catalogs: catalogs,
		sessions: sessionRepo,
		goals:    goalRepo,
		collator: collator,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Handle loads every source once and derives the view. Only a catalog load
// failure is returned; goals and sessions degrade to their defaults.
func (h *GetDashboardHandler) Handle(ctx context.Context, q GetDashboardQuery) (*DashboardView, error) {
	return observability.TimeOperationResult(ctx, h.logger, h.metrics, "dashboard", func() (*DashboardView, error) {
		return h.load(ctx, q)
	})
}

func (h *GetDashboardHandler) load(ctx context.Context, q GetDashboardQuery) (*DashboardView, error) {
	now := q.Now
	if now.IsZero() {
		now = h.now()
	}

	catalog, err := h.catalogs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	g, err := h.goals.Load(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to load goals, using defaults", "error", err)
		g = goals.DefaultGoals()
	}
	sessionLedger := sessions.NewLedger(ctx, h.sessions, h.logger)

	return Build(catalog, g, sessionLedger, h.collator, now), nil
}

// Build derives the dashboard from already loaded sources. The activity
// ledger is built exactly once.
func Build(catalog *study.Catalog, g goals.StudyGoals, sessionLedger *sessions.Ledger, coll domain.Collator, now time.Time) *DashboardView {
	subjects := catalog.Subjects
	ledger := domain.BuildLedger(subjects, now)
	today := study.FormatDate(now)
	week := domain.CurrentWeek(now)

	evolution := domain.EvolutionWindow(ledger, now)
	evoTotal := domain.SumMade(evolution)
	evoCorrect := domain.SumCorrect(evolution)
	previous := domain.PreviousWindowTotal(ledger, now)

	overall := study.ComputeStats(subjects)
	due := domain.DueReviews(subjects, now)
	questionsToday := ledger.Day(today).QuestionsMade

	view := &DashboardView{
		GeneratedAt: now,
		Today:       today,

		Evolution:         evolution,
		EvolutionTotal:    evoTotal,
		EvolutionCorrect:  evoCorrect,
		EvolutionAccuracy: domain.Accuracy(evoCorrect, evoTotal),
		PreviousTotal:     previous,
		Trend:             domain.ComputeTrend(evoTotal, previous),

		Heatmap: domain.HeatmapWindow(ledger, now),
		Streak:  domain.ComputeStreak(ledger, now),
		Weeks:   domain.CompareWeeks(ledger, now),

		ReviewCalendar: domain.WeeklyReviewCalendar(subjects, now, coll),
		Due:            due,
		DueReviews:     len(due),

		Forecast: domain.ForecastCompletion(overall, ledger, now),
		Overall:  overall,
		Subjects: study.ComputeSubjectStats(subjects),

		QuestionsToday:    questionsToday,
		QuestionsThisWeek: domain.SumMade(domain.WeekWindow(ledger, week)),

		Goals: g,
		GoalProgress: goals.Progress(g,
			questionsToday,
			domain.CountReviewsInWeek(subjects, week),
			domain.CountEssaysInWeek(catalog.Essays, week),
		),

		Deadlines: upcomingDeadlines(subjects, now),
	}
	if sessionLedger != nil {
		view.MinutesToday = sessionLedger.MinutesToday(now)
		view.MinutesThisWeek = sessionLedger.MinutesThisWeek(now)
	}
	return view
}

// upcomingDeadlines lists unstudied topics with a readable deadline, most
// urgent first.
func upcomingDeadlines(subjects []study.Subject, now time.Time) []DeadlineView {
	var out []DeadlineView
	study.EachTopic(subjects, func(ref study.TopicRef) {
		t := ref.Topic
		if t.Studied {
			return
		}
		status := study.ClassifyDeadline(t.Deadline, now)
		if status.Urgency == study.DeadlineNone {
			return
		}
		out = append(out, DeadlineView{
			SubjectName: ref.Subject.Name,
			TopicName:   t.Name,
			Deadline:    t.Deadline,
			Status:      status,
		})
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Status.DaysLeft != out[j].Status.DaysLeft {
			return out[i].Status.DaysLeft < out[j].Status.DaysLeft
		}
		return out[i].TopicName < out[j].TopicName
	})
	if len(out) > UpcomingDeadlineLimit {
		out = out[:UpcomingDeadlineLimit]
	}
	return out
}
