package reminders

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/felixgeelhaar/studyflow/internal/analytics/application/queries"
	goals "github.com/felixgeelhaar/studyflow/internal/goals/domain"
	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// DashboardBuilder produces the view a reminder is built from.
type DashboardBuilder interface {
	Dashboard(ctx context.Context, q queries.GetDashboardQuery) (*queries.DashboardView, error)
}

// maxListed caps the topics named in one reminder.
const maxListed = 5

// BuildMessage renders the reminder for view. ok is false when there is
// nothing to remind about: no due reviews, no urgent deadlines and today's
// question goal already met.
func BuildMessage(view *queries.DashboardView) (msg Message, ok bool) {
	var lines []string

	if view.DueReviews > 0 {
		lines = append(lines, fmt.Sprintf("%d review(s) due", view.DueReviews))
		for i, t := range view.Due {
			if i == maxListed {
				lines = append(lines, fmt.Sprintf("  ... and %d more", len(view.Due)-maxListed))
				break
			}
			lines = append(lines, fmt.Sprintf("  - %s (%s)", t.TopicName, t.SubjectName))
		}
	}

	for _, p := range view.GoalProgress {
		if p.Field == goals.FieldDailyQuestions && !p.Achieved() {
			lines = append(lines, fmt.Sprintf("%d of %d questions answered today", p.Current, p.Target))
		}
	}

	for _, d := range view.Deadlines {
		if d.Status.Urgency == study.DeadlineOverdue || d.Status.Urgency == study.DeadlineUrgent {
			lines = append(lines, fmt.Sprintf("Deadline: %s (%s) %s", d.TopicName, d.SubjectName, d.Status.Label))
		}
	}

	if len(lines) == 0 {
		return Message{}, false
	}
	if view.Streak.Current > 0 {
		lines = append(lines, fmt.Sprintf("Keep your %d-day streak going.", view.Streak.Current))
	}
	return Message{
		Title: "StudyFlow: " + view.Today,
		Body:  strings.Join(lines, "\n"),
	}, true
}

// Job builds and sends one reminder.
type Job struct {
	dashboard DashboardBuilder
	notifier  Notifier
	metrics   observability.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// NewJob creates a reminder job.
func NewJob(dashboard DashboardBuilder, notifier Notifier, metrics observability.Metrics, logger *slog.Logger) *Job {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Job{dashboard: dashboard, notifier: notifier, metrics: metrics, logger: logger, now: time.Now}
}

// Run sends the reminder for now. It reports whether a reminder was sent.
func (j *Job) Run(ctx context.Context) (bool, error) {
	ctx = observability.WithOperation(observability.WithCorrelationID(ctx, ""), "reminder")

	view, err := j.dashboard.Dashboard(ctx, queries.GetDashboardQuery{Now: j.now()})
	if err != nil {
		return false, fmt.Errorf("failed to build dashboard: %w", err)
	}

	msg, ok := BuildMessage(view)
	if !ok {
		j.logger.InfoContext(ctx, "nothing to remind")
		return false, nil
	}
	if err := j.notifier.Notify(ctx, msg); err != nil {
		return false, err
	}

	j.metrics.Counter(observability.MetricRemindersSent, 1)
	j.logger.InfoContext(ctx, "reminder sent", "due_reviews", view.DueReviews)
	return true, nil
}
