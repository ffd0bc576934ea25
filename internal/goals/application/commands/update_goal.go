package commands

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/studyflow/internal/goals/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// UpdateGoalCommand sets one goal target. Value is clamped into the field's
// range.
type UpdateGoalCommand struct {
	Field string
	Value float64
}

// GoalsUpdatedEvent is the payload published after a change.
type GoalsUpdatedEvent struct {
	Field string            `json:"field"`
	Value int               `json:"value"`
	Goals domain.StudyGoals `json:"goals"`
}

// UpdateGoalHandler handles update goal commands.
type UpdateGoalHandler struct {
	repo    domain.Repository
	manager *domain.Manager
	events  *eventbus.Emitter
	metrics observability.Metrics
	logger  *slog.Logger
}

// NewUpdateGoalHandler creates a new update goal handler.
func NewUpdateGoalHandler(
	repo domain.Repository,
	events *eventbus.Emitter,
	metrics observability.Metrics,
	logger *slog.Logger,
) *UpdateGoalHandler {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateGoalHandler{
		repo:    repo,
		manager: domain.NewManager(repo),
		events:  events,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle applies the update and returns the stored goals.
func (h *UpdateGoalHandler) Handle(ctx context.Context, cmd UpdateGoalCommand) (domain.StudyGoals, error) {
	field, err := domain.ParseGoalField(cmd.Field)
	if err != nil {
		return domain.StudyGoals{}, err
	}

	current, err := h.repo.Load(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to load goals, using defaults", "error", err)
		current = domain.DefaultGoals()
	}

	updated, err := h.manager.UpdateGoal(ctx, current, field, cmd.Value)
	if err != nil {
		return current, err
	}

	value, _ := updated.Get(field)
	h.metrics.Counter(observability.MetricGoalsUpdated, 1, observability.T("field", string(field)))
	h.events.Emit(ctx, eventbus.GoalsUpdated, GoalsUpdatedEvent{
		Field: string(field),
		Value: value,
		Goals: updated,
	})
	return updated, nil
}
