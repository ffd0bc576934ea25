package queries

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/studyflow/internal/goals/domain"
)

// GoalView is one target with its allowed range.
type GoalView struct {
	Field domain.GoalField `json:"field"`
	Value int              `json:"value"`
	Min   int              `json:"min"`
	Max   int              `json:"max"`
}

// GetGoalsResult lists every target in a stable order.
type GetGoalsResult struct {
	Goals domain.StudyGoals `json:"goals"`
	Views []GoalView        `json:"views"`
}

// GetGoalsHandler handles goal queries.
type GetGoalsHandler struct {
	repo   domain.Repository
	logger *slog.Logger
}

// NewGetGoalsHandler creates a new get goals handler.
func NewGetGoalsHandler(repo domain.Repository, logger *slog.Logger) *GetGoalsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetGoalsHandler{repo: repo, logger: logger}
}

// Handle returns the stored goals, falling back to the defaults when they
// cannot be read.
func (h *GetGoalsHandler) Handle(ctx context.Context) (*GetGoalsResult, error) {
	goals, err := h.repo.Load(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to load goals, using defaults", "error", err)
		goals = domain.DefaultGoals()
	}

	views := make([]GoalView, 0, len(domain.Fields))
	for _, f := range domain.Fields {
		v, _ := goals.Get(f)
		r, _ := domain.ClampRange(f)
		views = append(views, GoalView{Field: f, Value: v, Min: r.Min, Max: r.Max})
	}
	return &GetGoalsResult{Goals: goals, Views: views}, nil
}
