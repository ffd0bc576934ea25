package commands

import (
	"context"

	"github.com/felixgeelhaar/studyflow/internal/goals/domain"
)

// ResetGoalsHandler restores the default targets.
type ResetGoalsHandler struct {
	repo domain.Repository
}

// NewResetGoalsHandler creates a new reset goals handler.
func NewResetGoalsHandler(repo domain.Repository) *ResetGoalsHandler {
	return &ResetGoalsHandler{repo: repo}
}

// Handle stores and returns the defaults.
func (h *ResetGoalsHandler) Handle(ctx context.Context) (domain.StudyGoals, error) {
	goals := domain.DefaultGoals()
	if err := h.repo.Save(ctx, goals); err != nil {
		return domain.StudyGoals{}, err
	}
	return goals, nil
}
