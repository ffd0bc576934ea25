// Package application contains the application layer for study goals.
package application

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/studyflow/internal/goals/application/commands"
	"github.com/felixgeelhaar/studyflow/internal/goals/application/queries"
	"github.com/felixgeelhaar/studyflow/internal/goals/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// Service provides a facade over the goal handlers.
type Service struct {
	updateGoalHandler *commands.UpdateGoalHandler
	resetGoalsHandler *commands.ResetGoalsHandler
	getGoalsHandler   *queries.GetGoalsHandler
}

// NewService creates a new goals service.
func NewService(repo domain.Repository, events *eventbus.Emitter, metrics observability.Metrics, logger *slog.Logger) *Service {
	return &Service{
		updateGoalHandler: commands.NewUpdateGoalHandler(repo, events, metrics, logger),
		resetGoalsHandler: commands.NewResetGoalsHandler(repo),
		getGoalsHandler:   queries.NewGetGoalsHandler(repo, logger),
	}
}

// UpdateGoal sets one target.
func (s *Service) UpdateGoal(ctx context.Context, cmd commands.UpdateGoalCommand) (domain.StudyGoals, error) {
	return s.updateGoalHandler.Handle(ctx, cmd)
}

// ResetGoals restores the defaults.
func (s *Service) ResetGoals(ctx context.Context) (domain.StudyGoals, error) {
	return s.resetGoalsHandler.Handle(ctx)
}

// GetGoals returns the current targets.
func (s *Service) GetGoals(ctx context.Context) (*queries.GetGoalsResult, error) {
	return s.getGoalsHandler.Handle(ctx)
}
