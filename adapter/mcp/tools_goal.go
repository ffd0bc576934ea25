package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/studyflow/internal/goals/application/commands"
	"github.com/felixgeelhaar/studyflow/internal/goals/application/queries"
	"github.com/felixgeelhaar/studyflow/internal/goals/domain"
)

type goalSetInput struct {
	Field string  `json:"field" jsonschema:"required"`
	Value float64 `json:"value" jsonschema:"required"`
}

func registerGoalTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("goal.get").
		Description("Get study targets with their allowed ranges").
		Handler(func(ctx context.Context, input struct{}) (*queries.GetGoalsResult, error) {
			deps.called(ctx, "goal.get")
			if app.Goals == nil {
				return nil, errNotReady
			}
			return app.Goals.GetGoals(ctx)
		})

	srv.Tool("goal.set").
		Description("Set one target (dailyQuestionsTarget, weeklyReviewTarget, weeklyEssayTarget); out-of-range values are clamped").
		Handler(func(ctx context.Context, input goalSetInput) (*domain.StudyGoals, error) {
			deps.called(ctx, "goal.set")
			if app.Goals == nil {
				return nil, errNotReady
			}
			goals, err := app.Goals.UpdateGoal(ctx, commands.UpdateGoalCommand{
				Field: input.Field,
				Value: input.Value,
			})
			if err != nil {
				return nil, err
			}
			return &goals, nil
		})

	return nil
}
