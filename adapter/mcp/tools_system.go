package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

func registerSystemTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("system.health").
		Description("Check the store and the event broker").
		Handler(func(ctx context.Context, input struct{}) (*observability.HealthReport, error) {
			deps.called(ctx, "system.health")
			if app.Health == nil {
				return &observability.HealthReport{Status: observability.HealthStatusHealthy}, nil
			}
			report := app.Health.Check(ctx)
			return &report, nil
		})

	return nil
}
