package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/studyflow/internal/analytics/application/queries"
	sessionQueries "github.com/felixgeelhaar/studyflow/internal/sessions/application/queries"
	studyQueries "github.com/felixgeelhaar/studyflow/internal/study/application/queries"
)

// RegisterResources registers MCP resources that expose study data.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	app := deps.App
	if app == nil {
		return fmt.Errorf("app is required")
	}

	jsonResource(srv, "studyflow://dashboard", "Dashboard", "The full study dashboard",
		func(ctx context.Context) (any, error) {
			if app.Analytics == nil {
				return nil, errNotReady
			}
			return app.Analytics.Dashboard(ctx, queries.GetDashboardQuery{})
		})

	jsonResource(srv, "studyflow://topics", "Topics", "Every topic with its progress",
		func(ctx context.Context) (any, error) {
			if app.Study == nil {
				return nil, errNotReady
			}
			return app.Study.ListTopics(ctx, studyQueries.ListTopicsQuery{})
		})

	jsonResource(srv, "studyflow://sessions", "Sessions", "Study sessions from the last 90 days",
		func(ctx context.Context) (any, error) {
			if app.Sessions == nil {
				return nil, errNotReady
			}
			return app.Sessions.ListSessions(ctx, sessionQueries.ListSessionsQuery{})
		})

	jsonResource(srv, "studyflow://goals", "Goals", "Current study targets",
		func(ctx context.Context) (any, error) {
			if app.Goals == nil {
				return nil, errNotReady
			}
			return app.Goals.GetGoals(ctx)
		})

	return nil
}

func jsonResource(srv *mcp.Server, uri, name, description string, load func(ctx context.Context) (any, error)) {
	srv.Resource(uri).
		Name(name).
		Description(description).
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			v, err := load(ctx)
			if err != nil {
				return nil, err
			}
			data, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return nil, err
			}
			return &mcp.ResourceContent{
				URI:      uri,
				MimeType: "application/json",
				Text:     string(data),
			}, nil
		})
}
