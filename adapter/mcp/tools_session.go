package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/studyflow/internal/sessions/application/commands"
	"github.com/felixgeelhaar/studyflow/internal/sessions/application/queries"
	"github.com/felixgeelhaar/studyflow/internal/sessions/domain"
)

type sessionStartInput struct {
	Subject string `json:"subject" jsonschema:"required"`
	Type    string `json:"type,omitempty"`
}

type sessionLogInput struct {
	Subject string `json:"subject" jsonschema:"required"`
	Minutes int    `json:"minutes" jsonschema:"required"`
	Type    string `json:"type,omitempty"`
	Start   string `json:"start,omitempty"`
}

type sessionListInput struct {
	Subject string `json:"subject,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

func registerSessionTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("session.start").
		Description("Start the study stopwatch for a subject (types: study, review, questions, essay)").
		Handler(func(ctx context.Context, input sessionStartInput) (*domain.ActiveSession, error) {
			deps.called(ctx, "session.start")
			if app.Sessions == nil {
				return nil, errNotReady
			}
			active, err := app.Sessions.StartSession(ctx, commands.StartSessionCommand{
				Subject: input.Subject,
				Type:    input.Type,
			})
			if err != nil {
				return nil, err
			}
			return &active, nil
		})

	srv.Tool("session.stop").
		Description("Stop the stopwatch and record the session").
		Handler(func(ctx context.Context, input struct{}) (*domain.StudySession, error) {
			deps.called(ctx, "session.stop")
			if app.Sessions == nil {
				return nil, errNotReady
			}
			session, err := app.Sessions.StopSession(ctx, commands.StopSessionCommand{})
			if err != nil {
				return nil, err
			}
			return &session, nil
		})

	srv.Tool("session.status").
		Description("Show the running session and study minutes today and this week").
		Handler(func(ctx context.Context, input struct{}) (*queries.StatusResult, error) {
			deps.called(ctx, "session.status")
			if app.Sessions == nil {
				return nil, errNotReady
			}
			return app.Sessions.Status(ctx, queries.GetStatusQuery{})
		})

	srv.Tool("session.log").
		Description("Record a finished session by its length in minutes").
		Handler(func(ctx context.Context, input sessionLogInput) (*domain.StudySession, error) {
			deps.called(ctx, "session.log")
			if app.Sessions == nil {
				return nil, errNotReady
			}
			start, err := parseOptionalDateTime(input.Start)
			if err != nil {
				return nil, err
			}
			session, err := app.Sessions.RecordSession(ctx, commands.RecordSessionCommand{
				Subject: input.Subject,
				Type:    input.Type,
				Start:   start,
				Minutes: input.Minutes,
			})
			if err != nil {
				return nil, err
			}
			return &session, nil
		})

	srv.Tool("session.list").
		Description("List sessions from the last 90 days, newest first").
		Handler(func(ctx context.Context, input sessionListInput) (*queries.ListSessionsResult, error) {
			deps.called(ctx, "session.list")
			if app.Sessions == nil {
				return nil, errNotReady
			}
			return app.Sessions.ListSessions(ctx, queries.ListSessionsQuery{
				Subject: input.Subject,
				Limit:   input.Limit,
			})
		})

	return nil
}
