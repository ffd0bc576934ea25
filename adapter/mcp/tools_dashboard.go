package mcp

import (
	"context"
	"strings"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/studyflow/internal/analytics/application/commands"
	"github.com/felixgeelhaar/studyflow/internal/analytics/application/queries"
	"github.com/felixgeelhaar/studyflow/internal/analytics/domain"
	"github.com/felixgeelhaar/studyflow/internal/analytics/report"
	"github.com/felixgeelhaar/studyflow/internal/reminders"
)

type textResult struct {
	Text string `json:"text"`
}

type reportInput struct {
	Format string `json:"format,omitempty"`
}

// StudySummary is the compact dashboard an assistant reads first.
type StudySummary struct {
	Today             string                    `json:"today"`
	Streak            domain.StreakInfo         `json:"streak"`
	QuestionsToday    int                       `json:"questions_today"`
	QuestionsThisWeek int                       `json:"questions_this_week"`
	MinutesToday      int                       `json:"minutes_today"`
	Trend             domain.Trend              `json:"trend"`
	DueReviews        int                       `json:"due_reviews"`
	Forecast          domain.CompletionForecast `json:"forecast"`
	Reminder          string                    `json:"reminder,omitempty"`
}

func registerDashboardTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("study.dashboard").
		Description("Get the full study dashboard: evolution, heatmap, streaks, week comparison, review calendar, forecast and goal progress").
		Handler(func(ctx context.Context, input struct{}) (*queries.DashboardView, error) {
			deps.called(ctx, "study.dashboard")
			if app.Analytics == nil {
				return nil, errNotReady
			}
			return app.Analytics.Dashboard(ctx, queries.GetDashboardQuery{})
		})

	srv.Tool("study.summary").
		Description("Get a short study summary with streak, today's activity, due reviews and the reminder text").
		Handler(func(ctx context.Context, input struct{}) (*StudySummary, error) {
			deps.called(ctx, "study.summary")
			if app.Analytics == nil {
				return nil, errNotReady
			}
			view, err := app.Analytics.Dashboard(ctx, queries.GetDashboardQuery{})
			if err != nil {
				return nil, err
			}
			summary := &StudySummary{
				Today:             view.Today,
				Streak:            view.Streak,
				QuestionsToday:    view.QuestionsToday,
				QuestionsThisWeek: view.QuestionsThisWeek,
				MinutesToday:      view.MinutesToday,
				Trend:             view.Trend,
				DueReviews:        view.DueReviews,
				Forecast:          view.Forecast,
			}
			if msg, ok := reminders.BuildMessage(view); ok {
				summary.Reminder = msg.Body
			}
			return summary, nil
		})

	srv.Tool("study.report_text").
		Description("Render the dashboard as a plain text report").
		Handler(func(ctx context.Context, input struct{}) (*textResult, error) {
			deps.called(ctx, "study.report_text")
			if app.Analytics == nil {
				return nil, errNotReady
			}
			view, err := app.Analytics.Dashboard(ctx, queries.GetDashboardQuery{})
			if err != nil {
				return nil, err
			}
			return &textResult{Text: report.RenderText(view)}, nil
		})

	srv.Tool("report.export").
		Description("Write the report to the configured report directory (txt or xlsx)").
		Handler(func(ctx context.Context, input reportInput) (*commands.ExportReportResult, error) {
			deps.called(ctx, "report.export")
			if app.Analytics == nil {
				return nil, errNotReady
			}
			return app.Analytics.ExportReport(ctx, commands.ExportReportCommand{
				Format: strings.TrimSpace(input.Format),
			})
		})

	return nil
}
