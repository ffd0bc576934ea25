// Package application contains the analytics application layer: the
// dashboard projection and report export.
package application

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/studyflow/internal/analytics/application/commands"
	"github.com/felixgeelhaar/studyflow/internal/analytics/application/queries"
	"github.com/felixgeelhaar/studyflow/internal/analytics/domain"
	goals "github.com/felixgeelhaar/studyflow/internal/goals/domain"
	sessions "github.com/felixgeelhaar/studyflow/internal/sessions/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/eventbus"
	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// Config holds the analytics service settings.
type Config struct {
	// ReportDir is where reports are written by default.
	ReportDir string
	// Locale is the BCP 47 tag used to order topic names.
	Locale string
}

// Service provides a facade over the analytics handlers.
type Service struct {
	getDashboardHandler *queries.GetDashboardHandler
	exportReportHandler *commands.ExportReportHandler
}

// NewService creates a new analytics service.
func NewService(
	cfg Config,
	catalogs study.CatalogRepository,
	sessionRepo sessions.Repository,
	goalRepo goals.Repository,
	events *eventbus.Emitter,
	metrics observability.Metrics,
	logger *slog.Logger,
) *Service {
	locale := cfg.Locale
	if locale == "" {
		locale = "en"
	}
	dashboard := queries.NewGetDashboardHandler(
		catalogs, sessionRepo, goalRepo, domain.NewTopicCollator(locale), metrics, logger,
	)
	return &Service{
		getDashboardHandler: dashboard,
		exportReportHandler: commands.NewExportReportHandler(dashboard, cfg.ReportDir, events, metrics, logger),
	}
}

// Dashboard builds the dashboard view.
func (s *Service) Dashboard(ctx context.Context, q queries.GetDashboardQuery) (*queries.DashboardView, error) {
	return s.getDashboardHandler.Handle(ctx, q)
}

// ExportReport writes the dashboard to a report file.
func (s *Service) ExportReport(ctx context.Context, cmd commands.ExportReportCommand) (*commands.ExportReportResult, error) {
	return s.exportReportHandler.Handle(ctx, cmd)
}
