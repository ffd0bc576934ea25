// Package commands contains the analytics write handlers.
package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/studyflow/internal/analytics/application/queries"
	"github.com/felixgeelhaar/studyflow/internal/analytics/report"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// ExportReportCommand writes the dashboard to a file.
type ExportReportCommand struct {
	// Format is txt or xlsx; empty means txt.
	Format string
	// Dir overrides the configured report directory.
	Dir string
	Now time.Time
}

// ExportReportResult names the written file.
type ExportReportResult struct {
	Path   string        `json:"path"`
	Format report.Format `json:"format"`
}

// ReportExportedEvent is the payload published after an export.
type ReportExportedEvent struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Date   string `json:"date"`
}

// DashboardBuilder produces the view to export.
type DashboardBuilder interface {
	Handle(ctx context.Context, q queries.GetDashboardQuery) (*queries.DashboardView, error)
}

// ExportReportHandler handles export report commands.
type ExportReportHandler struct {
	dashboard DashboardBuilder
	dir       string
	events    *eventbus.Emitter
	metrics   observability.Metrics
	logger    *slog.Logger
}

// NewExportReportHandler creates a new export report handler writing into dir
// by default.
func NewExportReportHandler(
	dashboard DashboardBuilder,
	dir string,
	events *eventbus.Emitter,
	metrics observability.Metrics,
	logger *slog.Logger,
) *ExportReportHandler {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportReportHandler{dashboard: dashboard, dir: dir, events: events, metrics: metrics, logger: logger}
}

// Handle builds the dashboard and writes it in the requested format.
func (h *ExportReportHandler) Handle(ctx context.Context, cmd ExportReportCommand) (*ExportReportResult, error) {
	format, err := report.ParseFormat(cmd.Format)
	if err != nil {
		return nil, err
	}

	view, err := h.dashboard.Handle(ctx, queries.GetDashboardQuery{Now: cmd.Now})
	if err != nil {
		return nil, err
	}

	dir := cmd.Dir
	if dir == "" {
		dir = h.dir
	}
	var path string
	err = observability.TimeOperation(ctx, h.logger, h.metrics, "report.export", func() error {
		var werr error
		path, werr = report.Export(dir, view, format)
		return werr
	})
	if err != nil {
		return nil, err
	}

	h.metrics.Counter(observability.MetricReportsExported, 1, observability.T("format", string(format)))
	h.events.Emit(ctx, eventbus.ReportExported, ReportExportedEvent{
		Path:   path,
		Format: string(format),
		Date:   view.Today,
	})
	h.logger.InfoContext(ctx, "report exported", "path", path, "format", string(format))

	return &ExportReportResult{Path: path, Format: format}, nil
}
