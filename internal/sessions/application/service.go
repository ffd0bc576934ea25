// Package application contains the application layer for timed study
// sessions.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/studyflow/internal/sessions/application/commands"
	"github.com/felixgeelhaar/studyflow/internal/sessions/application/queries"
	"github.com/felixgeelhaar/studyflow/internal/sessions/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/eventbus"
	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// Service provides a facade over the session handlers.
type Service struct {
	store commands.SessionStore

	startSessionHandler  *commands.StartSessionHandler
	stopSessionHandler   *commands.StopSessionHandler
	cancelSessionHandler *commands.CancelSessionHandler
	recordSessionHandler *commands.RecordSessionHandler

	getStatusHandler    *queries.GetStatusHandler
	listSessionsHandler *queries.ListSessionsHandler
}

// NewService creates a new sessions service. catalogs may be nil, in which
// case subjects are identified by their slug.
func NewService(
	store commands.SessionStore,
	catalogs study.CatalogRepository,
	events *eventbus.Emitter,
	metrics observability.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		store: store,

		startSessionHandler:  commands.NewStartSessionHandler(store, catalogs),
		stopSessionHandler:   commands.NewStopSessionHandler(store, events, metrics, logger),
		cancelSessionHandler: commands.NewCancelSessionHandler(store),
		recordSessionHandler: commands.NewRecordSessionHandler(store, catalogs, events, metrics, logger),

		getStatusHandler:    queries.NewGetStatusHandler(store, logger),
		listSessionsHandler: queries.NewListSessionsHandler(store, logger),
	}
}

// StartSession starts the stopwatch.
func (s *Service) StartSession(ctx context.Context, cmd commands.StartSessionCommand) (domain.ActiveSession, error) {
	return s.startSessionHandler.Handle(ctx, cmd)
}

// StopSession stops the stopwatch and records the session.
func (s *Service) StopSession(ctx context.Context, cmd commands.StopSessionCommand) (domain.StudySession, error) {
	return s.stopSessionHandler.Handle(ctx, cmd)
}

// CancelSession discards the running stopwatch.
func (s *Service) CancelSession(ctx context.Context) (domain.ActiveSession, error) {
	return s.cancelSessionHandler.Handle(ctx)
}

// RecordSession logs an untimed session.
func (s *Service) RecordSession(ctx context.Context, cmd commands.RecordSessionCommand) (domain.StudySession, error) {
	return s.recordSessionHandler.Handle(ctx, cmd)
}

// Status reports the stopwatch state.
func (s *Service) Status(ctx context.Context, q queries.GetStatusQuery) (*queries.StatusResult, error) {
	return s.getStatusHandler.Handle(ctx, q)
}

// ListSessions lists retained sessions.
func (s *Service) ListSessions(ctx context.Context, q queries.ListSessionsQuery) (*queries.ListSessionsResult, error) {
	return s.listSessionsHandler.Handle(ctx, q)
}

// Watch ticks with the running session's elapsed time once per second until
// ctx is cancelled. It returns domain.ErrStopwatchNotRunning when idle.
func (s *Service) Watch(ctx context.Context, tick func(elapsed time.Duration)) error {
	active, err := s.store.LoadActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to load running session: %w", err)
	}
	if active == nil {
		return domain.ErrStopwatchNotRunning
	}
	return domain.NewStopwatch(active).Run(ctx, time.Now, tick)
}
