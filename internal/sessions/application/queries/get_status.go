// Package queries contains the read-side session handlers.
package queries

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/studyflow/internal/sessions/domain"
)

// SessionStore reads the ledger and the running stopwatch.
type SessionStore interface {
	domain.Repository
	domain.ActiveRepository
}

// GetStatusQuery asks for the stopwatch state at Now.
type GetStatusQuery struct {
	// Now defaults to the current time.
	Now time.Time
}

// StatusResult describes the stopwatch and the time studied so far.
type StatusResult struct {
	Running         bool                  `json:"running"`
	Active          *domain.ActiveSession `json:"active,omitempty"`
	Elapsed         time.Duration         `json:"elapsed"`
	MinutesToday    int                   `json:"minutesToday"`
	MinutesThisWeek int                   `json:"minutesThisWeek"`
}

// GetStatusHandler handles status queries.
type GetStatusHandler struct {
	store  SessionStore
	logger *slog.Logger
	now    func() time.Time
}

// NewGetStatusHandler creates a new get status handler.
func NewGetStatusHandler(store SessionStore, logger *slog.Logger) *GetStatusHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetStatusHandler{store: store, logger: logger, now: time.Now}
}

// Handle reports the running session, if any, and today's and this week's
// recorded minutes.
func (h *GetStatusHandler) Handle(ctx context.Context, q GetStatusQuery) (*StatusResult, error) {
	now := q.Now
	if now.IsZero() {
		now = h.now()
	}

	active, err := h.store.LoadActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load running session: %w", err)
	}
	sw := domain.NewStopwatch(active)
	ledger := domain.NewLedger(ctx, h.store, h.logger)

	result := &StatusResult{
		Running:         sw.Running(),
		Elapsed:         sw.Elapsed(now),
		MinutesToday:    ledger.MinutesToday(now),
		MinutesThisWeek: ledger.MinutesThisWeek(now),
	}
	if a, ok := sw.Active(); ok {
		result.Active = &a
	}
	return result, nil
}
