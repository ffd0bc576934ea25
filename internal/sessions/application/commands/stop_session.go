package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/studyflow/internal/sessions/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// StopSessionCommand stops the running stopwatch.
type StopSessionCommand struct {
	// At defaults to now.
	At time.Time
}

// StopSessionHandler handles stop session commands.
type StopSessionHandler struct {
	store    SessionStore
	recorder *recorder
	now      func() time.Time
}

// NewStopSessionHandler creates a new stop session handler.
func NewStopSessionHandler(
	store SessionStore,
	events *eventbus.Emitter,
	metrics observability.Metrics,
	logger *slog.Logger,
) *StopSessionHandler {
	return &StopSessionHandler{
		store:    store,
		recorder: newRecorder(store, events, metrics, logger),
		now:      time.Now,
	}
}

// Handle records the running session in the ledger and clears the stopwatch.
func (h *StopSessionHandler) Handle(ctx context.Context, cmd StopSessionCommand) (domain.StudySession, error) {
	active, err := h.store.LoadActive(ctx)
	if err != nil {
		return domain.StudySession{}, fmt.Errorf("failed to load running session: %w", err)
	}

	at := cmd.At
	if at.IsZero() {
		at = h.now()
	}
	draft, err := domain.NewStopwatch(active).Stop(at)
	if err != nil {
		return domain.StudySession{}, err
	}

	session := h.recorder.record(ctx, draft)

	if err := h.store.SaveActive(ctx, nil); err != nil {
		h.recorder.logger.WarnContext(ctx, "failed to clear running session", "error", err)
	}
	return session, nil
}
