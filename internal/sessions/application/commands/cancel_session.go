package commands

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/studyflow/internal/sessions/domain"
)

// CancelSessionHandler discards the running stopwatch without recording it.
type CancelSessionHandler struct {
	store SessionStore
}

// NewCancelSessionHandler creates a new cancel session handler.
func NewCancelSessionHandler(store SessionStore) *CancelSessionHandler {
	return &CancelSessionHandler{store: store}
}

// Handle returns the discarded session.
func (h *CancelSessionHandler) Handle(ctx context.Context) (domain.ActiveSession, error) {
	active, err := h.store.LoadActive(ctx)
	if err != nil {
		return domain.ActiveSession{}, fmt.Errorf("failed to load running session: %w", err)
	}
	if active == nil {
		return domain.ActiveSession{}, domain.ErrStopwatchNotRunning
	}
	if err := h.store.SaveActive(ctx, nil); err != nil {
		return domain.ActiveSession{}, fmt.Errorf("failed to clear running session: %w", err)
	}
	return *active, nil
}
