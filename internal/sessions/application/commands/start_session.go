package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/studyflow/internal/sessions/domain"
	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
)

// StartSessionCommand starts the stopwatch for a subject.
type StartSessionCommand struct {
	Subject string
	Type    string
	// At defaults to now.
	At time.Time
}

// StartSessionHandler handles start session commands.
type StartSessionHandler struct {
	store    SessionStore
	catalogs study.CatalogRepository
	now      func() time.Time
}

// NewStartSessionHandler creates a new start session handler.
func NewStartSessionHandler(store SessionStore, catalogs study.CatalogRepository) *StartSessionHandler {
	return &StartSessionHandler{store: store, catalogs: catalogs, now: time.Now}
}

// Handle starts timing. It fails with domain.ErrStopwatchRunning while a
// session started by any process is still running.
func (h *StartSessionHandler) Handle(ctx context.Context, cmd StartSessionCommand) (domain.ActiveSession, error) {
	typ, err := domain.ParseSessionType(cmd.Type)
	if err != nil {
		return domain.ActiveSession{}, err
	}
	subjectID, err := resolveSubject(ctx, h.catalogs, cmd.Subject)
	if err != nil {
		return domain.ActiveSession{}, err
	}

	active, err := h.store.LoadActive(ctx)
	if err != nil {
		return domain.ActiveSession{}, fmt.Errorf("failed to load running session: %w", err)
	}

	at := cmd.At
	if at.IsZero() {
		at = h.now()
	}
	started, err := domain.NewStopwatch(active).Start(subjectID, typ, at)
	if err != nil {
		return started, err
	}

	if err := h.store.SaveActive(ctx, &started); err != nil {
		return domain.ActiveSession{}, fmt.Errorf("failed to save running session: %w", err)
	}
	return started, nil
}
