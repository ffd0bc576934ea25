package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/studyflow/internal/sessions/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/eventbus"
	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// ErrInvalidDuration is returned for a manual session without minutes.
var ErrInvalidDuration = errors.New("duration must be positive")

// SessionRecordedEvent is the payload published for every new session.
type SessionRecordedEvent struct {
	Session domain.StudySession `json:"session"`
}

// RecordSessionCommand logs a session that was not timed with the stopwatch.
type RecordSessionCommand struct {
	Subject string
	Type    string
	// Start defaults to Minutes before now.
	Start   time.Time
	Minutes int
}

// RecordSessionHandler handles manual session entries.
type RecordSessionHandler struct {
	catalogs study.CatalogRepository
	recorder *recorder
	now      func() time.Time
}

// NewRecordSessionHandler creates a new record session handler.
func NewRecordSessionHandler(
	store SessionStore,
	catalogs study.CatalogRepository,
	events *eventbus.Emitter,
	metrics observability.Metrics,
	logger *slog.Logger,
) *RecordSessionHandler {
	return &RecordSessionHandler{
		catalogs: catalogs,
		recorder: newRecorder(store, events, metrics, logger),
		now:      time.Now,
	}
}

// Handle appends the session to the ledger.
func (h *RecordSessionHandler) Handle(ctx context.Context, cmd RecordSessionCommand) (domain.StudySession, error) {
	if cmd.Minutes <= 0 {
		return domain.StudySession{}, ErrInvalidDuration
	}
	typ, err := domain.ParseSessionType(cmd.Type)
	if err != nil {
		return domain.StudySession{}, err
	}
	subjectID, err := resolveSubject(ctx, h.catalogs, cmd.Subject)
	if err != nil {
		return domain.StudySession{}, err
	}

	length := time.Duration(cmd.Minutes) * time.Minute
	start := cmd.Start
	if start.IsZero() {
		start = h.now().Add(-length)
	}
	return h.recorder.record(ctx, domain.SessionDraft{
		SubjectID: subjectID,
		Start:     start,
		End:       start.Add(length),
		Type:      typ,
	}), nil
}

// recorder appends drafts to the ledger and reports them.
type recorder struct {
	repo    domain.Repository
	events  *eventbus.Emitter
	metrics observability.Metrics
	logger  *slog.Logger
}

func newRecorder(repo domain.Repository, events *eventbus.Emitter, metrics observability.Metrics, logger *slog.Logger) *recorder {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &recorder{repo: repo, events: events, metrics: metrics, logger: logger}
}

func (r *recorder) record(ctx context.Context, draft domain.SessionDraft) domain.StudySession {
	session := domain.NewLedger(ctx, r.repo, r.logger).RecordSession(ctx, draft)

	tags := []observability.Tag{observability.T("type", string(session.Type))}
	r.metrics.Counter(observability.MetricSessionsRecorded, 1, tags...)
	r.metrics.Histogram(observability.MetricSessionMinutes, float64(session.DurationMinutes), tags...)
	r.events.Emit(ctx, eventbus.SessionRecorded, SessionRecordedEvent{Session: session})

	r.logger.InfoContext(ctx, "session recorded",
		"session_id", session.ID,
		"subject_id", session.SubjectID,
		"minutes", session.DurationMinutes,
	)
	return session
}
