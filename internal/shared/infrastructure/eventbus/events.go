package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// Routing keys.
const (
	SessionRecorded = "study.session.recorded"
	GoalsUpdated    = "study.goals.updated"
	ReportExported  = "study.report.exported"
)

// Envelope wraps every published event.
type Envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Profile    string    `json:"profile"`
	Data       any       `json:"data"`
}

// Emitter encodes events for one profile and publishes them. Publish
// failures are logged and never returned: events are informational and must
// not fail the command that raised them.
type Emitter struct {
	publisher Publisher
	profile   string
	logger    *slog.Logger
	metrics   observability.Metrics
	now       func() time.Time
}

// NewEmitter creates an emitter. A nil publisher drops every event.
func NewEmitter(publisher Publisher, profile string, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = NewNoopPublisher(logger)
	}
	return &Emitter{
		publisher: publisher,
		profile:   profile,
		logger:    logger,
		metrics:   observability.NoopMetrics{},
		now:       time.Now,
	}
}

// WithMetrics counts published events on m.
func (e *Emitter) WithMetrics(m observability.Metrics) *Emitter {
	if m != nil {
		e.metrics = m
	}
	return e
}

// Emit publishes data under routingKey.
func (e *Emitter) Emit(ctx context.Context, routingKey string, data any) {
	if e == nil {
		return
	}
	payload, err := json.Marshal(Envelope{
		Type:       routingKey,
		OccurredAt: e.now().UTC(),
		Profile:    e.profile,
		Data:       data,
	})
	if err != nil {
		e.logger.Warn("failed to encode event", "routing_key", routingKey, "error", err)
		return
	}
	if err := e.publisher.Publish(ctx, routingKey, payload); err != nil {
		e.logger.Warn("failed to publish event", "routing_key", routingKey, "error", err)
		return
	}
	e.metrics.Counter(observability.MetricEventsPublished, 1, observability.T("type", routingKey))
}
