package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

func TestEmitter_Emit(t *testing.T) {
	ctx := context.Background()

	t.Run("wraps data in an envelope", func(t *testing.T) {
		pub := new(mockPublisher)
		var payload []byte
		pub.On("Publish", ctx, SessionRecorded, mock.Anything).
			Run(func(args mock.Arguments) { payload = args.Get(2).([]byte) }).
			Return(nil)

		e := NewEmitter(pub, "exam", nil)
		e.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
		e.Emit(ctx, SessionRecorded, map[string]int{"durationMinutes": 25})

		pub.AssertExpectations(t)
		var env struct {
			Type       string         `json:"type"`
			OccurredAt time.Time      `json:"occurred_at"`
			Profile    string         `json:"profile"`
			Data       map[string]int `json:"data"`
		}
		require.NoError(t, json.Unmarshal(payload, &env))
		assert.Equal(t, SessionRecorded, env.Type)
		assert.Equal(t, "exam", env.Profile)
		assert.Equal(t, 25, env.Data["durationMinutes"])
		assert.True(t, env.OccurredAt.Equal(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)))
	})

	t.Run("swallows publish errors", func(t *testing.T) {
		pub := new(mockPublisher)
		pub.On("Publish", ctx, GoalsUpdated, mock.Anything).Return(errors.New("broker down"))

		assert.NotPanics(t, func() {
			NewEmitter(pub, "exam", nil).Emit(ctx, GoalsUpdated, struct{}{})
		})
		pub.AssertExpectations(t)
	})

	t.Run("nil emitter and nil publisher are safe", func(t *testing.T) {
		var e *Emitter
		assert.NotPanics(t, func() { e.Emit(ctx, ReportExported, nil) })
		assert.NotPanics(t, func() { NewEmitter(nil, "exam", nil).Emit(ctx, ReportExported, nil) })
	})

	t.Run("counts published events", func(t *testing.T) {
		pub := new(mockPublisher)
		pub.On("Publish", ctx, SessionRecorded, mock.Anything).Return(nil).Once()
		pub.On("Publish", ctx, SessionRecorded, mock.Anything).Return(errors.New("broker down")).Once()
		metrics := observability.NewInMemoryMetrics()

		e := NewEmitter(pub, "exam", nil).WithMetrics(metrics)
		e.Emit(ctx, SessionRecorded, nil)
		e.Emit(ctx, SessionRecorded, nil)

		tag := observability.T("type", SessionRecorded)
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricEventsPublished, tag))
	})
}
