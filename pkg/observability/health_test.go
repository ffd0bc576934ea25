package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthRegistry_Check(t *testing.T) {
	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("connection refused") }

	t.Run("empty registry is healthy", func(t *testing.T) {
		report := NewHealthRegistry().Check(context.Background())
		assert.Equal(t, HealthStatusHealthy, report.Status)
		assert.Empty(t, report.Checks)
	})

	t.Run("degraded optional component", func(t *testing.T) {
		r := NewHealthRegistry()
		r.Register("store", PingChecker(ok, HealthStatusUnhealthy))
		r.Register("events", PingChecker(fail, HealthStatusDegraded))

		report := r.Check(context.Background())

		assert.Equal(t, HealthStatusDegraded, report.Status)
		require.Len(t, report.Checks, 2)
		assert.Equal(t, "events", report.Checks[0].Component)
		assert.Equal(t, "connection refused", report.Checks[0].Message)
		assert.Equal(t, "store", report.Checks[1].Component)
		assert.Equal(t, HealthStatusHealthy, report.Checks[1].Status)
	})

	t.Run("unhealthy wins", func(t *testing.T) {
		r := NewHealthRegistry()
		r.Register("events", PingChecker(fail, HealthStatusDegraded))
		r.Register("store", PingChecker(fail, HealthStatusUnhealthy))

		assert.Equal(t, HealthStatusUnhealthy, r.Check(context.Background()).Status)
	})
}
