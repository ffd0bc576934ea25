package kvstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig configures the circuit breaker around a remote store.
type BreakerConfig struct {
	Enabled          bool
	FailureThreshold uint32
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
}

// DefaultBreakerConfig returns sensible defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
	}
}

// BreakerStore short-circuits calls to a failing backend so a down Redis or
// Postgres fails fast instead of stalling every command.
type BreakerStore struct {
	next    Store
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewBreakerStore wraps next with a circuit breaker named name.
func NewBreakerStore(next Store, name string, cfg BreakerConfig, logger *slog.Logger) *BreakerStore {
	if logger == nil {
		logger = slog.Default()
	}
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = DefaultBreakerConfig().FailureThreshold
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A missing key is an answer, not a backend failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrEmptyKey)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("store circuit breaker state changed",
				"store", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &BreakerStore{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

// State returns the breaker state.
func (s *BreakerStore) State() gobreaker.State {
	return s.breaker.State()
}

func (s *BreakerStore) execute(fn func() ([]byte, error)) ([]byte, error) {
	out, err := s.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return out, err
}

func (s *BreakerStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.execute(func() ([]byte, error) {
		return s.next.Get(ctx, key)
	})
}

func (s *BreakerStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.execute(func() ([]byte, error) {
		return nil, s.next.Set(ctx, key, value)
	})
	return err
}

func (s *BreakerStore) Delete(ctx context.Context, key string) error {
	_, err := s.execute(func() ([]byte, error) {
		return nil, s.next.Delete(ctx, key)
	})
	return err
}

func (s *BreakerStore) Close() error {
	return s.next.Close()
}
