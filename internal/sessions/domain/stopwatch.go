package domain

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrStopwatchRunning is returned by Start while a session is active.
	ErrStopwatchRunning = errors.New("a study session is already running")
	// ErrStopwatchNotRunning is returned by Stop when nothing is running.
	ErrStopwatchNotRunning = errors.New("no study session is running")
)

// ActiveSession is the state of a running stopwatch.
type ActiveSession struct {
	SubjectID string      `json:"subjectId"`
	Type      SessionType `json:"type"`
	StartedAt time.Time   `json:"startedAt"`
}

// ActiveRepository persists the running stopwatch between processes.
type ActiveRepository interface {
	// LoadActive returns nil when no session is running.
	LoadActive(ctx context.Context) (*ActiveSession, error)
	// SaveActive stores the running session; nil clears it.
	SaveActive(ctx context.Context, active *ActiveSession) error
}

// Stopwatch times at most one session at a time.
type Stopwatch struct {
	mu        sync.Mutex
	active    *ActiveSession
	tickEvery time.Duration
}

// NewStopwatch creates an idle stopwatch, or a running one when active is set.
func NewStopwatch(active *ActiveSession) *Stopwatch {
	return &Stopwatch{active: active, tickEvery: time.Second}
}

// Start begins timing. It is rejected while another session runs.
func (s *Stopwatch) Start(subjectID string, typ SessionType, at time.Time) (ActiveSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return *s.active, ErrStopwatchRunning
	}
	if typ == "" {
		typ = SessionStudy
	}
	s.active = &ActiveSession{SubjectID: subjectID, Type: typ, StartedAt: at}
	return *s.active, nil
}

// Stop ends the running session and returns it as a draft. The draft may be
// zero minutes long.
func (s *Stopwatch) Stop(at time.Time) (SessionDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return SessionDraft{}, ErrStopwatchNotRunning
	}
	draft := SessionDraft{
		SubjectID: s.active.SubjectID,
		Start:     s.active.StartedAt,
		End:       at,
		Type:      s.active.Type,
	}
	s.active = nil
	return draft, nil
}

// Running reports whether a session is active.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != nil
}

// Active returns the running session.
func (s *Stopwatch) Active() (ActiveSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return ActiveSession{}, false
	}
	return *s.active, true
}

// Elapsed returns the running time at now, or zero when idle.
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return 0
	}
	if d := now.Sub(s.active.StartedAt); d > 0 {
		return d
	}
	return 0
}

// Run calls tick with the elapsed time once per second until ctx is done or
// the stopwatch is stopped.
func (s *Stopwatch) Run(ctx context.Context, clock func() time.Time, tick func(elapsed time.Duration)) error {
	if clock == nil {
		clock = time.Now
	}
	ticker := time.NewTicker(s.tickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !s.Running() {
				return nil
			}
			tick(s.Elapsed(clock()))
		}
	}
}
