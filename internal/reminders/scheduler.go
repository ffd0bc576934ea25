package reminders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// ErrInvalidTime is returned for a reminder time that is not HH:MM.
var ErrInvalidTime = errors.New("reminder time must be HH:MM")

// Scheduler runs the reminder job once a day at a fixed local time.
type Scheduler struct {
	scheduler *gocron.Scheduler
	job       *Job
	at        string
	timeout   time.Duration
	logger    *slog.Logger
}

// NewScheduler creates a scheduler firing at the HH:MM time at, in loc.
func NewScheduler(job *Job, at string, loc *time.Location, logger *slog.Logger) (*Scheduler, error) {
	if _, err := time.Parse("15:04", at); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTime, at)
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		job:       job,
		at:        at,
		timeout:   time.Minute,
		logger:    logger,
	}, nil
}

// Start schedules the daily run and returns without blocking.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Day().At(s.at).Do(s.run); err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}
	s.scheduler.StartAsync()
	s.logger.Info("reminder scheduled", "at", s.at)
	return nil
}

// NextRun returns the next scheduled fire time.
func (s *Scheduler) NextRun() time.Time {
	_, next := s.scheduler.NextRun()
	return next
}

// Stop cancels future runs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.job.Run(ctx); err != nil {
		s.logger.Error("reminder failed", "error", err)
	}
}
