package cli

import (
	analyticsApp "github.com/felixgeelhaar/studyflow/internal/analytics/application"
	goalsApp "github.com/felixgeelhaar/studyflow/internal/goals/application"
	"github.com/felixgeelhaar/studyflow/internal/reminders"
	sessionsApp "github.com/felixgeelhaar/studyflow/internal/sessions/application"
	studyApp "github.com/felixgeelhaar/studyflow/internal/study/application"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// App holds the CLI application dependencies.
type App struct {
	Study     *studyApp.Service
	Goals     *goalsApp.Service
	Sessions  *sessionsApp.Service
	Analytics *analyticsApp.Service

	Health *observability.HealthRegistry

	// ReminderJob builds the reminder job on demand; notifier setup can fail
	// when no channel is configured.
	ReminderJob func() (*reminders.Job, error)

	Profile string
}

// NewApp creates a new CLI application.
func NewApp(
	study *studyApp.Service,
	goals *goalsApp.Service,
	sessions *sessionsApp.Service,
	analytics *analyticsApp.Service,
) *App {
	return &App{
		Study:     study,
		Goals:     goals,
		Sessions:  sessions,
		Analytics: analytics,
	}
}

// SetHealth sets the health registry used by doctor.
func (a *App) SetHealth(h *observability.HealthRegistry) {
	a.Health = h
}

// SetReminderJob sets the reminder job builder.
func (a *App) SetReminderJob(build func() (*reminders.Job, error)) {
	a.ReminderJob = build
}

var app *App

// SetApp sets the global app instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global app instance.
func GetApp() *App {
	return app
}
