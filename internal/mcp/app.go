package mcp

import (
	"github.com/felixgeelhaar/studyflow/adapter/cli"
	"github.com/felixgeelhaar/studyflow/internal/app"
)

// NewCLIApp creates a CLI application instance backed by the provided container.
func NewCLIApp(container *app.Container) *cli.App {
	cliApp := cli.NewApp(
		container.Study,
		container.Goals,
		container.Sessions,
		container.Analytics,
	)
	cliApp.Profile = container.Config.Profile

	if container.Health != nil {
		cliApp.SetHealth(container.Health)
	}
	cliApp.SetReminderJob(container.ReminderJob)

	return cliApp
}
