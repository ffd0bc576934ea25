package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Short:   "Check the store and event broker",
	Aliases: []string{"health"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.Health == nil {
			return errNoApp
		}

		report := app.Health.Check(cmd.Context())
		if JSONOutput() {
			return printJSON(cmd, report)
		}

		out := cmd.OutOrStdout()
		for _, c := range report.Checks {
			fmt.Fprintf(out, "  %-8s %-10s %s (%s)\n", c.Component, c.Status, c.Message, c.Duration.Round(time.Millisecond))
		}
		fmt.Fprintf(out, "overall: %s\n", report.Status)
		if report.Status == observability.HealthStatusUnhealthy {
			return fmt.Errorf("unhealthy")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
