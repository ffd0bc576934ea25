package session

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/adapter/cli"
	"github.com/felixgeelhaar/studyflow/internal/sessions/application/queries"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running session and today's study time",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Sessions == nil {
			return cli.ErrNoApp()
		}

		status, err := app.Sessions.Status(cmd.Context(), queries.GetStatusQuery{})
		if err != nil {
			return fmt.Errorf("failed to load status: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, status)
		}

		out := cmd.OutOrStdout()
		if status.Running {
			fmt.Fprintf(out, "Running: %s (%s) for %s\n",
				status.Active.SubjectID, status.Active.Type, formatElapsed(status.Elapsed))
		} else {
			fmt.Fprintln(out, "No session running")
		}
		fmt.Fprintf(out, "Today: %d min, this week: %d min\n", status.MinutesToday, status.MinutesThisWeek)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show a live timer for the running session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Sessions == nil {
			return cli.ErrNoApp()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		err := app.Sessions.Watch(ctx, func(elapsed time.Duration) {
			fmt.Fprintf(out, "\r%s", formatElapsed(elapsed))
		})
		fmt.Fprintln(out)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
