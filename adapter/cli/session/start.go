package session

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/adapter/cli"
	"github.com/felixgeelhaar/studyflow/internal/sessions/application/commands"
)

var startType string

var startCmd = &cobra.Command{
	Use:   "start <subject>",
	Short: "Start the stopwatch for a subject",
	Long: `Start timing a study session. Only one session runs at a time.

Types: study (default), review, questions, essay.

Examples:
  studyflow session start Mathematics
  studyflow session start "Organic Chemistry" --type review`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Sessions == nil {
			return cli.ErrNoApp()
		}

		active, err := app.Sessions.StartSession(cmd.Context(), commands.StartSessionCommand{
			Subject: args[0],
			Type:    startType,
		})
		if err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, active)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Started %s session for %s at %s\n",
			active.Type, active.SubjectID, active.StartedAt.Format("15:04"))
		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the stopwatch and record the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Sessions == nil {
			return cli.ErrNoApp()
		}

		session, err := app.Sessions.StopSession(cmd.Context(), commands.StopSessionCommand{})
		if err != nil {
			return fmt.Errorf("failed to stop session: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, session)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d min of %s for %s\n",
			session.DurationMinutes, session.Type, session.SubjectID)
		return nil
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard the running session without recording it",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Sessions == nil {
			return cli.ErrNoApp()
		}

		active, err := app.Sessions.CancelSession(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to cancel session: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cancelled %s session for %s\n", active.Type, active.SubjectID)
		return nil
	},
}

func init() {
	startCmd.Flags().StringVarP(&startType, "type", "t", "study", "session type")
}
