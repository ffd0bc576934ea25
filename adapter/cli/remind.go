package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/internal/analytics/application/queries"
	"github.com/felixgeelhaar/studyflow/internal/reminders"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Preview or send the daily study reminder",
}

var remindPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the reminder without sending it",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.Analytics == nil {
			return errNoApp
		}

		view, err := app.Analytics.Dashboard(cmd.Context(), queries.GetDashboardQuery{})
		if err != nil {
			return err
		}
		msg, ok := reminders.BuildMessage(view)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to remind about today.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", msg.Title, msg.Body)
		return nil
	},
}

var remindSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send the reminder through the configured channels now",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.ReminderJob == nil {
			return errNoApp
		}

		job, err := app.ReminderJob()
		if err != nil {
			return err
		}
		sent, err := job.Run(cmd.Context())
		if err != nil {
			return err
		}
		if sent {
			fmt.Fprintln(cmd.OutOrStdout(), "Reminder sent.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to remind about today.")
		}
		return nil
	},
}

func init() {
	remindCmd.AddCommand(remindPreviewCmd)
	remindCmd.AddCommand(remindSendCmd)
	rootCmd.AddCommand(remindCmd)
}
