package session

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/adapter/cli"
	"github.com/felixgeelhaar/studyflow/internal/sessions/application/commands"
	"github.com/felixgeelhaar/studyflow/internal/sessions/application/queries"
)

var (
	logType    string
	logStart   string
	listLimit  int
	listFilter string
)

var logCmd = &cobra.Command{
	Use:   "log <subject> <minutes>",
	Short: "Record a session that was not timed",
	Long: `Record a finished session by its length.

Examples:
  studyflow session log Mathematics 45
  studyflow session log Biology 30 --type review --start "2024-03-10 18:00"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Sessions == nil {
			return cli.ErrNoApp()
		}

		minutes, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid minutes %q", args[1])
		}

		var start time.Time
		if logStart != "" {
			parsed, err := time.ParseInLocation("2006-01-02 15:04", logStart, time.Local)
			if err != nil {
				return fmt.Errorf("invalid start, use \"YYYY-MM-DD HH:MM\": %w", err)
			}
			start = parsed
		}

		session, err := app.Sessions.RecordSession(cmd.Context(), commands.RecordSessionCommand{
			Subject: args[0],
			Type:    logType,
			Start:   start,
			Minutes: minutes,
		})
		if err != nil {
			return fmt.Errorf("failed to record session: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, session)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d min of %s for %s\n",
			session.DurationMinutes, session.Type, session.SubjectID)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Sessions == nil {
			return cli.ErrNoApp()
		}

		result, err := app.Sessions.ListSessions(cmd.Context(), queries.ListSessionsQuery{
			Subject: listFilter,
			Limit:   listLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, result)
		}

		out := cmd.OutOrStdout()
		if len(result.Sessions) == 0 {
			fmt.Fprintln(out, "No sessions in the last 90 days")
			return nil
		}
		for _, s := range result.Sessions {
			fmt.Fprintf(out, "%s  %4d min  %-9s %s\n",
				s.StartTime.Local().Format("2006-01-02 15:04"), s.DurationMinutes, s.Type, s.SubjectID)
		}
		fmt.Fprintf(out, "Total: %d min\n", result.TotalMinutes)
		return nil
	},
}

func init() {
	logCmd.Flags().StringVarP(&logType, "type", "t", "study", "session type")
	logCmd.Flags().StringVar(&logStart, "start", "", "start time (YYYY-MM-DD HH:MM), defaults to minutes before now")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "maximum sessions to show")
	listCmd.Flags().StringVar(&listFilter, "subject", "", "only this subject")
}
