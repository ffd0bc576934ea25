package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/internal/analytics/application/queries"
	"github.com/felixgeelhaar/studyflow/internal/analytics/report"
)

var dashboardSection string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show streaks, trends, reviews and the completion forecast",
	Long: `Display the study dashboard.

Sections: summary (default), heatmap, reviews, streak, forecast.

Examples:
  studyflow dashboard
  studyflow dashboard --section heatmap
  studyflow dashboard --json`,
	Aliases: []string{"dash", "today"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.Analytics == nil {
			return errNoApp
		}

		view, err := app.Analytics.Dashboard(cmd.Context(), queries.GetDashboardQuery{})
		if err != nil {
			return fmt.Errorf("failed to build dashboard: %w", err)
		}
		if JSONOutput() {
			return printJSON(cmd, view)
		}
		return printDashboardSection(cmd, view, dashboardSection)
	},
}

func printDashboardSection(cmd *cobra.Command, view *queries.DashboardView, section string) error {
	out := cmd.OutOrStdout()
	switch strings.ToLower(section) {
	case "", "summary":
		fmt.Fprint(out, report.RenderText(view))
	case "heatmap":
		fmt.Fprintf(out, "Last 28 days (%d questions)\n", sumHeatmap(view))
		fmt.Fprint(out, renderHeatmap(view.Heatmap))
	case "reviews":
		fmt.Fprintf(out, "Reviews due: %d\n", view.DueReviews)
		for _, item := range view.Due {
			fmt.Fprintf(out, "  %s  %s / %s\n", item.Date, item.SubjectName, item.TopicName)
		}
	case "streak":
		fmt.Fprintf(out, "Current streak: %d\nLongest streak: %d\n", view.Streak.Current, view.Streak.Longest)
	case "forecast":
		fmt.Fprintf(out, "Completion forecast: %s\n", view.Forecast.Label())
	default:
		return fmt.Errorf("unknown section %q", section)
	}
	return nil
}

func sumHeatmap(view *queries.DashboardView) int {
	total := 0
	for _, d := range view.Heatmap {
		total += d.Count
	}
	return total
}

func init() {
	dashboardCmd.Flags().StringVarP(&dashboardSection, "section", "s", "", "section to show")
	rootCmd.AddCommand(dashboardCmd)
}
