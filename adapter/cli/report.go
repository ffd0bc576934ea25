package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/internal/analytics/application/commands"
)

var (
	reportFormat string
	reportDir    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export study reports",
}

var reportExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the dashboard as a text or xlsx report",
	Long: `Write today's dashboard to studyflow-report-YYYY-MM-DD.<format>.

Examples:
  studyflow report export
  studyflow report export --format xlsx --dir ~/Desktop`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.Analytics == nil {
			return errNoApp
		}

		result, err := app.Analytics.ExportReport(cmd.Context(), commands.ExportReportCommand{
			Format: reportFormat,
			Dir:    reportDir,
		})
		if err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
		if JSONOutput() {
			return printJSON(cmd, result)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", result.Path)
		return nil
	},
}

func init() {
	reportExportCmd.Flags().StringVarP(&reportFormat, "format", "f", "txt", "report format (txt, xlsx)")
	reportExportCmd.Flags().StringVarP(&reportDir, "dir", "d", "", "output directory (defaults to REPORT_DIR)")
	reportCmd.AddCommand(reportExportCmd)
	rootCmd.AddCommand(reportCmd)
}
