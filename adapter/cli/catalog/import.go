package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/adapter/cli"
	"github.com/felixgeelhaar/studyflow/internal/study/application/commands"
)

var importSheet string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge topics from an .xlsx or .csv file",
	Long: `Merge a topic spreadsheet into the catalog. The sheet needs "subject"
and "topic" columns; group, studied, date studied, questions, correct,
deadline and next review are optional.

Logged questions and review history are never overwritten.

Examples:
  studyflow catalog import syllabus.xlsx
  studyflow catalog import syllabus.xlsx --sheet "Semester 2"
  studyflow catalog import topics.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Study == nil {
			return cli.ErrNoApp()
		}

		result, err := app.Study.ImportTopics(cmd.Context(), commands.ImportTopicsCommand{
			Path:  args[0],
			Sheet: importSheet,
		})
		if err != nil {
			return fmt.Errorf("failed to import topics: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, result)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported %d new and %d updated topics\n", result.Created, result.Updated)
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  skipped: %s\n", e)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importSheet, "sheet", "", "worksheet name (defaults to the first sheet)")
}
