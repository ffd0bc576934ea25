package catalog

import (
	"github.com/spf13/cobra"
)

// Cmd is the catalog command group
var Cmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage subjects, topics and logged activity",
	Long: `Import topics from a spreadsheet, log answered questions and reviews,
record essays and list progress per topic.`,
	Aliases: []string{"topics"},
}

func init() {
	Cmd.AddCommand(importCmd)
	Cmd.AddCommand(logCmd)
	Cmd.AddCommand(reviewCmd)
	Cmd.AddCommand(essayCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(topicCmd)
}
