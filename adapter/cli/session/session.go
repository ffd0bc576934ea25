package session

import (
	"github.com/spf13/cobra"
)

// Cmd is the session command group
var Cmd = &cobra.Command{
	Use:   "session",
	Short: "Time study sessions",
	Long:  `Start and stop the study stopwatch, log past sessions and list recent ones.`,
}

func init() {
	Cmd.AddCommand(startCmd)
	Cmd.AddCommand(stopCmd)
	Cmd.AddCommand(cancelCmd)
	Cmd.AddCommand(statusCmd)
	Cmd.AddCommand(logCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(watchCmd)
}
