package goal

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/adapter/cli"
	"github.com/felixgeelhaar/studyflow/internal/goals/application/commands"
	"github.com/felixgeelhaar/studyflow/internal/goals/application/queries"
	"github.com/felixgeelhaar/studyflow/internal/goals/domain"
)

// Cmd is the goal command group
var Cmd = &cobra.Command{
	Use:   "goal",
	Short: "Show and adjust study targets",
	Long: `Study targets: daily questions, weekly reviews and weekly essays.
Values outside a target's range are clamped.`,
	Aliases: []string{"goals"},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Goals == nil {
			return cli.ErrNoApp()
		}

		result, err := app.Goals.GetGoals(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load goals: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, result.Goals)
		}
		printViews(cmd.OutOrStdout(), result.Views)
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set one target",
	Long: `Set one study target. Fields: daily (dailyQuestionsTarget),
reviews (weeklyReviewTarget), essays (weeklyEssayTarget).

Examples:
  studyflow goal set daily 40
  studyflow goal set weekly-reviews 12`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Goals == nil {
			return cli.ErrNoApp()
		}

		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid value %q", args[1])
		}

		goals, err := app.Goals.UpdateGoal(cmd.Context(), commands.UpdateGoalCommand{
			Field: args[0],
			Value: value,
		})
		if err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, goals)
		}

		field, _ := domain.ParseGoalField(args[0])
		current, _ := goals.Get(field)
		fmt.Fprintf(cmd.OutOrStdout(), "%s set to %d\n", field, current)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Goals == nil {
			return cli.ErrNoApp()
		}

		goals, err := app.Goals.ResetGoals(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to reset goals: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, goals)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Goals reset to defaults")
		return nil
	},
}

func printViews(out io.Writer, views []queries.GoalView) {
	for _, v := range views {
		fmt.Fprintf(out, "  %-22s %4d  (%d-%d)\n", v.Field, v.Value, v.Min, v.Max)
	}
}

func init() {
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(resetCmd)
}
