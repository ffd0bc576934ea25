package catalog

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/adapter/cli"
	"github.com/felixgeelhaar/studyflow/internal/study/application/commands"
	"github.com/felixgeelhaar/studyflow/internal/study/application/queries"
)

var (
	listSubject string

	topicStudied  bool
	topicPending  bool
	topicDeadline string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List topics with progress, deadlines and reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Study == nil {
			return cli.ErrNoApp()
		}

		result, err := app.Study.ListTopics(cmd.Context(), queries.ListTopicsQuery{Subject: listSubject})
		if err != nil {
			return fmt.Errorf("failed to list topics: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, result)
		}

		out := cmd.OutOrStdout()
		if len(result.Topics) == 0 {
			fmt.Fprintln(out, "No topics yet. Import some with 'studyflow catalog import'.")
			return nil
		}
		subject := ""
		for _, t := range result.Topics {
			if t.SubjectName != subject {
				subject = t.SubjectName
				fmt.Fprintf(out, "\n%s\n", subject)
			}
			mark := " "
			if t.Studied {
				mark = "x"
			}
			fmt.Fprintf(out, "  [%s] %-30s %4d q  %3d%%  %-14s %s\n",
				mark, t.TopicName, t.QuestionsTotal, int(math.Round(t.Accuracy*100)), t.Deadline.Label, t.Review.Label)
		}
		o := result.Overall
		fmt.Fprintf(out, "\n%d/%d topics studied\n", o.StudiedTopics, o.TotalTopics)
		return nil
	},
}

var topicCmd = &cobra.Command{
	Use:   "topic <subject> <topic>",
	Short: "Mark a topic studied or set its deadline",
	Long: `Update a topic's studied flag or deadline.

Examples:
  studyflow catalog topic Mathematics Functions --studied
  studyflow catalog topic Biology Cells --deadline 2024-05-01
  studyflow catalog topic Biology Cells --deadline ""`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Study == nil {
			return cli.ErrNoApp()
		}

		update := commands.UpdateTopicCommand{Subject: args[0], Topic: args[1]}
		switch {
		case topicStudied && topicPending:
			return fmt.Errorf("--studied and --pending are exclusive")
		case topicStudied:
			studied := true
			update.Studied = &studied
			update.DateStudied = time.Now().Format(time.DateOnly)
		case topicPending:
			studied := false
			update.Studied = &studied
		}
		if cmd.Flags().Changed("deadline") {
			deadline := topicDeadline
			if deadline != "" {
				parsed, err := cli.ParseDay(deadline, time.Now())
				if err != nil {
					return err
				}
				deadline = parsed
			}
			update.Deadline = &deadline
		}

		topic, err := app.Study.UpdateTopic(cmd.Context(), update)
		if err != nil {
			return fmt.Errorf("failed to update topic: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, topic)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", topic.Name)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listSubject, "subject", "", "only this subject")
	topicCmd.Flags().BoolVar(&topicStudied, "studied", false, "mark as studied today")
	topicCmd.Flags().BoolVar(&topicPending, "pending", false, "mark as not studied")
	topicCmd.Flags().StringVar(&topicDeadline, "deadline", "", "deadline (YYYY-MM-DD), empty clears it")
}
