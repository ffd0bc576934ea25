package catalog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/adapter/cli"
	"github.com/felixgeelhaar/studyflow/internal/study/application/commands"
)

var (
	logGroup string
	logDate  string

	reviewDate string
	reviewNext string

	essayDate  string
	essayScore int
)

var logCmd = &cobra.Command{
	Use:   "log <subject> <topic> <made> <correct>",
	Short: "Log answered questions for a topic",
	Long: `Log how many questions were answered and how many were correct.
The topic is created when it does not exist yet.

Examples:
  studyflow catalog log Mathematics Functions 20 17
  studyflow catalog log Biology Cells 15 9 --date yesterday`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Study == nil {
			return cli.ErrNoApp()
		}

		made, correct, err := parseCounts(args[2], args[3])
		if err != nil {
			return err
		}
		date, err := cli.ParseDay(logDate, time.Now())
		if err != nil {
			return err
		}

		topic, err := app.Study.LogQuestions(cmd.Context(), commands.LogQuestionsCommand{
			Subject: args[0],
			Group:   logGroup,
			Topic:   args[1],
			Date:    date,
			Made:    made,
			Correct: correct,
		})
		if err != nil {
			return fmt.Errorf("failed to log questions: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, topic)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Logged %d/%d for %s on %s (total %d/%d)\n",
			correct, made, topic.Name, date, topic.QuestionsCorrect, topic.QuestionsTotal)
		return nil
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review <subject> <topic> <total> <correct>",
	Short: "Record a review snapshot for a topic",
	Long: `Record the cumulative question totals at the time of a review and,
optionally, when the topic is next due.

Examples:
  studyflow catalog review Mathematics Functions 60 51 --next 2024-03-20`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Study == nil {
			return cli.ErrNoApp()
		}

		total, correct, err := parseCounts(args[2], args[3])
		if err != nil {
			return err
		}
		now := time.Now()
		date, err := cli.ParseDay(reviewDate, now)
		if err != nil {
			return err
		}
		next := ""
		if reviewNext != "" {
			if next, err = cli.ParseDay(reviewNext, now); err != nil {
				return err
			}
		}

		topic, err := app.Study.RecordReview(cmd.Context(), commands.RecordReviewCommand{
			Subject:          args[0],
			Topic:            args[1],
			Date:             date,
			QuestionsTotal:   total,
			QuestionsCorrect: correct,
			NextReview:       next,
		})
		if err != nil {
			return fmt.Errorf("failed to record review: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, topic)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Review recorded for %s", topic.Name)
		if topic.FSRSNextReview != "" {
			fmt.Fprintf(cmd.OutOrStdout(), ", next review %s", topic.FSRSNextReview)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

var essayCmd = &cobra.Command{
	Use:   "essay <title>",
	Short: "Record a written essay",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Study == nil {
			return cli.ErrNoApp()
		}

		date, err := cli.ParseDay(essayDate, time.Now())
		if err != nil {
			return err
		}
		essay, err := app.Study.AddEssay(cmd.Context(), commands.AddEssayCommand{
			Title: args[0],
			Date:  date,
			Score: essayScore,
		})
		if err != nil {
			return fmt.Errorf("failed to add essay: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, essay)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Essay %q recorded on %s\n", essay.Title, essay.Date)
		return nil
	},
}

func parseCounts(a, b string) (int, int, error) {
	first, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid count %q", a)
	}
	second, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid count %q", b)
	}
	return first, second, nil
}

func init() {
	logCmd.Flags().StringVarP(&logGroup, "group", "g", "", "topic group for new topics")
	logCmd.Flags().StringVarP(&logDate, "date", "d", "", "date (YYYY-MM-DD, today, yesterday)")
	reviewCmd.Flags().StringVarP(&reviewDate, "date", "d", "", "review date")
	reviewCmd.Flags().StringVar(&reviewNext, "next", "", "next review date")
	essayCmd.Flags().StringVarP(&essayDate, "date", "d", "", "essay date")
	essayCmd.Flags().IntVar(&essayScore, "score", 0, "optional score")
}
