package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

var (
	profile  string
	jsonOut  bool
	logger   *slog.Logger
	factory  AppFactory
	closeApp func()
)

// AppFactory builds the App for a profile. An empty profile means the
// configured default.
type AppFactory func(ctx context.Context, profile string) (*App, func(), error)

type commandContext struct {
	correlationID string
	startedAt     time.Time
}

type commandContextKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "studyflow",
	Short: "StudyFlow - study analytics from the terminal",
	Long: `StudyFlow tracks answered questions, reviews and study sessions
per topic and turns them into streaks, trends, review calendars
and completion forecasts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logger == nil {
			logger = slog.Default()
		}
		ctx := observability.NewCommandContext(cmd.Context(), profile, cmd.CommandPath())
		info := commandContext{
			correlationID: observability.CorrelationIDFromContext(ctx),
			startedAt:     time.Now(),
		}
		cmd.SetContext(context.WithValue(ctx, commandContextKey{}, info))
		logger.DebugContext(ctx, "command start", "command", cmd.CommandPath())

		if app == nil && factory != nil && needsApp(cmd) {
			built, closer, err := factory(ctx, profile)
			if err != nil {
				return err
			}
			app = built
			closeApp = closer
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		logger.DebugContext(cmd.Context(), "command end",
			"command", cmd.CommandPath(),
			observability.DurationKey, time.Since(info.startedAt).Milliseconds(),
		)
	},
}

// SkipAppAnnotation marks commands that run without the App.
const SkipAppAnnotation = "studyflow/no-app"

func needsApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[SkipAppAnnotation]; ok {
			return false
		}
	}
	return true
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if closeApp != nil {
		closeApp()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "study profile (defaults to STUDYFLOW_PROFILE)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print JSON instead of text")
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// SetAppFactory registers how the App is built once flags are parsed.
func SetAppFactory(f AppFactory) {
	factory = f
}

// RootCommand returns the root command. Tests drive it with SetArgs.
func RootCommand() *cobra.Command {
	return rootCmd
}

// JSONOutput reports whether --json was given.
func JSONOutput() bool {
	return jsonOut
}
