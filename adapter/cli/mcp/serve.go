package mcp

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/adapter/cli"
	"github.com/felixgeelhaar/studyflow/internal/app"
	mcpinternal "github.com/felixgeelhaar/studyflow/internal/mcp"
	"github.com/felixgeelhaar/studyflow/pkg/config"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:         "serve",
	Short:       "Start the MCP server",
	Annotations: map[string]string{cli.SkipAppAnnotation: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if p, _ := cmd.Flags().GetString("profile"); p != "" {
			cfg.Profile = p
		}

		logCfg := observability.LogConfigFromEnv(os.Getenv)
		logCfg.Output = cmd.ErrOrStderr()
		logger := observability.NewLogger(logCfg)

		container, err := app.NewContainer(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer container.Close()

		cliApp := mcpinternal.NewCLIApp(container)
		err = mcpinternal.Serve(ctx, cfg, cliApp, container.Metrics, logger)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}
