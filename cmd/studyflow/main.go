package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/studyflow/adapter/cli"
	"github.com/felixgeelhaar/studyflow/adapter/cli/catalog"
	"github.com/felixgeelhaar/studyflow/adapter/cli/goal"
	"github.com/felixgeelhaar/studyflow/adapter/cli/mcp"
	"github.com/felixgeelhaar/studyflow/adapter/cli/session"
	"github.com/felixgeelhaar/studyflow/internal/app"
	mcpinternal "github.com/felixgeelhaar/studyflow/internal/mcp"
	"github.com/felixgeelhaar/studyflow/pkg/config"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{AppEnv: "development", Profile: "default"}
	}

	logger := observability.LoggerFromEnv()
	cli.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The container is built after flag parsing so --profile picks the
	// store namespace.
	cli.SetAppFactory(func(ctx context.Context, profile string) (*cli.App, func(), error) {
		c := *cfg
		if profile != "" {
			c.Profile = profile
		}
		container, err := app.NewContainer(ctx, &c, logger)
		if err != nil {
			return nil, nil, err
		}
		return mcpinternal.NewCLIApp(container), container.Close, nil
	})

	cli.AddCommand(catalog.Cmd)
	cli.AddCommand(session.Cmd)
	cli.AddCommand(goal.Cmd)
	cli.AddCommand(mcp.Cmd)

	cli.RootCommand().SetContext(ctx)
	cli.Execute()
}
