package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/studyflow/internal/app"
	mcpinternal "github.com/felixgeelhaar/studyflow/internal/mcp"
	"github.com/felixgeelhaar/studyflow/pkg/config"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

func main() {
	cfg, err := config.Load()
	logCfg := observability.LogConfigFromEnv(os.Getenv)
	logCfg.Output = os.Stderr
	logger := observability.NewLogger(logCfg)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	cliApp := mcpinternal.NewCLIApp(container)

	if err := mcpinternal.Serve(ctx, cfg, cliApp, container.Metrics, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mcp server error", "error", err)
		container.Close()
		os.Exit(1)
	}
}
