package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/felixgeelhaar/studyflow/internal/app"
	"github.com/felixgeelhaar/studyflow/internal/reminders"
	"github.com/felixgeelhaar/studyflow/pkg/config"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

func main() {
	cfg, err := config.Load()
	logger := observability.LoggerFromEnv()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("starting studyflow worker", "profile", cfg.Profile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	job, err := container.ReminderJob()
	if err != nil {
		logger.Error("failed to build reminder job", "error", err)
		os.Exit(1)
	}

	scheduler, err := reminders.NewScheduler(job, cfg.ReminderAt, time.Local, logger)
	if err != nil {
		logger.Error("invalid reminder schedule", "error", err)
		os.Exit(1)
	}
	if err := scheduler.Start(); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	logger.Info("next reminder", "at", scheduler.NextRun().Format(time.RFC3339))

	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig.String())
	scheduler.Stop()
	logger.Info("worker stopped")
}
