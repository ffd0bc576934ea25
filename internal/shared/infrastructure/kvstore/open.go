package kvstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/database/postgres"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/database/sqlite"
)

// Config selects and configures a backend.
type Config struct {
	// URL picks the backend: empty or a path for SQLite, postgres:// for
	// PostgreSQL, redis:// for Redis, memory:// for an in-process store.
	URL           string
	SQLitePath    string
	PostgresTable string
	Namespace     string
	Breaker       BreakerConfig
}

// Open connects to the configured backend. Remote backends are wrapped in a
// circuit breaker when enabled.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "default"
	}

	driver := database.DetectDriver(cfg.URL)
	var (
		store Store
		err   error
	)
	switch driver {
	case database.DriverMemory:
		store = NewMemoryStore()
	case database.DriverSQLite:
		store, err = openSQLite(ctx, cfg)
	case database.DriverPostgres:
		store, err = openPostgres(ctx, cfg)
	case database.DriverRedis:
		store, err = openRedis(ctx, cfg)
	default:
		err = fmt.Errorf("unsupported store driver: %s", driver)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("store opened", "driver", driver.String(), "namespace", cfg.Namespace)

	remote := driver == database.DriverPostgres || driver == database.DriverRedis
	if remote && cfg.Breaker.Enabled {
		return NewBreakerStore(store, driver.String(), cfg.Breaker, logger), nil
	}
	return store, nil
}

func openSQLite(ctx context.Context, cfg Config) (Store, error) {
	path := cfg.SQLitePath
	if cfg.URL != "" {
		path = database.SQLitePath(cfg.URL)
	}
	db, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	store, err := NewSQLiteStore(ctx, db, cfg.Namespace)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func openPostgres(ctx context.Context, cfg Config) (Store, error) {
	pool, err := postgres.Open(ctx, postgres.Config{URL: cfg.URL})
	if err != nil {
		return nil, err
	}
	store := NewPostgresStore(pool, cfg.PostgresTable, cfg.Namespace)
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func openRedis(ctx context.Context, cfg Config) (Store, error) {
	client, err := NewRedisClient(cfg.URL)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisStore(client, cfg.Namespace), nil
}
