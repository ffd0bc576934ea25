package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	analyticsApp "github.com/felixgeelhaar/studyflow/internal/analytics/application"
	goalsApp "github.com/felixgeelhaar/studyflow/internal/goals/application"
	goalsPersistence "github.com/felixgeelhaar/studyflow/internal/goals/infrastructure/persistence"
	"github.com/felixgeelhaar/studyflow/internal/reminders"
	sessionsApp "github.com/felixgeelhaar/studyflow/internal/sessions/application"
	sessionsPersistence "github.com/felixgeelhaar/studyflow/internal/sessions/infrastructure/persistence"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/kvstore"
	studyApp "github.com/felixgeelhaar/studyflow/internal/study/application"
	studyPersistence "github.com/felixgeelhaar/studyflow/internal/study/infrastructure/persistence"
	"github.com/felixgeelhaar/studyflow/pkg/config"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// healthProbeKey is written and read back by the store health check.
const healthProbeKey = "health:probe"

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics observability.Metrics

	// Persistence
	Store       kvstore.Store
	CatalogRepo *studyPersistence.KVCatalogRepository
	GoalsRepo   *goalsPersistence.KVGoalsRepository
	SessionRepo *sessionsPersistence.KVSessionRepository

	// Events
	EventPublisher eventbus.Publisher
	Events         *eventbus.Emitter

	// Services
	Study     *studyApp.Service
	Goals     *goalsApp.Service
	Sessions  *sessionsApp.Service
	Analytics *analyticsApp.Service

	Health *observability.HealthRegistry
}

// NewContainer opens the configured store and event publisher and wires every
// service on top of them.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store, err := kvstore.Open(ctx, storeConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	var publisher eventbus.Publisher
	if cfg.EventsEnabled() {
		rabbit, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			// Events are informational; keep going without them.
			logger.Warn("event publisher unavailable, events disabled", "error", err)
			publisher = eventbus.NewNoopPublisher(logger)
		} else {
			publisher = rabbit
		}
	} else {
		publisher = eventbus.NewNoopPublisher(logger)
	}

	c := NewContainerWithStore(cfg, store, publisher, observability.NewInMemoryMetrics(), logger)

	logger.Info("container initialized",
		"profile", cfg.Profile,
		"events", cfg.EventsEnabled(),
	)
	return c, nil
}

// NewContainerWithStore wires services over an already opened store and
// publisher. Tests use it with an in-memory store.
func NewContainerWithStore(
	cfg *config.Config,
	store kvstore.Store,
	publisher eventbus.Publisher,
	metrics observability.Metrics,
	logger *slog.Logger,
) *Container {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if publisher == nil {
		publisher = eventbus.NewNoopPublisher(logger)
	}

	c := &Container{
		Config:         cfg,
		Logger:         logger,
		Metrics:        metrics,
		Store:          store,
		EventPublisher: publisher,
		Events:         eventbus.NewEmitter(publisher, cfg.Profile, logger).WithMetrics(metrics),
	}

	c.CatalogRepo = studyPersistence.NewKVCatalogRepository(store)
	c.GoalsRepo = goalsPersistence.NewKVGoalsRepository(store)
	c.SessionRepo = sessionsPersistence.NewKVSessionRepository(store)

	c.Study = studyApp.NewService(c.CatalogRepo, metrics)
	c.Goals = goalsApp.NewService(c.GoalsRepo, c.Events, metrics, logger)
	c.Sessions = sessionsApp.NewService(c.SessionRepo, c.CatalogRepo, c.Events, metrics, logger)
	c.Analytics = analyticsApp.NewService(
		analyticsApp.Config{ReportDir: cfg.ReportDir},
		c.CatalogRepo, c.SessionRepo, c.GoalsRepo, c.Events, metrics, logger,
	)

	c.Health = observability.NewHealthRegistry()
	c.Health.Register("store", observability.PingChecker(c.pingStore, observability.HealthStatusUnhealthy))
	if _, noop := publisher.(*eventbus.NoopPublisher); !noop {
		c.Health.Register("events", observability.PingChecker(c.pingEvents, observability.HealthStatusDegraded))
	}

	return c
}

// Notifier builds the reminder notifier from config: desktop notifications
// when enabled, plus Telegram when a bot token and chat are configured.
func (c *Container) Notifier() (reminders.Notifier, error) {
	var out reminders.MultiNotifier
	if c.Config.ReminderDesktop {
		out = append(out, reminders.NewDesktopNotifier())
	}
	if c.Config.TelegramEnabled() {
		tg, err := reminders.NewTelegramNotifier(c.Config.TelegramBotToken, c.Config.TelegramChatID)
		if err != nil {
			return nil, err
		}
		out = append(out, tg)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no reminder channel configured")
	}
	return out, nil
}

// ReminderJob builds the daily reminder job.
func (c *Container) ReminderJob() (*reminders.Job, error) {
	notifier, err := c.Notifier()
	if err != nil {
		return nil, err
	}
	return reminders.NewJob(c.Analytics, notifier, c.Metrics, c.Logger), nil
}

// Close releases the publisher and the store.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			c.Logger.Warn("error closing store", "error", err)
		} else {
			c.Logger.Debug("store closed")
		}
	}
}

func (c *Container) pingStore(ctx context.Context) error {
	stamp := []byte(time.Now().UTC().Format(time.RFC3339Nano))
	if err := c.Store.Set(ctx, healthProbeKey, stamp); err != nil {
		return err
	}
	got, err := c.Store.Get(ctx, healthProbeKey)
	if err != nil {
		return err
	}
	if string(got) != string(stamp) {
		return fmt.Errorf("store returned a stale probe")
	}
	return nil
}

func (c *Container) pingEvents(ctx context.Context) error {
	return c.EventPublisher.Publish(ctx, "study.health.probe", []byte(`{}`))
}

func storeConfig(cfg *config.Config) kvstore.Config {
	breaker := kvstore.DefaultBreakerConfig()
	breaker.Enabled = cfg.StoreBreakerEnabled
	if cfg.StoreBreakerFailures > 0 {
		breaker.FailureThreshold = uint32(cfg.StoreBreakerFailures)
	}
	if cfg.StoreBreakerTimeout > 0 {
		breaker.Timeout = cfg.StoreBreakerTimeout
	}
	return kvstore.Config{
		URL:           cfg.StoreURL,
		SQLitePath:    cfg.SQLitePath,
		PostgresTable: cfg.PostgresTable,
		Namespace:     cfg.Profile,
		Breaker:       breaker,
	}
}
