package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string
	Profile  string

	// Store
	StoreURL      string
	SQLitePath    string
	PostgresTable string

	// Store circuit breaker
	StoreBreakerEnabled  bool
	StoreBreakerFailures int
	StoreBreakerTimeout  time.Duration

	// RabbitMQ
	RabbitMQURL string

	// Reports
	ReportDir string

	// Reminders
	ReminderAt       string
	ReminderDesktop  bool
	TelegramBotToken string
	TelegramChatID   int64

	// MCP
	MCPAddr      string
	MCPAuthToken string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Profile:  getEnv("STUDYFLOW_PROFILE", "default"),

		StoreURL:      getEnv("STORE_URL", ""),
		SQLitePath:    getEnv("SQLITE_PATH", defaultDataPath("data.db")),
		PostgresTable: getEnv("POSTGRES_TABLE", "studyflow_kv"),

		StoreBreakerEnabled:  getBoolEnv("STORE_BREAKER_ENABLED", true),
		StoreBreakerFailures: getIntEnv("STORE_BREAKER_FAILURES", 5),
		StoreBreakerTimeout:  getDurationEnv("STORE_BREAKER_TIMEOUT", 30*time.Second),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		ReportDir: getEnv("REPORT_DIR", defaultDataPath("reports")),

		ReminderAt:       getEnv("REMINDER_AT", "08:00"),
		ReminderDesktop:  getBoolEnv("REMINDER_DESKTOP", true),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getInt64Env("TELEGRAM_CHAT_ID", 0),

		MCPAddr:      getEnv("MCP_ADDR", "127.0.0.1:8082"),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", ""),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// TelegramEnabled reports whether Telegram reminders are configured.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

// EventsEnabled reports whether domain events go to RabbitMQ.
func (c *Config) EventsEnabled() bool {
	return strings.TrimSpace(c.RabbitMQURL) != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".studyflow", name)
	}
	return filepath.Join(home, ".studyflow", name)
}
