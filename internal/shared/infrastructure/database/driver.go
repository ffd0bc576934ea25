package database

import "strings"

// Driver represents a storage backend type.
type Driver string

const (
	// DriverPostgres represents PostgreSQL.
	DriverPostgres Driver = "postgres"
	// DriverSQLite represents a local SQLite file.
	DriverSQLite Driver = "sqlite"
	// DriverRedis represents a Redis server.
	DriverRedis Driver = "redis"
	// DriverMemory keeps everything in process memory.
	DriverMemory Driver = "memory"
)

// String returns the string representation of the driver.
func (d Driver) String() string {
	return string(d)
}

// DetectDriver parses a connection string and returns the driver type.
// Returns DriverSQLite for empty URLs to enable zero-config local mode.
func DetectDriver(url string) Driver {
	if url == "" {
		return DriverSQLite
	}

	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DriverPostgres
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		return DriverRedis
	case strings.HasPrefix(url, "memory://"):
		return DriverMemory
	}

	// Anything else is treated as a SQLite path or DSN.
	return DriverSQLite
}

// IsValid returns true if the driver is a known type.
func (d Driver) IsValid() bool {
	switch d {
	case DriverPostgres, DriverSQLite, DriverRedis, DriverMemory:
		return true
	default:
		return false
	}
}

// SQLitePath strips a sqlite:// prefix from a URL.
func SQLitePath(url string) string {
	return strings.TrimPrefix(url, "sqlite://")
}
