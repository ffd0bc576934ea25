// Package migrations embeds the SQLite schema for the local store.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed sqlite/*.sql
var sqliteFS embed.FS

// RunSQLiteMigrations executes all SQLite migrations in order. Every
// migration is idempotent (IF NOT EXISTS), so it is safe on every start.
func RunSQLiteMigrations(ctx context.Context, db sqlx.ExecerContext) error {
	files, err := SQLiteMigrations()
	if err != nil {
		return err
	}

	for _, file := range files {
		migration, err := sqliteFS.ReadFile("sqlite/" + file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}
		if _, err := db.ExecContext(ctx, string(migration)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}

	return nil
}

// SQLiteMigrations lists the embedded .up.sql files in execution order.
func SQLiteMigrations() ([]string, error) {
	entries, err := sqliteFS.ReadDir("sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)
	return upFiles, nil
}
