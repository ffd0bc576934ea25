package database

import (
	"os"
	"path/filepath"
)

// DefaultSQLitePath returns the default SQLite database path.
func DefaultSQLitePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".studyflow", "data.db")
}

// EnsureDirectory creates the parent directory for a file path if it doesn't exist.
func EnsureDirectory(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
