package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/migrations"
)

// SQLiteStore stores values in the kv_entries table of a local database.
type SQLiteStore struct {
	db        *sqlx.DB
	namespace string
}

// NewSQLiteStore migrates db and returns a store scoped to namespace. The
// store takes ownership of db and closes it on Close.
func NewSQLiteStore(ctx context.Context, db *sqlx.DB, namespace string) (*SQLiteStore, error) {
	if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, namespace: namespace}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value,
		`SELECT value FROM kv_entries WHERE namespace = ? AND key = ?`,
		s.namespace, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_entries (namespace, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, s.namespace, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM kv_entries WHERE namespace = ? AND key = ?`,
		s.namespace, key)
	return err
}

// Keys lists the keys stored in the namespace.
func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := s.db.SelectContext(ctx, &keys,
		`SELECT key FROM kv_entries WHERE namespace = ? ORDER BY key`, s.namespace)
	return keys, err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
