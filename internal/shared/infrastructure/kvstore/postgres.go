package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// DefaultPostgresTable is used when no table name is configured.
const DefaultPostgresTable = "studyflow_kv"

// PgxPool is the subset of *pgxpool.Pool the store uses.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore stores values in a shared PostgreSQL table.
type PostgresStore struct {
	pool      PgxPool
	table     string
	namespace string
}

// NewPostgresStore returns a store over pool. table may be schema-qualified
// only through search_path; it is quoted as a single identifier.
func NewPostgresStore(pool PgxPool, table, namespace string) *PostgresStore {
	if table == "" {
		table = DefaultPostgresTable
	}
	return &PostgresStore{
		pool:      pool,
		table:     pq.QuoteIdentifier(table),
		namespace: namespace,
	}
}

// EnsureSchema creates the table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			namespace  TEXT NOT NULL,
			key        TEXT NOT NULL,
			value      BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (namespace, key)
		)`, s.table))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", s.table, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT value FROM %s WHERE namespace = $1 AND key = $2`, s.table),
		s.namespace, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (namespace, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, s.table), s.namespace, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE namespace = $1 AND key = $2`, s.table),
		s.namespace, key)
	return err
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
