// Package kvstore provides the key-value persistence the study collections
// are written through. Every value is an opaque blob stored under a key that
// is scoped to one profile namespace.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get when the key does not exist.
	ErrNotFound = errors.New("kvstore: key not found")
	// ErrUnavailable is returned when the backend is short-circuited.
	ErrUnavailable = errors.New("kvstore: store unavailable")
	// ErrEmptyKey is returned for an empty key.
	ErrEmptyKey = errors.New("kvstore: empty key")
)

// Store reads and writes whole values by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetJSON decodes the value under key into v. It reports false without error
// when the key does not exist.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
