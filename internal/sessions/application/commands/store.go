// Package commands contains the write-side session handlers.
package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/felixgeelhaar/studyflow/internal/sessions/domain"
	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
)

// ErrEmptySubject is returned when a session names no subject.
var ErrEmptySubject = errors.New("subject is required")

// SessionStore persists both the ledger and the running stopwatch.
type SessionStore interface {
	domain.Repository
	domain.ActiveRepository
}

// resolveSubject maps a subject name or id to the catalog's subject id. A
// subject missing from the catalog is kept as its slug.
func resolveSubject(ctx context.Context, catalogs study.CatalogRepository, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptySubject
	}
	if catalogs != nil {
		if catalog, err := catalogs.Load(ctx); err == nil {
			if s, err := catalog.FindSubject(key); err == nil {
				return s.ID, nil
			}
		}
	}
	return study.Slug(key), nil
}
