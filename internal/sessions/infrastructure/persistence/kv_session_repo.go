// Package persistence stores sessions and the running stopwatch in the
// key-value store.
package persistence

import (
	"context"

	"github.com/felixgeelhaar/studyflow/internal/sessions/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/kvstore"
)

const (
	// SessionsKey holds the session ledger.
	SessionsKey = "sessions"
	// ActiveKey holds the running stopwatch, if any.
	ActiveKey = "sessions.active"
)

// KVSessionRepository implements domain.Repository and domain.ActiveRepository.
type KVSessionRepository struct {
	store kvstore.Store
}

// NewKVSessionRepository creates a repository over store.
func NewKVSessionRepository(store kvstore.Store) *KVSessionRepository {
	return &KVSessionRepository{store: store}
}

func (r *KVSessionRepository) Load(ctx context.Context) ([]domain.StudySession, error) {
	var sessions []domain.StudySession
	if _, err := kvstore.GetJSON(ctx, r.store, SessionsKey, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *KVSessionRepository) Save(ctx context.Context, sessions []domain.StudySession) error {
	return kvstore.SetJSON(ctx, r.store, SessionsKey, sessions)
}

func (r *KVSessionRepository) LoadActive(ctx context.Context) (*domain.ActiveSession, error) {
	var active domain.ActiveSession
	found, err := kvstore.GetJSON(ctx, r.store, ActiveKey, &active)
	if err != nil || !found {
		return nil, err
	}
	return &active, nil
}

func (r *KVSessionRepository) SaveActive(ctx context.Context, active *domain.ActiveSession) error {
	if active == nil {
		return r.store.Delete(ctx, ActiveKey)
	}
	return kvstore.SetJSON(ctx, r.store, ActiveKey, active)
}
