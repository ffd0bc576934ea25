// Package persistence stores study goals in the key-value store.
package persistence

import (
	"context"

	"github.com/felixgeelhaar/studyflow/internal/goals/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/kvstore"
)

// GoalsKey is the key goals are stored under.
const GoalsKey = "goals"

// KVGoalsRepository implements domain.Repository.
type KVGoalsRepository struct {
	store kvstore.Store
}

// NewKVGoalsRepository creates a goals repository over store.
func NewKVGoalsRepository(store kvstore.Store) *KVGoalsRepository {
	return &KVGoalsRepository{store: store}
}

// Load returns the stored goals clamped to their ranges, or the defaults when
// none are stored.
func (r *KVGoalsRepository) Load(ctx context.Context) (domain.StudyGoals, error) {
	goals := domain.DefaultGoals()
	if _, err := kvstore.GetJSON(ctx, r.store, GoalsKey, &goals); err != nil {
		return domain.DefaultGoals(), err
	}
	return goals.Normalize(), nil
}

// Save replaces the stored goals.
func (r *KVGoalsRepository) Save(ctx context.Context, goals domain.StudyGoals) error {
	return kvstore.SetJSON(ctx, r.store, GoalsKey, goals)
}
