// Package persistence stores the study catalog in the key-value store.
package persistence

import (
	"context"

	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/kvstore"
	"github.com/felixgeelhaar/studyflow/internal/study/domain"
)

// CatalogKey is the key the catalog is stored under.
const CatalogKey = "catalog"

// KVCatalogRepository implements domain.CatalogRepository.
type KVCatalogRepository struct {
	store kvstore.Store
}

// NewKVCatalogRepository creates a catalog repository over store.
func NewKVCatalogRepository(store kvstore.Store) *KVCatalogRepository {
	return &KVCatalogRepository{store: store}
}

// Load returns the stored catalog, or an empty one.
func (r *KVCatalogRepository) Load(ctx context.Context) (*domain.Catalog, error) {
	var catalog domain.Catalog
	if _, err := kvstore.GetJSON(ctx, r.store, CatalogKey, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Save replaces the stored catalog.
func (r *KVCatalogRepository) Save(ctx context.Context, catalog *domain.Catalog) error {
	return kvstore.SetJSON(ctx, r.store, CatalogKey, catalog)
}
