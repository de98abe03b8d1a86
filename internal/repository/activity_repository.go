package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"portfoliopal/api/internal/models"
	"portfoliopal/api/internal/store"
)

// ActivityRepository appends audit entries. Entries are never updated or
// deleted through this surface.
type ActivityRepository struct {
	store *store.Store
}

func NewActivityRepository(s *store.Store) *ActivityRepository {
	return &ActivityRepository{store: s}
}

func (r *ActivityRepository) Append(ctx context.Context, entry models.Activity) (string, error) {
	return r.store.Insert(ctx, store.CollectionActivity, entry)
}

// ListRecent returns up to limit entries, newest first.
func (r *ActivityRepository) ListRecent(ctx context.Context, limit int64) ([]models.Activity, error) {
	var entries []models.Activity
	if err := r.store.Find(ctx, store.CollectionActivity, bson.M{}, limit, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
