package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"portfoliopal/api/internal/models"
	"portfoliopal/api/internal/store"
)

var ErrResetNotFound = errors.New("password reset record not found")

type ResetRepository struct {
	store *store.Store
}

func NewResetRepository(s *store.Store) *ResetRepository {
	return &ResetRepository{store: s}
}

func (r *ResetRepository) Create(ctx context.Context, rec models.PasswordReset) (string, error) {
	return r.store.Insert(ctx, store.CollectionPasswordResets, rec)
}

func (r *ResetRepository) FindByToken(ctx context.Context, token string) (models.PasswordReset, error) {
	var rec models.PasswordReset
	err := r.store.FindOne(ctx, store.CollectionPasswordResets, bson.M{"token": token}, &rec)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.PasswordReset{}, ErrResetNotFound
		}
		return models.PasswordReset{}, err
	}
	return rec, nil
}

// Delete consumes a reset record so its token cannot be redeemed twice.
func (r *ResetRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.store.DeleteOne(ctx, store.CollectionPasswordResets, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrResetNotFound
	}
	return nil
}

// PurgeExpired removes every record whose expiry is at or before cutoff.
func (r *ResetRepository) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.store.DeleteMany(ctx, store.CollectionPasswordResets,
		bson.M{"expires_at": bson.M{"$lte": cutoff}})
}
