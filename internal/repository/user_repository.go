package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"portfoliopal/api/internal/models"
	"portfoliopal/api/internal/store"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type UserRepository struct {
	store *store.Store
}

func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{store: s}
}

// Create persists a new user and returns the store-assigned id. A unique
// index on email turns concurrent duplicate signups into ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user models.User) (string, error) {
	id, err := r.store.Insert(ctx, store.CollectionUsers, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateEmail
		}
		return "", err
	}
	return id, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.store.FindOne(ctx, store.CollectionUsers, bson.M{"email": email}, &user)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := r.store.FindOne(ctx, store.CollectionUsers, bson.M{"_id": id}, &user)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	modified, err := r.store.UpdateOne(ctx, store.CollectionUsers,
		bson.M{"_id": id}, bson.M{"password": passwordHash})
	if err != nil {
		return err
	}
	if modified == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ListRecent returns up to limit users, newest first.
func (r *UserRepository) ListRecent(ctx context.Context, limit int64) ([]models.User, error) {
	var users []models.User
	if err := r.store.Find(ctx, store.CollectionUsers, bson.M{}, limit, &users); err != nil {
		return nil, err
	}
	return users, nil
}
