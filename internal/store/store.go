package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"portfoliopal/api/internal/ids"
	"portfoliopal/api/internal/timeutil"
)

// Collection names. The store is schema-less; these are the only
// collections the service touches.
const (
	CollectionUsers          = "user"
	CollectionActivity       = "activity"
	CollectionPasswordResets = "passwordreset"
)

var ErrNotFound = errors.New("document not found")

// Store is a thin adapter over a named document database. It assigns ids
// and maintains created_at/updated_at on every write so repositories never
// have to.
type Store struct {
	db *mongo.Database
}

func New(client *mongo.Client, name string) *Store {
	return &Store{db: client.Database(name)}
}

// EnsureIndexes creates the indexes the query paths rely on. Creation is
// best-effort per index: a failure on one does not block the rest, and all
// failures come back joined. Callers treat the result as non-fatal; the
// service still works without indexes, just slower and without
// duplicate-email enforcement at the store level.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{CollectionUsers, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{CollectionActivity, mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}}}},
		{CollectionActivity, mongo.IndexModel{Keys: bson.D{{Key: "created_at", Value: 1}}}},
		{CollectionPasswordResets, mongo.IndexModel{Keys: bson.D{{Key: "token", Value: 1}}}},
		{CollectionPasswordResets, mongo.IndexModel{Keys: bson.D{{Key: "expires_at", Value: 1}}}},
	}

	var errs []error
	for _, idx := range indexes {
		if _, err := s.db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			errs = append(errs, fmt.Errorf("create index on %s: %w", idx.collection, err))
		}
	}
	return errors.Join(errs...)
}

// Insert writes doc into the named collection, assigning an id when the
// document carries none and stamping created_at/updated_at when unset.
// Returns the id of the stored document.
func (s *Store) Insert(ctx context.Context, collection string, doc any) (string, error) {
	m, err := toDocument(doc)
	if err != nil {
		return "", err
	}

	id, _ := m["_id"].(string)
	if id == "" {
		id = ids.New()
		m["_id"] = id
	}

	now := timeutil.Now()
	if timestampUnset(m["created_at"]) {
		m["created_at"] = now
	}
	if timestampUnset(m["updated_at"]) {
		m["updated_at"] = now
	}

	if _, err := s.db.Collection(collection).InsertOne(ctx, m); err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return id, nil
}

// FindOne decodes the first document matching filter into out.
func (s *Store) FindOne(ctx context.Context, collection string, filter bson.M, out any) error {
	err := s.db.Collection(collection).FindOne(ctx, filter).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("find one in %s: %w", collection, err)
	}
	return nil
}

// Find decodes up to limit documents matching filter into out, newest first.
func (s *Store) Find(ctx context.Context, collection string, filter bson.M, limit int64, out any) error {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("find in %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode from %s: %w", collection, err)
	}
	return nil
}

// UpdateOne applies set to the first document matching filter, refreshing
// updated_at. The caller's map is left untouched. Returns the number of
// modified documents.
func (s *Store) UpdateOne(ctx context.Context, collection string, filter bson.M, set bson.M) (int64, error) {
	patch := make(bson.M, len(set)+1)
	for k, v := range set {
		patch[k] = v
	}
	patch["updated_at"] = timeutil.Now()

	res, err := s.db.Collection(collection).UpdateOne(ctx, filter, bson.M{"$set": patch})
	if err != nil {
		return 0, fmt.Errorf("update in %s: %w", collection, err)
	}
	return res.ModifiedCount, nil
}

// DeleteOne removes the first document matching filter. Returns the number
// of deleted documents.
func (s *Store) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	res, err := s.db.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", collection, err)
	}
	return res.DeletedCount, nil
}

// DeleteMany removes every document matching filter.
func (s *Store) DeleteMany(ctx context.Context, collection string, filter bson.M) (int64, error) {
	res, err := s.db.Collection(collection).DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", collection, err)
	}
	return res.DeletedCount, nil
}

// Ping checks connectivity to the backing database.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

// CollectionNames lists the collections currently present in the database.
func (s *Store) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}

func toDocument(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return m, nil
}

// timestampUnset reports whether a marshalled timestamp field is missing or
// still the zero time.
func timestampUnset(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bson.DateTime:
		return t.Time().Year() <= 1
	}
	return false
}
