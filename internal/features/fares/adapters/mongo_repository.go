package adapters

import (
	"context"
	"errors"
	"fmt"

	"parcel-admin/internal/core/retry"
	"parcel-admin/internal/features/fares/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FareConfigCollection holds the singleton fare configuration.
const FareConfigCollection = "fareconfigs"

// MongoFareRepository implements ports.FareRepository on MongoDB.
type MongoFareRepository struct {
	coll   *mongo.Collection
	policy retry.Policy
}

// NewMongoFareRepository creates a new MongoFareRepository.
func NewMongoFareRepository(db *mongo.Database, policy retry.Policy) *MongoFareRepository {
	return &MongoFareRepository{
		coll:   db.Collection(FareConfigCollection),
		policy: policy,
	}
}

// Get returns the oldest stored configuration, or nil when there is none.
func (r *MongoFareRepository) Get(ctx context.Context) (*domain.FareConfig, error) {
	var cfg domain.FareConfig
	found := true

	err := retry.Do(ctx, r.policy, "fareconfigs.get", func(ctx context.Context) error {
		opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})
		err := r.coll.FindOne(ctx, bson.M{}, opts).Decode(&cfg)
		if errors.Is(err, mongo.ErrNoDocuments) {
			found = false
			return nil
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read fare config: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &cfg, nil
}

// Save replaces the configuration, inserting it when missing.
func (r *MongoFareRepository) Save(ctx context.Context, cfg *domain.FareConfig) error {
	err := retry.Do(ctx, r.policy, "fareconfigs.save", func(ctx context.Context) error {
		_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": cfg.ID}, cfg, options.Replace().SetUpsert(true))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save fare config: %w", err)
	}
	return nil
}
