package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"parcel-admin/internal/core/cache"
	"parcel-admin/internal/core/logger"
	"parcel-admin/internal/features/fares/domain"
	"parcel-admin/internal/features/fares/ports"

	"go.uber.org/zap"
)

const fareConfigCacheKey = "fare_config"

// CachedFareRepository is a read-through cache in front of another repository.
// A failing cache degrades to the underlying store.
type CachedFareRepository struct {
	next  ports.FareRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedFareRepository creates a new CachedFareRepository.
func NewCachedFareRepository(next ports.FareRepository, c cache.Cache, ttl time.Duration) *CachedFareRepository {
	return &CachedFareRepository{
		next:  next,
		cache: c,
		ttl:   ttl,
	}
}

// Get serves the configuration from the cache, filling it on a miss.
func (r *CachedFareRepository) Get(ctx context.Context) (*domain.FareConfig, error) {
	data, err := r.cache.Get(ctx, fareConfigCacheKey)
	switch {
	case err == nil:
		var cfg domain.FareConfig
		if err := json.Unmarshal(data, &cfg); err == nil {
			return &cfg, nil
		}
		logger.Named("fares").Warn("Discarding undecodable cached fare config")
	case !errors.Is(err, cache.ErrCacheMiss):
		logger.Named("fares").Warn("Fare config cache unavailable", zap.Error(err))
	}

	cfg, err := r.next.Get(ctx)
	if err != nil || cfg == nil {
		return cfg, err
	}

	if data, err := json.Marshal(cfg); err == nil {
		if err := r.cache.Set(ctx, fareConfigCacheKey, data, r.ttl); err != nil {
			logger.Named("fares").Warn("Failed to cache fare config", zap.Error(err))
		}
	}
	return cfg, nil
}

// Save writes through to the store and drops the cached copy.
func (r *CachedFareRepository) Save(ctx context.Context, cfg *domain.FareConfig) error {
	if err := r.next.Save(ctx, cfg); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, fareConfigCacheKey); err != nil {
		return fmt.Errorf("failed to invalidate cached fare config: %w", err)
	}
	return nil
}
