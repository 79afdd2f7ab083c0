package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"parcel-admin/internal/core/logger"
	"parcel-admin/internal/features/fares/domain"
	"parcel-admin/internal/features/fares/ports"

	"go.uber.org/zap"
)

// FareServiceImpl implements ports.FareService.
type FareServiceImpl struct {
	repo ports.FareRepository
	now  func() time.Time

	// mu serialises lazy creation and updates of the singleton.
	mu sync.Mutex
}

// NewFareService creates a new FareServiceImpl.
func NewFareService(repo ports.FareRepository) *FareServiceImpl {
	return &FareServiceImpl{
		repo: repo,
		now:  time.Now,
	}
}

// GetConfig returns the stored configuration, creating the defaults on first use.
func (s *FareServiceImpl) GetConfig(ctx context.Context) (*domain.FareConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get fare config: %w", err)
	}
	if cfg != nil {
		return cfg, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadOrCreate(ctx)
}

// UpdateConfig applies a partial update to the configuration.
func (s *FareServiceImpl) UpdateConfig(ctx context.Context, update domain.FareUpdate) (*domain.FareConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	next, err := update.Apply(*current, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("service: failed to save fare config: %w", err)
	}

	logger.Named("fares").Info("Fare config updated",
		zap.Float64("margin", next.Margin),
		zap.Float64("te", next.TE),
	)
	return next, nil
}

// loadOrCreate must be called with mu held.
func (s *FareServiceImpl) loadOrCreate(ctx context.Context) (*domain.FareConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get fare config: %w", err)
	}
	if cfg != nil {
		return cfg, nil
	}

	cfg = domain.NewDefaultFareConfig(s.now())
	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("service: failed to create default fare config: %w", err)
	}
	logger.Named("fares").Info("Created default fare config")
	return cfg, nil
}
