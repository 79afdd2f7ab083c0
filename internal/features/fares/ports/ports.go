package ports

import (
	"context"

	"parcel-admin/internal/features/fares/domain"
)

// FareService defines the primary port for fare configuration.
type FareService interface {
	GetConfig(ctx context.Context) (*domain.FareConfig, error)
	UpdateConfig(ctx context.Context, update domain.FareUpdate) (*domain.FareConfig, error)
}

// FareRepository defines the secondary port for fare configuration storage.
// Get returns nil, nil when no configuration has been stored yet.
type FareRepository interface {
	Get(ctx context.Context) (*domain.FareConfig, error)
	Save(ctx context.Context, cfg *domain.FareConfig) error
}
