package ports

import (
	"context"

	"parcel-admin/internal/core/daterange"
	"parcel-admin/internal/features/dashboard/domain"
)

// DashboardService defines the primary port for the admin dashboards.
type DashboardService interface {
	SalesDashboard(ctx context.Context, r daterange.Range) ([]domain.SalesLine, error)
	RegionBreakdown(ctx context.Context, side domain.Side, r daterange.Range) ([]domain.RegionLine, error)
}

// DashboardRepository aggregates over consignments (Sender) or trips (Traveller),
// filtered by createdAt.
type DashboardRepository interface {
	Totals(ctx context.Context, side domain.Side, r daterange.Range) (domain.Totals, error)
	RegionBreakdown(ctx context.Context, side domain.Side, r daterange.Range) ([]domain.RegionLine, error)
}
