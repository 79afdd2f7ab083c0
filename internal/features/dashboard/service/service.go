package service

import (
	"context"
	"fmt"

	"parcel-admin/internal/core/daterange"
	"parcel-admin/internal/features/dashboard/domain"
	"parcel-admin/internal/features/dashboard/ports"

	"golang.org/x/sync/errgroup"
)

// DashboardServiceImpl implements ports.DashboardService.
type DashboardServiceImpl struct {
	repo ports.DashboardRepository
}

// NewDashboardService creates a new DashboardServiceImpl.
func NewDashboardService(repo ports.DashboardRepository) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		repo: repo,
	}
}

// SalesDashboard returns the sender line followed by the traveller line.
func (s *DashboardServiceImpl) SalesDashboard(ctx context.Context, r daterange.Range) ([]domain.SalesLine, error) {
	sides := []domain.Side{domain.SideSender, domain.SideTraveller}
	totals := make([]domain.Totals, len(sides))

	g, gctx := errgroup.WithContext(ctx)
	for i, side := range sides {
		i, side := i, side
		g.Go(func() error {
			t, err := s.repo.Totals(gctx, side, r)
			if err != nil {
				return fmt.Errorf("service: failed to total %s: %w", side, err)
			}
			totals[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lines := make([]domain.SalesLine, len(sides))
	for i, side := range sides {
		lines[i] = domain.NewSalesLine(side, totals[i])
	}
	return lines, nil
}

// RegionBreakdown sums amounts per region and travel mode for one side.
func (s *DashboardServiceImpl) RegionBreakdown(ctx context.Context, side domain.Side, r daterange.Range) ([]domain.RegionLine, error) {
	if _, err := domain.ParseSide(string(side)); err != nil {
		return nil, err
	}

	lines, err := s.repo.RegionBreakdown(ctx, side, r)
	if err != nil {
		return nil, fmt.Errorf("service: failed to break down %s amounts: %w", side, err)
	}
	if lines == nil {
		lines = []domain.RegionLine{}
	}
	return lines, nil
}
