package service

import (
	"context"
	"errors"
	"testing"

	"parcel-admin/internal/core/daterange"
	"parcel-admin/internal/features/dashboard/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDashboardRepository is a mock implementation of ports.DashboardRepository
type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) Totals(ctx context.Context, side domain.Side, r daterange.Range) (domain.Totals, error) {
	args := m.Called(ctx, side, r)
	return args.Get(0).(domain.Totals), args.Error(1)
}

func (m *MockDashboardRepository) RegionBreakdown(ctx context.Context, side domain.Side, r daterange.Range) ([]domain.RegionLine, error) {
	args := m.Called(ctx, side, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RegionLine), args.Error(1)
}

func TestDashboardService_SalesDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		repo.On("Totals", mock.Anything, domain.SideSender, daterange.Range{}).
			Return(domain.Totals{Count: 4, Amount: decimal.RequireFromString("1000.456")}, nil).Once()
		repo.On("Totals", mock.Anything, domain.SideTraveller, daterange.Range{}).
			Return(domain.Totals{Count: 2, Amount: decimal.NewFromInt(600)}, nil).Once()

		lines, err := NewDashboardService(repo).SalesDashboard(ctx, daterange.Range{})
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, domain.SalesLine{TotalNo: 4, TransactionType: domain.SideSender, Amount: "1000.46"}, lines[0])
		assert.Equal(t, domain.SalesLine{TotalNo: 2, TransactionType: domain.SideTraveller, Amount: "600.00"}, lines[1])
		repo.AssertExpectations(t)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		boom := errors.New("aggregate failed")
		repo.On("Totals", mock.Anything, domain.SideSender, mock.Anything).Return(domain.Totals{}, boom).Maybe()
		repo.On("Totals", mock.Anything, domain.SideTraveller, mock.Anything).Return(domain.Totals{}, nil).Maybe()

		_, err := NewDashboardService(repo).SalesDashboard(ctx, daterange.Range{})
		assert.ErrorIs(t, err, boom)
	})
}

func TestDashboardService_RegionBreakdown(t *testing.T) {
	ctx := context.Background()

	t.Run("InvalidSide", func(t *testing.T) {
		repo := new(MockDashboardRepository)

		_, err := NewDashboardService(repo).RegionBreakdown(ctx, "Courier", daterange.Range{})
		assert.ErrorIs(t, err, domain.ErrInvalidRegionType)
		repo.AssertNotCalled(t, "RegionBreakdown", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Empty", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		repo.On("RegionBreakdown", ctx, domain.SideTraveller, daterange.Range{}).Return(nil, nil).Once()

		lines, err := NewDashboardService(repo).RegionBreakdown(ctx, domain.SideTraveller, daterange.Range{})
		require.NoError(t, err)
		assert.NotNil(t, lines)
		assert.Empty(t, lines)
	})

	t.Run("Lines", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		want := []domain.RegionLine{{StateWise: "Maharashtra", ModeOfTravel: "train", TotalAmount: 450}}
		repo.On("RegionBreakdown", ctx, domain.SideSender, daterange.Range{}).Return(want, nil).Once()

		lines, err := NewDashboardService(repo).RegionBreakdown(ctx, domain.SideSender, daterange.Range{})
		require.NoError(t, err)
		assert.Equal(t, want, lines)
	})
}
