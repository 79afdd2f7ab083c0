package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parcel-admin/internal/core/apierror"
	"parcel-admin/internal/features/reports/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReportService is a mock implementation of ports.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) ConsolidatedReport(ctx context.Context, q domain.Query) (*domain.Page[domain.ConsolidatedRow], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.ConsolidatedRow]), args.Error(1)
}

func (m *MockReportService) SenderReport(ctx context.Context, q domain.Query) (*domain.Page[domain.SenderReportRow], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.SenderReportRow]), args.Error(1)
}

func (m *MockReportService) TravelerReport(ctx context.Context, q domain.Query) (*domain.Page[domain.TravelerReportRow], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.TravelerReportRow]), args.Error(1)
}

func (m *MockReportService) TravelDetailsReport(ctx context.Context, q domain.Query) (*domain.Page[domain.TravelDetailsRow], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.TravelDetailsRow]), args.Error(1)
}

var fixedNow = time.Date(2024, time.August, 15, 12, 0, 0, 0, time.UTC)

func setupApp(service *MockReportService) *fiber.App {
	app := fiber.New()
	h := NewReportHandler(service)
	h.now = func() time.Time { return fixedNow }
	h.Register(app)
	return app
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestReportHandler_Consolidated(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockReportService)
		app := setupApp(svc)

		page := &domain.Page[domain.ConsolidatedRow]{
			Data:       []domain.ConsolidatedRow{{ConsignmentID: "C1", TotalAmountSender: 300}},
			Pagination: domain.Pagination{TotalPages: 1, TotalRecords: 1, RecordsPerPage: 5, CurrentPage: 2},
		}
		svc.On("ConsolidatedReport", mock.Anything, mock.MatchedBy(func(q domain.Query) bool {
			return q.Page == 2 && q.Limit == 5 && q.Search == "pune" &&
				q.Range.Start.Equal(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)) &&
				q.RangeKey == "period=monthly"
		})).Return(page, nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/report/consignment-consolidated?page=2&limit=5&search=%20pune%20&periodType=monthly", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode[ReportResponse[domain.ConsolidatedRow]](t, resp)
		assert.True(t, body.Success)
		require.Len(t, body.Data, 1)
		assert.Equal(t, "C1", body.Data[0].ConsignmentID)
		assert.Equal(t, 2, body.Pagination.CurrentPage)
		svc.AssertExpectations(t)
	})

	t.Run("AliasAndEmptyPage", func(t *testing.T) {
		svc := new(MockReportService)
		app := setupApp(svc)
		svc.On("ConsolidatedReport", mock.Anything, domain.Query{}).
			Return(&domain.Page[domain.ConsolidatedRow]{}, nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/report/consignment-consolidated-enhanced", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode[map[string]interface{}](t, resp)
		assert.Equal(t, []interface{}{}, body["data"])
		svc.AssertExpectations(t)
	})

	t.Run("ServiceError", func(t *testing.T) {
		svc := new(MockReportService)
		app := setupApp(svc)
		svc.On("ConsolidatedReport", mock.Anything, mock.Anything).Return(nil, errors.New("consignments.find: server selection timeout")).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/report/consignment-consolidated", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		body := decode[apierror.Response](t, resp)
		assert.Equal(t, "Internal server error", body.Message)
		assert.NotEmpty(t, body.Timestamp)
	})
}

func TestReportHandler_InvalidQuery(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		message string
	}{
		{name: "Page", url: "/report/travel-history?page=abc", message: "Invalid page parameter"},
		{name: "Limit", url: "/report/travel-details?limit=ten", message: "Invalid limit parameter"},
		{name: "PageOverflow", url: "/report/consignment-consolidated?page=9223372036854775807&limit=100", message: "Invalid page parameter"},
		{name: "PageOverflowDefaultLimit", url: "/report/travel-history?page=9223372036854775807", message: "Invalid page parameter"},
		{name: "Period", url: "/report/consignment-history?periodType=daily", message: "Invalid periodType. Must be weekly, monthly, quarterly or yearly"},
		{name: "Date", url: "/report/sender-report-enhanced?fromDate=2024-13-40", message: "Invalid date. Use YYYY-MM-DD or RFC3339"},
		{name: "Inverted", url: "/report/traveler-report-enhanced?fromDate=2024-05-02&toDate=2024-05-01", message: "fromDate must not be after toDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockReportService)
			app := setupApp(svc)

			resp, err := app.Test(httptest.NewRequest("GET", tt.url, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			body := decode[apierror.Response](t, resp)
			assert.Equal(t, tt.message, body.Message)
			svc.AssertNotCalled(t, "ConsolidatedReport", mock.Anything, mock.Anything)
			svc.AssertNotCalled(t, "SenderReport", mock.Anything, mock.Anything)
			svc.AssertNotCalled(t, "TravelerReport", mock.Anything, mock.Anything)
			svc.AssertNotCalled(t, "TravelDetailsReport", mock.Anything, mock.Anything)
		})
	}
}

func TestReportHandler_Routes(t *testing.T) {
	svc := new(MockReportService)
	app := setupApp(svc)

	svc.On("SenderReport", mock.Anything, mock.Anything).Return(&domain.Page[domain.SenderReportRow]{
		Data: []domain.SenderReportRow{{SenderID: "S1"}},
	}, nil).Twice()
	svc.On("TravelerReport", mock.Anything, mock.Anything).Return(&domain.Page[domain.TravelerReportRow]{
		Data: []domain.TravelerReportRow{{TravelerID: "T1"}},
	}, nil).Twice()
	svc.On("TravelDetailsReport", mock.Anything, mock.Anything).Return(&domain.Page[domain.TravelDetailsRow]{
		Data: []domain.TravelDetailsRow{{TravelID: "TR1"}},
	}, nil).Once()

	for _, path := range []string{
		"/report/consignment-history",
		"/report/sender-report-enhanced",
		"/report/travel-history",
		"/report/traveler-report-enhanced",
		"/report/travel-details",
	} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
	svc.AssertExpectations(t)
}
