package handler

import (
	"errors"
	"net/http"
	"time"

	"parcel-admin/internal/core/apierror"
	"parcel-admin/internal/core/daterange"
	"parcel-admin/internal/core/logger"
	"parcel-admin/internal/features/dashboard/domain"
	"parcel-admin/internal/features/dashboard/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SalesResponse is the sales dashboard body.
type SalesResponse struct {
	Success bool               `json:"success"`
	Filters domain.Filters     `json:"filters"`
	Data    []domain.SalesLine `json:"data"`
}

// RegionResponse is the region breakdown body.
type RegionResponse struct {
	Success bool                `json:"success"`
	Filters domain.Filters      `json:"filters"`
	Data    []domain.RegionLine `json:"data"`
}

// DashboardHandler handles HTTP requests for the admin dashboards.
type DashboardHandler struct {
	service ports.DashboardService
	now     func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		now:     time.Now,
	}
}

// Register mounts the dashboard routes.
func (h *DashboardHandler) Register(r fiber.Router) {
	r.Get("/admin/sales-dashboard", h.SalesDashboard)
	r.Get("/admin/get-region-breakdown", h.RegionBreakdown)
}

// SalesDashboard handles GET /admin/sales-dashboard.
// @Summary Sales dashboard
// @Description Consignment and trip counts with summed amounts.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param fromDate query string false "YYYY-MM-DD or RFC3339"
// @Param toDate query string false "YYYY-MM-DD or RFC3339"
// @Param periodType query string false "weekly, monthly, quarterly or yearly"
// @Success 200 {object} SalesResponse
// @Failure 400 {object} apierror.Response
// @Failure 500 {object} apierror.Response
// @Router /admin/sales-dashboard [get]
func (h *DashboardHandler) SalesDashboard(c *fiber.Ctx) error {
	r, err := h.parseRange(c)
	if err != nil {
		return apierror.Write(c, http.StatusBadRequest, rangeErrorMessage(err))
	}

	lines, err := h.service.SalesDashboard(c.UserContext(), r)
	if err != nil {
		logger.Get().Error("Failed to build sales dashboard", zap.Error(err))
		return apierror.Write(c, http.StatusInternalServerError, "Internal server error")
	}

	return c.Status(http.StatusOK).JSON(SalesResponse{
		Success: true,
		Filters: domain.NewFilters(r),
		Data:    lines,
	})
}

// RegionBreakdown handles GET /admin/get-region-breakdown.
// @Summary Region breakdown
// @Description Amounts summed per starting region and travel mode for senders or travellers.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param type query string true "Sender or Traveller"
// @Param fromDate query string false "YYYY-MM-DD or RFC3339"
// @Param toDate query string false "YYYY-MM-DD or RFC3339"
// @Param periodType query string false "weekly, monthly, quarterly or yearly"
// @Success 200 {object} RegionResponse
// @Failure 400 {object} apierror.Response
// @Failure 500 {object} apierror.Response
// @Router /admin/get-region-breakdown [get]
func (h *DashboardHandler) RegionBreakdown(c *fiber.Ctx) error {
	side, err := domain.ParseSide(c.Query("type"))
	if err != nil {
		return apierror.Write(c, http.StatusBadRequest, "Invalid type")
	}

	r, err := h.parseRange(c)
	if err != nil {
		return apierror.Write(c, http.StatusBadRequest, rangeErrorMessage(err))
	}

	lines, err := h.service.RegionBreakdown(c.UserContext(), side, r)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRegionType) {
			return apierror.Write(c, http.StatusBadRequest, "Invalid type")
		}
		logger.Get().Error("Failed to build region breakdown", zap.Error(err))
		return apierror.Write(c, http.StatusInternalServerError, "Internal server error")
	}

	filters := domain.NewFilters(r)
	filters.Type = side
	return c.Status(http.StatusOK).JSON(RegionResponse{
		Success: true,
		Filters: filters,
		Data:    lines,
	})
}

func (h *DashboardHandler) parseRange(c *fiber.Ctx) (daterange.Range, error) {
	return daterange.Parse(c.Query("fromDate"), c.Query("toDate"), c.Query("periodType"), h.now())
}

func rangeErrorMessage(err error) string {
	switch {
	case errors.Is(err, daterange.ErrUnknownPeriod):
		return "Invalid periodType. Must be weekly, monthly, quarterly or yearly"
	case errors.Is(err, daterange.ErrInvertedRange):
		return "fromDate must not be after toDate"
	default:
		return "Invalid date. Use YYYY-MM-DD or RFC3339"
	}
}
