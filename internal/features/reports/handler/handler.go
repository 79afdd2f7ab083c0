package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"parcel-admin/internal/core/apierror"
	"parcel-admin/internal/core/daterange"
	"parcel-admin/internal/core/logger"
	"parcel-admin/internal/features/reports/domain"
	"parcel-admin/internal/features/reports/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var (
	errInvalidPage  = errors.New("invalid page parameter")
	errInvalidLimit = errors.New("invalid limit parameter")
)

// ReportResponse is the body of every report endpoint.
type ReportResponse[T any] struct {
	Success    bool              `json:"success"`
	Data       []T               `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
}

// ReportHandler handles HTTP requests for the admin reports.
type ReportHandler struct {
	service ports.ReportService
	now     func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
		now:     time.Now,
	}
}

// Register mounts the report routes, aliases included.
func (h *ReportHandler) Register(r fiber.Router) {
	g := r.Group("/report")
	g.Get("/consignment-consolidated", h.Consolidated)
	g.Get("/consignment-consolidated-enhanced", h.Consolidated)
	g.Get("/consignment-history", h.Senders)
	g.Get("/sender-report-enhanced", h.Senders)
	g.Get("/travel-history", h.Travelers)
	g.Get("/traveler-report-enhanced", h.Travelers)
	g.Get("/travel-details", h.TravelDetails)
}

// Consolidated handles GET /report/consignment-consolidated.
// @Summary Consolidated consignment report
// @Description One row per consignment with sender, traveler and derived money columns.
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Rows per page" default(10)
// @Param search query string false "Case-insensitive substring"
// @Param fromDate query string false "YYYY-MM-DD or RFC3339"
// @Param toDate query string false "YYYY-MM-DD or RFC3339"
// @Param periodType query string false "weekly, monthly, quarterly or yearly"
// @Success 200 {object} ReportResponse[domain.ConsolidatedRow]
// @Failure 400 {object} apierror.Response
// @Failure 401 {object} apierror.Response
// @Failure 500 {object} apierror.Response
// @Router /report/consignment-consolidated [get]
func (h *ReportHandler) Consolidated(c *fiber.Ctx) error {
	return serve(h, c, domain.ReportConsolidated, h.service.ConsolidatedReport)
}

// Senders handles GET /report/consignment-history.
// @Summary Sender report
// @Description Consignments grouped by sender with counts, totals and payment state.
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Rows per page" default(10)
// @Param search query string false "Case-insensitive substring"
// @Param fromDate query string false "YYYY-MM-DD or RFC3339"
// @Param toDate query string false "YYYY-MM-DD or RFC3339"
// @Param periodType query string false "weekly, monthly, quarterly or yearly"
// @Success 200 {object} ReportResponse[domain.SenderReportRow]
// @Failure 400 {object} apierror.Response
// @Failure 500 {object} apierror.Response
// @Router /report/consignment-history [get]
func (h *ReportHandler) Senders(c *fiber.Ctx) error {
	return serve(h, c, domain.ReportSender, h.service.SenderReport)
}

// Travelers handles GET /report/travel-history.
// @Summary Traveler report
// @Description Resolved consignments grouped by traveler, with ledger totals and recent payouts.
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Rows per page" default(10)
// @Param search query string false "Case-insensitive substring"
// @Param fromDate query string false "YYYY-MM-DD or RFC3339"
// @Param toDate query string false "YYYY-MM-DD or RFC3339"
// @Param periodType query string false "weekly, monthly, quarterly or yearly"
// @Success 200 {object} ReportResponse[domain.TravelerReportRow]
// @Failure 400 {object} apierror.Response
// @Failure 500 {object} apierror.Response
// @Router /report/travel-history [get]
func (h *ReportHandler) Travelers(c *fiber.Ctx) error {
	return serve(h, c, domain.ReportTraveler, h.service.TravelerReport)
}

// TravelDetails handles GET /report/travel-details.
// @Summary Trip report
// @Description One row per trip with request counts and acceptance rate.
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Rows per page" default(10)
// @Param search query string false "Case-insensitive substring"
// @Param fromDate query string false "YYYY-MM-DD or RFC3339"
// @Param toDate query string false "YYYY-MM-DD or RFC3339"
// @Param periodType query string false "weekly, monthly, quarterly or yearly"
// @Success 200 {object} ReportResponse[domain.TravelDetailsRow]
// @Failure 400 {object} apierror.Response
// @Failure 500 {object} apierror.Response
// @Router /report/travel-details [get]
func (h *ReportHandler) TravelDetails(c *fiber.Ctx) error {
	return serve(h, c, domain.ReportTravelDetail, h.service.TravelDetailsReport)
}

func serve[T any](h *ReportHandler, c *fiber.Ctx, report string, run func(context.Context, domain.Query) (*domain.Page[T], error)) error {
	q, err := h.parseQuery(c)
	if err != nil {
		return apierror.Write(c, http.StatusBadRequest, queryErrorMessage(err))
	}

	page, err := run(c.UserContext(), q)
	if errors.Is(err, domain.ErrPageOutOfRange) {
		return apierror.Write(c, http.StatusBadRequest, queryErrorMessage(err))
	}
	if err != nil {
		logger.Get().Error("Failed to generate report",
			zap.String("report", report),
			zap.String("ray_id", apierror.RayID(c)),
			zap.Error(err),
		)
		return apierror.Write(c, http.StatusInternalServerError, "Internal server error")
	}

	data := page.Data
	if data == nil {
		data = []T{}
	}
	return c.Status(http.StatusOK).JSON(ReportResponse[T]{
		Success:    true,
		Data:       data,
		Pagination: page.Pagination,
	})
}

// parseQuery reads page, limit, search and the date range. Defaults and the
// limit cap are applied by the service.
func (h *ReportHandler) parseQuery(c *fiber.Ctx) (domain.Query, error) {
	var q domain.Query

	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, errInvalidPage
		}
		q.Page = n
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, errInvalidLimit
		}
		q.Limit = n
	}
	if err := q.CheckOffset(); err != nil {
		return q, err
	}

	from, to, period := c.Query("fromDate"), c.Query("toDate"), c.Query("periodType")
	r, err := daterange.Parse(from, to, period, h.now())
	if err != nil {
		return q, err
	}
	q.Range = r
	q.RangeKey = daterange.Key(from, to, period)
	q.Search = strings.TrimSpace(c.Query("search"))
	return q, nil
}

func queryErrorMessage(err error) string {
	switch {
	case errors.Is(err, errInvalidPage), errors.Is(err, domain.ErrPageOutOfRange):
		return "Invalid page parameter"
	case errors.Is(err, errInvalidLimit):
		return "Invalid limit parameter"
	case errors.Is(err, daterange.ErrUnknownPeriod):
		return "Invalid periodType. Must be weekly, monthly, quarterly or yearly"
	case errors.Is(err, daterange.ErrInvertedRange):
		return "fromDate must not be after toDate"
	default:
		return "Invalid date. Use YYYY-MM-DD or RFC3339"
	}
}
