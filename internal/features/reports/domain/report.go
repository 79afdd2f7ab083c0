package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"parcel-admin/internal/core/daterange"
)

// Report kinds, also used as cache namespaces.
const (
	ReportConsolidated = "consignment-consolidated"
	ReportSender       = "consignment-history"
	ReportTraveler     = "travel-history"
	ReportTravelDetail = "travel-details"
)

// Page sizing defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ErrPageOutOfRange is returned for a page whose record offset does not fit in an int64.
var ErrPageOutOfRange = errors.New("page out of range")

// Query selects one page of a report.
type Query struct {
	Page   int
	Limit  int
	Search string
	Range  daterange.Range
	// RangeKey names the requested window for caching (see daterange.Key).
	// When empty the resolved Range is used instead.
	RangeKey string
}

// Skip is the number of records before the page. CheckOffset must pass first.
func (q Query) Skip() int64 {
	return int64(q.Page-1) * int64(q.Limit)
}

// CheckOffset fails when Skip would overflow. A limit below 1 is checked
// against DefaultLimit, and capping the limit later only shrinks the offset.
func (q Query) CheckOffset() error {
	limit := q.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if q.Page > 1 && int64(q.Page-1) > math.MaxInt64/int64(limit) {
		return fmt.Errorf("%w: page %d with limit %d", ErrPageOutOfRange, q.Page, limit)
	}
	return nil
}

// Pagination is the envelope returned with every report page.
type Pagination struct {
	TotalPages     int   `json:"totalPages"`
	TotalRecords   int64 `json:"totalRecords"`
	RecordsPerPage int   `json:"recordsPerPage"`
	CurrentPage    int   `json:"currentPage"`
}

// NewPagination computes totalPages as ceil(totalRecords/recordsPerPage).
func NewPagination(total int64, q Query) Pagination {
	pages := 0
	if q.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(q.Limit)))
	}
	return Pagination{
		TotalPages:     pages,
		TotalRecords:   total,
		RecordsPerPage: q.Limit,
		CurrentPage:    q.Page,
	}
}

// Page is one page of report rows.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Diagnostics summarises one report generation for the observability hook.
type Diagnostics struct {
	Report  string
	Rows    int
	Sources map[LinkSource]int
	Issues  []Issue
}

// FormatDate renders a date as YYYY-MM-DD, or N/A for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.UTC().Format("2006-01-02")
}

var textDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

// FormatTextDate renders a stored date string as YYYY-MM-DD, or N/A when it is
// not a recognisable date.
func FormatTextDate(s Text) string {
	for _, layout := range textDateLayouts {
		if t, err := time.Parse(layout, string(s)); err == nil {
			return FormatDate(t)
		}
	}
	return NotAvailable
}
