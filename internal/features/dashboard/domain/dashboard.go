package domain

import (
	"errors"
	"fmt"
	"time"

	"parcel-admin/internal/core/daterange"

	"github.com/shopspring/decimal"
)

// ErrInvalidRegionType is returned for a breakdown type other than Sender or Traveller.
var ErrInvalidRegionType = errors.New("invalid region type")

// Side selects which party of the marketplace a figure describes.
type Side string

const (
	// SideSender aggregates consignments and their sender earnings.
	SideSender Side = "Sender"
	// SideTraveller aggregates trips and their expected earnings.
	SideTraveller Side = "Traveller"
)

// ParseSide accepts exactly "Sender" or "Traveller".
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideSender, SideTraveller:
		return Side(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRegionType, s)
	}
}

// Totals is the count and summed amount of one side.
type Totals struct {
	Count  int64
	Amount decimal.Decimal
}

// SalesLine is one row of the sales dashboard.
type SalesLine struct {
	TotalNo         int64  `json:"totalNo"`
	TransactionType Side   `json:"transactionType"`
	Amount          string `json:"amount"`
}

// NewSalesLine formats totals with two decimals.
func NewSalesLine(side Side, t Totals) SalesLine {
	return SalesLine{
		TotalNo:         t.Count,
		TransactionType: side,
		Amount:          t.Amount.StringFixed(2),
	}
}

// RegionLine is the summed amount for one region and travel mode.
type RegionLine struct {
	StateWise    string  `json:"stateWise"`
	ModeOfTravel string  `json:"modeOfTravel"`
	TotalAmount  float64 `json:"totalAmount"`
}

// Filters echoes the applied window; nil bounds are unbounded.
type Filters struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Type      Side       `json:"type,omitempty"`
}

// NewFilters describes r.
func NewFilters(r daterange.Range) Filters {
	var f Filters
	if !r.Start.IsZero() {
		start := r.Start
		f.StartDate = &start
	}
	if !r.End.IsZero() {
		end := r.End
		f.EndDate = &end
	}
	return f
}
