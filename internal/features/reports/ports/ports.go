package ports

import (
	"context"

	"parcel-admin/internal/core/daterange"
	faredomain "parcel-admin/internal/features/fares/domain"
	"parcel-admin/internal/features/reports/domain"
)

// Filter narrows a primary collection by free text and createdAt range.
type Filter struct {
	Search string
	Range  daterange.Range
}

// Window is an offset/limit slice of a sorted result.
type Window struct {
	Skip  int64
	Limit int64
}

// LinkSelector matches link records by consignment id or by travel id.
// Empty lists match nothing.
type LinkSelector struct {
	ConsignmentIDs []string
	TravelIDs      []string
}

// IsEmpty reports whether the selector can match anything.
func (s LinkSelector) IsEmpty() bool {
	return len(s.ConsignmentIDs) == 0 && len(s.TravelIDs) == 0
}

// Repository is the read-only entity accessor set used by the reports.
// Listing methods sort by createdAt descending then _id ascending.
type Repository interface {
	CountConsignments(ctx context.Context, f Filter) (int64, error)
	ListConsignments(ctx context.Context, f Filter, w Window) ([]domain.Consignment, error)
	ConsignmentsByID(ctx context.Context, consignmentIDs []string) ([]domain.Consignment, error)

	// CountSenders and ListSenders page over distinct sender phones, most
	// recently active first.
	CountSenders(ctx context.Context, f Filter) (int64, error)
	ListSenders(ctx context.Context, f Filter, w Window) ([]string, error)
	ConsignmentsBySender(ctx context.Context, phones []string, f Filter) ([]domain.Consignment, error)

	CountTravelDetails(ctx context.Context, f Filter) (int64, error)
	ListTravelDetails(ctx context.Context, f Filter, w Window) ([]domain.TravelDetail, error)
	TravelDetailsByTravelID(ctx context.Context, travelIDs []string) ([]domain.TravelDetail, error)
	TravelDetailsByPhone(ctx context.Context, phones []string) ([]domain.TravelDetail, error)

	// CountTravelers and ListTravelers page over distinct traveler phones.
	CountTravelers(ctx context.Context, f Filter) (int64, error)
	ListTravelers(ctx context.Context, f Filter, w Window) ([]string, error)

	CarryAssignments(ctx context.Context, sel LinkSelector) ([]domain.CarryAssignment, error)
	CarryRequests(ctx context.Context, sel LinkSelector, acceptedOnly bool) ([]domain.CarryRequest, error)
	TravelHistories(ctx context.Context, sel LinkSelector) ([]domain.TravelHistory, error)

	Profiles(ctx context.Context, phones []string) ([]domain.Profile, error)
	Earnings(ctx context.Context, phones []string) ([]domain.Earning, error)
}

// FareConfigReader supplies the fare configuration in effect.
type FareConfigReader interface {
	GetConfig(ctx context.Context) (*faredomain.FareConfig, error)
}

// DiagnosticsHook receives one summary per generated report.
type DiagnosticsHook interface {
	ReportGenerated(ctx context.Context, d domain.Diagnostics)
}

// ReportService is the primary port used by the HTTP handlers.
type ReportService interface {
	ConsolidatedReport(ctx context.Context, q domain.Query) (*domain.Page[domain.ConsolidatedRow], error)
	SenderReport(ctx context.Context, q domain.Query) (*domain.Page[domain.SenderReportRow], error)
	TravelerReport(ctx context.Context, q domain.Query) (*domain.Page[domain.TravelerReportRow], error)
	TravelDetailsReport(ctx context.Context, q domain.Query) (*domain.Page[domain.TravelDetailsRow], error)
}
