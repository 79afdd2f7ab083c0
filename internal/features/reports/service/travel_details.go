package service

import (
	"context"
	"fmt"
	"strings"

	"parcel-admin/internal/features/reports/domain"
	"parcel-admin/internal/features/reports/ports"
	"parcel-admin/internal/features/reports/resolver"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func (s *ReportService) buildTravelDetails(ctx context.Context, q domain.Query, diag *collector) (*domain.Page[domain.TravelDetailsRow], error) {
	f := filterOf(q)

	total, err := s.repo.CountTravelDetails(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to count travel details: %w", err)
	}

	trips, err := s.repo.ListTravelDetails(ctx, f, windowOf(q))
	if err != nil {
		return nil, fmt.Errorf("failed to list travel details: %w", err)
	}

	travelIDs := make([]string, 0, len(trips))
	phones := make([]string, 0, len(trips))
	for _, t := range trips {
		travelIDs = append(travelIDs, t.TravelID)
		phones = append(phones, t.PhoneNumber)
	}
	travelIDs = resolver.Distinct(travelIDs)

	var r resolver.Records
	if len(trips) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if len(travelIDs) == 0 {
				return nil
			}
			var err error
			r.Requests, err = s.repo.CarryRequests(gctx, ports.LinkSelector{TravelIDs: travelIDs}, false)
			return err
		})
		g.Go(func() error {
			var err error
			r.Profiles, err = s.repo.Profiles(gctx, resolver.Distinct(phones))
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("failed to load trip requests: %w", err)
		}
	}
	snap := resolver.NewSnapshot(r)

	requests := make(map[string][]domain.CarryRequest, len(travelIDs))
	for _, req := range r.Requests {
		requests[req.TravelID] = append(requests[req.TravelID], req)
	}

	rows := make([]domain.TravelDetailsRow, 0, len(trips))
	for i := range trips {
		rows = append(rows, travelDetailsRow(&trips[i], requests[trips[i].TravelID], snap, diag))
	}

	return &domain.Page[domain.TravelDetailsRow]{
		Data:       rows,
		Pagination: domain.NewPagination(total, q),
	}, nil
}

func travelDetailsRow(t *domain.TravelDetail, requests []domain.CarryRequest, snap *resolver.Snapshot, diag *collector) domain.TravelDetailsRow {
	row := domain.TravelDetailsRow{
		TravelID:          t.TravelID,
		TravelerID:        t.PhoneNumber,
		TravelerName:      "Unknown",
		PhoneNumber:       t.PhoneNumber,
		LeavingLocation:   t.LeavingLocation,
		GoingLocation:     t.GoingLocation,
		TravelMode:        t.TravelMode,
		TravelModeNumber:  t.TravelModeNumber,
		TravelDate:        domain.FormatDate(t.TravelDate),
		ExpectedStartTime: t.ExpectedStartTime,
		ExpectedEndTime:   t.ExpectedEndTime,
		Distance:          t.Distance,
		Duration:          t.Duration,
		Weight:            t.Weight,
		TE:                t.TE,
		Discount:          t.Discount,
		Status:            t.Status,
		TotalRequests:     len(requests),
		CreatedAt:         domain.FormatDate(t.CreatedAt),
		UpdatedAt:         domain.FormatDate(t.UpdatedAt),
	}

	if p, ok := snap.Profile(t.PhoneNumber); ok {
		row.TravelerID = p.ID.Hex()
		if name := p.FullName(); name != "" {
			row.TravelerName = name
		}
	} else if t.Username != "" {
		row.TravelerName = t.Username
	}

	var issue *domain.Issue
	row.ExpectedEarning, issue = domain.NormalizeField("traveldetails.expectedearning", t.ExpectedEarning, domain.TotalFare)
	diag.addPtr(issue)
	row.PayableAmount, issue = domain.NormalizeField("traveldetails.payableAmount", t.PayableAmount, domain.TotalFare)
	diag.addPtr(issue)

	earned := decimal.Zero
	for _, req := range requests {
		if !strings.EqualFold(req.Status, domain.StatusAccepted) {
			continue
		}
		row.AcceptedRequests++
		v, issue := domain.NormalizeField("consignment_carry_riders.earning", req.Earning, domain.TotalFare)
		diag.addPtr(issue)
		earned = earned.Add(decimal.NewFromFloat(v))
	}
	row.TotalEarning = earned.InexactFloat64()
	row.AcceptanceRate = percent(row.AcceptedRequests, row.TotalRequests)
	return row
}
