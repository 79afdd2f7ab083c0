package service

import (
	"context"
	"fmt"

	"parcel-admin/internal/features/reports/domain"
	"parcel-admin/internal/features/reports/ports"
	"parcel-admin/internal/features/reports/resolver"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// recentTransactionCount is how many ledger entries a traveler row shows.
const recentTransactionCount = 5

func (s *ReportService) buildTravelers(ctx context.Context, q domain.Query, diag *collector) (*domain.Page[domain.TravelerReportRow], error) {
	f := filterOf(q)

	total, err := s.repo.CountTravelers(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to count travelers: %w", err)
	}

	phones, err := s.repo.ListTravelers(ctx, f, windowOf(q))
	if err != nil {
		return nil, fmt.Errorf("failed to list travelers: %w", err)
	}

	var trips []domain.TravelDetail
	if len(phones) > 0 {
		if trips, err = s.repo.TravelDetailsByPhone(ctx, phones); err != nil {
			return nil, fmt.Errorf("failed to load traveler trips: %w", err)
		}
	}

	consignments, err := s.consignmentsOnTrips(ctx, trips)
	if err != nil {
		return nil, err
	}

	// Consignments are re-resolved from scratch so a higher priority link to
	// another traveler still wins.
	snap, err := s.loadSnapshot(ctx, consignments, phones...)
	if err != nil {
		return nil, err
	}

	terms, err := s.fareTerms(ctx)
	if err != nil {
		return nil, err
	}

	carried := make(map[string][]resolved, len(phones))
	for _, r := range s.resolveAll(consignments, snap, terms, diag) {
		if r.Resolution.Travel == nil {
			continue
		}
		phone := r.Resolution.Travel.PhoneNumber
		carried[phone] = append(carried[phone], r)
	}

	tripsByPhone := make(map[string][]domain.TravelDetail, len(phones))
	for _, t := range trips {
		tripsByPhone[t.PhoneNumber] = append(tripsByPhone[t.PhoneNumber], t)
	}

	rows := make([]domain.TravelerReportRow, 0, len(phones))
	for _, phone := range phones {
		rows = append(rows, travelerRow(phone, tripsByPhone[phone], carried[phone], snap, diag))
	}

	return &domain.Page[domain.TravelerReportRow]{
		Data:       rows,
		Pagination: domain.NewPagination(total, q),
	}, nil
}

// consignmentsOnTrips loads every consignment any link record ties to trips.
func (s *ReportService) consignmentsOnTrips(ctx context.Context, trips []domain.TravelDetail) ([]domain.Consignment, error) {
	travelIDs := make([]string, 0, len(trips))
	for _, t := range trips {
		travelIDs = append(travelIDs, t.TravelID)
	}
	sel := ports.LinkSelector{TravelIDs: resolver.Distinct(travelIDs)}
	if sel.IsEmpty() {
		return nil, nil
	}

	var (
		assignments []domain.CarryAssignment
		requests    []domain.CarryRequest
		histories   []domain.TravelHistory
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assignments, err = s.repo.CarryAssignments(gctx, sel)
		return err
	})
	g.Go(func() error {
		var err error
		requests, err = s.repo.CarryRequests(gctx, sel, true)
		return err
	})
	g.Go(func() error {
		var err error
		histories, err = s.repo.TravelHistories(gctx, sel)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load trip links: %w", err)
	}

	ids := resolver.ConsignmentIDs(assignments, requests, histories)
	if len(ids) == 0 {
		return nil, nil
	}
	consignments, err := s.repo.ConsignmentsByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load carried consignments: %w", err)
	}
	return consignments, nil
}

// travelerRow summarises one traveler. Trips arrive newest first.
func travelerRow(phone string, trips []domain.TravelDetail, items []resolved, snap *resolver.Snapshot, diag *collector) domain.TravelerReportRow {
	row := domain.TravelerReportRow{
		TravelerID:          phone,
		Name:                "Unknown",
		PhoneNo:             phone,
		Email:               domain.NotAvailable,
		Address:             domain.NotAvailable,
		NoOfConsignment:     len(items),
		TravelerConsignment: make([]domain.TravelerConsignmentRow, 0, len(items)),
		StatusOfConsignment: "No Travels",
		TotalTravels:        len(trips),
		RecentTransactions:  []domain.TransactionRow{},
		CreatedAt:           domain.NotAvailable,
		LastUpdated:         domain.NotAvailable,
	}

	if p, ok := snap.Profile(phone); ok {
		row.TravelerID = p.ID.Hex()
		if p.UserID != "" {
			row.TravelerID = p.UserID
		}
		if name := p.FullName(); name != "" {
			row.Name = name
		}
		if p.Email != "" {
			row.Email = p.Email
		}
		if addr := p.Address(); addr != "" {
			row.Address = addr
		}
		row.IsVerified = p.IsVerified
		row.CreatedAt = domain.FormatDate(p.CreatedAt)
		row.LastUpdated = domain.FormatDate(p.LastUpdated)
	} else if len(trips) > 0 && trips[0].Username != "" {
		row.Name = trips[0].Username
	}

	if len(trips) > 0 {
		row.StatusOfConsignment = trips[0].Status
	}
	for _, t := range trips {
		if t.Status == domain.StatusCompleted {
			row.CompletedTravels++
		}
	}
	row.CompletionRate = percent(row.CompletedTravels, row.TotalTravels)

	derived := decimal.Zero
	paid, payable := 0, 0
	for _, r := range items {
		c := r.Consignment
		res := r.Resolution

		derived = derived.Add(r.Figures.AmountToTraveler)
		if r.TravelerPay != domain.PaymentNA {
			payable++
			if r.TravelerPay == domain.PaymentPaid {
				paid++
			}
		}

		row.TravelerConsignment = append(row.TravelerConsignment, domain.TravelerConsignmentRow{
			ConsignmentID:         c.ConsignmentID,
			TravelID:              res.Travel.TravelID,
			Description:           c.Description,
			Status:                r.Status,
			AmountToTraveler:      r.Figures.AmountToTraveler.InexactFloat64(),
			TravelerPaymentStatus: r.TravelerPay,
			TravelMode:            res.TravelMode,
			AcceptanceDate:        domain.FormatDate(res.AcceptedAt),
			Distance:              c.Distance,
			Category:              c.Category,
			Weight:                c.Weight,
			Pickup:                c.StartingLocation,
			Delivery:              c.GoingLocation,
			LinkSource:            res.Source,
		})
	}

	ledger := decimal.Zero
	if e, ok := snap.Earning(phone); ok {
		v, issue := domain.NormalizeField("earnings.totalEarnings", e.TotalEarnings, "")
		diag.addPtr(issue)
		ledger = decimal.NewFromFloat(v)
		row.RecentTransactions = recentTransactions(e, diag)
	}

	row.DerivedAmount = derived.InexactFloat64()
	row.LedgerAmount = ledger.InexactFloat64()
	row.TotalAmount = decimal.Max(derived, ledger).InexactFloat64()
	row.Payment = groupPayment(paid, payable)
	return row
}

// recentTransactions returns the last ledger entries, newest first.
func recentTransactions(e *domain.Earning, diag *collector) []domain.TransactionRow {
	txs := e.Transactions
	if len(txs) > recentTransactionCount {
		txs = txs[len(txs)-recentTransactionCount:]
	}

	out := make([]domain.TransactionRow, 0, len(txs))
	for i := len(txs) - 1; i >= 0; i-- {
		t := txs[i]
		amount, issue := domain.NormalizeField("earnings.transactions.amount", t.Amount, "")
		diag.addPtr(issue)
		out = append(out, domain.TransactionRow{
			Title:         t.Title,
			Amount:        amount,
			Status:        t.Status,
			PaymentMethod: t.PaymentMethod,
			Timestamp:     domain.FormatDate(t.Timestamp),
		})
	}
	return out
}
