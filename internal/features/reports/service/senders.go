package service

import (
	"context"
	"fmt"

	"parcel-admin/internal/features/reports/domain"
	"parcel-admin/internal/features/reports/resolver"

	"github.com/shopspring/decimal"
)

func (s *ReportService) buildSenders(ctx context.Context, q domain.Query, diag *collector) (*domain.Page[domain.SenderReportRow], error) {
	f := filterOf(q)

	total, err := s.repo.CountSenders(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to count senders: %w", err)
	}

	phones, err := s.repo.ListSenders(ctx, f, windowOf(q))
	if err != nil {
		return nil, fmt.Errorf("failed to list senders: %w", err)
	}

	var consignments []domain.Consignment
	if len(phones) > 0 {
		if consignments, err = s.repo.ConsignmentsBySender(ctx, phones, f); err != nil {
			return nil, fmt.Errorf("failed to load sender consignments: %w", err)
		}
	}

	snap, err := s.loadSnapshot(ctx, consignments, phones...)
	if err != nil {
		return nil, err
	}

	terms, err := s.fareTerms(ctx)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]resolved, len(phones))
	for _, r := range s.resolveAll(consignments, snap, terms, diag) {
		phone := r.Consignment.PhoneNumber
		groups[phone] = append(groups[phone], r)
	}

	rows := make([]domain.SenderReportRow, 0, len(phones))
	for _, phone := range phones {
		rows = append(rows, senderRow(phone, groups[phone], snap))
	}

	return &domain.Page[domain.SenderReportRow]{
		Data:       rows,
		Pagination: domain.NewPagination(total, q),
	}, nil
}

// senderRow summarises one sender. Consignments arrive newest first.
func senderRow(phone string, items []resolved, snap *resolver.Snapshot) domain.SenderReportRow {
	row := domain.SenderReportRow{
		SenderID:            phone,
		Name:                "Unknown",
		PhoneNo:             phone,
		Email:               domain.NotAvailable,
		Address:             domain.NotAvailable,
		NoOfConsignment:     len(items),
		StatusCounts:        make(map[string]int),
		StatusOfConsignment: "No Consignments",
		SenderConsignment:   make([]domain.SenderConsignmentRow, 0, len(items)),
		CreatedAt:           domain.NotAvailable,
		LastUpdated:         domain.NotAvailable,
	}

	if p, ok := snap.Profile(phone); ok {
		row.SenderID = p.ID.Hex()
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
	}

	sum := decimal.Zero
	paid := 0
	for i, r := range items {
		c := r.Consignment
		if i == 0 {
			row.StatusOfConsignment = r.Status
		}

		row.StatusCounts[r.Status]++
		switch {
		case domain.IsCompleted(r.Status):
			row.CompletedConsignments++
		case r.Status == domain.StatusPending:
			row.PendingConsignments++
		case r.Status == domain.StatusInProgress || r.Status == domain.CarryInTransit || r.Status == domain.CarryCollected:
			row.InProgressConsignments++
		}

		sum = sum.Add(r.Figures.TotalAmountSender)
		if r.SenderPay == domain.PaymentPaid {
			paid++
		}

		hasTraveler := "No"
		if r.Resolution.Traveler.Found {
			hasTraveler = "Yes"
		}
		row.SenderConsignment = append(row.SenderConsignment, domain.SenderConsignmentRow{
			ConsignmentID:     c.ConsignmentID,
			Description:       c.Description,
			Status:            r.Status,
			TotalAmountSender: r.Figures.TotalAmountSender.InexactFloat64(),
			PaymentStatus:     r.SenderPay,
			Distance:          c.Distance,
			Category:          c.Category,
			Weight:            c.Weight,
			DimensionalWeight: c.DimensionalWeight,
			HasTraveler:       hasTraveler,
			TravelerName:      r.Resolution.Traveler.Name,
			CreatedAt:         domain.FormatDate(c.CreatedAt),
			UpdatedAt:         domain.FormatDate(c.UpdatedAt),
		})
	}

	row.TotalAmount = sum.InexactFloat64()
	row.Payment = groupPayment(paid, len(items))
	if n := len(items); n > 0 {
		row.AverageAmount = sum.Div(decimal.NewFromInt(int64(n))).Round(2).InexactFloat64()
		row.CompletionRate = percent(row.CompletedConsignments, n)
	}
	return row
}

// groupPayment is Paid when every item is paid, Partial when some are.
func groupPayment(paid, total int) string {
	switch {
	case total == 0 || paid == 0:
		return domain.PaymentPending
	case paid == total:
		return domain.PaymentPaid
	default:
		return domain.PaymentPartial
	}
}

// percent returns part/total as a percentage rounded to two places.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2).
		InexactFloat64()
}
