package service

import (
	"context"
	"fmt"

	"parcel-admin/internal/features/reports/domain"
	"parcel-admin/internal/features/reports/resolver"
)

func (s *ReportService) buildConsolidated(ctx context.Context, q domain.Query, diag *collector) (*domain.Page[domain.ConsolidatedRow], error) {
	f := filterOf(q)

	total, err := s.repo.CountConsignments(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to count consignments: %w", err)
	}

	consignments, err := s.repo.ListConsignments(ctx, f, windowOf(q))
	if err != nil {
		return nil, fmt.Errorf("failed to list consignments: %w", err)
	}

	snap, err := s.loadSnapshot(ctx, consignments)
	if err != nil {
		return nil, err
	}

	terms, err := s.fareTerms(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ConsolidatedRow, 0, len(consignments))
	for _, r := range s.resolveAll(consignments, snap, terms, diag) {
		rows = append(rows, consolidatedRow(r, snap, diag))
	}

	return &domain.Page[domain.ConsolidatedRow]{
		Data:       rows,
		Pagination: domain.NewPagination(total, q),
	}, nil
}

func consolidatedRow(r resolved, snap *resolver.Snapshot, diag *collector) domain.ConsolidatedRow {
	c := r.Consignment
	res := r.Resolution

	row := domain.ConsolidatedRow{
		ConsignmentID:            c.ConsignmentID,
		ConsignmentStatus:        c.Status,
		SenderID:                 res.Sender.ID,
		SenderName:               res.Sender.Name,
		SenderMobileNo:           c.PhoneNumber,
		SenderAddress:            res.Sender.Address,
		TotalAmountSender:        r.Figures.TotalAmountSender.InexactFloat64(),
		PaymentStatus:            r.SenderPay,
		TravelerID:               res.Traveler.ID,
		TravelerAcceptanceDate:   domain.FormatDate(res.AcceptedAt),
		TravelerName:             res.Traveler.Name,
		TravelerMobileNo:         res.Traveler.Phone,
		TravelerAddress:          res.Traveler.Address,
		AmountToBePaidToTraveler: r.Figures.AmountToTraveler.InexactFloat64(),
		TravelerPaymentStatus:    r.TravelerPay,
		TravelMode:               domain.NotAvailable,
		TravelStartDate:          domain.NotAvailable,
		TravelEndDate:            domain.NotAvailable,
		RecepientName:            c.ReceiverName,
		RecepientAddress:         c.GoingLocation,
		RecepientPhoneNo:         c.ReceiverPhone,
		ReceivedDate:             receivedDate(res.Carry),
		TnEAmount:                r.Figures.TnEAmount.InexactFloat64(),
		TaxComponent:             r.Figures.TaxComponent.InexactFloat64(),
		LinkSource:               res.Source,
		Weight:                   c.Weight,
		Category:                 c.Category,
		Subcategory:              c.Subcategory,
		Description:              c.Description,
		Dimensions:               c.Dimensions,
		Distance:                 c.Distance,
		Duration:                 c.Duration,
		HandleWithCare:           c.HandleWithCare,
		SpecialRequest:           c.SpecialRequest,
		DateOfSending:            domain.FormatDate(c.DateOfSending),
		CreatedAt:                domain.FormatDate(c.CreatedAt),
		UpdatedAt:                domain.FormatDate(c.UpdatedAt),
	}

	if res.Travel != nil {
		if res.TravelMode != "" {
			row.TravelMode = res.TravelMode
		}
		row.TravelStartDate = domain.FormatDate(res.Travel.TravelDate)
		row.TravelEndDate = domain.FormatTextDate(res.Travel.ExpectedEndTime)
	}

	if res.Traveler.Found {
		if e, ok := snap.Earning(res.Traveler.Phone); ok {
			v, issue := domain.NormalizeField("earnings.totalEarnings", e.TotalEarnings, "")
			diag.addPtr(issue)
			row.TravelerTotalEarnings = v
		}
	}

	return row
}

// receivedDate is the recorded delivery time, else the last update of a
// delivered assignment.
func receivedDate(carry *domain.CarryAssignment) string {
	if carry == nil {
		return domain.NotAvailable
	}
	if d := domain.FormatTextDate(carry.DeliveredAt); d != domain.NotAvailable {
		return d
	}
	if domain.EffectiveStatus("", carry) == domain.CarryDelivered {
		return domain.FormatDate(carry.UpdatedAt)
	}
	return domain.NotAvailable
}
