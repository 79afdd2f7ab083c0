package service

import (
	"context"
	"fmt"

	"parcel-admin/internal/features/reports/domain"
	"parcel-admin/internal/features/reports/ports"
	"parcel-admin/internal/features/reports/resolver"

	"golang.org/x/sync/errgroup"
)

// loadSnapshot prefetches everything the resolver may need for consignments.
// Link records are fetched concurrently, then trips by the collected travel ids,
// then profiles and earnings by the collected phones.
func (s *ReportService) loadSnapshot(ctx context.Context, consignments []domain.Consignment, extraPhones ...string) (*resolver.Snapshot, error) {
	ids := make([]string, 0, len(consignments))
	senders := make([]string, 0, len(consignments))
	for i := range consignments {
		ids = append(ids, consignments[i].ConsignmentID)
		senders = append(senders, consignments[i].PhoneNumber)
	}
	ids = resolver.Distinct(ids)
	sel := ports.LinkSelector{ConsignmentIDs: ids}

	var r resolver.Records

	if !sel.IsEmpty() {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			r.Assignments, err = s.repo.CarryAssignments(gctx, sel)
			return err
		})
		g.Go(func() error {
			var err error
			r.Requests, err = s.repo.CarryRequests(gctx, sel, true)
			return err
		})
		g.Go(func() error {
			var err error
			r.Histories, err = s.repo.TravelHistories(gctx, sel)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("failed to load link records: %w", err)
		}
	}

	if travelIDs := resolver.TravelIDs(r.Assignments, r.Requests, r.Histories); len(travelIDs) > 0 {
		travels, err := s.repo.TravelDetailsByTravelID(ctx, travelIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load travel details: %w", err)
		}
		r.Travels = travels
	}

	travelers := make([]string, 0, len(r.Travels))
	for i := range r.Travels {
		travelers = append(travelers, r.Travels[i].PhoneNumber)
	}
	if err := s.loadParties(ctx, &r, resolver.Distinct(senders, travelers, extraPhones)); err != nil {
		return nil, err
	}

	return resolver.NewSnapshot(r), nil
}

// loadParties fetches profiles and earnings for phones concurrently.
func (s *ReportService) loadParties(ctx context.Context, r *resolver.Records, phones []string) error {
	if len(phones) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		r.Profiles, err = s.repo.Profiles(gctx, phones)
		return err
	})
	g.Go(func() error {
		var err error
		r.Earnings, err = s.repo.Earnings(gctx, phones)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load profiles and earnings: %w", err)
	}
	return nil
}

// resolved is one consignment run through resolver, deriver and classifier.
type resolved struct {
	Consignment *domain.Consignment
	Resolution  domain.Resolution
	Figures     domain.Figures
	Status      string
	SenderPay   string
	TravelerPay string
}

// resolveAll derives every consignment against snap. Rows share no state.
func (s *ReportService) resolveAll(consignments []domain.Consignment, snap *resolver.Snapshot, terms domain.FareTerms, diag *collector) []resolved {
	out := make([]resolved, len(consignments))
	for i := range consignments {
		c := &consignments[i]
		res, issues := s.resolver.Resolve(c, snap)
		diag.add(issues...)
		diag.source(res.Source)

		figures, issues := domain.Derive(c, res, terms)
		diag.add(issues...)

		status := domain.EffectiveStatus(c.Status, res.Carry)
		out[i] = resolved{
			Consignment: c,
			Resolution:  res,
			Figures:     figures,
			Status:      status,
			SenderPay:   domain.SenderPaymentStatus(figures.TotalAmountSender.InexactFloat64(), status),
			TravelerPay: domain.TravelerPaymentStatus(figures.AmountToTraveler.InexactFloat64(), status),
		}
	}
	return out
}
