package resolver

import (
	"parcel-admin/internal/features/reports/domain"
)

// Resolver ties a consignment to its sender and, through the first matching
// strategy, to a trip and traveler.
type Resolver struct {
	strategies []Strategy
}

// New creates a Resolver that tries strategies in order.
func New(strategies ...Strategy) *Resolver {
	return &Resolver{
		strategies: strategies,
	}
}

// Default tries travel history, then carry assignment, then carry request.
func Default() *Resolver {
	return New(HistoryStrategy{}, AssignmentStrategy{}, RequestStrategy{})
}

// Resolve builds the resolution of c against snap. Evaluation stops at the first
// matching strategy. With no match the traveler is N/A and the amount 0.
func (r *Resolver) Resolve(c *domain.Consignment, snap *Snapshot) (domain.Resolution, []domain.Issue) {
	res := domain.Resolution{
		Source:   domain.SourceNone,
		Sender:   r.sender(c, snap),
		Traveler: domain.UnresolvedTraveler(),
	}
	if carry, ok := snap.Assignment(c.ConsignmentID); ok {
		res.Carry = carry
	}

	var issues []domain.Issue
	for _, strategy := range r.strategies {
		m, ok := strategy.Match(c, snap)
		if !ok {
			continue
		}

		res.Source = strategy.Source()
		res.Travel = m.Travel
		res.AcceptedAt = m.AcceptedAt
		res.TravelMode = m.TravelMode
		res.Traveler = traveler(m.Travel, snap)

		amount, issue := domain.NormalizeField(m.EarningPath, m.Earning, domain.TotalFare)
		if issue != nil {
			issues = append(issues, *issue)
		}
		res.AmountToTraveler = amount
		break
	}

	return res, issues
}

func (r *Resolver) sender(c *domain.Consignment, snap *Snapshot) domain.Party {
	p, ok := snap.Profile(c.PhoneNumber)
	if !ok {
		return domain.Party{
			ID:      c.PhoneNumber,
			Name:    "Unknown",
			Phone:   c.PhoneNumber,
			Email:   domain.NotAvailable,
			Address: c.StartingLocation,
		}
	}
	return domain.Party{
		ID:      p.ID.Hex(),
		Name:    orUnknown(p.FullName()),
		Phone:   c.PhoneNumber,
		Email:   orNA(p.Email),
		Address: c.StartingLocation,
		Found:   true,
	}
}

func traveler(t *domain.TravelDetail, snap *Snapshot) domain.Party {
	p, ok := snap.Profile(t.PhoneNumber)
	if !ok {
		return domain.Party{
			ID:      orNA(t.PhoneNumber),
			Name:    orUnknown(t.Username),
			Phone:   orNA(t.PhoneNumber),
			Email:   domain.NotAvailable,
			Address: domain.NotAvailable,
			Found:   true,
		}
	}
	return domain.Party{
		ID:      p.ID.Hex(),
		Name:    orUnknown(firstNonEmpty(p.FullName(), t.Username)),
		Phone:   t.PhoneNumber,
		Email:   orNA(p.Email),
		Address: orNA(p.Address()),
		Found:   true,
	}
}

func orNA(s string) string {
	if s == "" {
		return domain.NotAvailable
	}
	return s
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
