package resolver

import (
	"sort"
	"time"

	"parcel-admin/internal/features/reports/domain"
)

// Match is what a strategy found for a consignment.
type Match struct {
	Travel      *domain.TravelDetail
	AcceptedAt  time.Time
	TravelMode  string
	Earning     domain.Amount
	EarningPath string
}

// Strategy is one link path from a consignment to a trip. A strategy matches
// only when both its link record and the linked trip are in the snapshot.
type Strategy interface {
	// Source names the link path.
	Source() domain.LinkSource
	// Match looks the consignment up in the snapshot.
	Match(c *domain.Consignment, snap *Snapshot) (Match, bool)
}

// HistoryStrategy links through travel history entries, most recent entry first.
type HistoryStrategy struct{}

// Source implements Strategy.
func (HistoryStrategy) Source() domain.LinkSource { return domain.SourceHistory }

// Match implements Strategy.
func (HistoryStrategy) Match(c *domain.Consignment, snap *Snapshot) (Match, bool) {
	links := append([]HistoryLink(nil), snap.HistoryLinks(c.ConsignmentID)...)
	// Later entries win ties, so reverse first and sort stably.
	for i, j := 0, len(links)-1; i < j; i, j = i+1, j-1 {
		links[i], links[j] = links[j], links[i]
	}
	sort.SliceStable(links, func(i, j int) bool {
		return links[i].Entry.Timestamp.After(links[j].Entry.Timestamp)
	})

	for _, link := range links {
		travel, ok := snap.Travel(link.History.TravelID)
		if !ok {
			continue
		}

		m := Match{
			Travel:      travel,
			AcceptedAt:  link.Entry.Timestamp,
			TravelMode:  firstNonEmpty(link.History.TravelMode, travel.TravelMode),
			Earning:     link.Entry.Earning,
			EarningPath: "travelhistories.consignmentDetails.earning",
		}
		if m.Earning.IsAbsent() {
			if carry, ok := snap.Assignment(c.ConsignmentID); ok && carry.TravelID == travel.TravelID {
				m.Earning = carry.Earning
				m.EarningPath = "consignmenttocarries.earning"
			}
		}
		return m, true
	}
	return Match{}, false
}

// AssignmentStrategy links through the authoritative carry assignment.
type AssignmentStrategy struct{}

// Source implements Strategy.
func (AssignmentStrategy) Source() domain.LinkSource { return domain.SourceAssignment }

// Match implements Strategy.
func (AssignmentStrategy) Match(c *domain.Consignment, snap *Snapshot) (Match, bool) {
	carry, ok := snap.Assignment(c.ConsignmentID)
	if !ok {
		return Match{}, false
	}
	travel, ok := snap.Travel(carry.TravelID)
	if !ok {
		return Match{}, false
	}

	return Match{
		Travel:      travel,
		AcceptedAt:  carry.CreatedAt,
		TravelMode:  travel.TravelMode,
		Earning:     carry.Earning,
		EarningPath: "consignmenttocarries.earning",
	}, true
}

// RequestStrategy links through the most recent Accepted carry request.
type RequestStrategy struct{}

// Source implements Strategy.
func (RequestStrategy) Source() domain.LinkSource { return domain.SourceRequest }

// Match implements Strategy.
func (RequestStrategy) Match(c *domain.Consignment, snap *Snapshot) (Match, bool) {
	requests := append([]*domain.CarryRequest(nil), snap.AcceptedRequests(c.ConsignmentID)...)
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})

	for _, req := range requests {
		travel, ok := snap.Travel(req.TravelID)
		if !ok {
			continue
		}
		return Match{
			Travel:      travel,
			AcceptedAt:  req.CreatedAt,
			TravelMode:  firstNonEmpty(req.TravelMode, travel.TravelMode),
			Earning:     req.Earning,
			EarningPath: "consignment_carry_riders.earning",
		}, true
	}
	return Match{}, false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
