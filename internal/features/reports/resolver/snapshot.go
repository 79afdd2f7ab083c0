package resolver

import (
	"sort"
	"strings"
	"time"

	"parcel-admin/internal/features/reports/domain"
)

// Records are the raw link and entity records prefetched for one report page.
type Records struct {
	Assignments []domain.CarryAssignment
	Requests    []domain.CarryRequest
	Histories   []domain.TravelHistory
	Travels     []domain.TravelDetail
	Profiles    []domain.Profile
	Earnings    []domain.Earning
}

// HistoryLink is one history entry that mentions a consignment.
type HistoryLink struct {
	History *domain.TravelHistory
	Entry   *domain.HistoryEntry
}

// Snapshot indexes a page's records for in-memory resolution. It is read-only
// once built and safe to share between goroutines.
type Snapshot struct {
	assignments map[string][]*domain.CarryAssignment
	requests    map[string][]*domain.CarryRequest
	histories   map[string][]HistoryLink
	travels     map[string]*domain.TravelDetail
	profiles    map[string]*domain.Profile
	earnings    map[string]*domain.Earning
}

// NewSnapshot indexes records by consignment id, travel id and phone number.
// Only Accepted carry requests are kept.
func NewSnapshot(r Records) *Snapshot {
	s := &Snapshot{
		assignments: make(map[string][]*domain.CarryAssignment),
		requests:    make(map[string][]*domain.CarryRequest),
		histories:   make(map[string][]HistoryLink),
		travels:     make(map[string]*domain.TravelDetail, len(r.Travels)),
		profiles:    make(map[string]*domain.Profile, len(r.Profiles)),
		earnings:    make(map[string]*domain.Earning, len(r.Earnings)),
	}

	for i := range r.Assignments {
		a := &r.Assignments[i]
		s.assignments[a.ConsignmentID] = append(s.assignments[a.ConsignmentID], a)
	}
	for i := range r.Requests {
		req := &r.Requests[i]
		if !strings.EqualFold(req.Status, domain.StatusAccepted) {
			continue
		}
		s.requests[req.ConsignmentID] = append(s.requests[req.ConsignmentID], req)
	}
	for i := range r.Histories {
		h := &r.Histories[i]
		for j := range h.ConsignmentDetails {
			e := &h.ConsignmentDetails[j]
			s.histories[e.ConsignmentID] = append(s.histories[e.ConsignmentID], HistoryLink{History: h, Entry: e})
		}
	}
	for i := range r.Travels {
		t := &r.Travels[i]
		if _, dup := s.travels[t.TravelID]; !dup {
			s.travels[t.TravelID] = t
		}
	}
	for i := range r.Profiles {
		p := &r.Profiles[i]
		if _, dup := s.profiles[p.PhoneNumber]; !dup {
			s.profiles[p.PhoneNumber] = p
		}
	}
	for i := range r.Earnings {
		e := &r.Earnings[i]
		if _, dup := s.earnings[e.PhoneNumber]; !dup {
			s.earnings[e.PhoneNumber] = e
		}
	}

	return s
}

// Travel returns the trip with travelID.
func (s *Snapshot) Travel(travelID string) (*domain.TravelDetail, bool) {
	t, ok := s.travels[travelID]
	return t, ok && travelID != ""
}

// Profile returns the profile registered to phone.
func (s *Snapshot) Profile(phone string) (*domain.Profile, bool) {
	p, ok := s.profiles[phone]
	return p, ok && phone != ""
}

// Earning returns the earning ledger of phone.
func (s *Snapshot) Earning(phone string) (*domain.Earning, bool) {
	e, ok := s.earnings[phone]
	return e, ok && phone != ""
}

// HistoryLinks returns every history entry mentioning consignmentID.
func (s *Snapshot) HistoryLinks(consignmentID string) []HistoryLink {
	return s.histories[consignmentID]
}

// AcceptedRequests returns the Accepted carry requests for consignmentID.
func (s *Snapshot) AcceptedRequests(consignmentID string) []*domain.CarryRequest {
	return s.requests[consignmentID]
}

// custodyRank orders assignments by how strongly their status implies the
// traveler holds the parcel now.
var custodyRank = map[string]int{
	strings.ToLower(domain.CarryInTransit):    0,
	strings.ToLower(domain.CarryCollected):    1,
	strings.ToLower(domain.CarryDelivered):    2,
	strings.ToLower(domain.CarryYetToCollect): 3,
}

func rankOf(status string) int {
	if r, ok := custodyRank[strings.ToLower(strings.TrimSpace(status))]; ok {
		return r
	}
	return len(custodyRank)
}

// Assignment returns the authoritative carry assignment for consignmentID:
// In Transit, then Collected, then Delivered, then Yet to Collect, with ties
// going to the latest update.
func (s *Snapshot) Assignment(consignmentID string) (*domain.CarryAssignment, bool) {
	candidates := s.assignments[consignmentID]
	if len(candidates) == 0 || consignmentID == "" {
		return nil, false
	}

	sorted := make([]*domain.CarryAssignment, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := rankOf(sorted[i].Status), rankOf(sorted[j].Status)
		if ri != rj {
			return ri < rj
		}
		return latest(sorted[i]).After(latest(sorted[j]))
	})
	return sorted[0], true
}

func latest(a *domain.CarryAssignment) time.Time {
	if a.UpdatedAt.After(a.CreatedAt) {
		return a.UpdatedAt
	}
	return a.CreatedAt
}

// TravelIDs collects the distinct travel ids referenced by link records.
func TravelIDs(assignments []domain.CarryAssignment, requests []domain.CarryRequest, histories []domain.TravelHistory) []string {
	set := newStringSet()
	for _, a := range assignments {
		set.add(a.TravelID)
	}
	for _, r := range requests {
		set.add(r.TravelID)
	}
	for _, h := range histories {
		set.add(h.TravelID)
	}
	return set.values()
}

// ConsignmentIDs collects the distinct consignment ids referenced by link records.
func ConsignmentIDs(assignments []domain.CarryAssignment, requests []domain.CarryRequest, histories []domain.TravelHistory) []string {
	set := newStringSet()
	for _, a := range assignments {
		set.add(a.ConsignmentID)
	}
	for _, r := range requests {
		set.add(r.ConsignmentID)
	}
	for _, h := range histories {
		for _, e := range h.ConsignmentDetails {
			set.add(e.ConsignmentID)
		}
	}
	return set.values()
}

// Distinct returns the non-empty values in first-seen order.
func Distinct(values ...[]string) []string {
	set := newStringSet()
	for _, vs := range values {
		for _, v := range vs {
			set.add(v)
		}
	}
	return set.values()
}

type stringSet struct {
	seen  map[string]struct{}
	order []string
}

func newStringSet() *stringSet {
	return &stringSet{seen: make(map[string]struct{})}
}

func (s *stringSet) add(v string) {
	if v == "" {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.order = append(s.order, v)
}

func (s *stringSet) values() []string {
	return s.order
}
