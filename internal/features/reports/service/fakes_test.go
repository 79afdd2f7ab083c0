package service

import (
	"context"
	"sync"
	"sync/atomic"

	faredomain "parcel-admin/internal/features/fares/domain"
	"parcel-admin/internal/features/reports/domain"
	"parcel-admin/internal/features/reports/ports"
)

// memoryRepo serves records from memory. Lists are returned in slice order,
// which tests arrange newest first.
type memoryRepo struct {
	consignments []domain.Consignment
	travels      []domain.TravelDetail
	assignments  []domain.CarryAssignment
	requests     []domain.CarryRequest
	histories    []domain.TravelHistory
	profiles     []domain.Profile
	earnings     []domain.Earning

	err     error
	gate    chan struct{}
	entered sync.Once
	inside  chan struct{}
	counts  atomic.Int32
}

func (m *memoryRepo) wait() {
	if m.gate == nil {
		return
	}
	m.entered.Do(func() { close(m.inside) })
	<-m.gate
}

func window[T any](items []T, w ports.Window) []T {
	start := int(w.Skip)
	if start > len(items) {
		return nil
	}
	end := start + int(w.Limit)
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func (m *memoryRepo) CountConsignments(context.Context, ports.Filter) (int64, error) {
	m.counts.Add(1)
	m.wait()
	return int64(len(m.consignments)), m.err
}

func (m *memoryRepo) ListConsignments(_ context.Context, _ ports.Filter, w ports.Window) ([]domain.Consignment, error) {
	return window(m.consignments, w), m.err
}

func (m *memoryRepo) ConsignmentsByID(_ context.Context, ids []string) ([]domain.Consignment, error) {
	var out []domain.Consignment
	for _, c := range m.consignments {
		if contains(ids, c.ConsignmentID) {
			out = append(out, c)
		}
	}
	return out, m.err
}

func (m *memoryRepo) senders() []string {
	var out []string
	for _, c := range m.consignments {
		if !contains(out, c.PhoneNumber) {
			out = append(out, c.PhoneNumber)
		}
	}
	return out
}

func (m *memoryRepo) CountSenders(context.Context, ports.Filter) (int64, error) {
	return int64(len(m.senders())), m.err
}

func (m *memoryRepo) ListSenders(_ context.Context, _ ports.Filter, w ports.Window) ([]string, error) {
	return window(m.senders(), w), m.err
}

func (m *memoryRepo) ConsignmentsBySender(_ context.Context, phones []string, _ ports.Filter) ([]domain.Consignment, error) {
	var out []domain.Consignment
	for _, c := range m.consignments {
		if contains(phones, c.PhoneNumber) {
			out = append(out, c)
		}
	}
	return out, m.err
}

func (m *memoryRepo) CountTravelDetails(context.Context, ports.Filter) (int64, error) {
	return int64(len(m.travels)), m.err
}

func (m *memoryRepo) ListTravelDetails(_ context.Context, _ ports.Filter, w ports.Window) ([]domain.TravelDetail, error) {
	return window(m.travels, w), m.err
}

func (m *memoryRepo) TravelDetailsByTravelID(_ context.Context, ids []string) ([]domain.TravelDetail, error) {
	var out []domain.TravelDetail
	for _, t := range m.travels {
		if contains(ids, t.TravelID) {
			out = append(out, t)
		}
	}
	return out, m.err
}

func (m *memoryRepo) TravelDetailsByPhone(_ context.Context, phones []string) ([]domain.TravelDetail, error) {
	var out []domain.TravelDetail
	for _, t := range m.travels {
		if contains(phones, t.PhoneNumber) {
			out = append(out, t)
		}
	}
	return out, m.err
}

func (m *memoryRepo) travelers() []string {
	var out []string
	for _, t := range m.travels {
		if !contains(out, t.PhoneNumber) {
			out = append(out, t.PhoneNumber)
		}
	}
	return out
}

func (m *memoryRepo) CountTravelers(context.Context, ports.Filter) (int64, error) {
	return int64(len(m.travelers())), m.err
}

func (m *memoryRepo) ListTravelers(_ context.Context, _ ports.Filter, w ports.Window) ([]string, error) {
	return window(m.travelers(), w), m.err
}

func selected(sel ports.LinkSelector, consignmentID, travelID string) bool {
	return contains(sel.ConsignmentIDs, consignmentID) || contains(sel.TravelIDs, travelID)
}

func (m *memoryRepo) CarryAssignments(_ context.Context, sel ports.LinkSelector) ([]domain.CarryAssignment, error) {
	var out []domain.CarryAssignment
	for _, a := range m.assignments {
		if selected(sel, a.ConsignmentID, a.TravelID) {
			out = append(out, a)
		}
	}
	return out, m.err
}

func (m *memoryRepo) CarryRequests(_ context.Context, sel ports.LinkSelector, acceptedOnly bool) ([]domain.CarryRequest, error) {
	var out []domain.CarryRequest
	for _, r := range m.requests {
		if acceptedOnly && r.Status != domain.StatusAccepted {
			continue
		}
		if selected(sel, r.ConsignmentID, r.TravelID) {
			out = append(out, r)
		}
	}
	return out, m.err
}

func (m *memoryRepo) TravelHistories(_ context.Context, sel ports.LinkSelector) ([]domain.TravelHistory, error) {
	var out []domain.TravelHistory
	for _, h := range m.histories {
		match := contains(sel.TravelIDs, h.TravelID)
		for _, e := range h.ConsignmentDetails {
			match = match || contains(sel.ConsignmentIDs, e.ConsignmentID)
		}
		if match {
			out = append(out, h)
		}
	}
	return out, m.err
}

func (m *memoryRepo) Profiles(_ context.Context, phones []string) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range m.profiles {
		if contains(phones, p.PhoneNumber) {
			out = append(out, p)
		}
	}
	return out, m.err
}

func (m *memoryRepo) Earnings(_ context.Context, phones []string) ([]domain.Earning, error) {
	var out []domain.Earning
	for _, e := range m.earnings {
		if contains(phones, e.PhoneNumber) {
			out = append(out, e)
		}
	}
	return out, m.err
}

type staticFares struct {
	cfg *faredomain.FareConfig
	err error
}

func (f staticFares) GetConfig(context.Context) (*faredomain.FareConfig, error) {
	return f.cfg, f.err
}

type recordingHook struct {
	mu    sync.Mutex
	calls []domain.Diagnostics
}

func (h *recordingHook) ReportGenerated(_ context.Context, d domain.Diagnostics) {
	h.mu.Lock()
	h.calls = append(h.calls, d)
	h.mu.Unlock()
}
