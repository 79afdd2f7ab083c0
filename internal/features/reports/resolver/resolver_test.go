package resolver

import (
	"testing"
	"time"

	"parcel-admin/internal/features/reports/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var base = time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)

func fare(senderPay, totalFare float64) domain.Amount {
	return domain.StructuredAmount(map[string]float64{
		domain.SenderTotalPay: senderPay,
		domain.TotalFare:      totalFare,
	})
}

func travel(id, phone, mode string) domain.TravelDetail {
	return domain.TravelDetail{ID: primitive.NewObjectID(), TravelID: id, PhoneNumber: phone, TravelMode: mode, Username: "user-" + phone}
}

func consignment(id string) *domain.Consignment {
	return &domain.Consignment{ConsignmentID: id, PhoneNumber: "9000000001", StartingLocation: "Pune", Earning: domain.TextAmount("250")}
}

func TestResolve_HistoryBeatsAssignment(t *testing.T) {
	snap := NewSnapshot(Records{
		Assignments: []domain.CarryAssignment{{ConsignmentID: "C1", TravelID: "T-carry", Earning: fare(300, 180), Status: domain.CarryDelivered, CreatedAt: base}},
		Histories: []domain.TravelHistory{{
			TravelID:   "T-hist",
			TravelMode: "train",
			ConsignmentDetails: []domain.HistoryEntry{
				{ConsignmentID: "C1", Earning: domain.NumericAmount(150), Timestamp: base.Add(time.Hour)},
			},
		}},
		Travels: []domain.TravelDetail{travel("T-carry", "9111", "airplane"), travel("T-hist", "9222", "train")},
	})

	res, issues := Default().Resolve(consignment("C1"), snap)
	require.Empty(t, issues)
	assert.Equal(t, domain.SourceHistory, res.Source)
	assert.Equal(t, "T-hist", res.Travel.TravelID)
	assert.Equal(t, "9222", res.Traveler.Phone)
	assert.Equal(t, 150.0, res.AmountToTraveler)
	assert.Equal(t, "train", res.TravelMode)
	assert.Equal(t, base.Add(time.Hour), res.AcceptedAt)
	require.NotNil(t, res.Carry, "authoritative assignment is attached whichever path matched")
	assert.Equal(t, "T-carry", res.Carry.TravelID)
}

func TestResolve_LatestHistoryEntryWins(t *testing.T) {
	snap := NewSnapshot(Records{
		Histories: []domain.TravelHistory{
			{TravelID: "T-old", ConsignmentDetails: []domain.HistoryEntry{{ConsignmentID: "C1", Earning: domain.NumericAmount(10), Timestamp: base}}},
			{TravelID: "T-new", ConsignmentDetails: []domain.HistoryEntry{{ConsignmentID: "C1", Earning: domain.NumericAmount(20), Timestamp: base.Add(48 * time.Hour)}}},
		},
		Travels: []domain.TravelDetail{travel("T-old", "1", "bus"), travel("T-new", "2", "train")},
	})

	res, _ := Default().Resolve(consignment("C1"), snap)
	assert.Equal(t, "T-new", res.Travel.TravelID)
	assert.Equal(t, 20.0, res.AmountToTraveler)
}

func TestResolve_HistoryWithoutEarningUsesAssignmentOnSameTrip(t *testing.T) {
	snap := NewSnapshot(Records{
		Assignments: []domain.CarryAssignment{{ConsignmentID: "C1", TravelID: "T1", Earning: fare(300, 180)}},
		Histories:   []domain.TravelHistory{{TravelID: "T1", ConsignmentDetails: []domain.HistoryEntry{{ConsignmentID: "C1", Timestamp: base}}}},
		Travels:     []domain.TravelDetail{travel("T1", "9", "train")},
	})

	res, _ := Default().Resolve(consignment("C1"), snap)
	assert.Equal(t, domain.SourceHistory, res.Source)
	assert.Equal(t, 180.0, res.AmountToTraveler)
}

func TestResolve_HistoryWithoutTravelFallsThrough(t *testing.T) {
	snap := NewSnapshot(Records{
		Assignments: []domain.CarryAssignment{{ConsignmentID: "C1", TravelID: "T1", Earning: fare(300, 180), CreatedAt: base}},
		Histories:   []domain.TravelHistory{{TravelID: "T-gone", ConsignmentDetails: []domain.HistoryEntry{{ConsignmentID: "C1", Timestamp: base}}}},
		Travels:     []domain.TravelDetail{travel("T1", "9", "airplane")},
	})

	res, _ := Default().Resolve(consignment("C1"), snap)
	assert.Equal(t, domain.SourceAssignment, res.Source)
	assert.Equal(t, 180.0, res.AmountToTraveler)
	assert.Equal(t, base, res.AcceptedAt)
	assert.Equal(t, "airplane", res.TravelMode)
}

func TestSnapshot_AssignmentCustodyPreference(t *testing.T) {
	records := Records{Assignments: []domain.CarryAssignment{
		{ConsignmentID: "C1", TravelID: "T-yet", Status: domain.CarryYetToCollect, UpdatedAt: base.Add(5 * time.Hour)},
		{ConsignmentID: "C1", TravelID: "T-delivered", Status: domain.CarryDelivered, UpdatedAt: base.Add(4 * time.Hour)},
		{ConsignmentID: "C1", TravelID: "T-collected", Status: domain.CarryCollected, UpdatedAt: base.Add(3 * time.Hour)},
		{ConsignmentID: "C1", TravelID: "T-transit-old", Status: domain.CarryInTransit, UpdatedAt: base},
		{ConsignmentID: "C1", TravelID: "T-transit-new", Status: domain.CarryInTransit, UpdatedAt: base.Add(time.Hour)},
	}}

	a, ok := NewSnapshot(records).Assignment("C1")
	require.True(t, ok)
	assert.Equal(t, "T-transit-new", a.TravelID)

	records.Assignments = records.Assignments[:3]
	a, _ = NewSnapshot(records).Assignment("C1")
	assert.Equal(t, "T-collected", a.TravelID)

	records.Assignments = records.Assignments[:2]
	a, _ = NewSnapshot(records).Assignment("C1")
	assert.Equal(t, "T-delivered", a.TravelID)

	_, ok = NewSnapshot(records).Assignment("C2")
	assert.False(t, ok)
}

func TestResolve_CarryRequestFallback(t *testing.T) {
	snap := NewSnapshot(Records{
		Requests: []domain.CarryRequest{
			{ConsignmentID: "C1", TravelID: "T-rejected", Status: domain.StatusRejected, CreatedAt: base.Add(10 * time.Hour), Earning: domain.TextAmount("999")},
			{ConsignmentID: "C1", TravelID: "T-old", Status: domain.StatusAccepted, CreatedAt: base, Earning: domain.TextAmount("100")},
			{ConsignmentID: "C1", TravelID: "T-new", Status: domain.StatusAccepted, CreatedAt: base.Add(time.Hour), Earning: domain.TextAmount("totalFare: 120"), TravelMode: "bus"},
		},
		Travels: []domain.TravelDetail{travel("T-old", "1", "train"), travel("T-new", "2", "train"), travel("T-rejected", "3", "train")},
	})

	res, issues := Default().Resolve(consignment("C1"), snap)
	require.Empty(t, issues)
	assert.Equal(t, domain.SourceRequest, res.Source)
	assert.Equal(t, "T-new", res.Travel.TravelID)
	assert.Equal(t, 120.0, res.AmountToTraveler)
	assert.Equal(t, "bus", res.TravelMode)
}

func TestResolve_NoMatch(t *testing.T) {
	snap := NewSnapshot(Records{
		Requests: []domain.CarryRequest{{ConsignmentID: "C2", TravelID: "T-missing", Status: domain.StatusAccepted}},
	})

	res, issues := Default().Resolve(consignment("C2"), snap)
	assert.Empty(t, issues)
	assert.Equal(t, domain.SourceNone, res.Source)
	assert.Nil(t, res.Travel)
	assert.False(t, res.Traveler.Found)
	assert.Equal(t, domain.NotAvailable, res.Traveler.ID)
	assert.Equal(t, domain.NotAvailable, res.Traveler.Name)
	assert.Zero(t, res.AmountToTraveler)
}

func TestResolve_MalformedEarningReportsIssue(t *testing.T) {
	snap := NewSnapshot(Records{
		Requests: []domain.CarryRequest{{ConsignmentID: "C1", TravelID: "T1", Status: domain.StatusAccepted, Earning: domain.TextAmount("ask traveler")}},
		Travels:  []domain.TravelDetail{travel("T1", "5", "train")},
	})

	res, issues := Default().Resolve(consignment("C1"), snap)
	assert.Equal(t, domain.SourceRequest, res.Source)
	assert.Zero(t, res.AmountToTraveler)
	require.Len(t, issues, 1)
	assert.Equal(t, "consignment_carry_riders.earning", issues[0].Field)
}

func TestResolve_Parties(t *testing.T) {
	senderID := primitive.NewObjectID()
	travelerID := primitive.NewObjectID()
	snap := NewSnapshot(Records{
		Assignments: []domain.CarryAssignment{{ConsignmentID: "C1", TravelID: "T1", Earning: fare(300, 180)}},
		Travels:     []domain.TravelDetail{travel("T1", "9222", "train")},
		Profiles: []domain.Profile{
			{ID: senderID, PhoneNumber: "9000000001", FirstName: "Asha", LastName: "Rao", Email: "asha@example.com"},
			{ID: travelerID, PhoneNumber: "9222", FirstName: "Vikram", CurrentLocation: &domain.GeoPoint{Coordinates: []float64{72.8, 19.0}}},
		},
	})

	res, _ := Default().Resolve(consignment("C1"), snap)
	assert.Equal(t, senderID.Hex(), res.Sender.ID)
	assert.Equal(t, "Asha Rao", res.Sender.Name)
	assert.Equal(t, "Pune", res.Sender.Address)
	assert.Equal(t, travelerID.Hex(), res.Traveler.ID)
	assert.Equal(t, "Vikram", res.Traveler.Name)
	assert.Equal(t, "19, 72.8", res.Traveler.Address)

	t.Run("UnknownProfiles", func(t *testing.T) {
		snap := NewSnapshot(Records{
			Assignments: []domain.CarryAssignment{{ConsignmentID: "C1", TravelID: "T1"}},
			Travels:     []domain.TravelDetail{travel("T1", "9222", "train")},
		})
		res, _ := Default().Resolve(consignment("C1"), snap)
		assert.Equal(t, "Unknown", res.Sender.Name)
		assert.Equal(t, "9000000001", res.Sender.ID)
		assert.True(t, res.Traveler.Found)
		assert.Equal(t, "9222", res.Traveler.ID)
		assert.Equal(t, "user-9222", res.Traveler.Name)
	})
}

type countingStrategy struct {
	source domain.LinkSource
	match  bool
	calls  *int
}

func (s countingStrategy) Source() domain.LinkSource { return s.source }

func (s countingStrategy) Match(c *domain.Consignment, snap *Snapshot) (Match, bool) {
	*s.calls++
	if !s.match {
		return Match{}, false
	}
	return Match{Travel: &domain.TravelDetail{TravelID: "T"}}, true
}

func TestResolve_StopsAtFirstMatch(t *testing.T) {
	var first, second, third int
	r := New(
		countingStrategy{source: "a", match: false, calls: &first},
		countingStrategy{source: "b", match: true, calls: &second},
		countingStrategy{source: "c", match: true, calls: &third},
	)

	res, _ := r.Resolve(consignment("C1"), NewSnapshot(Records{}))
	assert.Equal(t, domain.LinkSource("b"), res.Source)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
	assert.Zero(t, third)
}

func TestLinkIDHelpers(t *testing.T) {
	assignments := []domain.CarryAssignment{{ConsignmentID: "C1", TravelID: "T1"}, {ConsignmentID: "C2", TravelID: "T1"}}
	requests := []domain.CarryRequest{{ConsignmentID: "C3", TravelID: "T2"}, {ConsignmentID: "", TravelID: ""}}
	histories := []domain.TravelHistory{{TravelID: "T3", ConsignmentDetails: []domain.HistoryEntry{{ConsignmentID: "C1"}, {ConsignmentID: "C4"}}}}

	assert.Equal(t, []string{"T1", "T2", "T3"}, TravelIDs(assignments, requests, histories))
	assert.Equal(t, []string{"C1", "C2", "C3", "C4"}, ConsignmentIDs(assignments, requests, histories))
	assert.Equal(t, []string{"a", "b"}, Distinct([]string{"a", ""}, []string{"b", "a"}))
}
