package domain

import "time"

// LinkSource names the path that tied a consignment to a trip.
type LinkSource string

const (
	SourceHistory    LinkSource = "history"
	SourceAssignment LinkSource = "carry-assignment"
	SourceRequest    LinkSource = "carry-request"
	SourceNone       LinkSource = "none"
)

// Party is a resolved sender or traveler.
type Party struct {
	ID      string
	Name    string
	Phone   string
	Email   string
	Address string
	// Found is false for an unresolved traveler.
	Found bool
}

// Resolution is the cross-entity bundle for one consignment.
type Resolution struct {
	Source   LinkSource
	Sender   Party
	Traveler Party
	// Travel is the linked trip; nil when Source is SourceNone.
	Travel *TravelDetail
	// Carry is the authoritative carry assignment, whichever path matched.
	Carry            *CarryAssignment
	AcceptedAt       time.Time
	TravelMode       string
	AmountToTraveler float64
}

// UnresolvedTraveler is the traveler placeholder for rows without a link.
func UnresolvedTraveler() Party {
	return Party{ID: NotAvailable, Name: NotAvailable, Phone: NotAvailable, Email: NotAvailable, Address: NotAvailable}
}
