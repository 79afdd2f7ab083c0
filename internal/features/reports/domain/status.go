package domain

import "strings"

// Consignment lifecycle statuses.
const (
	StatusPending    = "Pending"
	StatusNotStarted = "Not Started"
	StatusAccepted   = "Accepted"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusDelivered  = "Delivered"
	StatusRejected   = "Rejected"
	StatusCancelled  = "Cancelled"
	StatusExpired    = "Expired"
)

// Carry assignment statuses.
const (
	CarryYetToCollect = "Yet to Collect"
	CarryCollected    = "Collected"
	CarryInTransit    = "In Transit"
	CarryDelivered    = "Delivered"
)

// Payment statuses reported for each party.
const (
	PaymentPaid    = "Paid"
	PaymentPending = "Pending"
	PaymentPartial = "Partial"
	PaymentNA      = "N/A"
)

// NotAvailable is the placeholder for an unresolved value.
const NotAvailable = "N/A"

var senderPaidStatuses = []string{StatusAccepted, StatusInProgress, StatusCompleted, StatusDelivered, CarryCollected}

// EffectiveStatus is the carry status while a traveler holds the parcel and the
// consignment status otherwise.
func EffectiveStatus(consignmentStatus string, carry *CarryAssignment) string {
	if carry != nil && statusIn(carry.Status, CarryCollected, CarryInTransit, CarryDelivered) {
		return canonicalStatus(carry.Status)
	}
	return consignmentStatus
}

// SenderPaymentStatus classifies the sender side of a consignment.
func SenderPaymentStatus(totalAmountSender float64, status string) string {
	if totalAmountSender > 0 && statusIn(status, senderPaidStatuses...) {
		return PaymentPaid
	}
	return PaymentPending
}

// TravelerPaymentStatus classifies the traveler side of a consignment.
func TravelerPaymentStatus(amountToTraveler float64, status string) string {
	switch {
	case amountToTraveler <= 0:
		return PaymentNA
	case statusIn(status, StatusCompleted, StatusDelivered):
		return PaymentPaid
	case statusIn(status, CarryInTransit):
		return PaymentPartial
	default:
		return PaymentPending
	}
}

// IsCompleted reports whether a lifecycle status ends the consignment successfully.
func IsCompleted(status string) bool {
	return statusIn(status, StatusCompleted, StatusDelivered)
}

func statusIn(status string, set ...string) bool {
	status = strings.TrimSpace(status)
	for _, s := range set {
		if strings.EqualFold(status, s) {
			return true
		}
	}
	return false
}

func canonicalStatus(status string) string {
	for _, s := range []string{CarryCollected, CarryInTransit, CarryDelivered} {
		if strings.EqualFold(strings.TrimSpace(status), s) {
			return s
		}
	}
	return status
}
