package domain

import "github.com/shopspring/decimal"

// DefaultMargin applies when no fare configuration exists.
var DefaultMargin = decimal.NewFromFloat(0.2)

// FareTerms are the fare configuration values the deriver needs.
type FareTerms struct {
	TE     decimal.Decimal
	Margin decimal.Decimal
}

// DefaultFareTerms matches a freshly created fare configuration.
func DefaultFareTerms() FareTerms {
	return FareTerms{TE: decimal.Zero, Margin: DefaultMargin}
}

// Figures are the derived money columns of a consignment, exact in decimal.
// Nothing is rounded: TnEAmount is exactly the difference and TaxComponent
// exactly TnEAmount times the margin.
type Figures struct {
	TotalAmountSender decimal.Decimal
	AmountToTraveler  decimal.Decimal
	TnEAmount         decimal.Decimal
	TaxComponent      decimal.Decimal
}

// SenderTotal reads what the sender pays: the authoritative assignment's
// senderTotalPay when it carries one, else the consignment earning.
func SenderTotal(c *Consignment, carry *CarryAssignment) (float64, *Issue) {
	if carry != nil && carry.Earning.Has(SenderTotalPay) {
		return NormalizeField("consignmenttocarries.earning", carry.Earning, SenderTotalPay)
	}
	return NormalizeField("consignments.earning", c.Earning, SenderTotalPay)
}

// Derive computes the money columns. tneAmount is not clamped and may be
// negative when upstream amounts disagree.
func Derive(c *Consignment, res Resolution, terms FareTerms) (Figures, []Issue) {
	var issues []Issue

	total, issue := SenderTotal(c, res.Carry)
	if issue != nil {
		issues = append(issues, *issue)
	}

	f := Figures{
		TotalAmountSender: decimal.NewFromFloat(total),
		AmountToTraveler:  decimal.NewFromFloat(res.AmountToTraveler),
	}
	f.TnEAmount = f.TotalAmountSender.Sub(f.AmountToTraveler)
	f.TaxComponent = f.TnEAmount.Mul(terms.Margin)

	return f, issues
}
