package domain

import (
	"github.com/shopspring/decimal"
)

// Breakdown itemizes what a regime pays. Optional entries are nil when the
// regime does not pay that tax.
type Breakdown struct {
	IRPF           decimal.Decimal  `json:"irpf"`
	SocialSecurity decimal.Decimal  `json:"social_security"`
	CorporateTax   *decimal.Decimal `json:"corporate_tax,omitempty"`
	DividendTax    *decimal.Decimal `json:"dividend_tax,omitempty"`
	MEI            *decimal.Decimal `json:"mei,omitempty"` // already part of SocialSecurity
}

// IncomeTaxes returns the tax part of the breakdown, excluding contributions
func (b Breakdown) IncomeTaxes() decimal.Decimal {
	total := b.IRPF
	if b.CorporateTax != nil {
		total = total.Add(*b.CorporateTax)
	}
	if b.DividendTax != nil {
		total = total.Add(*b.DividendTax)
	}
	return total
}

// Total returns everything paid: taxes plus social security
func (b Breakdown) Total() decimal.Decimal {
	return b.IncomeTaxes().Add(b.SocialSecurity)
}

// TaxCalculationResult is the outcome of one regime calculation
type TaxCalculationResult struct {
	Regime        Regime          `json:"regime"`
	GrossAnnual   decimal.Decimal `json:"gross_annual"`
	NetAnnual     decimal.Decimal `json:"net_annual"`
	NetMonthly    decimal.Decimal `json:"net_monthly"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	Breakdown     Breakdown       `json:"breakdown"`

	Advantages    []string `json:"advantages"`
	Disadvantages []string `json:"disadvantages"`
	Requirements  []string `json:"requirements"`
}

// TotalTaxes returns taxes and contributions combined
func (r TaxCalculationResult) TotalTaxes() decimal.Decimal {
	return r.Breakdown.Total()
}

// CrossoverPoint marks a revenue where two regimes yield the same net income
type CrossoverPoint struct {
	Revenue    decimal.Decimal `json:"revenue"`
	Regime1    Regime          `json:"regime1"`
	Regime2    Regime          `json:"regime2"`
	Difference decimal.Decimal `json:"difference"` // net annual of Regime1 minus Regime2 at Revenue
}

// SweepPoint holds per-regime results for one revenue level
type SweepPoint struct {
	Revenue decimal.Decimal                 `json:"revenue"`
	Results map[Regime]TaxCalculationResult `json:"results"`
}
