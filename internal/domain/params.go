package domain

import (
	"github.com/shopspring/decimal"
)

// CalculatorParams holds everything a regime calculation depends on besides the
// tax constants. Calculators treat it as immutable.
type CalculatorParams struct {
	Regimes         []Regime        `yaml:"regimes" json:"regimes"`
	Community       Community       `yaml:"community" json:"community"`
	MaritalStatus   MaritalStatus   `yaml:"marital_status" json:"marital_status"`
	Children        int             `yaml:"children" json:"children"`
	AnnualRevenue   decimal.Decimal `yaml:"annual_revenue" json:"annual_revenue"`
	MonthlyExpenses decimal.Decimal `yaml:"monthly_expenses" json:"monthly_expenses"`

	// Regime-specific modifiers
	CompanyAge  *int `yaml:"company_age,omitempty" json:"company_age,omitempty"`   // years since incorporation
	BeckhamYear *int `yaml:"beckham_year,omitempty" json:"beckham_year,omitempty"` // 1-6

	// Informational only, they do not change any regime result
	PlannedDividends *decimal.Decimal `yaml:"planned_dividends,omitempty" json:"planned_dividends,omitempty"`
	StockOptions     *decimal.Decimal `yaml:"stock_options,omitempty" json:"stock_options,omitempty"`
}

// DefaultParams returns the parameters the calculator starts from
func DefaultParams() CalculatorParams {
	companyAge := 1
	beckhamYear := 1
	return CalculatorParams{
		Regimes:         []Regime{RegimeEmpleado, RegimeAutonomoRegular, RegimeSLMicro},
		Community:       CommunityMadrid,
		MaritalStatus:   MaritalSingle,
		Children:        0,
		AnnualRevenue:   decimal.NewFromInt(75000),
		MonthlyExpenses: decimal.NewFromInt(1000),
		CompanyAge:      &companyAge,
		BeckhamYear:     &beckhamYear,
	}
}

// AnnualExpenses returns twelve months of deductible expenses
func (p CalculatorParams) AnnualExpenses() decimal.Decimal {
	return p.MonthlyExpenses.Mul(decimal.NewFromInt(12))
}

// WithRevenue returns a copy of p with a different annual revenue
func (p CalculatorParams) WithRevenue(revenue decimal.Decimal) CalculatorParams {
	out := p.DeepCopy()
	out.AnnualRevenue = revenue
	return out
}

// DeepCopy returns a copy that shares no pointers or slices with p
func (p CalculatorParams) DeepCopy() CalculatorParams {
	out := p
	if p.Regimes != nil {
		out.Regimes = make([]Regime, len(p.Regimes))
		copy(out.Regimes, p.Regimes)
	}
	if p.CompanyAge != nil {
		v := *p.CompanyAge
		out.CompanyAge = &v
	}
	if p.BeckhamYear != nil {
		v := *p.BeckhamYear
		out.BeckhamYear = &v
	}
	if p.PlannedDividends != nil {
		v := *p.PlannedDividends
		out.PlannedDividends = &v
	}
	if p.StockOptions != nil {
		v := *p.StockOptions
		out.StockOptions = &v
	}
	return out
}
