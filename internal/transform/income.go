package transform

import (
	"fmt"

	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/shopspring/decimal"
)

// SetRevenue replaces the annual gross revenue
type SetRevenue struct {
	Amount decimal.Decimal
}

func (sr *SetRevenue) Name() string {
	return "set_revenue"
}

func (sr *SetRevenue) Description() string {
	return fmt.Sprintf("Set annual revenue to %s€", sr.Amount.StringFixed(0))
}

func (sr *SetRevenue) Validate(base *domain.CalculatorParams) error {
	if base == nil {
		return NewTransformError(sr.Name(), "validate", "base parameters cannot be nil", nil)
	}
	if sr.Amount.IsNegative() {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("revenue must be non-negative, got %s", sr.Amount), nil)
	}
	return nil
}

func (sr *SetRevenue) Apply(base *domain.CalculatorParams) (*domain.CalculatorParams, error) {
	modified := base.WithRevenue(sr.Amount)
	return &modified, nil
}

// ScaleRevenue multiplies the annual revenue by a factor (1.2 = +20%)
type ScaleRevenue struct {
	Factor decimal.Decimal
}

func (sr *ScaleRevenue) Name() string {
	return "scale_revenue"
}

func (sr *ScaleRevenue) Description() string {
	pct := sr.Factor.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
	if pct.IsNegative() {
		return fmt.Sprintf("Decrease revenue by %s%%", pct.Neg().StringFixed(0))
	}
	return fmt.Sprintf("Increase revenue by %s%%", pct.StringFixed(0))
}

func (sr *ScaleRevenue) Validate(base *domain.CalculatorParams) error {
	if base == nil {
		return NewTransformError(sr.Name(), "validate", "base parameters cannot be nil", nil)
	}
	if sr.Factor.IsNegative() {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", sr.Factor), nil)
	}
	return nil
}

func (sr *ScaleRevenue) Apply(base *domain.CalculatorParams) (*domain.CalculatorParams, error) {
	modified := base.WithRevenue(base.AnnualRevenue.Mul(sr.Factor).Round(2))
	return &modified, nil
}

// SetExpenses replaces the monthly deductible expenses
type SetExpenses struct {
	Monthly decimal.Decimal
}

func (se *SetExpenses) Name() string {
	return "set_expenses"
}

func (se *SetExpenses) Description() string {
	return fmt.Sprintf("Set deductible expenses to %s€/month", se.Monthly.StringFixed(0))
}

func (se *SetExpenses) Validate(base *domain.CalculatorParams) error {
	if base == nil {
		return NewTransformError(se.Name(), "validate", "base parameters cannot be nil", nil)
	}
	if se.Monthly.IsNegative() {
		return NewTransformError(se.Name(), "validate", fmt.Sprintf("expenses must be non-negative, got %s", se.Monthly), nil)
	}
	return nil
}

func (se *SetExpenses) Apply(base *domain.CalculatorParams) (*domain.CalculatorParams, error) {
	modified := base.DeepCopy()
	modified.MonthlyExpenses = se.Monthly
	return &modified, nil
}

// SetCompanyAge sets the years since incorporation, which decides whether a
// certified startup still pays the reduced corporate rate
type SetCompanyAge struct {
	Years int
}

func (sc *SetCompanyAge) Name() string {
	return "set_company_age"
}

func (sc *SetCompanyAge) Description() string {
	return fmt.Sprintf("Company in its year %d", sc.Years)
}

func (sc *SetCompanyAge) Validate(base *domain.CalculatorParams) error {
	if base == nil {
		return NewTransformError(sc.Name(), "validate", "base parameters cannot be nil", nil)
	}
	if sc.Years < 0 {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("years must be non-negative, got %d", sc.Years), nil)
	}
	return nil
}

func (sc *SetCompanyAge) Apply(base *domain.CalculatorParams) (*domain.CalculatorParams, error) {
	modified := base.DeepCopy()
	years := sc.Years
	modified.CompanyAge = &years
	return &modified, nil
}

// SetBeckhamYear sets the year of the six-year Beckham window
type SetBeckhamYear struct {
	Year int
}

func (sb *SetBeckhamYear) Name() string {
	return "set_beckham_year"
}

func (sb *SetBeckhamYear) Description() string {
	return fmt.Sprintf("Beckham regime year %d of 6", sb.Year)
}

func (sb *SetBeckhamYear) Validate(base *domain.CalculatorParams) error {
	if base == nil {
		return NewTransformError(sb.Name(), "validate", "base parameters cannot be nil", nil)
	}
	if sb.Year < 1 || sb.Year > 6 {
		return NewTransformError(sb.Name(), "validate", fmt.Sprintf("year must be between 1 and 6, got %d", sb.Year), nil)
	}
	return nil
}

func (sb *SetBeckhamYear) Apply(base *domain.CalculatorParams) (*domain.CalculatorParams, error) {
	modified := base.DeepCopy()
	year := sb.Year
	modified.BeckhamYear = &year
	return &modified, nil
}
