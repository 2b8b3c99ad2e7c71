package calculation

import (
	"fmt"

	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine dispatches regime calculations over one set of tax tables.
// It holds no per-call state and is safe for concurrent use once configured.
type CalculationEngine struct {
	TaxCalc   *ComprehensiveTaxCalculator
	Constants *domain.TaxConstants
	Logger    Logger
	Debug     bool // Enable debug output for detailed calculations
}

// NewCalculationEngine creates a calculation engine with the 2025 tables
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithConstants(DefaultConstants())
}

// NewCalculationEngineWithConstants creates a calculation engine with configurable tables
func NewCalculationEngineWithConstants(c *domain.TaxConstants) *CalculationEngine {
	return &CalculationEngine{
		TaxCalc:   NewComprehensiveTaxCalculatorWithConstants(c),
		Constants: c,
		Logger:    NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine
func (ce *CalculationEngine) SetLogger(logger Logger) {
	if logger == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = logger
}

// Calculate computes the result of a single regime
func (ce *CalculationEngine) Calculate(regime domain.Regime, params domain.CalculatorParams) (*domain.TaxCalculationResult, error) {
	if !regime.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegime, regime)
	}
	if err := ce.ValidateParams(regime, params); err != nil {
		return nil, err
	}

	if ce.Debug {
		ce.Logger.Debugf("calculating %s: revenue=%s expenses=%s/month community=%s status=%s children=%d",
			regime, params.AnnualRevenue.StringFixed(2), params.MonthlyExpenses.StringFixed(2),
			params.Community, params.MaritalStatus, params.Children)
	}

	var (
		result domain.TaxCalculationResult
		err    error
	)
	switch regime {
	case domain.RegimeEmpleado:
		result, err = ce.calculateEmpleado(params)
	case domain.RegimeAutonomoRegular, domain.RegimeAutonomoTarifaPlana:
		result, err = ce.calculateAutonomo(regime, params)
	case domain.RegimeSLMicro, domain.RegimeSLRegular, domain.RegimeStartupCertificada:
		result, err = ce.calculateCompany(regime, params)
	case domain.RegimeBeckham:
		result, err = ce.calculateBeckham(params)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegime, regime)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to calculate %s: %w", regime, err)
	}

	if ce.Debug {
		ce.Logger.Debugf("%s: net=%s total=%s effective=%s%%", regime,
			result.NetAnnual.StringFixed(2), result.TotalTaxes().StringFixed(2),
			result.EffectiveRate.Mul(decimal.NewFromInt(100)).StringFixed(2))
	}
	return &result, nil
}

// CalculateAll computes every requested regime, in request order. The first
// failure aborts the batch.
func (ce *CalculationEngine) CalculateAll(params domain.CalculatorParams) ([]domain.TaxCalculationResult, error) {
	results := make([]domain.TaxCalculationResult, 0, len(params.Regimes))
	for _, regime := range params.Regimes {
		result, err := ce.Calculate(regime, params)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}

// ValidateParams checks the parameters a regime calculation depends on
func (ce *CalculationEngine) ValidateParams(regime domain.Regime, params domain.CalculatorParams) error {
	if params.AnnualRevenue.IsNegative() {
		return fmt.Errorf("%w: annual revenue cannot be negative, got %s", ErrInvalidParams, params.AnnualRevenue.String())
	}
	if params.MonthlyExpenses.IsNegative() {
		return fmt.Errorf("%w: monthly expenses cannot be negative, got %s", ErrInvalidParams, params.MonthlyExpenses.String())
	}
	if params.Children < 0 {
		return fmt.Errorf("%w: children cannot be negative, got %d", ErrInvalidParams, params.Children)
	}
	if !params.MaritalStatus.IsValid() {
		return fmt.Errorf("%w: unknown marital status %q", ErrInvalidParams, params.MaritalStatus)
	}
	if _, ok := ce.Constants.IRPF.Regional[params.Community]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommunity, params.Community)
	}
	if params.CompanyAge != nil && *params.CompanyAge < 0 {
		return fmt.Errorf("%w: company age cannot be negative, got %d", ErrInvalidParams, *params.CompanyAge)
	}

	if regime == domain.RegimeBeckham && params.BeckhamYear != nil {
		maxYears := ce.Constants.Beckham.MaxYears
		if year := *params.BeckhamYear; year < 1 || year > maxYears {
			return fmt.Errorf("%w: beckham year must be between 1 and %d, got %d", ErrInvalidParams, maxYears, year)
		}
	}
	return nil
}
