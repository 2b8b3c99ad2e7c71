package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/esnet/internal/calculation"
	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of calculator input and tax table files
type InputParser struct {
	// BeckhamMaxYears bounds beckham_year; it follows the tax tables in use
	BeckhamMaxYears int
}

// NewInputParser creates an input parser that validates against the 2025 tables
func NewInputParser() *InputParser {
	return NewInputParserWithConstants(calculation.DefaultConstants())
}

// NewInputParserWithConstants creates an input parser that validates against c
func NewInputParserWithConstants(c *domain.TaxConstants) *InputParser {
	return &InputParser{BeckhamMaxYears: c.Beckham.MaxYears}
}

// LoadFromFile loads calculator parameters from a YAML file. Fields missing
// from the file keep their default values.
func (ip *InputParser) LoadFromFile(filename string) (*domain.CalculatorParams, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes calculator parameters from YAML and validates them
func (ip *InputParser) Parse(data []byte) (*domain.CalculatorParams, error) {
	params := domain.DefaultParams()
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateParams(&params); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &params, nil
}

// ValidateParams validates calculator parameters
func (ip *InputParser) ValidateParams(params *domain.CalculatorParams) error {
	if len(params.Regimes) == 0 {
		return fmt.Errorf("at least one regime is required")
	}
	seen := make(map[domain.Regime]bool, len(params.Regimes))
	for i, r := range params.Regimes {
		if !r.IsValid() {
			return fmt.Errorf("regime %d: %w: %q", i, calculation.ErrUnknownRegime, r)
		}
		if seen[r] {
			return fmt.Errorf("regime %q listed more than once", r)
		}
		seen[r] = true
	}

	if !params.Community.IsValid() {
		return fmt.Errorf("%w: %q", calculation.ErrUnknownCommunity, params.Community)
	}
	if !params.MaritalStatus.IsValid() {
		return fmt.Errorf("unknown marital status %q", params.MaritalStatus)
	}
	if params.Children < 0 {
		return fmt.Errorf("children cannot be negative")
	}
	if params.MaritalStatus == domain.MaritalSingleParent && params.Children == 0 {
		return fmt.Errorf("marital status %q requires at least one child", params.MaritalStatus)
	}

	if params.AnnualRevenue.LessThan(decimal.Zero) {
		return fmt.Errorf("annual revenue cannot be negative")
	}
	if params.MonthlyExpenses.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly expenses cannot be negative")
	}

	if params.CompanyAge != nil && *params.CompanyAge < 0 {
		return fmt.Errorf("company age cannot be negative")
	}
	if params.BeckhamYear != nil && (*params.BeckhamYear < 1 || *params.BeckhamYear > ip.BeckhamMaxYears) {
		return fmt.Errorf("beckham year must be between 1 and %d, got %d", ip.BeckhamMaxYears, *params.BeckhamYear)
	}
	if params.PlannedDividends != nil && params.PlannedDividends.LessThan(decimal.Zero) {
		return fmt.Errorf("planned dividends cannot be negative")
	}
	if params.StockOptions != nil && params.StockOptions.LessThan(decimal.Zero) {
		return fmt.Errorf("stock options cannot be negative")
	}

	return nil
}

// LoadConstantsFromFile loads tax tables from a YAML file. The file is decoded
// over the 2025 defaults, so it only needs the values that change.
func (ip *InputParser) LoadConstantsFromFile(filename string) (*domain.TaxConstants, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseConstants(data)
}

// ParseConstants decodes tax tables from YAML over the defaults and validates them
func (ip *InputParser) ParseConstants(data []byte) (*domain.TaxConstants, error) {
	constants := calculation.DefaultConstants()
	if err := yaml.Unmarshal(data, constants); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConstants(constants); err != nil {
		return nil, fmt.Errorf("tax constants validation failed: %w", err)
	}

	return constants, nil
}

// ValidateConstants checks that the tax tables are usable
func (ip *InputParser) ValidateConstants(c *domain.TaxConstants) error {
	if err := validateBrackets("state IRPF", c.IRPF.State); err != nil {
		return err
	}
	for _, community := range domain.AllCommunities() {
		brackets, ok := c.IRPF.Regional[community]
		if !ok {
			return fmt.Errorf("missing regional IRPF scale for %s", community)
		}
		if err := validateBrackets(fmt.Sprintf("%s IRPF", community), brackets); err != nil {
			return err
		}
	}
	if err := validateBrackets("dividend", c.DividendBrackets); err != nil {
		return err
	}

	bases := c.SocialSecurity.Bases
	if bases.Min.LessThanOrEqual(decimal.Zero) || bases.Max.LessThan(bases.Min) {
		return fmt.Errorf("contribution bases must satisfy 0 < min <= max")
	}
	if err := validateRate("autonomo rate", c.SocialSecurity.AutonomoRate); err != nil {
		return err
	}

	if len(c.AutonomoBrackets) == 0 {
		return fmt.Errorf("autonomo brackets are required")
	}
	for i, b := range c.AutonomoBrackets {
		if b.Max != nil && b.Max.LessThanOrEqual(b.Min) {
			return fmt.Errorf("autonomo bracket %d: max must be greater than min", i)
		}
		if b.BaseMax.LessThan(b.BaseMin) {
			return fmt.Errorf("autonomo bracket %d: base max cannot be below base min", i)
		}
		if i > 0 && !b.Min.Equal(*c.AutonomoBrackets[i-1].Max) {
			return fmt.Errorf("autonomo bracket %d does not start where bracket %d ends", i, i-1)
		}
		if i < len(c.AutonomoBrackets)-1 && b.Max == nil {
			return fmt.Errorf("only the last autonomo bracket can be unbounded")
		}
	}

	for name, rate := range map[string]decimal.Decimal{
		"micro corporate rate":   c.CorporateTax.MicroRate,
		"regular corporate rate": c.CorporateTax.RegularRate,
		"startup corporate rate": c.CorporateTax.StartupRate,
		"beckham rate":           c.Beckham.Rate,
		"beckham high rate":      c.Beckham.HighRate,
	} {
		if err := validateRate(name, rate); err != nil {
			return err
		}
	}
	if c.Beckham.MaxYears < 1 {
		return fmt.Errorf("beckham max years must be at least 1")
	}
	if len(c.PersonalAllowances.Children) == 0 {
		return fmt.Errorf("child allowances are required")
	}

	return nil
}

// validateBrackets checks that brackets are contiguous, ascending and end unbounded
func validateBrackets(name string, brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%s brackets are required", name)
	}
	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("%s brackets must start at zero", name)
	}
	for i, b := range brackets {
		if err := validateRate(fmt.Sprintf("%s bracket %d rate", name, i), b.Rate); err != nil {
			return err
		}
		if i == len(brackets)-1 {
			if b.Max != nil {
				return fmt.Errorf("%s: last bracket must be unbounded", name)
			}
			continue
		}
		if b.Max == nil {
			return fmt.Errorf("%s: only the last bracket can be unbounded", name)
		}
		if b.Max.LessThanOrEqual(b.Min) {
			return fmt.Errorf("%s bracket %d: max must be greater than min", name, i)
		}
		if !brackets[i+1].Min.Equal(*b.Max) {
			return fmt.Errorf("%s bracket %d does not start where bracket %d ends", name, i+1, i)
		}
	}
	return nil
}

func validateRate(name string, rate decimal.Decimal) error {
	if rate.LessThan(decimal.Zero) || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be between 0 and 1", name)
	}
	return nil
}
