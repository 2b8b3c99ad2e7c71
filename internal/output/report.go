package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/shopspring/decimal"
)

// Report bundles the input and the per-regime results of one calculation run
type Report struct {
	DataYear    int                           `json:"data_year"`
	Params      domain.CalculatorParams       `json:"params"`
	Results     []domain.TaxCalculationResult `json:"results"`
	Assumptions []string                      `json:"assumptions,omitempty"`
}

// NewReport creates a report for results calculated with the given tables
func NewReport(params domain.CalculatorParams, results []domain.TaxCalculationResult, constants *domain.TaxConstants) *Report {
	report := &Report{
		Params:      params,
		Results:     results,
		Assumptions: DefaultAssumptions,
	}
	if constants != nil {
		report.DataYear = constants.Metadata.DataYear
	}
	return report
}

// Best returns the result with the highest net annual income, or nil when
// the report is empty. Ties keep the first result.
func (r *Report) Best() *domain.TaxCalculationResult {
	var best *domain.TaxCalculationResult
	for i := range r.Results {
		if best == nil || r.Results[i].NetAnnual.GreaterThan(best.NetAnnual) {
			best = &r.Results[i]
		}
	}
	return best
}

// FormatCurrency formats a decimal as euros with thousands separators
func FormatCurrency(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var sb strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(c)
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("%s%s.%s€", sign, sb.String(), frac)
}

// FormatPercentage formats a rate (0.25) as a percentage (25.00%)
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
