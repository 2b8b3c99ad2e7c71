package compare

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single regime (or what-if variant) with calculated metrics
type ComparisonResult struct {
	Name        string                       `json:"name"`
	Regime      domain.Regime                `json:"regime"`
	Description string                       `json:"description"`
	Result      *domain.TaxCalculationResult `json:"-"`

	// Key Metrics
	Rank          int             `json:"rank"` // 1 = highest net income among regimes
	NetAnnual     decimal.Decimal `json:"netAnnual"`
	NetMonthly    decimal.Decimal `json:"netMonthly"`
	TotalTaxes    decimal.Decimal `json:"totalTaxes"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`
	MonthlyTax    decimal.Decimal `json:"monthlyTax"` // income, corporate and dividend taxes
	MonthlySS     decimal.Decimal `json:"monthlySS"`

	// Comparison to Base
	NetDiffFromBase decimal.Decimal `json:"netDiffFromBase"`
	NetPctFromBase  decimal.Decimal `json:"netPctFromBase"`
	TaxDiffFromBase decimal.Decimal `json:"taxDiffFromBase"`
}

// ComparisonSet represents a base regime compared against the other regimes and what-if variants
type ComparisonSet struct {
	BaseName           string             `json:"baseName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from calculation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a regime result
func (mc *MetricsCalculator) CalculateMetrics(result *domain.TaxCalculationResult) ComparisonResult {
	twelve := decimal.NewFromInt(12)
	return ComparisonResult{
		Name:          string(result.Regime),
		Regime:        result.Regime,
		Description:   result.Regime.DisplayName(),
		Result:        result,
		NetAnnual:     result.NetAnnual,
		NetMonthly:    result.NetMonthly,
		TotalTaxes:    result.TotalTaxes(),
		EffectiveRate: result.EffectiveRate,
		MonthlyTax:    result.Breakdown.IncomeTaxes().Div(twelve),
		MonthlySS:     result.Breakdown.SocialSecurity.Div(twelve),
	}
}

// CalculateComparison computes comparison metrics between a result and a base
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.NetDiffFromBase = alt.NetAnnual.Sub(base.NetAnnual)

	if !base.NetAnnual.IsZero() {
		alt.NetPctFromBase = alt.NetDiffFromBase.
			Div(base.NetAnnual.Abs()).
			Mul(decimal.NewFromInt(100))
	}

	alt.TaxDiffFromBase = alt.TotalTaxes.Sub(base.TotalTaxes)

	return alt
}

// RankResults orders regime results by net annual income, best first, and
// assigns ranks. Ties keep their input order.
func (mc *MetricsCalculator) RankResults(results []domain.TaxCalculationResult) []ComparisonResult {
	ranked := make([]ComparisonResult, len(results))
	for i := range results {
		ranked[i] = mc.CalculateMetrics(&results[i])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NetAnnual.GreaterThan(ranked[j].NetAnnual)
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Best net income
	best := base
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].NetAnnual.GreaterThan(best.NetAnnual) {
			best = &compSet.AlternativeResults[i]
		}
	}

	if best != base {
		diff := best.NetAnnual.Sub(base.NetAnnual)
		recommendations = append(recommendations,
			fmt.Sprintf("Best Income: %s leaves €%s more per year (€%s/month) than %s",
				best.Name, diff.StringFixed(0), diff.Div(decimal.NewFromInt(12)).StringFixed(0), base.Name))
	} else {
		recommendations = append(recommendations,
			fmt.Sprintf("Best Income: %s already gives the highest net income", base.Name))
	}

	// Lowest effective rate
	lowest := base
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].EffectiveRate.LessThan(lowest.EffectiveRate) {
			lowest = &compSet.AlternativeResults[i]
		}
	}

	if lowest != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Rate: %s pays %s%% of revenue versus %s%% for %s",
				lowest.Name, percent(lowest.EffectiveRate), percent(base.EffectiveRate), base.Name))
	}

	// Fixed quotas larger than the income they apply to
	for _, r := range append([]ComparisonResult{*base}, compSet.AlternativeResults...) {
		if r.NetAnnual.IsNegative() {
			recommendations = append(recommendations,
				fmt.Sprintf("Warning: %s costs more than it earns at this revenue (net €%s)", r.Name, r.NetAnnual.StringFixed(0)))
		}
	}

	return recommendations
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(1)
}
