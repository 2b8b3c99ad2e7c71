package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/esnet/internal/calculation"
	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allRegimeParams() domain.CalculatorParams {
	params := domain.DefaultParams()
	params.Regimes = domain.AllRegimes()
	return params
}

func TestCompare_RanksByNetIncome(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Compare(context.Background(), allRegimeParams(), CompareOptions{})
	require.NoError(t, err)

	// Without an explicit base the best regime is the base
	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, "beckham", compSet.BaseName)
	assert.Equal(t, 1, compSet.BaseResult.Rank)
	assert.True(t, decimal.RequireFromString("56062.3728").Equal(compSet.BaseResult.NetAnnual))

	expected := []domain.Regime{
		domain.RegimeStartupCertificada,
		domain.RegimeSLMicro,
		domain.RegimeSLRegular,
		domain.RegimeAutonomoTarifaPlana,
		domain.RegimeAutonomoRegular,
		domain.RegimeEmpleado,
	}
	require.Len(t, compSet.AlternativeResults, len(expected))
	for i, regime := range expected {
		alt := compSet.AlternativeResults[i]
		assert.Equal(t, regime, alt.Regime)
		assert.Equal(t, i+2, alt.Rank)
		assert.True(t, alt.NetDiffFromBase.IsNegative(), "%s should trail the best regime", regime)
	}

	assert.Contains(t, compSet.Recommendations[0], "beckham already gives the highest net income")
}

func TestCompare_ExplicitBase(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Compare(context.Background(), allRegimeParams(), CompareOptions{
		BaseRegime: domain.RegimeAutonomoRegular,
		ConfigPath: "input.yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, "autonomo_regular", compSet.BaseName)
	assert.Equal(t, 6, compSet.BaseResult.Rank)
	assert.Equal(t, "input.yaml", compSet.ConfigPath)

	var slMicro *ComparisonResult
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].Regime == domain.RegimeSLMicro {
			slMicro = &compSet.AlternativeResults[i]
		}
	}
	require.NotNil(t, slMicro)
	assert.True(t, decimal.RequireFromString("6558.20588").Equal(slMicro.NetDiffFromBase), "got %s", slMicro.NetDiffFromBase)
	assert.True(t, slMicro.TaxDiffFromBase.Equal(slMicro.NetDiffFromBase.Neg()))

	assert.Contains(t, compSet.Recommendations[0], "Best Income: beckham")
	assert.Contains(t, compSet.Recommendations[1], "Lowest Rate: beckham")
}

func TestCompare_Templates(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	params := domain.DefaultParams()
	params.Regimes = []domain.Regime{domain.RegimeEmpleado}

	compSet, err := engine.Compare(context.Background(), params, CompareOptions{
		Templates: []string{"income_plus_20", "family_married_2_children"},
	})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 2)

	plus20 := compSet.AlternativeResults[0]
	assert.Equal(t, "empleado+income_plus_20", plus20.Name)
	assert.Equal(t, domain.RegimeEmpleado, plus20.Regime)
	assert.Equal(t, "Revenue 20% higher", plus20.Description)
	assert.True(t, plus20.NetDiffFromBase.IsPositive())

	family := compSet.AlternativeResults[1]
	assert.Equal(t, "empleado+family_married_2_children", family.Name)
	assert.True(t, decimal.RequireFromString("42722.668616").Equal(family.NetAnnual), "got %s", family.NetAnnual)
	assert.True(t, decimal.RequireFromString("3629.5").Equal(family.NetDiffFromBase), "got %s", family.NetDiffFromBase)
}

func TestCompare_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	ctx := context.Background()

	params := domain.DefaultParams()
	params.Regimes = nil
	_, err := engine.Compare(ctx, params, CompareOptions{})
	assert.Error(t, err)

	_, err = engine.Compare(ctx, domain.DefaultParams(), CompareOptions{BaseRegime: domain.RegimeBeckham})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not among the compared regimes")

	_, err = engine.Compare(ctx, domain.DefaultParams(), CompareOptions{Templates: []string{"move_andalucia"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template move_andalucia not found")

	bad := domain.DefaultParams()
	bad.Community = "murcia"
	_, err = engine.Compare(ctx, bad, CompareOptions{})
	assert.ErrorIs(t, err, calculation.ErrUnknownCommunity)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = engine.Compare(cancelled, domain.DefaultParams(), CompareOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRankResults_StableTies(t *testing.T) {
	mc := NewMetricsCalculator()

	results := []domain.TaxCalculationResult{
		{Regime: domain.RegimeEmpleado, NetAnnual: decimal.NewFromInt(100)},
		{Regime: domain.RegimeBeckham, NetAnnual: decimal.NewFromInt(200)},
		{Regime: domain.RegimeSLMicro, NetAnnual: decimal.NewFromInt(100)},
	}

	ranked := mc.RankResults(results)
	require.Len(t, ranked, 3)
	assert.Equal(t, domain.RegimeBeckham, ranked[0].Regime)
	assert.Equal(t, domain.RegimeEmpleado, ranked[1].Regime)
	assert.Equal(t, domain.RegimeSLMicro, ranked[2].Regime)
	assert.Equal(t, 3, ranked[2].Rank)
}

func TestCalculateMetrics_MonthlySplit(t *testing.T) {
	mc := NewMetricsCalculator()
	corporate := decimal.NewFromInt(12000)

	metrics := mc.CalculateMetrics(&domain.TaxCalculationResult{
		Regime:    domain.RegimeSLRegular,
		NetAnnual: decimal.NewFromInt(50000),
		Breakdown: domain.Breakdown{
			IRPF:           decimal.Zero,
			SocialSecurity: decimal.NewFromInt(2400),
			CorporateTax:   &corporate,
		},
	})

	assert.Equal(t, "SL Regular", metrics.Description)
	assert.True(t, decimal.NewFromInt(1000).Equal(metrics.MonthlyTax))
	assert.True(t, decimal.NewFromInt(200).Equal(metrics.MonthlySS))
	assert.True(t, decimal.NewFromInt(14400).Equal(metrics.TotalTaxes))
}

func TestCalculateComparison_ZeroBase(t *testing.T) {
	mc := NewMetricsCalculator()

	alt := mc.CalculateComparison(
		ComparisonResult{NetAnnual: decimal.NewFromInt(10)},
		ComparisonResult{NetAnnual: decimal.Zero},
	)
	assert.True(t, decimal.NewFromInt(10).Equal(alt.NetDiffFromBase))
	assert.True(t, alt.NetPctFromBase.IsZero())
}

func TestGenerateRecommendations_NegativeNet(t *testing.T) {
	compSet := &ComparisonSet{
		BaseResult: &ComparisonResult{Name: "empleado", NetAnnual: decimal.NewFromInt(100)},
		AlternativeResults: []ComparisonResult{
			{Name: "sl_micro", NetAnnual: decimal.NewFromInt(-2460), EffectiveRate: decimal.Zero},
		},
	}

	recs := GenerateRecommendations(compSet)
	assert.Contains(t, recs[len(recs)-1], "Warning: sl_micro costs more than it earns")

	assert.Empty(t, GenerateRecommendations(&ComparisonSet{}))
}
