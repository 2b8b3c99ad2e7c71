package compare

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{
		Name:       "empleado",
		NetAnnual:  decimal.NewFromInt(40000),
		TotalTaxes: decimal.NewFromInt(35000),
	}

	alt := ComparisonResult{
		Name:       "sl_micro",
		NetAnnual:  decimal.NewFromInt(44000),
		TotalTaxes: decimal.NewFromInt(31000),
	}

	result := calc.CalculateComparison(alt, base)

	// 44000 - 40000 = 4000
	if !result.NetDiffFromBase.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("Expected net diff 4000, got %s", result.NetDiffFromBase.String())
	}

	// 4000 / 40000 * 100 = 10%
	if !result.NetPctFromBase.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected net pct 10, got %s", result.NetPctFromBase.String())
	}

	// 31000 - 35000 = -4000
	if !result.TaxDiffFromBase.Equal(decimal.NewFromInt(-4000)) {
		t.Errorf("Expected tax diff -4000, got %s", result.TaxDiffFromBase.String())
	}
}

func TestGenerateRecommendations(t *testing.T) {
	baseResult := &ComparisonResult{
		Name:          "empleado",
		NetAnnual:     decimal.NewFromInt(40000),
		EffectiveRate: decimal.NewFromFloat(0.45),
	}

	alt1 := ComparisonResult{
		Name:          "autonomo_tarifa_plana",
		NetAnnual:     decimal.NewFromInt(48000),
		EffectiveRate: decimal.NewFromFloat(0.36),
	}

	alt2 := ComparisonResult{
		Name:          "startup_certificada",
		NetAnnual:     decimal.NewFromInt(44000),
		EffectiveRate: decimal.NewFromFloat(0.30),
	}

	compSet := &ComparisonSet{
		BaseName:           "empleado",
		BaseResult:         baseResult,
		AlternativeResults: []ComparisonResult{alt1, alt2},
	}

	recommendations := GenerateRecommendations(compSet)

	if len(recommendations) != 2 {
		t.Fatalf("Expected 2 recommendations, got %d: %v", len(recommendations), recommendations)
	}

	// 8000 more per year, 666.67 per month
	want := "Best Income: autonomo_tarifa_plana leaves €8000 more per year (€667/month) than empleado"
	if recommendations[0] != want {
		t.Errorf("Expected %q, got %q", want, recommendations[0])
	}

	if !strings.Contains(recommendations[1], "Lowest Rate: startup_certificada pays 30.0% of revenue versus 45.0% for empleado") {
		t.Errorf("Expected lowest rate recommendation for startup_certificada, got %q", recommendations[1])
	}
}

func TestGenerateRecommendations_EmptyAlternatives(t *testing.T) {
	compSet := &ComparisonSet{
		BaseName:           "empleado",
		BaseResult:         &ComparisonResult{Name: "empleado", NetAnnual: decimal.NewFromInt(40000)},
		AlternativeResults: []ComparisonResult{},
	}

	recommendations := GenerateRecommendations(compSet)

	if len(recommendations) != 0 {
		t.Errorf("Expected no recommendations, got %d", len(recommendations))
	}
}

func TestGenerateRecommendations_NoBetterThanBase(t *testing.T) {
	compSet := &ComparisonSet{
		BaseName: "beckham",
		BaseResult: &ComparisonResult{
			Name:          "beckham",
			NetAnnual:     decimal.NewFromInt(56000),
			EffectiveRate: decimal.NewFromFloat(0.25),
		},
		AlternativeResults: []ComparisonResult{
			{
				Name:          "empleado",
				NetAnnual:     decimal.NewFromInt(39000),
				EffectiveRate: decimal.NewFromFloat(0.48),
			},
		},
	}

	recommendations := GenerateRecommendations(compSet)

	// Only the statement that the base is already best
	if len(recommendations) != 1 {
		t.Fatalf("Expected 1 recommendation, got %v", recommendations)
	}
	if !strings.Contains(recommendations[0], "beckham already gives the highest net income") {
		t.Errorf("Unexpected recommendation: %q", recommendations[0])
	}
}
