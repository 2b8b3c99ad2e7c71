package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/esnet/internal/calculation"
	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/rgehrsitz/esnet/internal/transform"
)

// CompareEngine orchestrates regime comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseRegime domain.Regime // Regime to compare against; empty selects the best ranked one
	Templates  []string      // What-if templates applied to the base regime
	ConfigPath string
}

// Compare ranks the regimes in params and measures every other regime, plus
// each requested what-if template, against the base regime.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	params domain.CalculatorParams,
	options CompareOptions,
) (*ComparisonSet, error) {

	if len(params.Regimes) == 0 {
		return nil, fmt.Errorf("no regimes to compare")
	}

	if options.BaseRegime != "" && !containsRegime(params.Regimes, options.BaseRegime) {
		return nil, fmt.Errorf("base regime %s is not among the compared regimes", options.BaseRegime)
	}

	// Calculate every regime
	results := make([]domain.TaxCalculationResult, 0, len(params.Regimes))
	for _, regime := range params.Regimes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := ce.CalcEngine.Calculate(regime, params)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate regime %s: %w", regime, err)
		}
		results = append(results, *result)
	}

	ranked := ce.MetricsCalculator.RankResults(results)

	baseIndex := 0
	if options.BaseRegime != "" {
		for i := range ranked {
			if ranked[i].Regime == options.BaseRegime {
				baseIndex = i
				break
			}
		}
	}
	baseResult := ranked[baseIndex]

	alternatives := []ComparisonResult{}
	for i := range ranked {
		if i == baseIndex {
			continue
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(ranked[i], baseResult))
	}

	// What-if variants of the base regime
	for _, templateName := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(&params, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		altCalc, err := ce.CalcEngine.Calculate(baseResult.Regime, *modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate template %s: %w", templateName, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(altCalc)
		altResult.Name = string(baseResult.Regime) + "+" + templateName
		altResult.Description = template.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseName:           baseResult.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ConfigPath:         options.ConfigPath,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func containsRegime(regimes []domain.Regime, target domain.Regime) bool {
	for _, r := range regimes {
		if r == target {
			return true
		}
	}
	return false
}
