package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/domain"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Scenarios  []string // Scenario names to include; empty means all
	ConfigPath string

	// Extra alternatives built outside the configuration (templates, transforms)
	WhatIfs []WhatIf
}

// WhatIf is an ad-hoc alternative input with a description for display
type WhatIf struct {
	Input       domain.TaxInput
	Description string
}

// Compare runs the base taxpayer and the configured scenarios
func (ce *CompareEngine) Compare(
	ctx context.Context,
	cfg *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {

	inputs := config.Inputs(cfg)
	base := inputs[0]

	descriptions := map[string]string{}
	for _, s := range cfg.Scenarios {
		descriptions[s.Name] = s.Description
	}

	var alternatives []domain.TaxInput
	if len(options.Scenarios) == 0 {
		alternatives = inputs[1:]
	} else {
		byName := map[string]domain.TaxInput{}
		for _, in := range inputs[1:] {
			byName[in.Name] = in
		}
		for _, name := range options.Scenarios {
			in, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("scenario %s not found in configuration", name)
			}
			alternatives = append(alternatives, in)
		}
	}

	for _, w := range options.WhatIfs {
		alternatives = append(alternatives, w.Input)
		descriptions[w.Input.Name] = w.Description
	}

	compSet, err := ce.CompareInputs(ctx, base, alternatives)
	if err != nil {
		return nil, err
	}

	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		alt.Description = descriptions[alt.ScenarioName]
	}
	compSet.ConfigPath = options.ConfigPath

	return compSet, nil
}

// CompareInputs compares explicit inputs against a base input
func (ce *CompareEngine) CompareInputs(
	ctx context.Context,
	base domain.TaxInput,
	alternatives []domain.TaxInput,
) (*ComparisonSet, error) {

	baseTax, err := ce.CalcEngine.Evaluate(base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(base, baseTax)

	results := []ComparisonResult{}
	for _, alt := range alternatives {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		altTax, err := ce.CalcEngine.Evaluate(alt)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", alt.Name, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(alt, altTax)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		results = append(results, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
