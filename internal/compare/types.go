package compare

import (
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string            `json:"scenarioName"`
	Description  string            `json:"description,omitempty"`
	Result       *domain.TaxResult `json:"result"`

	// Key Metrics
	Income        decimal.Decimal `json:"income"`
	OldRegimeTax  decimal.Decimal `json:"oldRegimeTax"`
	NewRegimeTax  decimal.Decimal `json:"newRegimeTax"`
	Recommended   domain.Regime   `json:"recommended"`
	PayableTax    decimal.Decimal `json:"payableTax"`    // Tax under the recommended regime
	RegimeSavings decimal.Decimal `json:"regimeSavings"` // What the recommended regime saves over the other
	EffectiveRate decimal.Decimal `json:"effectiveRate"` // Payable tax as a percentage of income

	// Comparison to Base
	TaxDiffFromBase decimal.Decimal `json:"taxDiffFromBase"`
	TaxPctFromBase  decimal.Decimal `json:"taxPctFromBase"`
	RegimeChanged   bool            `json:"regimeChanged"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// All returns the base result followed by the alternatives
func (cs *ComparisonSet) All() []ComparisonResult {
	all := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		all = append(all, *cs.BaseResult)
	}
	return append(all, cs.AlternativeResults...)
}

// MetricsCalculator extracts key metrics from tax results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for one scenario
func (mc *MetricsCalculator) CalculateMetrics(input domain.TaxInput, result *domain.TaxResult) ComparisonResult {
	cr := ComparisonResult{
		ScenarioName:  input.Name,
		Result:        result,
		Income:        input.Income,
		OldRegimeTax:  result.OldRegimeTax,
		NewRegimeTax:  result.NewRegimeTax,
		Recommended:   result.Recommended,
		PayableTax:    result.RecommendedTax(),
		RegimeSavings: result.Difference,
	}

	if input.Income.IsPositive() {
		cr.EffectiveRate = cr.PayableTax.Div(input.Income).Mul(decimal.NewFromInt(100))
	}

	return cr
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TaxDiffFromBase = scenario.PayableTax.Sub(base.PayableTax)

	if !base.PayableTax.IsZero() {
		scenario.TaxPctFromBase = scenario.TaxDiffFromBase.
			Div(base.PayableTax).
			Mul(decimal.NewFromInt(100))
	}

	scenario.RegimeChanged = scenario.Recommended != base.Recommended

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil {
		return recommendations
	}

	base := compSet.BaseResult
	recommendations = append(recommendations,
		fmt.Sprintf("%s: file under the %s (saves ₹%s over the %s)",
			base.ScenarioName, base.Recommended, base.RegimeSavings.StringFixed(0), other(base.Recommended)))

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Find lowest payable tax
	lowest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.PayableTax.LessThan(lowest.PayableTax) {
			lowest = alt
		}
	}

	if lowest != base {
		savings := base.PayableTax.Sub(lowest.PayableTax)
		recommendations = append(recommendations,
			"Lowest Tax: "+lowest.ScenarioName+" pays ₹"+savings.StringFixed(0)+
				" less than "+base.ScenarioName+" under the "+string(lowest.Recommended))
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.RegimeChanged {
			recommendations = append(recommendations,
				fmt.Sprintf("Regime Switch: %s favours the %s instead of the %s",
					alt.ScenarioName, alt.Recommended, base.Recommended))
		}
	}

	return recommendations
}

func other(r domain.Regime) domain.Regime {
	if r == domain.OldRegime {
		return domain.NewRegime
	}
	return domain.OldRegime
}
