package calculation

import (
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates the HRA, deduction and regime calculators
type CalculationEngine struct {
	Rules   domain.RegulatoryConfig
	HRACalc *HRACalculator
	OldCalc *OldRegimeCalculator
	NewCalc *NewRegimeCalculator
	Logger  Logger
	Debug   bool // Enable debug output for detailed calculations
}

// NewCalculationEngine creates an engine using the default statutory tables
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithConfig(domain.DefaultRegulatoryConfig())
}

// NewCalculationEngineWithConfig creates an engine with configurable rules
func NewCalculationEngineWithConfig(rules domain.RegulatoryConfig) *CalculationEngine {
	return &CalculationEngine{
		Rules:   rules,
		HRACalc: NewHRACalculator(rules.HRA),
		OldCalc: NewOldRegimeCalculator(rules),
		NewCalc: NewNewRegimeCalculator(rules),
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger; nil installs a no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Compare runs HRA, old-regime and new-regime calculations for one input and
// picks the cheaper regime. The old regime is recommended only when strictly
// cheaper; a tie goes to the new regime. Inputs are not validated.
func (ce *CalculationEngine) Compare(input domain.TaxInput) domain.TaxResult {
	hraExempt := ce.HRACalc.Exemption(input.RentPaid, input.HRAReceived, input.BasicSalary)

	deductions := ce.OldCalc.Deductions.Aggregate(input.Deductions, input.StandardDeduction, hraExempt)
	oldTaxable := ce.OldCalc.TaxableIncome(input.Income, deductions.Total)
	oldSlabs := ce.OldCalc.Slabs.Breakdown(oldTaxable)
	oldTax := sumSlabs(oldSlabs)

	newTaxable := ce.NewCalc.TaxableIncome(input.Income, input.StandardDeduction)
	newSlabs := ce.NewCalc.Slabs.Breakdown(newTaxable)
	newTax := sumSlabs(newSlabs)

	recommended := domain.NewRegime
	if oldTax.LessThan(newTax) {
		recommended = domain.OldRegime
	}

	if ce.Debug {
		ce.Logger.Debugf("%s: hra=%s deductions=%s old taxable=%s tax=%s | new taxable=%s tax=%s -> %s",
			describe(input), hraExempt.StringFixed(2), deductions.Total.StringFixed(2),
			oldTaxable.StringFixed(2), oldTax.StringFixed(2),
			newTaxable.StringFixed(2), newTax.StringFixed(2), recommended)
	}

	return domain.TaxResult{
		Name:             input.Name,
		OldRegimeTax:     oldTax,
		NewRegimeTax:     newTax,
		Recommended:      recommended,
		Difference:       oldTax.Sub(newTax).Abs(),
		HRAExemption:     hraExempt,
		Deductions:       deductions,
		OldTaxableIncome: oldTaxable,
		NewTaxableIncome: newTaxable,
		OldSlabs:         oldSlabs,
		NewSlabs:         newSlabs,
	}
}

// Evaluate validates the input and then compares regimes
func (ce *CalculationEngine) Evaluate(input domain.TaxInput) (*domain.TaxResult, error) {
	if err := ValidateInput(input); err != nil {
		ce.Logger.Warnf("rejected input %s: %v", describe(input), err)
		return nil, fmt.Errorf("cannot compare regimes: %w", err)
	}
	result := ce.Compare(input)
	return &result, nil
}

// EvaluateAll evaluates each input in order, stopping at the first invalid one
func (ce *CalculationEngine) EvaluateAll(inputs []domain.TaxInput) ([]domain.TaxResult, error) {
	results := make([]domain.TaxResult, 0, len(inputs))
	for i, input := range inputs {
		result, err := ce.Evaluate(input)
		if err != nil {
			return nil, fmt.Errorf("input %d (%s): %w", i, describe(input), err)
		}
		results = append(results, *result)
	}
	return results, nil
}

func sumSlabs(bands []domain.SlabAmount) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bands {
		total = total.Add(b.Tax)
	}
	return total
}

func describe(input domain.TaxInput) string {
	if input.Name != "" {
		return input.Name
	}
	return "income " + input.Income.StringFixed(0)
}
