package calculation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), "expected %s, got %s %v", expected, actual.String(), msgAndArgs)
}

// scenarioA is the reference taxpayer from the original form defaults
func scenarioA() domain.TaxInput {
	return domain.TaxInput{
		Name:              "scenario A",
		Income:            d("1200000"),
		StandardDeduction: true,
		RentPaid:          d("20000"),
		HRAReceived:       d("12500"),
		BasicSalary:       d("50000"),
		Deductions: domain.DeductionSet{
			"80C":              d("150000"),
			"80D":              d("25000"),
			"80DDB":            d("40000"),
			"80G":              d("10000"),
			"HomeLoanInterest": d("200000"),
			"TTA":              d("10000"),
		},
	}
}

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.HRACalc, "Should initialize HRA calculator")
	assert.NotNil(t, engine.OldCalc, "Should initialize old regime calculator")
	assert.NotNil(t, engine.NewCalc, "Should initialize new regime calculator")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_Compare_ScenarioA(t *testing.T) {
	engine := NewCalculationEngine()

	result := engine.Compare(scenarioA())

	assertDecimal(t, "150000", result.HRAExemption, "hra exemption")
	assertDecimal(t, "660000", result.Deductions.Total, "total deductions")
	assertDecimal(t, "435000", result.Deductions.Itemized, "itemized deductions")
	assertDecimal(t, "540000", result.OldTaxableIncome, "old taxable income")
	assertDecimal(t, "20500", result.OldRegimeTax, "old regime tax")
	assertDecimal(t, "1125000", result.NewTaxableIncome, "new taxable income")
	assertDecimal(t, "52500", result.NewRegimeTax, "new regime tax")
	assertDecimal(t, "32000", result.Difference, "difference")
	assert.Equal(t, domain.OldRegime, result.Recommended)
	assert.Equal(t, "scenario A", result.Name)
	assertDecimal(t, "20500", result.RecommendedTax())
}

func TestCalculationEngine_Compare_TieGoesToNewRegime(t *testing.T) {
	engine := NewCalculationEngine()

	result := engine.Compare(domain.TaxInput{Income: d("300000"), StandardDeduction: true})

	assert.True(t, result.OldRegimeTax.IsZero())
	assert.True(t, result.NewRegimeTax.IsZero())
	assert.Equal(t, domain.NewRegime, result.Recommended)
	assert.True(t, result.Difference.IsZero())
}

func TestCalculationEngine_Compare_NewRegimeCheaper(t *testing.T) {
	engine := NewCalculationEngine()

	// No deductions at all: the new regime's wider bands win
	result := engine.Compare(domain.TaxInput{Income: d("1500000"), StandardDeduction: true})

	// old: taxable 1,425,000 -> 12,500 + 100,000 + 127,500
	assertDecimal(t, "240000", result.OldRegimeTax)
	// new: taxable 1,425,000 -> 20,000 + 40,000 + 33,750
	assertDecimal(t, "93750", result.NewRegimeTax)
	assert.Equal(t, domain.NewRegime, result.Recommended)
}

func TestCalculationEngine_Compare_ZeroIncome(t *testing.T) {
	engine := NewCalculationEngine()

	input := scenarioA()
	input.Income = decimal.Zero

	result := engine.Compare(input)
	assert.True(t, result.OldRegimeTax.IsZero())
	assert.True(t, result.NewRegimeTax.IsZero())
	assert.True(t, result.OldTaxableIncome.IsZero())
	assert.True(t, result.NewTaxableIncome.IsZero())
}

func TestCalculationEngine_Compare_Idempotent(t *testing.T) {
	engine := NewCalculationEngine()
	input := scenarioA()

	first := engine.Compare(input)
	second := engine.Compare(input)

	assert.True(t, first.OldRegimeTax.Equal(second.OldRegimeTax))
	assert.True(t, first.NewRegimeTax.Equal(second.NewRegimeTax))
	assert.Equal(t, first.Recommended, second.Recommended)
	assert.Len(t, input.Deductions, 6, "input deductions must not be modified")
}

func TestCalculationEngine_Evaluate(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.Evaluate(scenarioA())
	require.NoError(t, err)
	assertDecimal(t, "20500", result.OldRegimeTax)

	tests := []struct {
		name  string
		input func() domain.TaxInput
		field string
	}{
		{"negative income", func() domain.TaxInput { in := scenarioA(); in.Income = d("-1"); return in }, "income"},
		{"negative rent", func() domain.TaxInput { in := scenarioA(); in.RentPaid = d("-100"); return in }, "rent_paid"},
		{"negative hra", func() domain.TaxInput { in := scenarioA(); in.HRAReceived = d("-100"); return in }, "hra_received"},
		{"negative basic", func() domain.TaxInput { in := scenarioA(); in.BasicSalary = d("-100"); return in }, "basic_salary"},
		{"negative deduction", func() domain.TaxInput { in := scenarioA(); in.Deductions["80D"] = d("-5"); return in }, "deductions.80D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Evaluate(tt.input())
			require.Error(t, err)
			assert.Nil(t, result)

			var invalid *domain.InvalidInputError
			require.True(t, errors.As(err, &invalid), "expected InvalidInputError, got %T", err)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestCalculationEngine_EvaluateAll(t *testing.T) {
	engine := NewCalculationEngine()

	second := scenarioA()
	second.Name = "no deductions"
	second.Deductions = nil

	results, err := engine.EvaluateAll([]domain.TaxInput{scenarioA(), second})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "scenario A", results[0].Name)
	assert.Equal(t, "no deductions", results[1].Name)

	bad := scenarioA()
	bad.Name = "bad"
	bad.Income = d("-10")
	_, err = engine.EvaluateAll([]domain.TaxInput{scenarioA(), bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input 1 (bad)")
}

func TestCalculationEngine_DebugLogging(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)
	engine.Debug = true

	engine.Compare(scenarioA())
	require.Len(t, logger.debug, 1)
	assert.Contains(t, logger.debug[0], "scenario A")
	assert.Contains(t, logger.debug[0], "Old Regime")

	_, err := engine.Evaluate(domain.TaxInput{Income: d("-1")})
	require.Error(t, err)
	assert.Len(t, logger.warn, 1)
}

func TestCalculationEngine_CustomRules(t *testing.T) {
	rules := domain.DefaultRegulatoryConfig()
	rules.StandardDeduction = d("50000")
	engine := NewCalculationEngineWithConfig(rules)

	result := engine.Compare(domain.TaxInput{Income: d("900000"), StandardDeduction: true})
	assertDecimal(t, "850000", result.NewTaxableIncome)
	assertDecimal(t, "850000", result.OldTaxableIncome)
}

// TestLogger records messages for assertions
type TestLogger struct {
	debug []string
	info  []string
	warn  []string
	err   []string
}

func (l *TestLogger) Debugf(format string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}
func (l *TestLogger) Infof(format string, args ...any) {
	l.info = append(l.info, fmt.Sprintf(format, args...))
}
func (l *TestLogger) Warnf(format string, args ...any) {
	l.warn = append(l.warn, fmt.Sprintf(format, args...))
}
func (l *TestLogger) Errorf(format string, args ...any) {
	l.err = append(l.err, fmt.Sprintf(format, args...))
}
