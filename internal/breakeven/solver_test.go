package breakeven

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func scenarioA() domain.TaxInput {
	return domain.TaxInput{
		Name:              "scenario A",
		Income:            d(1200000),
		StandardDeduction: true,
		RentPaid:          d(20000),
		HRAReceived:       d(12500),
		BasicSalary:       d(50000),
		Deductions: domain.DeductionSet{
			"80C":              d(150000),
			"80D":              d(25000),
			"80DDB":            d(40000),
			"80G":              d(10000),
			"HomeLoanInterest": d(200000),
			"TTA":              d(10000),
		},
	}
}

func TestNewDefaultSolver(t *testing.T) {
	calcEngine := calculation.NewCalculationEngine()

	solver := NewDefaultSolver(calcEngine)

	require.NotNil(t, solver)
	assert.Same(t, calcEngine, solver.CalcEngine)
	assert.Equal(t, 100, solver.Options.MaxIterations)
	assert.True(t, solver.Options.Tolerance.Equal(d(1)))
}

func TestSolver_Solve_Found(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	result, err := solver.Solve(context.Background(), Request{Income: d(1200000), StandardDeduction: true})
	require.NoError(t, err)

	assert.Equal(t, StatusFound, result.Status)
	assert.True(t, result.NewRegimeTax.Equal(d(52500)), "new regime tax: %s", result.NewRegimeTax)
	assert.True(t, result.OldRegimeTaxAtZero.Equal(d(150000)), "old regime tax: %s", result.OldRegimeTaxAtZero)
	// old tax equals 52500 at exactly 425000 of itemized deductions
	assert.True(t, result.Threshold.Equal(d(425001)), "threshold: %s", result.Threshold)
	assert.True(t, result.OldRegimeTaxAtEven.LessThan(result.NewRegimeTax))
	assert.True(t, result.Shortfall.Equal(d(425001)))
	assert.Greater(t, result.Iterations, 0)
}

func TestSolver_Solve_LowerIncome(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	result, err := solver.Solve(context.Background(), Request{Income: d(600000), StandardDeduction: true})
	require.NoError(t, err)

	assert.Equal(t, StatusFound, result.Status)
	assert.True(t, result.NewRegimeTax.Equal(d(6250)))
	assert.True(t, result.Threshold.Equal(d(150001)), "threshold: %s", result.Threshold)
}

func TestSolver_Solve_Never(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	tests := []struct {
		name     string
		income   int64
		standard bool
	}{
		{"zero income", 0, true},
		{"at new regime zero band", 400000, false},
		{"under zero band after standard deduction", 475000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := solver.Solve(context.Background(), Request{Income: d(tt.income), StandardDeduction: tt.standard})
			require.NoError(t, err)
			assert.Equal(t, StatusNever, result.Status)
			assert.True(t, result.Threshold.IsZero())
			assert.Zero(t, result.Iterations)
		})
	}
}

func TestSolver_Solve_Always(t *testing.T) {
	rules := domain.DefaultRegulatoryConfig()
	rules.NewRegime = domain.SlabSchedule{Slabs: []domain.TaxSlab{{Min: decimal.Zero, Rate: decimal.NewFromFloat(0.5)}}}
	solver := NewDefaultSolver(calculation.NewCalculationEngineWithConfig(rules))

	result, err := solver.Solve(context.Background(), Request{Income: d(1200000), StandardDeduction: true})
	require.NoError(t, err)

	assert.Equal(t, StatusAlways, result.Status)
	assert.True(t, result.NewRegimeTax.Equal(d(562500)))
	assert.True(t, result.OldRegimeTaxAtZero.Equal(d(150000)))
}

func TestSolver_Solve_Tolerance(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	result, err := solver.Solve(context.Background(), Request{
		Income:            d(1200000),
		StandardDeduction: true,
		Tolerance:         d(1000),
	})
	require.NoError(t, err)

	assert.True(t, result.Threshold.GreaterThan(d(425000)))
	assert.True(t, result.Threshold.LessThanOrEqual(d(426000)))
}

func TestSolver_Solve_InvalidRequest(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	tests := []struct {
		name string
		req  Request
	}{
		{"negative income", Request{Income: d(-1)}},
		{"negative current", Request{Income: d(1), Current: d(-1)}},
		{"negative tolerance", Request{Income: d(1), Tolerance: d(-1)}},
		{"negative iterations", Request{Income: d(1), MaxIterations: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := solver.Solve(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, result)

			var beErr *BreakEvenError
			require.True(t, errors.As(err, &beErr))
			assert.Equal(t, "validate_request", beErr.Operation)
		})
	}
}

func TestSolver_Solve_UninitializedEngine(t *testing.T) {
	solver := NewDefaultSolver(&calculation.CalculationEngine{})

	_, err := solver.Solve(context.Background(), Request{Income: d(1200000)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

func TestSolver_Solve_ContextCancellation(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.Solve(ctx, Request{Income: d(1200000), StandardDeduction: true})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolver_Solve_MaxIterationsExceeded(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	_, err := solver.Solve(context.Background(), Request{
		Income:            d(1200000),
		StandardDeduction: true,
		MaxIterations:     1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not converge after 1 iterations")
}

func TestSolver_RequestFor(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	req := solver.RequestFor(scenarioA())
	assert.True(t, req.Income.Equal(d(1200000)))
	assert.True(t, req.StandardDeduction)
	// 150000 HRA exemption plus 435000 allowed itemized deductions
	assert.True(t, req.Current.Equal(d(585000)), "current: %s", req.Current)

	result, err := solver.Solve(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.Shortfall.IsZero())
}

func TestSolver_Solve_CoarseToleranceStillExact(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	for _, tol := range []int64{1, 7, 1000, 25000} {
		result, err := solver.Solve(context.Background(), Request{
			Income:            d(1200000),
			StandardDeduction: true,
			Tolerance:         d(tol),
		})
		require.NoError(t, err)
		assert.True(t, result.Threshold.Equal(d(425001)), "tolerance %d: threshold %s", tol, result.Threshold)
	}
}

func TestSolver_Sweep(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	sweep, err := solver.Sweep(context.Background(), d(300000), d(1200000), d(300000), true)
	require.NoError(t, err)
	require.Len(t, sweep.Results, 4)

	assert.Equal(t, StatusNever, sweep.Results[0].Status)
	assert.Equal(t, StatusFound, sweep.Results[1].Status)
	assert.True(t, sweep.Results[1].Threshold.Equal(d(150001)))
	assert.True(t, sweep.Results[3].Threshold.Equal(d(425001)))

	require.Len(t, sweep.Recommendations, 2)
	assert.Contains(t, sweep.Recommendations[0], "300000")
	assert.Contains(t, sweep.Recommendations[1], "150001")
}

func TestSolver_Sweep_InvalidRange(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	_, err := solver.Sweep(context.Background(), d(1), d(10), decimal.Zero, true)
	assert.Error(t, err)

	_, err = solver.Sweep(context.Background(), d(10), d(1), d(1), true)
	assert.Error(t, err)
}

func TestBreakEvenError(t *testing.T) {
	cause := errors.New("boom")
	err := &BreakEvenError{Operation: "solve", Message: "failed", Cause: cause}

	assert.Equal(t, "solve: failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "solve: failed", (&BreakEvenError{Operation: "solve", Message: "failed"}).Error())
}
