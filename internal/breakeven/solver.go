package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/shopspring/decimal"
)

// Solver finds the itemized-deduction level at which the old regime overtakes
// the new one
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve runs the search for one income. Old-regime tax never increases as
// itemized deductions grow, so the crossing point is found by bisection over
// [0, income].
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.CalcEngine == nil || s.CalcEngine.OldCalc == nil || s.CalcEngine.NewCalc == nil {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   "calculation engine is not initialized",
		}
	}

	// Apply defaults
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	newTax := s.CalcEngine.NewCalc.CalculateTax(req.Income, req.StandardDeduction)
	oldAtZero := s.oldTaxAt(req, decimal.Zero)

	result := &Result{
		Request:            req,
		NewRegimeTax:       newTax,
		OldRegimeTaxAtZero: oldAtZero,
	}

	if !newTax.IsPositive() {
		result.Status = StatusNever
		result.ConvergenceInfo = "New regime tax is zero"
		return result, nil
	}
	if oldAtZero.LessThan(newTax) {
		result.Status = StatusAlways
		result.OldRegimeTaxAtEven = oldAtZero
		result.ConvergenceInfo = "Old regime is cheaper without itemized deductions"
		return result, nil
	}

	// old(lo) >= new and old(hi) < new hold throughout; old(income) is the
	// tax on zero taxable income, below any positive new-regime tax.
	lo := decimal.Zero
	hi := req.Income
	two := decimal.NewFromInt(2)

	for result.Iterations < req.MaxIterations && hi.Sub(lo).GreaterThan(req.Tolerance) {
		result.Iterations++

		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two)
		if s.oldTaxAt(req, mid).LessThan(newTax) {
			hi = mid
		} else {
			lo = mid
		}
	}

	if hi.Sub(lo).GreaterThan(req.Tolerance) {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("bisection did not converge after %d iterations", req.MaxIterations),
		}
	}

	result.Status = StatusFound
	result.Threshold = s.smallestWhole(req, lo, hi, newTax)
	result.OldRegimeTaxAtEven = s.oldTaxAt(req, result.Threshold)
	result.Shortfall = decimal.Max(result.Threshold.Sub(req.Current), decimal.Zero)
	result.ConvergenceInfo = fmt.Sprintf("Converged within Rs. %s", req.Tolerance.String())
	return result, nil
}

// smallestWhole returns the least whole-rupee amount in (lo, hi] at which the
// old regime is cheaper. ceil(hi) always qualifies.
func (s *Solver) smallestWhole(req Request, lo, hi, newTax decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	threshold := hi.Ceil()
	for {
		prev := threshold.Sub(one)
		if !prev.GreaterThan(lo) || !s.oldTaxAt(req, prev).LessThan(newTax) {
			return threshold
		}
		threshold = prev
	}
}

// oldTaxAt returns old-regime tax when the itemized total is exactly amount
func (s *Solver) oldTaxAt(req Request, amount decimal.Decimal) decimal.Decimal {
	total := amount
	if req.StandardDeduction {
		total = total.Add(s.CalcEngine.OldCalc.Deductions.StandardDeduction)
	}
	taxable := s.CalcEngine.OldCalc.TaxableIncome(req.Income, total)
	return s.CalcEngine.OldCalc.Slabs.Calculate(taxable)
}
