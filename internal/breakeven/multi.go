package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SweepResult holds break-even points across a range of incomes
type SweepResult struct {
	Results         []Result `json:"results"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// RequestFor builds a request for a taxpayer, counting their HRA exemption and
// allowed itemized deductions as the current claim
func (s *Solver) RequestFor(input domain.TaxInput) Request {
	summary := s.CalcEngine.Compare(input).Deductions
	return Request{
		Income:            input.Income,
		StandardDeduction: input.StandardDeduction,
		Current:           summary.HRAExemption.Add(summary.Itemized),
	}
}

// Sweep solves for every income from..to (inclusive) in steps of step
func (s *Solver) Sweep(ctx context.Context, from, to, step decimal.Decimal, standard bool) (*SweepResult, error) {
	if !step.IsPositive() {
		return nil, &BreakEvenError{
			Operation: "sweep",
			Message:   "step must be positive",
		}
	}
	if from.GreaterThan(to) {
		return nil, &BreakEvenError{
			Operation: "sweep",
			Message:   "from cannot be greater than to",
		}
	}

	sweep := &SweepResult{}
	for income := from; income.LessThanOrEqual(to); income = income.Add(step) {
		res, err := s.Solve(ctx, Request{Income: income, StandardDeduction: standard})
		if err != nil {
			return nil, &BreakEvenError{
				Operation: "sweep",
				Message:   fmt.Sprintf("income %s", income.StringFixed(0)),
				Cause:     err,
			}
		}
		sweep.Results = append(sweep.Results, *res)
	}

	sweep.Recommendations = s.generateSweepRecommendations(sweep)
	return sweep, nil
}

func (s *Solver) generateSweepRecommendations(sweep *SweepResult) []string {
	var recommendations []string

	var lastNever, firstFound *Result
	for i := range sweep.Results {
		r := &sweep.Results[i]
		switch r.Status {
		case StatusNever:
			lastNever = r
		case StatusFound:
			if firstFound == nil {
				firstFound = r
			}
		}
	}

	if lastNever != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Up to an income of %s the new regime owes no tax; the old regime cannot beat it",
				lastNever.Request.Income.StringFixed(0)))
	}
	if firstFound != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("From an income of %s the old regime needs at least %s of itemized deductions",
				firstFound.Request.Income.StringFixed(0), firstFound.Threshold.StringFixed(0)))
	}

	return recommendations
}
