package breakeven

import (
	"github.com/shopspring/decimal"
)

// Status describes whether an itemized-deduction break-even point exists
type Status string

const (
	StatusFound  Status = "found"  // Old regime wins once itemized deductions reach Threshold
	StatusNever  Status = "never"  // New regime tax is already zero; old can at best tie
	StatusAlways Status = "always" // Old regime wins even with no itemized deductions
)

// Request describes one break-even search
type Request struct {
	Income            decimal.Decimal `json:"income"`
	StandardDeduction bool            `json:"standardDeduction"`

	// Itemized amount (HRA exemption plus capped deductions) the taxpayer
	// already claims. Used only to report the remaining shortfall.
	Current decimal.Decimal `json:"current,omitempty"`

	MaxIterations int             `json:"-"`
	Tolerance     decimal.Decimal `json:"-"`
}

// Result is the outcome of a break-even search
type Result struct {
	Request    Request `json:"request"`
	Status     Status  `json:"status"`
	Iterations int     `json:"iterations"`

	// Smallest whole-rupee itemized total at which the old regime is
	// strictly cheaper. Zero unless Status is StatusFound.
	Threshold decimal.Decimal `json:"threshold"`
	// Threshold minus Request.Current, floored at zero
	Shortfall decimal.Decimal `json:"shortfall"`

	NewRegimeTax       decimal.Decimal `json:"newRegimeTax"`
	OldRegimeTaxAtZero decimal.Decimal `json:"oldRegimeTaxAtZero"`
	OldRegimeTaxAtEven decimal.Decimal `json:"oldRegimeTaxAtThreshold"`

	ConvergenceInfo string `json:"convergenceInfo,omitempty"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance     decimal.Decimal // Stop when the bracket is narrower than this
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1), // one rupee
		MaxIterations: 100,
	}
}

// Validate checks the request before any calculation runs
func (r *Request) Validate() error {
	if r.Income.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "income cannot be negative",
		}
	}
	if r.Current.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "current deductions cannot be negative",
		}
	}
	if r.Tolerance.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "tolerance cannot be negative",
		}
	}
	if r.MaxIterations < 0 {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "max iterations cannot be negative",
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
