package transform

import (
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SetIncome replaces the annual income
type SetIncome struct {
	Amount decimal.Decimal
}

func (t *SetIncome) Name() string { return "set_income" }

func (t *SetIncome) Description() string {
	return fmt.Sprintf("Set annual income to %s", t.Amount.StringFixed(0))
}

func (t *SetIncome) Validate(base domain.TaxInput) error {
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "amount cannot be negative", nil)
	}
	return nil
}

func (t *SetIncome) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.Income = t.Amount
	return base, nil
}

// RaiseIncome scales income and the monthly salary components by a percentage.
// Negative percentages model a pay cut.
type RaiseIncome struct {
	Percent decimal.Decimal
}

func (t *RaiseIncome) Name() string { return "raise_income" }

func (t *RaiseIncome) Description() string {
	return fmt.Sprintf("Raise salary by %s%%", t.Percent.String())
}

func (t *RaiseIncome) Validate(base domain.TaxInput) error {
	if t.Percent.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("percent must be above -100, got %s", t.Percent), nil)
	}
	return nil
}

func (t *RaiseIncome) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	factor := decimal.NewFromInt(1).Add(t.Percent.Div(decimal.NewFromInt(100)))
	base.Income = base.Income.Mul(factor).Round(0)
	base.BasicSalary = base.BasicSalary.Mul(factor).Round(0)
	base.HRAReceived = base.HRAReceived.Mul(factor).Round(0)
	return base, nil
}

// SetStandardDeduction turns the standard deduction on or off
type SetStandardDeduction struct {
	Enabled bool
}

func (t *SetStandardDeduction) Name() string { return "standard_deduction" }

func (t *SetStandardDeduction) Description() string {
	if t.Enabled {
		return "Claim the standard deduction"
	}
	return "Do not claim the standard deduction"
}

func (t *SetStandardDeduction) Validate(domain.TaxInput) error { return nil }

func (t *SetStandardDeduction) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.StandardDeduction = t.Enabled
	return base, nil
}

// SetRent replaces the monthly rent; zero models moving out of rented housing
type SetRent struct {
	Monthly decimal.Decimal
}

func (t *SetRent) Name() string { return "set_rent" }

func (t *SetRent) Description() string {
	if t.Monthly.IsZero() {
		return "Stop paying rent"
	}
	return fmt.Sprintf("Pay %s rent per month", t.Monthly.StringFixed(0))
}

func (t *SetRent) Validate(domain.TaxInput) error {
	if t.Monthly.IsNegative() {
		return NewTransformError(t.Name(), "validate", "rent cannot be negative", nil)
	}
	return nil
}

func (t *SetRent) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.RentPaid = t.Monthly
	return base, nil
}
