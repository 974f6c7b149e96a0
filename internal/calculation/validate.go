package calculation

import (
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ValidateInput rejects negative monetary amounts. The calculators themselves
// never validate; callers run this at the boundary before computing.
func ValidateInput(input domain.TaxInput) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"income", input.Income},
		{"rent_paid", input.RentPaid},
		{"hra_received", input.HRAReceived},
		{"basic_salary", input.BasicSalary},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return &domain.InvalidInputError{Field: f.name, Value: f.value}
		}
	}
	return ValidateDeductions(input.Deductions)
}

// ValidateDeductions rejects any negative deduction amount
func ValidateDeductions(deductions domain.DeductionSet) error {
	for _, key := range domain.SortedKeys(deductions) {
		if v := deductions[key]; v.IsNegative() {
			return &domain.InvalidInputError{Field: "deductions." + key, Value: v}
		}
	}
	return nil
}
