package calculation

import (
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// defaultEngine is never mutated after construction
var defaultEngine = NewCalculationEngine()

// HRAExempt returns the annual exempt HRA under the default rules
func HRAExempt(rentPaid, hraReceived, basicSalary decimal.Decimal) decimal.Decimal {
	return defaultEngine.HRACalc.Exemption(rentPaid, hraReceived, basicSalary)
}

// TaxOldRegime returns the old-regime tax under the default rules
func TaxOldRegime(income decimal.Decimal, standard bool, hraExempt decimal.Decimal, deductions domain.DeductionSet) decimal.Decimal {
	return defaultEngine.OldCalc.CalculateTax(income, standard, hraExempt, deductions)
}

// TaxNewRegime returns the new-regime tax under the default rules
func TaxNewRegime(income decimal.Decimal, standard bool) decimal.Decimal {
	return defaultEngine.NewCalc.CalculateTax(income, standard)
}

// CompareRegimes returns both regime taxes, the cheaper regime and the HRA
// exemption under the default rules
func CompareRegimes(income decimal.Decimal, standard bool, rentPaid, hraReceived, basicSalary decimal.Decimal, deductions domain.DeductionSet) (taxOld, taxNew decimal.Decimal, label domain.Regime, hraExempt decimal.Decimal) {
	result := defaultEngine.Compare(domain.TaxInput{
		Income:            income,
		StandardDeduction: standard,
		RentPaid:          rentPaid,
		HRAReceived:       hraReceived,
		BasicSalary:       basicSalary,
		Deductions:        deductions,
	})
	return result.OldRegimeTax, result.NewRegimeTax, result.Recommended, result.HRAExemption
}
