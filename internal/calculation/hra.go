package calculation

import (
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// HRACalculator computes the tax-exempt portion of house rent allowance
type HRACalculator struct {
	RentExcessShare decimal.Decimal
	SalaryShare     decimal.Decimal
	Months          decimal.Decimal
}

// NewHRACalculator creates an HRA calculator from the configured factors
func NewHRACalculator(rules domain.HRARules) *HRACalculator {
	months := rules.Months
	if months <= 0 {
		months = 12
	}
	return &HRACalculator{
		RentExcessShare: rules.RentExcessShare,
		SalaryShare:     rules.SalaryShare,
		Months:          decimal.NewFromInt(int64(months)),
	}
}

// Exemption returns the annual exempt HRA from monthly rent paid, HRA
// received and basic salary. It is the least of the annual HRA received, rent
// paid in excess of RentExcessShare of basic salary, and SalaryShare of basic
// salary, never below zero.
func (hc *HRACalculator) Exemption(rentPaid, hraReceived, basicSalary decimal.Decimal) decimal.Decimal {
	annualRent := rentPaid.Mul(hc.Months)
	annualHRA := hraReceived.Mul(hc.Months)
	annualBasic := basicSalary.Mul(hc.Months)

	rentExcess := annualRent.Sub(annualBasic.Mul(hc.RentExcessShare))
	salaryLimit := annualBasic.Mul(hc.SalaryShare)

	exempt := decimal.Min(annualHRA, rentExcess, salaryLimit)
	return decimal.Max(exempt, decimal.Zero)
}
