package calculation

import (
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Slab rates apply only to the portion of taxable income inside each band.
// 2. Old regime: 0% to 2.5L, 5% to 5L, 20% to 10L, 30% above.
// 3. New regime: 0% to 4L, then +5% per 4L band up to 30% above 24L.
// 4. No rebate, surcharge or cess is modeled. No rounding is applied; figures
//    are rounded only when formatted for display.

// SlabCalculator applies a progressive slab schedule to taxable income
type SlabCalculator struct {
	Slabs []domain.TaxSlab
}

// NewSlabCalculator creates a calculator for the given schedule
func NewSlabCalculator(schedule domain.SlabSchedule) *SlabCalculator {
	slabs := make([]domain.TaxSlab, len(schedule.Slabs))
	copy(slabs, schedule.Slabs)
	return &SlabCalculator{Slabs: slabs}
}

// Calculate returns the tax on taxableIncome
func (sc *SlabCalculator) Calculate(taxableIncome decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, band := range sc.Breakdown(taxableIncome) {
		total = total.Add(band.Tax)
	}
	return total
}

// Breakdown returns the taxable portion and tax for every band
func (sc *SlabCalculator) Breakdown(taxableIncome decimal.Decimal) []domain.SlabAmount {
	bands := make([]domain.SlabAmount, 0, len(sc.Slabs))
	for _, slab := range sc.Slabs {
		upper := taxableIncome
		if slab.Max != nil {
			upper = decimal.Min(taxableIncome, *slab.Max)
		}
		portion := decimal.Max(upper.Sub(slab.Min), decimal.Zero)

		bands = append(bands, domain.SlabAmount{
			From:    slab.Min,
			To:      slab.Max,
			Rate:    slab.Rate,
			Taxable: portion,
			Tax:     portion.Mul(slab.Rate),
		})
	}
	return bands
}

// OldRegimeCalculator computes tax under the regime that allows itemized
// deductions and the HRA exemption
type OldRegimeCalculator struct {
	Slabs      *SlabCalculator
	Deductions *DeductionAggregator
}

// NewOldRegimeCalculator creates an old-regime calculator from the regulatory config
func NewOldRegimeCalculator(rules domain.RegulatoryConfig) *OldRegimeCalculator {
	return &OldRegimeCalculator{
		Slabs:      NewSlabCalculator(rules.OldRegime),
		Deductions: NewDeductionAggregator(rules),
	}
}

// TaxableIncome returns income less total deductions, floored at zero
func (oc *OldRegimeCalculator) TaxableIncome(income decimal.Decimal, totalDeductions decimal.Decimal) decimal.Decimal {
	return decimal.Max(income.Sub(totalDeductions), decimal.Zero)
}

// CalculateTax returns the old-regime liability
func (oc *OldRegimeCalculator) CalculateTax(income decimal.Decimal, standard bool, hraExempt decimal.Decimal, deductions domain.DeductionSet) decimal.Decimal {
	total := oc.Deductions.Total(deductions, standard, hraExempt)
	return oc.Slabs.Calculate(oc.TaxableIncome(income, total))
}

// NewRegimeCalculator computes tax under the regime where only the standard
// deduction applies
type NewRegimeCalculator struct {
	Slabs             *SlabCalculator
	StandardDeduction decimal.Decimal
}

// NewNewRegimeCalculator creates a new-regime calculator from the regulatory config
func NewNewRegimeCalculator(rules domain.RegulatoryConfig) *NewRegimeCalculator {
	return &NewRegimeCalculator{
		Slabs:             NewSlabCalculator(rules.NewRegime),
		StandardDeduction: rules.StandardDeduction,
	}
}

// TaxableIncome returns income less the standard deduction, floored at zero
func (nc *NewRegimeCalculator) TaxableIncome(income decimal.Decimal, standard bool) decimal.Decimal {
	if standard {
		income = income.Sub(nc.StandardDeduction)
	}
	return decimal.Max(income, decimal.Zero)
}

// CalculateTax returns the new-regime liability
func (nc *NewRegimeCalculator) CalculateTax(income decimal.Decimal, standard bool) decimal.Decimal {
	return nc.Slabs.Calculate(nc.TaxableIncome(income, standard))
}
