package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Regime identifies a tax schedule
type Regime string

const (
	OldRegime Regime = "Old Regime"
	NewRegime Regime = "New Regime"
)

// SlabAmount is the tax charged on the portion of income falling in one band
type SlabAmount struct {
	From    decimal.Decimal  `json:"from"`
	To      *decimal.Decimal `json:"to,omitempty"` // nil for the open top band
	Rate    decimal.Decimal  `json:"rate"`
	Taxable decimal.Decimal  `json:"taxable"`
	Tax     decimal.Decimal  `json:"tax"`
}

// DeductionLine records how one category (or combined-cap group) contributed
// to total old-regime deductions
type DeductionLine struct {
	Category string           `json:"category"`
	Claimed  decimal.Decimal  `json:"claimed"`
	Allowed  decimal.Decimal  `json:"allowed"`
	Cap      *decimal.Decimal `json:"cap,omitempty"`
}

// DeductionSummary is the aggregator's output
type DeductionSummary struct {
	StandardDeduction decimal.Decimal `json:"standardDeduction"`
	HRAExemption      decimal.Decimal `json:"hraExemption"`
	Itemized          decimal.Decimal `json:"itemized"`
	Total             decimal.Decimal `json:"total"`
	Lines             []DeductionLine `json:"lines"`
}

// TaxResult is the outcome of comparing both regimes for one input
type TaxResult struct {
	Name         string          `json:"name,omitempty"`
	OldRegimeTax decimal.Decimal `json:"oldRegimeTax"`
	NewRegimeTax decimal.Decimal `json:"newRegimeTax"`
	Recommended  Regime          `json:"recommended"`
	Difference   decimal.Decimal `json:"difference"`
	HRAExemption decimal.Decimal `json:"hraExemption"`

	Deductions       DeductionSummary `json:"deductions"`
	OldTaxableIncome decimal.Decimal  `json:"oldTaxableIncome"`
	NewTaxableIncome decimal.Decimal  `json:"newTaxableIncome"`
	OldSlabs         []SlabAmount     `json:"oldSlabs"`
	NewSlabs         []SlabAmount     `json:"newSlabs"`
}

// RecommendedTax returns the tax payable under the recommended regime
func (tr TaxResult) RecommendedTax() decimal.Decimal {
	if tr.Recommended == OldRegime {
		return tr.OldRegimeTax
	}
	return tr.NewRegimeTax
}

// SortedKeys returns the keys of a deduction set in lexical order
func SortedKeys(ds DeductionSet) []string {
	keys := make([]string, 0, len(ds))
	for k := range ds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
