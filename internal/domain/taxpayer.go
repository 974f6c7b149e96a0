package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DeductionSet maps a deduction category identifier (e.g. "80C", "80C_PPF",
// "HomeLoanInterest") to the amount claimed under it.
type DeductionSet map[string]decimal.Decimal

// Clone returns an independent copy. A nil set clones to an empty, non-nil set.
func (ds DeductionSet) Clone() DeductionSet {
	out := make(DeductionSet, len(ds))
	for k, v := range ds {
		out[k] = v
	}
	return out
}

// Total sums every entry without applying any statutory caps
func (ds DeductionSet) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range ds {
		total = total.Add(v)
	}
	return total
}

// TaxInput is the complete set of values the comparator works from. It is
// assembled by the caller (CLI, HTTP handler, TUI form) and passed in whole.
type TaxInput struct {
	Name              string          `yaml:"name,omitempty" json:"name,omitempty"`
	Income            decimal.Decimal `yaml:"income" json:"income"`
	StandardDeduction bool            `yaml:"standard_deduction" json:"standardDeduction"`

	// Monthly figures used for the HRA exemption
	RentPaid    decimal.Decimal `yaml:"rent_paid" json:"rentPaid"`
	HRAReceived decimal.Decimal `yaml:"hra_received" json:"hraReceived"`
	BasicSalary decimal.Decimal `yaml:"basic_salary" json:"basicSalary"`

	Deductions DeductionSet `yaml:"deductions,omitempty" json:"deductions,omitempty"`
}

// Key returns a canonical string for the input, stable across map ordering.
// Used for caching comparison results.
func (ti TaxInput) Key() string {
	var sb strings.Builder
	sb.WriteString(ti.Income.String())
	if ti.StandardDeduction {
		sb.WriteString("|std")
	} else {
		sb.WriteString("|nostd")
	}
	sb.WriteString("|" + ti.RentPaid.String())
	sb.WriteString("|" + ti.HRAReceived.String())
	sb.WriteString("|" + ti.BasicSalary.String())
	for _, k := range SortedKeys(ti.Deductions) {
		sb.WriteString("|" + k + "=" + ti.Deductions[k].String())
	}
	return sb.String()
}

// ScenarioOverride describes a what-if variant of the base taxpayer input.
// Nil fields inherit the base value; deductions are merged over the base set
// unless ReplaceDeductions is set.
type ScenarioOverride struct {
	Name              string           `yaml:"name" json:"name"`
	Description       string           `yaml:"description,omitempty" json:"description,omitempty"`
	Income            *decimal.Decimal `yaml:"income,omitempty" json:"income,omitempty"`
	StandardDeduction *bool            `yaml:"standard_deduction,omitempty" json:"standardDeduction,omitempty"`
	RentPaid          *decimal.Decimal `yaml:"rent_paid,omitempty" json:"rentPaid,omitempty"`
	HRAReceived       *decimal.Decimal `yaml:"hra_received,omitempty" json:"hraReceived,omitempty"`
	BasicSalary       *decimal.Decimal `yaml:"basic_salary,omitempty" json:"basicSalary,omitempty"`
	Deductions        DeductionSet     `yaml:"deductions,omitempty" json:"deductions,omitempty"`
	ReplaceDeductions bool             `yaml:"replace_deductions,omitempty" json:"replaceDeductions,omitempty"`
}

// Apply builds the scenario's TaxInput from the base input
func (so ScenarioOverride) Apply(base TaxInput) TaxInput {
	out := base
	out.Name = so.Name
	if so.Income != nil {
		out.Income = *so.Income
	}
	if so.StandardDeduction != nil {
		out.StandardDeduction = *so.StandardDeduction
	}
	if so.RentPaid != nil {
		out.RentPaid = *so.RentPaid
	}
	if so.HRAReceived != nil {
		out.HRAReceived = *so.HRAReceived
	}
	if so.BasicSalary != nil {
		out.BasicSalary = *so.BasicSalary
	}

	if so.ReplaceDeductions {
		out.Deductions = so.Deductions.Clone()
	} else {
		merged := base.Deductions.Clone()
		for k, v := range so.Deductions {
			merged[k] = v
		}
		out.Deductions = merged
	}
	return out
}

// Configuration is the top-level structure of a taxpayer input file
type Configuration struct {
	Taxpayer  TaxInput           `yaml:"taxpayer" json:"taxpayer"`
	Scenarios []ScenarioOverride `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
	Rules     *RegulatoryConfig  `yaml:"rules,omitempty" json:"rules,omitempty"`
}
