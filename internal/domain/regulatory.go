package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RegulatoryConfig contains all statutory data the calculators work from.
// Defaults come from DefaultRegulatoryConfig; regulatory.yaml or the rules
// block of an input file may override any section.
type RegulatoryConfig struct {
	Metadata          RegulatoryMetadata `yaml:"metadata" json:"metadata"`
	StandardDeduction decimal.Decimal    `yaml:"standard_deduction" json:"standard_deduction"`
	OldRegime         SlabSchedule       `yaml:"old_regime" json:"old_regime"`
	NewRegime         SlabSchedule       `yaml:"new_regime" json:"new_regime"`
	HRA               HRARules           `yaml:"hra" json:"hra"`
	Deductions        DeductionCatalog   `yaml:"deductions" json:"deductions"`
}

// RegulatoryMetadata contains information about the regulatory data
type RegulatoryMetadata struct {
	AssessmentYear string `yaml:"assessment_year" json:"assessment_year"`
	Description    string `yaml:"description" json:"description"`
}

// TaxSlab is one band of a progressive schedule. Max is nil for the open top band.
type TaxSlab struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// SlabSchedule is an ordered list of contiguous bands
type SlabSchedule struct {
	Slabs []TaxSlab `yaml:"slabs" json:"slabs"`
}

// HRARules holds the factors of the house-rent-allowance exemption formula
type HRARules struct {
	RentExcessShare decimal.Decimal `yaml:"rent_excess_share" json:"rent_excess_share"` // share of basic salary rent must exceed
	SalaryShare     decimal.Decimal `yaml:"salary_share" json:"salary_share"`           // 0.50 metro, 0.40 non-metro
	Months          int             `yaml:"months" json:"months"`
}

// DeductionCategory describes one recognized deduction identifier
type DeductionCategory struct {
	Key         string           `yaml:"key" json:"key"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
	Aliases     []string         `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Cap         *decimal.Decimal `yaml:"cap,omitempty" json:"cap,omitempty"`
	Group       string           `yaml:"group,omitempty" json:"group,omitempty"`
	// Computed categories are derived by the engine (HRA) and ignored when
	// they appear in a deduction set.
	Computed bool `yaml:"computed,omitempty" json:"computed,omitempty"`
}

// DeductionGroup is a set of categories that share one combined ceiling.
// Identifiers starting with Prefix join the group even when not listed.
type DeductionGroup struct {
	Key         string          `yaml:"key" json:"key"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Prefix      string          `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Cap         decimal.Decimal `yaml:"cap" json:"cap"`
}

// DeductionCatalog is the table that drives deduction capping
type DeductionCatalog struct {
	Groups     []DeductionGroup    `yaml:"groups" json:"groups"`
	Categories []DeductionCategory `yaml:"categories" json:"categories"`
}

// NormalizeCategory folds a category identifier into the form used for
// catalog lookups: upper case with spaces, hyphens, dots and parentheses removed.
func NormalizeCategory(id string) string {
	id = strings.ToUpper(strings.TrimSpace(id))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, id)
}

// Resolve finds the category and group an identifier belongs to. Both are nil
// for unrecognized identifiers.
func (dc *DeductionCatalog) Resolve(id string) (*DeductionCategory, *DeductionGroup) {
	norm := NormalizeCategory(id)

	for i := range dc.Categories {
		cat := &dc.Categories[i]
		if NormalizeCategory(cat.Key) == norm || containsNormalized(cat.Aliases, norm) {
			return cat, dc.Group(cat.Group)
		}
	}

	for i := range dc.Groups {
		g := &dc.Groups[i]
		if g.Prefix != "" && strings.HasPrefix(norm, NormalizeCategory(g.Prefix)) {
			return nil, g
		}
	}
	return nil, nil
}

// Group looks up a group by key
func (dc *DeductionCatalog) Group(key string) *DeductionGroup {
	if key == "" {
		return nil
	}
	for i := range dc.Groups {
		if dc.Groups[i].Key == key {
			return &dc.Groups[i]
		}
	}
	return nil
}

func containsNormalized(list []string, norm string) bool {
	for _, s := range list {
		if NormalizeCategory(s) == norm {
			return true
		}
	}
	return false
}

func amount(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func capOf(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DefaultRegulatoryConfig returns the statutory tables used when no override is given
func DefaultRegulatoryConfig() RegulatoryConfig {
	return RegulatoryConfig{
		Metadata: RegulatoryMetadata{
			AssessmentYear: "2025-26",
			Description:    "Individual resident below 60, salary income",
		},
		StandardDeduction: amount(75000),
		OldRegime: SlabSchedule{Slabs: []TaxSlab{
			{Min: amount(0), Max: capOf(250000), Rate: decimal.Zero},
			{Min: amount(250000), Max: capOf(500000), Rate: decimal.NewFromFloat(0.05)},
			{Min: amount(500000), Max: capOf(1000000), Rate: decimal.NewFromFloat(0.20)},
			{Min: amount(1000000), Rate: decimal.NewFromFloat(0.30)},
		}},
		NewRegime: SlabSchedule{Slabs: []TaxSlab{
			{Min: amount(0), Max: capOf(400000), Rate: decimal.Zero},
			{Min: amount(400000), Max: capOf(800000), Rate: decimal.NewFromFloat(0.05)},
			{Min: amount(800000), Max: capOf(1200000), Rate: decimal.NewFromFloat(0.10)},
			{Min: amount(1200000), Max: capOf(1600000), Rate: decimal.NewFromFloat(0.15)},
			{Min: amount(1600000), Max: capOf(2000000), Rate: decimal.NewFromFloat(0.20)},
			{Min: amount(2000000), Max: capOf(2400000), Rate: decimal.NewFromFloat(0.25)},
			{Min: amount(2400000), Rate: decimal.NewFromFloat(0.30)},
		}},
		HRA: HRARules{
			RentExcessShare: decimal.NewFromFloat(0.10),
			SalaryShare:     decimal.NewFromFloat(0.50),
			Months:          12,
		},
		Deductions: DefaultDeductionCatalog(),
	}
}

// DefaultDeductionCatalog returns the recognized old-regime deduction categories
func DefaultDeductionCatalog() DeductionCatalog {
	return DeductionCatalog{
		Groups: []DeductionGroup{
			{Key: "80C", Description: "Investments under 80C, 80CCC and 80CCD(1)", Prefix: "80C_", Cap: amount(150000)},
		},
		Categories: []DeductionCategory{
			{Key: "80C", Description: "PPF, ELSS, life insurance, tuition fees", Group: "80C"},
			{Key: "80CCC", Description: "Pension fund contributions", Group: "80C"},
			{Key: "80CCD1", Description: "Employee NPS contribution", Group: "80C"},
			{Key: "80CCD1B", Description: "Additional NPS contribution", Aliases: []string{"NPS"}, Cap: capOf(50000)},
			{Key: "80D", Description: "Health insurance premium", Aliases: []string{"HealthInsurance"}, Cap: capOf(25000)},
			{Key: "80DDB", Description: "Medical treatment of specified diseases"},
			{Key: "80E", Description: "Education loan interest"},
			{Key: "80G", Description: "Donations"},
			{Key: "80TTA", Description: "Savings account interest", Aliases: []string{"TTA", "SavingsInterest"}, Cap: capOf(10000)},
			{Key: "HomeLoanInterest", Description: "Interest on home loan for self-occupied property", Aliases: []string{"24b", "Section24b"}, Cap: capOf(200000)},
			{Key: "HRA", Description: "House rent allowance (derived from rent inputs)", Computed: true},
		},
	}
}
