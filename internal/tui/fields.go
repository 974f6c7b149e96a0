package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// fieldKind says where a form value lands in the TaxInput
type fieldKind int

const (
	fieldIncome fieldKind = iota
	fieldRent
	fieldHRA
	fieldBasic
	fieldDeduction
)

type field struct {
	label    string
	kind     fieldKind
	category string // deduction category for fieldDeduction
	initial  string
}

// formFields lists the inputs in display order
var formFields = []field{
	{label: "Annual income", kind: fieldIncome, initial: "1200000"},
	{label: "Rent paid (monthly)", kind: fieldRent, initial: "20000"},
	{label: "HRA received (monthly)", kind: fieldHRA, initial: "12500"},
	{label: "Basic salary (monthly)", kind: fieldBasic, initial: "50000"},
	{label: "80C investments", kind: fieldDeduction, category: "80C", initial: "150000"},
	{label: "80D health insurance", kind: fieldDeduction, category: "80D", initial: "25000"},
	{label: "80DDB medical treatment", kind: fieldDeduction, category: "80DDB", initial: "40000"},
	{label: "80G donations", kind: fieldDeduction, category: "80G", initial: "10000"},
	{label: "Home loan interest", kind: fieldDeduction, category: "HomeLoanInterest", initial: "200000"},
	{label: "80TTA savings interest", kind: fieldDeduction, category: "TTA", initial: "10000"},
}

func newInputs() []textinput.Model {
	inputs := make([]textinput.Model, len(formFields))
	for i, f := range formFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "0"
		ti.CharLimit = 15
		ti.Width = 16
		ti.SetValue(f.initial)
		inputs[i] = ti
	}
	inputs[0].Focus()
	return inputs
}

// parseMoney accepts blanks (zero) and digit grouping commas
func parseMoney(label, raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %q is not a number", label, raw)
	}
	return v, nil
}

// buildInput turns the form into a TaxInput. Range checks are left to the
// engine so the form and the other front ends report the same errors.
func buildInput(inputs []textinput.Model, standard bool) (domain.TaxInput, error) {
	input := domain.TaxInput{
		Name:              "form",
		StandardDeduction: standard,
		Deductions:        domain.DeductionSet{},
	}

	for i, f := range formFields {
		v, err := parseMoney(f.label, inputs[i].Value())
		if err != nil {
			return domain.TaxInput{}, err
		}
		switch f.kind {
		case fieldIncome:
			input.Income = v
		case fieldRent:
			input.RentPaid = v
		case fieldHRA:
			input.HRAReceived = v
		case fieldBasic:
			input.BasicSalary = v
		case fieldDeduction:
			input.Deductions[f.category] = v
		}
	}
	return input, nil
}
