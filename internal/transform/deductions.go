package transform

import (
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SetDeduction sets one category's claimed amount, replacing any entry that
// names the same category under another alias
type SetDeduction struct {
	Category string
	Amount   decimal.Decimal
	Catalog  domain.DeductionCatalog
}

func (t *SetDeduction) Name() string { return "set_deduction" }

func (t *SetDeduction) Description() string {
	return fmt.Sprintf("Claim %s under %s", t.Amount.StringFixed(0), t.Category)
}

func (t *SetDeduction) Validate(domain.TaxInput) error {
	if t.Category == "" {
		return NewTransformError(t.Name(), "validate", "category cannot be empty", nil)
	}
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "amount cannot be negative", nil)
	}
	return nil
}

func (t *SetDeduction) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	out := dropCategory(base.Deductions, t.Category, t.Catalog)
	out[t.Category] = t.Amount
	base.Deductions = out
	return base, nil
}

// dropCategory copies set without the entries that normalize to category or
// resolve to the same catalog category
func dropCategory(set domain.DeductionSet, category string, catalog domain.DeductionCatalog) domain.DeductionSet {
	target := domain.NormalizeCategory(category)
	cat, _ := catalog.Resolve(category)
	out := domain.DeductionSet{}
	for k, v := range set {
		if domain.NormalizeCategory(k) == target {
			continue
		}
		if kc, _ := catalog.Resolve(k); cat != nil && kc != nil && kc.Key == cat.Key {
			continue
		}
		out[k] = v
	}
	return out
}

// RemoveDeduction drops every entry resolving to a category, aliases included
type RemoveDeduction struct {
	Category string
	Catalog  domain.DeductionCatalog
}

func (t *RemoveDeduction) Name() string { return "remove_deduction" }

func (t *RemoveDeduction) Description() string {
	return fmt.Sprintf("Stop claiming %s", t.Category)
}

func (t *RemoveDeduction) Validate(domain.TaxInput) error {
	if t.Category == "" {
		return NewTransformError(t.Name(), "validate", "category cannot be empty", nil)
	}
	return nil
}

func (t *RemoveDeduction) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.Deductions = dropCategory(base.Deductions, t.Category, t.Catalog)
	return base, nil
}

// ClearDeductions removes every itemized deduction
type ClearDeductions struct{}

func (t *ClearDeductions) Name() string { return "clear_deductions" }

func (t *ClearDeductions) Description() string { return "Claim no itemized deductions" }

func (t *ClearDeductions) Validate(domain.TaxInput) error { return nil }

func (t *ClearDeductions) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.Deductions = domain.DeductionSet{}
	return base, nil
}

// MaxOutDeduction raises a category to its statutory cap. For a combined
// group such as 80C the top-up lands on the group key, counting what the
// other members already claim.
type MaxOutDeduction struct {
	Category string
	Catalog  domain.DeductionCatalog
}

func (t *MaxOutDeduction) Name() string { return "max_deduction" }

func (t *MaxOutDeduction) Description() string {
	return fmt.Sprintf("Claim the full %s limit", t.Category)
}

func (t *MaxOutDeduction) Validate(domain.TaxInput) error {
	if _, err := t.limit(); err != nil {
		return err
	}
	return nil
}

func (t *MaxOutDeduction) limit() (decimal.Decimal, error) {
	if g := t.Catalog.Group(t.Category); g != nil {
		return g.Cap, nil
	}
	cat, group := t.Catalog.Resolve(t.Category)
	switch {
	case group != nil:
		return group.Cap, nil
	case cat != nil && cat.Cap != nil:
		return *cat.Cap, nil
	}
	return decimal.Zero, NewTransformError(t.Name(), "validate", fmt.Sprintf("%s has no statutory limit", t.Category), nil)
}

func (t *MaxOutDeduction) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	limit, err := t.limit()
	if err != nil {
		return base, err
	}

	groupKey := ""
	cat, group := t.Catalog.Resolve(t.Category)
	if g := t.Catalog.Group(t.Category); g != nil {
		groupKey = g.Key
	} else if group != nil {
		groupKey = group.Key
	}

	out := domain.DeductionSet{}
	claimed := decimal.Zero
	for k, v := range base.Deductions {
		if k == t.Category {
			continue
		}
		kc, kg := t.Catalog.Resolve(k)
		switch {
		case groupKey != "" && kg != nil && kg.Key == groupKey:
			claimed = claimed.Add(v)
		case groupKey == "" && cat != nil && kc != nil && kc.Key == cat.Key:
			// alias of the same category; replaced below
			continue
		}
		out[k] = v
	}

	out[t.Category] = decimal.Max(limit.Sub(claimed), decimal.Zero)
	base.Deductions = out
	return base, nil
}
