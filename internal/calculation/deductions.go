package calculation

import (
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// DeductionAggregator totals old-regime deductions, applying the statutory
// ceilings described by its catalog
type DeductionAggregator struct {
	StandardDeduction decimal.Decimal
	Catalog           domain.DeductionCatalog
}

// NewDeductionAggregator creates an aggregator from the regulatory config
func NewDeductionAggregator(rules domain.RegulatoryConfig) *DeductionAggregator {
	return &DeductionAggregator{
		StandardDeduction: rules.StandardDeduction,
		Catalog:           rules.Deductions,
	}
}

// Total returns the amount to subtract from gross income under the old regime
func (da *DeductionAggregator) Total(deductions domain.DeductionSet, standard bool, hraExempt decimal.Decimal) decimal.Decimal {
	return da.Aggregate(deductions, standard, hraExempt).Total
}

// Aggregate sums the deduction set with caps applied and reports how each
// category contributed.
//
// Entries are pooled by the group or category they resolve to, so aliases of
// one category share its ceiling. Unrecognized identifiers count in full.
// Negative entries count as zero.
func (da *DeductionAggregator) Aggregate(deductions domain.DeductionSet, standard bool, hraExempt decimal.Decimal) domain.DeductionSummary {
	summary := domain.DeductionSummary{
		StandardDeduction: decimal.Zero,
		HRAExemption:      decimal.Max(hraExempt, decimal.Zero),
		Itemized:          decimal.Zero,
		Lines:             []domain.DeductionLine{},
	}
	if standard {
		summary.StandardDeduction = da.StandardDeduction
	}

	groupClaims := newClaims()
	catClaims := newClaims()
	cats := make(map[string]*domain.DeductionCategory)

	for _, key := range domain.SortedKeys(deductions) {
		claimed := decimal.Max(deductions[key], decimal.Zero)
		cat, group := da.Catalog.Resolve(key)

		switch {
		case cat != nil && cat.Computed:
			summary.Lines = append(summary.Lines, domain.DeductionLine{Category: key, Claimed: claimed, Allowed: decimal.Zero})

		case group != nil:
			groupClaims.add(group.Key, claimed)

		case cat != nil:
			catClaims.add(cat.Key, claimed)
			cats[cat.Key] = cat

		default:
			summary.Itemized = summary.Itemized.Add(claimed)
			summary.Lines = append(summary.Lines, domain.DeductionLine{Category: key, Claimed: claimed, Allowed: claimed})
		}
	}

	for _, key := range catClaims.order {
		cat := cats[key]
		claimed := catClaims.sums[key]
		allowed := claimed
		if cat.Cap != nil {
			allowed = decimal.Min(claimed, *cat.Cap)
		}
		summary.Itemized = summary.Itemized.Add(allowed)
		summary.Lines = append(summary.Lines, domain.DeductionLine{Category: key, Claimed: claimed, Allowed: allowed, Cap: cat.Cap})
	}

	for _, key := range groupClaims.order {
		group := da.Catalog.Group(key)
		claimed := groupClaims.sums[key]
		groupCap := group.Cap
		allowed := decimal.Min(claimed, groupCap)
		summary.Itemized = summary.Itemized.Add(allowed)
		summary.Lines = append(summary.Lines, domain.DeductionLine{Category: key, Claimed: claimed, Allowed: allowed, Cap: &groupCap})
	}

	summary.Total = summary.StandardDeduction.Add(summary.HRAExemption).Add(summary.Itemized)
	return summary
}

// claims sums amounts per key, remembering first-seen order
type claims struct {
	sums  map[string]decimal.Decimal
	order []string
}

func newClaims() *claims {
	return &claims{sums: make(map[string]decimal.Decimal)}
}

func (c *claims) add(key string, v decimal.Decimal) {
	if _, seen := c.sums[key]; !seen {
		c.order = append(c.order, key)
		c.sums[key] = decimal.Zero
	}
	c.sums[key] = c.sums[key].Add(v)
}
