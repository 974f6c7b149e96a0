package output

// DefaultAssumptions lists the simplifications behind every figure in a report.
var DefaultAssumptions = []string{
	"Tax is computed from the slab tables only: no Section 87A rebate, surcharge or health & education cess",
	"Rent, HRA and basic salary are monthly figures annualised over 12 months",
	"HRA exemption uses the metro salary share (50% of basic) unless the rules file says otherwise",
	"Itemized deductions are allowed only under the old regime; the new regime allows the standard deduction alone",
	"A tie between regimes is reported as the New Regime",
}
