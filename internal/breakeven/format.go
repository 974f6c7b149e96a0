package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a single result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN DEDUCTIONS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	sb.WriteString(fmt.Sprintf("Income:              ₹%s\n", tf.formatCurrency(result.Request.Income)))
	sb.WriteString(fmt.Sprintf("Standard Deduction:  %s\n", tf.formatBool(result.Request.StandardDeduction)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Status)))
	if result.Iterations > 0 {
		sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	}
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("TAX\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("New Regime:                  ₹%s\n", tf.formatCurrency(result.NewRegimeTax)))
	sb.WriteString(fmt.Sprintf("Old Regime (no itemized):    ₹%s\n", tf.formatCurrency(result.OldRegimeTaxAtZero)))

	if result.Status == StatusFound {
		sb.WriteString(fmt.Sprintf("Old Regime (at break-even):  ₹%s\n", tf.formatCurrency(result.OldRegimeTaxAtEven)))
		sb.WriteString("\n")
		sb.WriteString("THRESHOLD\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		sb.WriteString(fmt.Sprintf("Itemized deductions needed:  ₹%s\n", tf.formatCurrency(result.Threshold)))
		if result.Request.Current.IsPositive() {
			sb.WriteString(fmt.Sprintf("Currently claimed:           ₹%s\n", tf.formatCurrency(result.Request.Current)))
			sb.WriteString(fmt.Sprintf("Shortfall:                   ₹%s\n", tf.formatCurrency(result.Shortfall)))
		}
	}
	sb.WriteString("\n")

	return sb.String()
}

// FormatSweep formats results across a range of incomes
func (tf *TableFormatter) FormatSweep(sweep *SweepResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN DEDUCTIONS BY INCOME\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-14s %-8s %16s %16s %14s\n",
		"Income", "Status", "Threshold", "New Regime Tax", "Old (no item.)"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")

	for _, res := range sweep.Results {
		threshold := "-"
		if res.Status == StatusFound {
			threshold = tf.formatShort(res.Threshold)
		}
		sb.WriteString(fmt.Sprintf("%-14s %-8s %16s %16s %14s\n",
			tf.formatShort(res.Request.Income),
			res.Status,
			threshold,
			tf.formatShort(res.NewRegimeTax),
			tf.formatShort(res.OldRegimeTaxAtZero)))
	}
	sb.WriteString("\n")

	if len(sweep.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range sweep.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatSweep formats sweep results as JSON
func (jf *JSONFormatter) FormatSweep(sweep *SweepResult) (string, error) {
	return jf.marshal(sweep)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(status Status) string {
	switch status {
	case StatusFound:
		return "✓ Break-even found"
	case StatusAlways:
		return "✓ Old regime always cheaper"
	case StatusNever:
		return "⚠ Old regime never cheaper"
	}
	return string(status)
}

func (tf *TableFormatter) formatBool(b bool) string {
	if b {
		return "claimed"
	}
	return "not claimed"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// formatShort abbreviates using lakh (L) and crore (Cr)
func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	crore := decimal.NewFromInt(10000000)
	lakh := decimal.NewFromInt(100000)
	if d.Abs().GreaterThanOrEqual(crore) {
		return d.Div(crore).StringFixed(2) + "Cr"
	} else if d.Abs().GreaterThanOrEqual(lakh) {
		return d.Div(lakh).StringFixed(2) + "L"
	}
	return d.StringFixed(0)
}
