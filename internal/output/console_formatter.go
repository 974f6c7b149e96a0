package output

import (
	"bytes"
	"fmt"
	"strings"
)

// ConsoleFormatter prints a short plain-text summary per entry
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	title := "TAX REGIME COMPARISON"
	if report.AssessmentYear != "" {
		title += " (AY " + report.AssessmentYear + ")"
	}
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", len(title)))

	for i, e := range report.Entries {
		r := e.Result
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, entryName(e, i))
		fmt.Fprintf(&buf, "  Income:          %s\n", FormatCurrency(e.Input.Income))
		fmt.Fprintf(&buf, "  HRA Exemption:   %s\n", FormatCurrency(r.HRAExemption))
		fmt.Fprintf(&buf, "  Old Regime Tax:  %s\n", FormatCurrency(r.OldRegimeTax))
		fmt.Fprintf(&buf, "  New Regime Tax:  %s\n", FormatCurrency(r.NewRegimeTax))
		fmt.Fprintf(&buf, "  Recommended:     %s (saves %s)\n", r.Recommended, FormatCurrency(r.Difference))
	}

	if len(report.Entries) > 1 {
		rec := AnalyzeReport(report)
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Lowest tax: %s under the %s, %s payable\n",
			rec.EntryName, rec.Regime, FormatCurrency(rec.PayableTax))
	}

	return buf.Bytes(), nil
}
