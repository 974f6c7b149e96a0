package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the detailed, styled console report: inputs,
// deduction lines, slab breakdowns and the verdict for every entry.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	title := "INCOME TAX: OLD vs NEW REGIME"
	if report.AssessmentYear != "" {
		title += "  ·  AY " + report.AssessmentYear
	}
	fmt.Fprintln(&buf, tuistyles.TitleStyle.Render(title))

	fmt.Fprintln(&buf, tuistyles.SectionStyle.Render("KEY ASSUMPTIONS"))
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, e := range report.Entries {
		writeEntry(&buf, i, e)
	}

	if len(report.Entries) > 1 {
		rec := AnalyzeReport(report)
		summary := fmt.Sprintf("Lowest tax: %s\n%s payable under the %s",
			rec.EntryName, FormatCurrency(rec.PayableTax), rec.Regime)
		fmt.Fprintln(&buf, tuistyles.ActiveBorderStyle.Render(summary))
	}

	return buf.Bytes(), nil
}

func writeEntry(buf *bytes.Buffer, i int, e Entry) {
	in, r := e.Input, e.Result

	fmt.Fprintln(buf, tuistyles.SectionStyle.Render(fmt.Sprintf("%d. %s", i+1, entryName(e, i))))
	fmt.Fprintln(buf, strings.Repeat("─", 60))

	std := "not claimed"
	if in.StandardDeduction {
		std = FormatCurrency(r.Deductions.StandardDeduction)
	}
	writeKV(buf, "Annual income", FormatCurrency(in.Income))
	writeKV(buf, "Standard deduction", std)
	writeKV(buf, "Rent paid (monthly)", FormatCurrency(in.RentPaid))
	writeKV(buf, "HRA received (monthly)", FormatCurrency(in.HRAReceived))
	writeKV(buf, "Basic salary (monthly)", FormatCurrency(in.BasicSalary))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, tuistyles.TableHeaderStyle.Render("OLD REGIME DEDUCTIONS"))
	fmt.Fprintf(buf, "  %-22s %16s %16s %14s\n", "Category", "Claimed", "Allowed", "Cap")
	for _, line := range r.Deductions.Lines {
		limit := "-"
		if line.Cap != nil {
			limit = FormatCurrency(*line.Cap)
		}
		fmt.Fprintf(buf, "  %-22s %16s %16s %14s\n",
			line.Category, FormatCurrency(line.Claimed), FormatCurrency(line.Allowed), limit)
	}
	writeKV(buf, "HRA exemption", FormatCurrency(r.HRAExemption))
	writeKV(buf, "Itemized allowed", FormatCurrency(r.Deductions.Itemized))
	writeKV(buf, "Total deductions", FormatCurrency(r.Deductions.Total))
	fmt.Fprintln(buf)

	writeSlabs(buf, "OLD REGIME", r.OldTaxableIncome, r.OldSlabs, r.OldRegimeTax)
	writeSlabs(buf, "NEW REGIME", r.NewTaxableIncome, r.NewSlabs, r.NewRegimeTax)

	verdict := fmt.Sprintf("Recommended: %s  (saves %s)", r.Recommended, FormatCurrency(r.Difference))
	fmt.Fprintln(buf, tuistyles.TableHighlightStyle.Render(verdict))
	fmt.Fprintln(buf)
}

func writeSlabs(buf *bytes.Buffer, title string, taxable decimal.Decimal, slabs []domain.SlabAmount, total decimal.Decimal) {
	fmt.Fprintln(buf, tuistyles.TableHeaderStyle.Render(title))
	fmt.Fprintf(buf, "  Taxable income: %s\n", FormatCurrency(taxable))
	for _, s := range slabs {
		upper := "and above"
		if s.To != nil {
			upper = "to " + FormatCurrency(*s.To)
		}
		fmt.Fprintf(buf, "  %-34s %5s  on %16s = %14s\n",
			FormatCurrency(s.From)+" "+upper, FormatRate(s.Rate), FormatCurrency(s.Taxable), FormatCurrency(s.Tax))
	}
	fmt.Fprintf(buf, "  Tax: %s\n\n", FormatCurrency(total))
}

func writeKV(buf *bytes.Buffer, label, value string) {
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		tuistyles.ParameterLabelStyle.Render("  "+label),
		tuistyles.ParameterValueStyle.Render(value))
	fmt.Fprintln(buf, row)
}
