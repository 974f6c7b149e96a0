package output

import (
	"bytes"
	"encoding/csv"
)

// CSVSummarizer implements the simple summary CSV output (one row per entry).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Name", "Income", "StandardDeduction", "HRAExemption", "ItemizedDeductions", "OldTaxableIncome", "OldRegimeTax", "NewTaxableIncome", "NewRegimeTax", "Recommended", "Difference"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, e := range report.Entries {
		r := e.Result
		row := []string{
			entryName(e, i),
			e.Input.Income.StringFixed(2),
			r.Deductions.StandardDeduction.StringFixed(2),
			r.HRAExemption.StringFixed(2),
			r.Deductions.Itemized.StringFixed(2),
			r.OldTaxableIncome.StringFixed(2),
			r.OldRegimeTax.StringFixed(2),
			r.NewTaxableIncome.StringFixed(2),
			r.NewRegimeTax.StringFixed(2),
			string(r.Recommended),
			r.Difference.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
