package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/rgehrsitz/itrgo/internal/domain"
)

const (
	pageW    = 210.0
	marginL  = 18.0
	marginR  = 18.0
	contentW = pageW - marginL - marginR
)

var (
	cInk    = [3]int{30, 30, 30}
	cMuted  = [3]int{110, 110, 110}
	cBrand  = [3]int{31, 78, 121}
	cRowBg  = [3]int{242, 242, 242}
	cGreen  = [3]int{46, 125, 50}
	cHeadBg = [3]int{225, 233, 242}
)

func setFill(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetFillColor(c[0], c[1], c[2]) }
func setText(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetTextColor(c[0], c[1], c[2]) }

// pdfText maps characters the core fonts cannot draw
var pdfText = strings.NewReplacer("₹", "Rs. ", "–", "-", "—", "-", "·", "-", "•", "-", "’", "'")

// PDFFormatter renders the report as an A4 PDF using the core Helvetica font
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(report *Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginL, 15, marginR)
	pdf.SetAutoPageBreak(true, 18)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "", 7)
		setText(pdf, cMuted)
		pdf.CellFormat(contentW/2, 6, "Generated "+report.GeneratedAt.Format("2006-01-02 15:04"), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW/2, 6, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	// Title band
	setFill(pdf, cBrand)
	pdf.Rect(0, 0, pageW, 28, "F")
	pdf.SetXY(marginL, 9)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(contentW, 8, "Income Tax: Old vs New Regime", "", 1, "L", false, 0, "")
	if report.AssessmentYear != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, "Assessment year "+report.AssessmentYear, "", 1, "L", false, 0, "")
	}
	pdf.SetY(36)

	for i, e := range report.Entries {
		writePDFEntry(pdf, i, e)
	}

	if len(report.Entries) > 1 {
		rec := AnalyzeReport(report)
		pdf.SetFont("Helvetica", "B", 11)
		setText(pdf, cGreen)
		pdf.MultiCell(contentW, 6, pdfText.Replace(fmt.Sprintf("Lowest tax: %s, %s payable under the %s",
			rec.EntryName, FormatRupees(rec.PayableTax), rec.Regime)), "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 10)
	setText(pdf, cInk)
	pdf.CellFormat(contentW, 6, "Assumptions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8.5)
	setText(pdf, cMuted)
	for _, a := range report.Assumptions {
		pdf.MultiCell(contentW, 4.5, pdfText.Replace("- "+a), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writePDFEntry(pdf *gofpdf.Fpdf, i int, e Entry) {
	in, r := e.Input, e.Result

	pdf.SetFont("Helvetica", "B", 13)
	setText(pdf, cBrand)
	pdf.CellFormat(contentW, 8, pdfText.Replace(fmt.Sprintf("%d. %s", i+1, entryName(e, i))), "", 1, "L", false, 0, "")

	pdfTable(pdf, []string{"Input", "Amount"}, []float64{0.6, 0.4}, [][]string{
		{"Annual income", FormatRupees(in.Income)},
		{"Standard deduction", yesNo(in.StandardDeduction)},
		{"Rent paid (monthly)", FormatRupees(in.RentPaid)},
		{"HRA received (monthly)", FormatRupees(in.HRAReceived)},
		{"Basic salary (monthly)", FormatRupees(in.BasicSalary)},
	})

	rows := [][]string{}
	for _, line := range r.Deductions.Lines {
		rows = append(rows, []string{line.Category, FormatRupees(line.Claimed), FormatRupees(line.Allowed)})
	}
	rows = append(rows,
		[]string{"HRA exemption", "", FormatRupees(r.HRAExemption)},
		[]string{"Standard deduction", "", FormatRupees(r.Deductions.StandardDeduction)},
		[]string{"Total", "", FormatRupees(r.Deductions.Total)},
	)
	pdfTable(pdf, []string{"Old regime deduction", "Claimed", "Allowed"}, []float64{0.4, 0.3, 0.3}, rows)

	pdfTable(pdf, []string{"Regime", "Taxable income", "Tax"}, []float64{0.4, 0.3, 0.3}, [][]string{
		{string(domain.OldRegime), FormatRupees(r.OldTaxableIncome), FormatRupees(r.OldRegimeTax)},
		{string(domain.NewRegime), FormatRupees(r.NewTaxableIncome), FormatRupees(r.NewRegimeTax)},
	})

	pdf.SetFont("Helvetica", "B", 11)
	setText(pdf, cGreen)
	pdf.CellFormat(contentW, 7, pdfText.Replace(fmt.Sprintf("Recommended: %s (saves %s)", r.Recommended, FormatRupees(r.Difference))), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

// pdfTable draws a header row and zebra-striped body; widths are fractions of
// the content width and the first column is left aligned
func pdfTable(pdf *gofpdf.Fpdf, header []string, widths []float64, rows [][]string) {
	const rowH = 6.0

	pdf.SetFont("Helvetica", "B", 9)
	setText(pdf, cInk)
	setFill(pdf, cHeadBg)
	for i, h := range header {
		pdf.CellFormat(widths[i]*contentW, rowH, h, "", 0, align(i), true, 0, "")
	}
	pdf.Ln(rowH)

	pdf.SetFont("Helvetica", "", 9)
	setFill(pdf, cRowBg)
	for n, row := range rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i]*contentW, rowH, pdfText.Replace(cell), "", 0, align(i), n%2 == 1, 0, "")
		}
		pdf.Ln(rowH)
	}
	pdf.Ln(3)
}

func align(col int) string {
	if col == 0 {
		return "L"
	}
	return "R"
}

func yesNo(b bool) string {
	if b {
		return "claimed"
	}
	return "not claimed"
}
