package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func buildTestReport() *Report {
	inputs := []domain.TaxInput{
		{
			Name:              "A",
			Income:            d(1200000),
			StandardDeduction: true,
			RentPaid:          d(20000),
			HRAReceived:       d(12500),
			BasicSalary:       d(50000),
			Deductions: domain.DeductionSet{
				"80C":              d(150000),
				"80D":              d(25000),
				"80DDB":            d(40000),
				"80G":              d(10000),
				"HomeLoanInterest": d(200000),
				"TTA":              d(10000),
			},
		},
		{
			Name:              "B",
			Income:            d(1200000),
			StandardDeduction: true,
		},
	}

	engine := calculation.NewCalculationEngine()
	results, err := engine.EvaluateAll(inputs)
	if err != nil {
		panic(err)
	}
	return NewReport(engine.Rules, inputs, results)
}

func TestFormatterFunc_Format(t *testing.T) {
	called := false
	var receivedReport *Report

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *Report) ([]byte, error) {
			called = true
			receivedReport = report
			return []byte("test output"), nil
		},
	}

	testReport := buildTestReport()
	out, err := formatter.Format(testReport)

	assert.NoError(t, err, "Should not error")
	assert.True(t, called, "Should call the function")
	assert.Equal(t, testReport, receivedReport, "Should pass the report")
	assert.Equal(t, []byte("test output"), out, "Should return the function output")
	assert.Equal(t, "test-formatter", formatter.Name(), "Should return the ID")
}

func TestWriteFormatted(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(originalDir)

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *Report) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}

	filename, err := WriteFormatted(formatter, buildTestReport(), "txt")

	assert.NoError(t, err, "Should not error")
	assert.Contains(t, filename, "tax_report_", "Should have correct prefix")
	assert.Contains(t, filename, ".txt", "Should have correct extension")

	content, err := os.ReadFile(filename)
	assert.NoError(t, err, "Should be able to read the file")
	assert.Equal(t, "test output content", string(content), "Should have correct content")
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F: func(report *Report) ([]byte, error) {
			return nil, fmt.Errorf("formatter error")
		},
	}

	filename, err := WriteFormatted(formatter, buildTestReport(), "txt")

	assert.Error(t, err, "Should error when formatter fails")
	assert.Empty(t, filename, "Should return empty filename on error")
	assert.Contains(t, err.Error(), "formatter error", "Should propagate formatter error")
}

func TestWriteFormattedTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	require.NoError(t, WriteFormattedTo(CSVSummarizer{}, buildTestReport(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Name,Income")
}

func TestNewReport(t *testing.T) {
	report := buildTestReport()

	assert.Equal(t, "2025-26", report.AssessmentYear)
	require.Len(t, report.Entries, 2)
	assert.Equal(t, DefaultAssumptions, report.Assumptions)
	assert.False(t, report.GeneratedAt.IsZero())

	short := NewReport(domain.DefaultRegulatoryConfig(), []domain.TaxInput{{}, {}}, []domain.TaxResult{{}})
	assert.Len(t, short.Entries, 1, "Should drop inputs without results")
}

func TestAnalyzeReport(t *testing.T) {
	rec := AnalyzeReport(buildTestReport())

	assert.Equal(t, "A", rec.EntryName)
	assert.Equal(t, domain.OldRegime, rec.Regime)
	assert.True(t, rec.PayableTax.Equal(d(20500)))
	assert.True(t, rec.Savings.Equal(d(32000)))

	empty := AnalyzeReport(&Report{})
	assert.Empty(t, empty.EntryName)
}

func TestConsoleFormatter_Format(t *testing.T) {
	formatter := ConsoleFormatter{}
	assert.Equal(t, "console-lite", formatter.Name(), "Should return correct name")

	out, err := formatter.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "TAX REGIME COMPARISON (AY 2025-26)", "Should have header")
	assert.Contains(t, content, "Old Regime Tax:  ₹20,500.00")
	assert.Contains(t, content, "New Regime Tax:  ₹52,500.00")
	assert.Contains(t, content, "HRA Exemption:   ₹1,50,000.00")
	assert.Contains(t, content, "Recommended:     Old Regime (saves ₹32,000.00)")
	assert.Contains(t, content, "Lowest tax: A under the Old Regime, ₹20,500.00 payable")
}

func TestConsoleFormatter_Format_Empty(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(&Report{})

	require.NoError(t, err)
	assert.Contains(t, string(out), "TAX REGIME COMPARISON")
	assert.NotContains(t, string(out), "Lowest tax")
}

func TestConsoleVerboseFormatter_Format(t *testing.T) {
	formatter := ConsoleVerboseFormatter{}
	assert.Equal(t, "console", formatter.Name(), "Should return correct name")

	out, err := formatter.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "INCOME TAX: OLD vs NEW REGIME")
	assert.Contains(t, content, "KEY ASSUMPTIONS")
	assert.Contains(t, content, "OLD REGIME DEDUCTIONS")
	assert.Contains(t, content, "HomeLoanInterest")
	assert.Contains(t, content, "Taxable income: ₹5,40,000.00")
	assert.Contains(t, content, "Taxable income: ₹11,25,000.00")
	assert.Contains(t, content, "Recommended: Old Regime  (saves ₹32,000.00)")
	assert.Contains(t, content, "Lowest tax: A")
}

func TestCSVSummarizer_Format(t *testing.T) {
	formatter := CSVSummarizer{}
	assert.Equal(t, "csv", formatter.Name(), "Should return correct name")

	out, err := formatter.Format(buildTestReport())
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "A,1200000.00,75000.00,150000.00,435000.00,540000.00,20500.00,1125000.00,52500.00,Old Regime,32000.00", string(lines[1]))
	assert.Contains(t, string(lines[2]), "B,1200000.00")
}

func TestJSONFormatter_Format(t *testing.T) {
	formatter := JSONFormatter{}
	assert.Equal(t, "json", formatter.Name(), "Should return correct name")

	out, err := formatter.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "\"assessmentYear\": \"2025-26\"")
	assert.Contains(t, content, "\"entries\"")
	assert.Contains(t, content, "\"oldRegimeTax\": \"20500\"")
	assert.Contains(t, content, "\"recommended\": \"Old Regime\"")
}

func TestHTMLFormatter_Format(t *testing.T) {
	formatter := HTMLFormatter{}
	assert.Equal(t, "html", formatter.Name(), "Should return correct name")

	out, err := formatter.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "<!DOCTYPE html>", "Should have HTML structure")
	assert.Contains(t, content, "<title>Income Tax Regime Comparison</title>")
	assert.Contains(t, content, "Assessment year 2025-26")
	assert.Contains(t, content, "Recommended: Old Regime (saves ₹32,000.00)")
	assert.Contains(t, content, "Lowest tax")
}

func TestPDFFormatter_Format(t *testing.T) {
	formatter := PDFFormatter{}
	assert.Equal(t, "pdf", formatter.Name(), "Should return correct name")

	out, err := formatter.Format(buildTestReport())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "Should be a PDF document")
	assert.Greater(t, len(out), 1000)
}

func TestAvailableFormatterNames(t *testing.T) {
	names := AvailableFormatterNames()

	assert.Equal(t, []string{"console", "console-lite", "csv", "html", "json", "pdf"}, names)
}

func TestAvailableFormatAliases(t *testing.T) {
	aliases := AvailableFormatAliases()

	assert.Contains(t, aliases, "verbose", "Should include verbose alias")
	assert.Contains(t, aliases, "console-verbose", "Should include console-verbose alias")
	assert.Contains(t, aliases, "text", "Should include text alias")
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"console-lite", "console-lite"},
		{"console", "console"},
		{"verbose", "console"},
		{"text", "console-lite"},
		{"pdf", "pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := GetFormatterByName(tt.name)
			require.NotNil(t, formatter, "Should return formatter")
			assert.Equal(t, tt.expected, formatter.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("non-existent"), "Should return nil formatter for non-existent name")
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   decimal.Decimal
		expected string
	}{
		{d(0), "₹0.00"},
		{d(999), "₹999.00"},
		{d(1000), "₹1,000.00"},
		{d(20500), "₹20,500.00"},
		{d(150000), "₹1,50,000.00"},
		{d(1234567), "₹12,34,567.00"},
		{d(123456789), "₹12,34,56,789.00"},
		{decimal.NewFromFloat(1234.565), "₹1,234.57"},
		{d(-52500), "-₹52,500.00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(tt.amount))
		})
	}

	assert.Equal(t, "Rs. 12,00,000.00", FormatRupees(d(1200000)))
	assert.Equal(t, "12.50%", FormatPercentage(decimal.NewFromFloat(12.5)))
	assert.Equal(t, "5%", FormatRate(decimal.NewFromFloat(0.05)))
}

func TestSaveConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := &domain.Configuration{
		Taxpayer: domain.TaxInput{Name: "saved", Income: d(900000), StandardDeduction: true},
	}

	require.NoError(t, SaveConfiguration(cfg, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "name: saved")
	assert.Contains(t, string(content), "income: \"900000\"")
	assert.Contains(t, string(content), "standard_deduction: true")
}
