package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	taxpayerFile = "../../internal/config/testdata/taxpayer.yaml"
	invalidFile  = "../../internal/config/testdata/invalid_negative.yaml"
)

// run executes a fresh command tree and returns stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "itrgo", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestCommandSubcommands(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"compare", "scenarios", "validate", "breakeven", "extract", "advise", "report", "serve", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "itrgo dev (commit none, built unknown)")
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", taxpayerFile)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (3 scenario(s))")

	_, err = run(t, "validate", invalidFile)
	assert.Error(t, err)

	_, err = run(t, "validate")
	assert.Error(t, err)
}

func TestCompare_FromFlags(t *testing.T) {
	out, err := run(t, "compare",
		"--income", "1200000",
		"--rent", "20000", "--hra", "12500", "--basic", "50000",
		"--deduction", "80C=150000,80D=25000,80DDB=40000,80G=10000,HomeLoanInterest=200000,TTA=10000",
		"-f", "json")
	require.NoError(t, err)

	assert.Contains(t, out, `"oldRegimeTax": "20500"`)
	assert.Contains(t, out, `"newRegimeTax": "52500"`)
	assert.Contains(t, out, `"recommended": "Old Regime"`)
}

func TestCompare_NoStandardDeduction(t *testing.T) {
	out, err := run(t, "compare", "--income", "1200000", "--std=false", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"newTaxableIncome": "1200000"`)
}

func TestCompare_Errors(t *testing.T) {
	_, err := run(t, "compare")
	assert.EqualError(t, err, "either an input file or --income is required")

	_, err = run(t, "compare", "--income", "twelve lakh")
	assert.Error(t, err)

	_, err = run(t, "compare", "--income", "-1")
	assert.ErrorContains(t, err, "income must not be negative")

	_, err = run(t, "compare", taxpayerFile, "-f", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestCompare_File(t *testing.T) {
	out, err := run(t, "compare", taxpayerFile, "-f", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "₹20,500.00")
	assert.Contains(t, out, "promotion")
}

func TestScenarios(t *testing.T) {
	out, err := run(t, "scenarios", taxpayerFile)
	require.NoError(t, err)
	assert.Contains(t, out, "TAX REGIME SCENARIO COMPARISON")
	assert.Contains(t, out, "extra NPS")

	out, err = run(t, "scenarios", taxpayerFile, "-f", "csv", "--only", "promotion")
	require.NoError(t, err)
	assert.Contains(t, out, "promotion")
	assert.NotContains(t, out, "extra NPS")

	_, err = run(t, "scenarios", taxpayerFile, "--only", "lottery")
	assert.ErrorContains(t, err, "scenario lottery not found")
}

func TestScenariosWith(t *testing.T) {
	out, err := run(t, "scenarios", taxpayerFile, "-f", "csv", "--only", "promotion",
		"--with", "stop_renting", "--with", "set_deduction:category=80CCD1B,amount=50000")
	require.NoError(t, err)
	assert.Contains(t, out, "promotion")
	assert.Contains(t, out, "stop_renting")
	assert.Contains(t, out, "set_deduction:category=80CCD1B")

	_, err = run(t, "scenarios", taxpayerFile, "--with", "retire_early")
	assert.ErrorContains(t, err, "neither a template nor a transform spec")

	_, err = run(t, "scenarios")
	assert.ErrorContains(t, err, "an input file is required")
}

func TestScenariosListTemplates(t *testing.T) {
	out, err := run(t, "scenarios", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "max_80c")
	assert.Contains(t, out, "stop_renting")
	assert.Contains(t, out, "max_deduction")
}

func TestBreakEven(t *testing.T) {
	out, err := run(t, "breakeven", "--income", "1200000")
	require.NoError(t, err)
	assert.Contains(t, out, "Itemized deductions needed:  ₹425001.00")

	out, err = run(t, "breakeven", taxpayerFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Currently claimed:")

	out, err = run(t, "breakeven", "--from", "400000", "--to", "1200000", "--step", "400000", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"results"`)
	assert.Contains(t, out, `"status": "never"`)

	_, err = run(t, "breakeven")
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	dir := t.TempDir()

	pdfPath := filepath.Join(dir, "out.pdf")
	out, err := run(t, "report", taxpayerFile, "-o", pdfPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to "+pdfPath)

	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	jsonPath := filepath.Join(dir, "out.json")
	_, err = run(t, "report", taxpayerFile, "-o", jsonPath)
	require.NoError(t, err)
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"entries"`)
}

func TestFormatFromExt(t *testing.T) {
	assert.Equal(t, "pdf", formatFromExt("report.pdf"))
	assert.Equal(t, "pdf", formatFromExt(""))
	assert.Equal(t, "html", formatFromExt("r.HTML"))
	assert.Equal(t, "csv", formatFromExt("r.csv"))
	assert.Equal(t, "console-lite", formatFromExt("r.txt"))
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := run(t, "extract", filepath.Join(t.TempDir(), "none.pdf"))
	assert.ErrorContains(t, err, "failed to read")
}

func TestAdvise_NotConfigured(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	_, err := run(t, "advise", taxpayerFile, "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "GEMINI_API_KEY is not configured")
}
