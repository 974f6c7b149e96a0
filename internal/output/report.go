package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Entry pairs an input with the result computed from it
type Entry struct {
	Input  domain.TaxInput  `json:"input"`
	Result domain.TaxResult `json:"result"`
}

// Report is what every formatter renders
type Report struct {
	AssessmentYear string    `json:"assessmentYear"`
	GeneratedAt    time.Time `json:"generatedAt"`
	Entries        []Entry   `json:"entries"`
	Assumptions    []string  `json:"assumptions"`
}

// NewReport pairs inputs with their results; extra inputs without a result
// are dropped
func NewReport(rules domain.RegulatoryConfig, inputs []domain.TaxInput, results []domain.TaxResult) *Report {
	n := len(inputs)
	if len(results) < n {
		n = len(results)
	}

	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, Entry{Input: inputs[i], Result: results[i]})
	}

	return &Report{
		AssessmentYear: rules.Metadata.AssessmentYear,
		GeneratedAt:    time.Now(),
		Entries:        entries,
		Assumptions:    DefaultAssumptions,
	}
}

// Recommendation identifies the cheapest entry in a report
type Recommendation struct {
	EntryName  string
	Regime     domain.Regime
	PayableTax decimal.Decimal
	Savings    decimal.Decimal // over the other regime for that entry
}

// AnalyzeReport finds the entry with the lowest payable tax; earlier entries
// win ties
func AnalyzeReport(report *Report) Recommendation {
	var rec Recommendation
	for i, e := range report.Entries {
		payable := e.Result.RecommendedTax()
		if i == 0 || payable.LessThan(rec.PayableTax) {
			rec = Recommendation{
				EntryName:  entryName(e, i),
				Regime:     e.Result.Recommended,
				PayableTax: payable,
				Savings:    e.Result.Difference,
			}
		}
	}
	return rec
}

func entryName(e Entry, i int) string {
	if e.Input.Name != "" {
		return e.Input.Name
	}
	return fmt.Sprintf("Entry %d", i+1)
}

// SaveConfiguration saves a configuration to a file
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// FormatCurrency formats a decimal as rupees with Indian digit grouping,
// e.g. ₹12,34,567.00
func FormatCurrency(amount decimal.Decimal) string {
	return formatGrouped("₹", amount)
}

// FormatRupees is FormatCurrency for fonts without the rupee sign
func FormatRupees(amount decimal.Decimal) string {
	return formatGrouped("Rs. ", amount)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a slab rate such as 0.05 as "5%"
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}

func formatGrouped(symbol string, amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + symbol + groupIndian(whole) + "." + frac
}

// groupIndian inserts separators after the last three digits and then every
// two digits
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
