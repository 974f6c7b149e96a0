package extract

import (
	"regexp"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Match records one line that contributed to a category
type Match struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Line     string          `json:"line"`
}

// Extraction is the parsed content of one document
type Extraction struct {
	Deductions domain.DeductionSet `json:"deductions"`
	Matches    []Match             `json:"matches"`
}

type sectionPattern struct {
	category string
	re       *regexp.Regexp
}

// Ordered most specific first; the first label found on a line wins.
var sectionPatterns = []sectionPattern{
	{"80CCD1B", regexp.MustCompile(`(?i)\b80\s*-?\s*CCD\s*\(?\s*1\s*B\s*\)?`)},
	{"80CCD1", regexp.MustCompile(`(?i)\b80\s*-?\s*CCD\s*\(?\s*1\s*\)?`)},
	{"80CCC", regexp.MustCompile(`(?i)\b80\s*-?\s*CCC\b`)},
	{"80DDB", regexp.MustCompile(`(?i)\b80\s*-?\s*DDB\b`)},
	{"80D", regexp.MustCompile(`(?i)\b80\s*-?\s*D\b`)},
	{"80C", regexp.MustCompile(`(?i)\b80\s*-?\s*C\b`)},
	{"80TTA", regexp.MustCompile(`(?i)\b80\s*-?\s*TTA\b`)},
	{"80E", regexp.MustCompile(`(?i)\b80\s*-?\s*E\b`)},
	{"80G", regexp.MustCompile(`(?i)\b80\s*-?\s*G\b`)},
	{"HomeLoanInterest", regexp.MustCompile(`(?i)\b24\s*\(\s*b\s*\)|\bsection\s*24\b|interest\s+on\s+(?:home|housing)\s+loan|home\s+loan\s+interest`)},
}

var amountRe = regexp.MustCompile(`(?i)((?:Rs\.?|INR|₹)\s*)?(\d[\d,]*(?:\.\d{1,2})?)`)

// Years, dates and percentages that are never amounts
var nonAmountRe = regexp.MustCompile(`(?i)\b(?:[FA]\.?Y\.?\s*)?(?:19|20)\d{2}\s*[-/–]\s*\d{2,4}\b|\b\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}\b|\d+(?:\.\d+)?\s*%`)

// ParseDeductions scans text line by line for a section label followed by an
// amount. Amounts for the same category are summed; the last amount after the
// label is taken so "claimed ... deductible" pairs resolve to the deductible
// figure. Caps are not applied here.
func ParseDeductions(text string) *Extraction {
	ex := &Extraction{Deductions: domain.DeductionSet{}}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		category, rest, ok := findSection(line)
		if !ok {
			continue
		}

		amount, ok := lastAmount(rest)
		if !ok || !amount.IsPositive() {
			continue
		}

		ex.Deductions[category] = ex.Deductions[category].Add(amount)
		ex.Matches = append(ex.Matches, Match{Category: category, Amount: amount, Line: line})
	}

	return ex
}

func findSection(line string) (category, rest string, ok bool) {
	for _, p := range sectionPatterns {
		if loc := p.re.FindStringIndex(line); loc != nil {
			return p.category, line[loc[1]:], true
		}
	}
	return "", "", false
}

// lastAmount returns the last amount in s, accepting Indian (1,50,000) and
// western (150,000) grouping. Figures with a currency marker or digit grouping
// win over bare numbers; years, dates and percentages are skipped.
func lastAmount(s string) (decimal.Decimal, bool) {
	s = nonAmountRe.ReplaceAllString(s, " ")
	matches := amountRe.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return decimal.Zero, false
	}
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i][1] != "" || strings.Contains(matches[i][2], ",") {
			return ParseAmount(matches[i][2])
		}
	}
	return ParseAmount(matches[len(matches)-1][2])
}

// ParseAmount parses a rupee amount, ignoring currency prefixes and digit
// grouping
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"₹", "INR", "Rs.", "Rs"} {
		s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
	}
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}
