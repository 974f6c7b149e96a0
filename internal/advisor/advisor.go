// Package advisor asks a Gemini model for short, plain-language advice on a
// regime comparison.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/domain"
	genai "google.golang.org/genai"
)

// ErrNotConfigured is returned when no API key is set
var ErrNotConfigured = errors.New("advisor: GEMINI_API_KEY is not configured")

// ErrEmptyResponse is returned when the model answers with no text
var ErrEmptyResponse = errors.New("advisor: model returned no text")

// Generator produces text for a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Advisor builds prompts from comparison results and sends them to a Generator
type Advisor struct {
	gen     Generator
	timeout time.Duration
}

// New creates an advisor backed by the Gemini API
func New(ctx context.Context, cfg config.AppConfig) (*Advisor, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return nil, ErrNotConfigured
	}
	gen, err := newGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("advisor: failed to create Gemini client: %w", err)
	}
	return NewWithGenerator(gen, cfg.AdviceTimeout), nil
}

// NewWithGenerator creates an advisor around any Generator. A non-positive
// timeout leaves the caller's context deadline in charge.
func NewWithGenerator(gen Generator, timeout time.Duration) *Advisor {
	return &Advisor{gen: gen, timeout: timeout}
}

// Advise returns advice for one input and its comparison result
func (a *Advisor) Advise(ctx context.Context, input domain.TaxInput, result domain.TaxResult) (string, error) {
	if a == nil || a.gen == nil {
		return "", ErrNotConfigured
	}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	text, err := a.gen.Generate(ctx, BuildPrompt(input, result))
	if err != nil {
		return "", fmt.Errorf("advisor: generate: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// BuildPrompt describes the taxpayer and both regime outcomes in plain text
func BuildPrompt(input domain.TaxInput, result domain.TaxResult) string {
	var sb strings.Builder

	sb.WriteString("You are an Indian personal income tax assistant. ")
	sb.WriteString("In at most five short bullet points, explain which regime this salaried taxpayer should choose ")
	sb.WriteString("and which deductions matter most. Do not invent figures; use only the numbers below. ")
	sb.WriteString("Ignore surcharge, cess and the section 87A rebate.\n\n")

	sb.WriteString("Taxpayer\n")
	fmt.Fprintf(&sb, "- Annual income: %s\n", input.Income.StringFixed(2))
	fmt.Fprintf(&sb, "- Standard deduction claimed: %t\n", input.StandardDeduction)
	fmt.Fprintf(&sb, "- Monthly rent paid: %s\n", input.RentPaid.StringFixed(2))
	fmt.Fprintf(&sb, "- Monthly HRA received: %s\n", input.HRAReceived.StringFixed(2))
	fmt.Fprintf(&sb, "- Monthly basic salary: %s\n", input.BasicSalary.StringFixed(2))

	if len(result.Deductions.Lines) > 0 {
		sb.WriteString("\nOld regime deductions (claimed / allowed)\n")
		for _, line := range result.Deductions.Lines {
			fmt.Fprintf(&sb, "- %s: %s / %s\n", line.Category, line.Claimed.StringFixed(2), line.Allowed.StringFixed(2))
		}
	}

	sb.WriteString("\nResult\n")
	fmt.Fprintf(&sb, "- HRA exemption: %s\n", result.HRAExemption.StringFixed(2))
	fmt.Fprintf(&sb, "- Old regime taxable income: %s, tax: %s\n", result.OldTaxableIncome.StringFixed(2), result.OldRegimeTax.StringFixed(2))
	fmt.Fprintf(&sb, "- New regime taxable income: %s, tax: %s\n", result.NewTaxableIncome.StringFixed(2), result.NewRegimeTax.StringFixed(2))
	fmt.Fprintf(&sb, "- Cheaper regime: %s (difference %s)\n", result.Recommended, result.Difference.StringFixed(2))

	return sb.String()
}

type geminiGenerator struct {
	cli   *genai.Client
	model string
}

func newGeminiGenerator(ctx context.Context, apiKey, model string) (*geminiGenerator, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &geminiGenerator{cli: cli, model: model}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
