package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/output"
	"github.com/rgehrsitz/itrgo/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = m.renderForm()
	}
	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.renderTitleBar(), content, m.renderStatusBar()))
}

// renderTitleBar renders the application title and assessment year
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Income Tax Regime Comparison")
	year := m.calcEngine.Rules.Metadata.AssessmentYear
	if year == "" {
		return title
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render("Assessment year "+year))
}

func (m Model) renderForm() string {
	var sb strings.Builder

	for i, f := range formFields {
		cursor := "  "
		if i == m.focus {
			cursor = HelpKeyStyle.Render("> ")
		}
		sb.WriteString(cursor + ParameterLabelStyle.Render(f.label) + m.inputs[i].View() + "\n")
	}

	check := "[ ]"
	if m.standard {
		check = "[x]"
	}
	sb.WriteString("  " + ParameterLabelStyle.Render("Standard deduction") + ParameterValueStyle.Render(check) + "\n")

	form := BorderStyle.Render(strings.TrimRight(sb.String(), "\n"))

	var below string
	switch {
	case m.err != nil:
		below = ErrorStyle.Render("Error: " + m.err.Error())
	case m.result != nil:
		below = m.renderResult()
	default:
		below = SubtitleStyle.Render("Press enter to compare both regimes")
	}

	parts := []string{form, below}
	if m.status != "" {
		parts = append(parts, InfoStyle.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderResult() string {
	r := m.result
	oldWins := r.Recommended == domain.OldRegime

	oldCard := components.NewMetricCard("Old Regime Tax", output.FormatCurrency(r.OldRegimeTax)).
		WithDescription("Taxable " + output.FormatCurrency(r.OldTaxableIncome)).
		WithHighlight(oldWins)
	newCard := components.NewMetricCard("New Regime Tax", output.FormatCurrency(r.NewRegimeTax)).
		WithDescription("Taxable " + output.FormatCurrency(r.NewTaxableIncome)).
		WithHighlight(!oldWins)
	recCard := components.NewMetricCard("Recommended", string(r.Recommended)).
		WithTrend(true, output.FormatCurrency(r.Difference))

	cards := components.MetricGrid([]*components.MetricCard{oldCard, newCard, recCard}, 3)

	var details strings.Builder
	details.WriteString(components.NewMetricCard("HRA exemption", output.FormatCurrency(r.HRAExemption)).RenderCompact() + "\n")
	details.WriteString(components.NewMetricCard("Old regime deductions", output.FormatCurrency(r.Deductions.Total)).RenderCompact() + "\n")
	if line := m.renderBreakEven(); line != "" {
		details.WriteString(line + "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards, strings.TrimRight(details.String(), "\n"))
}

func (m Model) renderBreakEven() string {
	be := m.breakEven
	if be == nil {
		return ""
	}
	switch be.Status {
	case breakeven.StatusNever:
		return InfoStyle.Render("New regime owes no tax at this income; the old regime cannot beat it")
	case breakeven.StatusAlways:
		return InfoStyle.Render("Old regime is cheaper even without itemized deductions")
	}
	msg := fmt.Sprintf("Old regime wins from %s of HRA and itemized deductions", output.FormatCurrency(be.Threshold))
	if be.Shortfall.IsPositive() {
		msg += fmt.Sprintf(" (%s short)", output.FormatCurrency(be.Shortfall))
	}
	return InfoStyle.Render(msg)
}

func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(SectionStyle.Render("Keys") + "\n")
	for _, b := range []struct{ key, desc string }{
		{"tab / down", "next field"},
		{"shift+tab / up", "previous field"},
		{"space", "toggle the standard deduction"},
		{"enter", "compare both regimes"},
		{"ctrl+s", "save the form as an input file"},
		{"esc / ctrl+c", "quit"},
	} {
		sb.WriteString(fmt.Sprintf("  %-16s %s\n", HelpKeyStyle.Render(b.key), HelpDescStyle.Render(b.desc)))
	}
	sb.WriteString("\n" + SubtitleStyle.Render("Amounts are in rupees; rent, HRA and basic salary are monthly. Press any key to return."))
	return sb.String()
}

// renderStatusBar renders the bottom bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := make([]string, 0, len(m.keys.shortHelp()))
	for _, b := range m.keys.shortHelp() {
		h := b.Help()
		shortcuts = append(shortcuts, HelpKeyStyle.Render(h.Key)+" "+HelpDescStyle.Render(h.Desc))
	}
	return "\n" + strings.Join(shortcuts, " • ")
}
