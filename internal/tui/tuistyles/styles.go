// Package tuistyles holds the shared lipgloss palette used by the form and
// the console report.
package tuistyles

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#1F4E79", Dark: "#7FB3E6"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#6B4E16", Dark: "#E6C27F"}
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#8E3B8E", Dark: "#D99AD9"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#81C784"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#E57373"}
	ColorInfo      = lipgloss.AdaptiveColor{Light: "#00838F", Dark: "#80DEEA"}

	ColorForeground = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#E6E6E6"}
	ColorMuted      = lipgloss.AdaptiveColor{Light: "#6E6E6E", Dark: "#8A8A8A"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#BDBDBD", Dark: "#4A4A4A"}
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	MetricLabelStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)
	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted).Width(26)
	ParameterValueStyle = lipgloss.NewStyle().Foreground(ColorForeground)

	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	InfoStyle  = lipgloss.NewStyle().Foreground(ColorInfo)

	TableHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary)
	TableCellStyle      = lipgloss.NewStyle().Foreground(ColorForeground)
	TableHighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
)

// MetricTrendStyle colours a delta; lower tax is the positive direction
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for a delta
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▼"
	}
	return "▲"
}
