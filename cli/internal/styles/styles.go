// ABOUTME: Shared lipgloss styles for consistent CLI output
// ABOUTME: Defines colors, badges, and text styles used across commands

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/engestimate/estimator/backend/models"
)

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	Info      = lipgloss.Color("#3B82F6") // Blue

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted)

	Label = lipgloss.NewStyle().
		Foreground(Muted).
		Width(22)

	ValueStyle = lipgloss.NewStyle().
			Bold(true)

	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)
)

// Row renders a "label value" line.
func Row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, Label.Render(label), ValueStyle.Render(value))
}

// ConfidenceStyle colors a confidence level.
func ConfidenceStyle(level models.ConfidenceLevel) lipgloss.Style {
	switch level {
	case models.ConfidenceVeryHigh, models.ConfidenceHigh:
		return StatusOK
	case models.ConfidenceMedium:
		return StatusWarning
	default:
		return StatusCritical
	}
}

// SeverityStyle colors a reality check severity.
func SeverityStyle(s models.Severity) lipgloss.Style {
	switch s {
	case models.SeverityHigh:
		return StatusCritical
	case models.SeverityMedium:
		return StatusWarning
	default:
		return lipgloss.NewStyle().Foreground(Info).Bold(true)
	}
}

// Badge renders text as a bracketed tag in the given style.
func Badge(text string, style lipgloss.Style) string {
	return style.Render("[" + strings.ToUpper(text) + "]")
}

// ProgressBar returns a styled progress bar string
func ProgressBar(percent float64, width int) string {
	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	color := Secondary
	if percent >= 80 {
		color = Warning
	}
	if percent >= 100 {
		color = Danger
	}

	return lipgloss.NewStyle().Foreground(color).Render(bar)
}
