package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/wattboard/internal/tui/theme"
)

// ShareBar renders "label ████░░░░  42.0%  12.30 kWh" for one slice of a
// distribution. pct is 0-100.
func ShareBar(label string, pct float64, detail string, color lipgloss.Color, labelW, barWidth int) string {
	t := theme.Active
	pct = min(max(pct, 0), 100)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	detailStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct/100) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", pct)) +
		spaceStyle.Render("  ") +
		detailStyle.Render(detail)
}

// LoadColor grades a daily figure against the heaviest possible day.
func LoadColor(kwh, ceiling float64) lipgloss.Color {
	t := theme.Active
	if ceiling <= 0 {
		return t.Good
	}
	switch r := kwh / ceiling; {
	case r >= 0.75:
		return t.Bad
	case r >= 0.5:
		return t.Warn
	default:
		return t.Good
	}
}
