package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/wattboard/internal/cli"
	"github.com/theirongolddev/wattboard/internal/insights"
	"github.com/theirongolddev/wattboard/internal/tui/components"
	"github.com/theirongolddev/wattboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderInsightsTab(cw int) string {
	t := theme.Active
	week := a.sess.Ledger()
	impact := insights.EnvironmentalImpact(week.Metrics())
	alert := insights.HighConsumption(2)

	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	bullet := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Render("• ")

	var tips strings.Builder
	for i, tip := range insights.Tips {
		tips.WriteString(bullet + text.Render(tip))
		if i < len(insights.Tips)-1 {
			tips.WriteString("\n")
		}
	}

	warn := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface).Bold(true)
	var al strings.Builder
	for _, info := range alert.Heaviest {
		al.WriteString(bullet + warn.Render(info.Label) + muted.Render(fmt.Sprintf(" uses %.1f kWh/day", info.KWhPerDay)))
		al.WriteString("\n")
	}
	al.WriteString(bullet + text.Render(alert.Advice))
	if day, pct, ok := insights.Heaviest(week); ok {
		kwh := week.Value(day)
		color := components.LoadColor(kwh, maxDailyKWh())
		al.WriteString("\n\n")
		al.WriteString(muted.Render("Heaviest day ") +
			lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true).Render(day.String()) +
			muted.Render(fmt.Sprintf(" (%s, %s of the week)", cli.FormatKWh(kwh), cli.FormatPercent(pct))))
	}

	good := lipgloss.NewStyle().Foreground(t.Good).Background(t.Surface).Bold(true)
	carbon := lipgloss.NewStyle().Foreground(t.Carbon).Background(t.Surface).Bold(true)
	var env strings.Builder
	env.WriteString(muted.Render("Weekly CO₂   ") + carbon.Render(cli.FormatCarbon(impact.WeeklyCarbonKg)))
	env.WriteString("\n")
	env.WriteString(muted.Render("Monthly CO₂  ") + carbon.Render(cli.FormatCarbon(impact.MonthlyCarbonKg)))
	env.WriteString("\n")
	env.WriteString(muted.Render("Plant ") + good.Render(cli.FormatTrees(impact.TreesToOffset)) + muted.Render(" to offset!"))

	if a.isCompactLayout() {
		half := components.LayoutRow(cw, 2)
		return components.CardRow([]string{
			components.ContentCard("Energy Saving Tips", tips.String(), half[0]),
			components.ContentCard("High Consumption Alert", al.String(), half[1]),
		}) + "\n" + components.ContentCard("Environmental Impact", env.String(), cw)
	}

	widths := components.LayoutRow(cw, 3)
	return components.CardRow([]string{
		components.ContentCard("Energy Saving Tips", tips.String(), widths[0]),
		components.ContentCard("High Consumption Alert", al.String(), widths[1]),
		components.ContentCard("Environmental Impact", env.String(), widths[2]),
	})
}
