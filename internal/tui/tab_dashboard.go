package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/wattboard/internal/cli"
	"github.com/theirongolddev/wattboard/internal/energy"
	"github.com/theirongolddev/wattboard/internal/ledger"
	"github.com/theirongolddev/wattboard/internal/tui/components"
	"github.com/theirongolddev/wattboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// maxDailyKWh is the heaviest day the estimator can produce.
func maxDailyKWh() float64 {
	all := make([]energy.Appliance, 0, len(energy.Appliances()))
	for _, info := range energy.Appliances() {
		all = append(all, info.Appliance)
	}
	kwh, _ := energy.EstimateDailyEnergy(energy.MaxSize, energy.NewApplianceSet(all...))
	return kwh
}

func (a App) renderDashboardTab(cw int) string {
	t := theme.Active
	week := a.sess.Ledger()
	m := week.Metrics()

	metrics := []components.Metric{
		{Label: "Weekly Total", Value: cli.FormatKWh(m.TotalKWh), Color: t.Energy,
			Note: fmt.Sprintf("%d/7 days saved", week.SavedDays())},
		{Label: "Daily Average", Value: cli.FormatKWh(m.AverageKWh), Color: t.Energy},
		{Label: "Weekly Cost", Value: cli.FormatCost(m.Cost), Color: t.Money,
			Note: fmt.Sprintf("at %s/kWh", cli.FormatCost(ledger.CostPerKWh))},
		{Label: "Carbon", Value: cli.FormatCarbon(m.CarbonKg), Color: t.Carbon},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Daily bar chart
	bars := make([]components.Bar, 0, ledger.DaysPerWeek)
	for _, slot := range week.Bars() {
		bars = append(bars, components.Bar{
			Label: slot.Day.Short(),
			Value: slot.KWh,
			Color: t.Days[slot.Day],
		})
	}

	shares := week.Shares()
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Daily Consumption (kWh)",
			components.BarChart(bars, components.CardInnerWidth(cw), 10), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Weekly Distribution", a.renderShares(shares, cw), cw))
		return b.String()
	}

	half := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Daily Consumption (kWh)",
			components.BarChart(bars, components.CardInnerWidth(half[0]), 12), half[0]),
		components.ContentCard("Weekly Distribution", a.renderShares(shares, half[1]), half[1]),
	}))
	return b.String()
}

func (a App) renderShares(shares []ledger.Share, outerWidth int) string {
	t := theme.Active
	if len(shares) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render("Save some days in the Calculator to see the distribution.")
	}

	inner := components.CardInnerWidth(outerWidth)
	const labelW = 9
	// label + spaces + "100.0%" + detail
	barW := max(inner-labelW-1-1-6-2-10, 8)

	lines := make([]string, 0, len(shares))
	for _, s := range shares {
		lines = append(lines, components.ShareBar(s.Day.String(), s.Percent, cli.FormatKWh(s.KWh), t.Days[s.Day], labelW, barW))
	}
	return strings.Join(lines, "\n")
}
