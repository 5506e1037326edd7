package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/wattboard/internal/cli"
	"github.com/theirongolddev/wattboard/internal/energy"
	"github.com/theirongolddev/wattboard/internal/tui/components"
	"github.com/theirongolddev/wattboard/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateCalculator(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "down", "j":
		a.day = a.day.Next()
		return a, nil
	case "up", "k":
		a.day = a.day.Prev()
		return a, nil
	case "+", "=":
		return a.changeSize(1)
	case "-", "_":
		return a.changeSize(-1)
	case "enter":
		kwh, err := a.sess.Commit(a.day)
		if err != nil {
			return a, a.setFlash(err.Error(), components.StatusError)
		}
		return a, a.setFlash(fmt.Sprintf("Saved %s for %s", cli.FormatKWh(kwh), a.day), components.StatusOK)
	}

	if app, ok := applianceForKey(key); ok {
		if _, err := a.sess.Toggle(a.day, app); err != nil {
			return a, a.setFlash(err.Error(), components.StatusError)
		}
	}
	return a, nil
}

// applianceForKey maps "1".."6" to the vocabulary in display order.
func applianceForKey(key string) (energy.Appliance, bool) {
	n, err := strconv.Atoi(key)
	list := energy.Appliances()
	if err != nil || n < 1 || n > len(list) {
		return "", false
	}
	return list[n-1].Appliance, true
}

func (a App) changeSize(delta int) (tea.Model, tea.Cmd) {
	next := a.sess.Size() + energy.DwellingSize(delta)
	if !next.Valid() {
		return a, nil
	}
	if err := a.sess.SetSize(next); err != nil {
		return a, a.setFlash(err.Error(), components.StatusError)
	}
	return a, nil
}

func (a App) renderCalculatorTab(cw int) string {
	t := theme.Active
	snap := a.sess.Snapshot()
	view := snap.Days[a.day]

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	primary := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	energyStyle := lipgloss.NewStyle().Foreground(t.Energy).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface)

	// Day list
	var days strings.Builder
	for i, d := range snap.Days {
		marker := space.Render("  ")
		name := muted.Render(fmt.Sprintf("%-10s", d.Day))
		if d.Day == a.day {
			marker = accent.Render("▸ ")
			name = accent.Render(fmt.Sprintf("%-10s", d.Day))
		}
		value := dim.Render("—")
		if d.Saved {
			value = lipgloss.NewStyle().Foreground(t.Days[i]).Background(t.Surface).Render(cli.FormatKWh(d.Committed))
		}
		days.WriteString(marker + name + space.Render(" ") + value)
		if i < len(snap.Days)-1 {
			days.WriteString("\n")
		}
	}

	// Appliance toggles
	drafted := energy.NewApplianceSet(view.Draft...)
	var apps strings.Builder
	for i, info := range energy.Appliances() {
		box := dim.Render("[ ]")
		label := muted.Render(fmt.Sprintf("%-16s", info.Label))
		if drafted.Has(info.Appliance) {
			box = accent.Render("[x]")
			label = primary.Render(fmt.Sprintf("%-16s", info.Label))
		}
		fmt.Fprintf(&apps, "%s%s%s%s%s",
			dim.Render(strconv.Itoa(i+1)+" "),
			box,
			space.Render(" "),
			label,
			dim.Render(fmt.Sprintf("%4.1f kWh", info.KWhPerDay)))
		if i < len(energy.Appliances())-1 {
			apps.WriteString("\n")
		}
	}

	// Estimate
	base, _ := energy.BaseLoad(snap.Size)
	sizeDots := strings.Repeat("●", int(snap.Size)) + strings.Repeat("○", int(energy.MaxSize-snap.Size))
	var est strings.Builder
	est.WriteString(muted.Render("Dwelling  ") + accent.Render(sizeDots) + primary.Render(fmt.Sprintf(" %d BHK", snap.Size)))
	est.WriteString("\n")
	est.WriteString(muted.Render("Base load ") + primary.Render(cli.FormatKWh(base)))
	est.WriteString("\n")
	est.WriteString(muted.Render("Appliances") + primary.Render(" "+cli.FormatKWh(energy.Round2(view.DraftKWh-base))))
	est.WriteString("\n\n")
	est.WriteString(muted.Render("Estimated ") + energyStyle.Render(cli.FormatKWh(view.DraftKWh)))
	est.WriteString("\n")
	saved := dim.Render("not saved")
	if view.Saved {
		saved = primary.Render(cli.FormatKWh(view.Committed))
	}
	est.WriteString(muted.Render("Saved     ") + saved)

	dayTitle := fmt.Sprintf("Appliances · %s", a.day)

	if a.isCompactLayout() {
		return strings.Join([]string{
			components.FocusedCard(dayTitle, apps.String(), cw),
			components.CardRow([]string{
				components.ContentCard("Week", days.String(), cw/2),
				components.ContentCard("Estimate", est.String(), cw-cw/2),
			}),
		}, "\n")
	}

	widths := components.LayoutRow(cw, 3)
	return components.CardRow([]string{
		components.ContentCard("Week", days.String(), widths[0]),
		components.FocusedCard(dayTitle, apps.String(), widths[1]),
		components.ContentCard("Estimate", est.String(), widths[2]),
	})
}
