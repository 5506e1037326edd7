// Package theme defines color themes for the wattboard dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color
	Surface      lipgloss.Color // card backgrounds
	SurfaceHover lipgloss.Color // active tab, selected row
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // focused card
	TextDim      lipgloss.Color
	TextMuted    lipgloss.Color
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	Good         lipgloss.Color // savings, low usage
	Warn         lipgloss.Color // high usage alerts
	Bad          lipgloss.Color // errors
	Energy       lipgloss.Color // kWh figures
	Money        lipgloss.Color // costs
	Carbon       lipgloss.Color // CO2 figures
	Days         [7]lipgloss.Color
}

// DayPalette colors each weekday in charts, Monday first.
var DayPalette = [7]lipgloss.Color{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FECA57", "#FF9FF3", "#54A0FF",
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	Good:         lipgloss.Color("#879A39"),
	Warn:         lipgloss.Color("#DA702C"),
	Bad:          lipgloss.Color("#D14D41"),
	Energy:       lipgloss.Color("#D0A215"),
	Money:        lipgloss.Color("#879A39"),
	Carbon:       lipgloss.Color("#8B7EC8"),
	Days:         DayPalette,
}

// Meadow is a light-on-green theme.
var Meadow = Theme{
	Name:         "meadow",
	Background:   lipgloss.Color("#0F1A14"),
	Surface:      lipgloss.Color("#16261D"),
	SurfaceHover: lipgloss.Color("#21382B"),
	Border:       lipgloss.Color("#2F4A3A"),
	BorderAccent: lipgloss.Color("#7BD389"),
	TextDim:      lipgloss.Color("#52705E"),
	TextMuted:    lipgloss.Color("#8FB39C"),
	TextPrimary:  lipgloss.Color("#EAF7EE"),
	Accent:       lipgloss.Color("#7BD389"),
	Good:         lipgloss.Color("#A7E8A0"),
	Warn:         lipgloss.Color("#F4B860"),
	Bad:          lipgloss.Color("#F27A7A"),
	Energy:       lipgloss.Color("#F7D774"),
	Money:        lipgloss.Color("#A7E8A0"),
	Carbon:       lipgloss.Color("#9FB7F0"),
	Days:         DayPalette,
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	Good:         lipgloss.Color("2"),
	Warn:         lipgloss.Color("3"),
	Bad:          lipgloss.Color("1"),
	Energy:       lipgloss.Color("11"),
	Money:        lipgloss.Color("10"),
	Carbon:       lipgloss.Color("13"),
	Days: [7]lipgloss.Color{
		"9", "14", "12", "10", "11", "13", "4",
	},
}

// All available themes.
var All = []Theme{FlexokiDark, Meadow, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Names lists theme names in display order.
func Names() []string {
	out := make([]string, len(All))
	for i, t := range All {
		out[i] = t.Name
	}
	return out
}
