// Package tui provides the interactive Bubble Tea dashboard for wattboard.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/wattboard/internal/config"
	"github.com/theirongolddev/wattboard/internal/energy"
	"github.com/theirongolddev/wattboard/internal/ledger"
	"github.com/theirongolddev/wattboard/internal/session"
	"github.com/theirongolddev/wattboard/internal/tui/components"
	"github.com/theirongolddev/wattboard/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// App is the root Bubble Tea model.
type App struct {
	sess *session.Session
	cfg  config.Config

	// saveConfig persists settings; tests swap it out.
	saveConfig func(config.Config) error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Calculator cursor
	day ledger.Day

	// Status bar flash
	flash     string
	flashKind components.StatusKind
	flashID   int

	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160
	minContentHeight = 5

	flashDuration = 3 * time.Second
)

const (
	tabCalculator = iota
	tabDashboard
	tabInsights
	tabSettings
)

// flashClearMsg expires the flash with the same id.
type flashClearMsg struct{ id int }

// NewApp creates the dashboard around a fresh session. When needSetup is
// true the household form is shown before anything else.
func NewApp(cfg config.Config, needSetup bool) (App, error) {
	size, err := energy.ParseSize(cfg.General.DefaultSize)
	if err != nil {
		return App{}, err
	}
	sess, err := session.New(uuid.NewString(), size)
	if err != nil {
		return App{}, err
	}
	sess.SetHousehold(householdFromConfig(cfg.Household))

	day, err := ledger.ParseDay(cfg.General.DefaultDay)
	if err != nil {
		day = ledger.Monday
	}

	a := App{
		sess:       sess,
		cfg:        cfg,
		saveConfig: config.Save,
		day:        day,
		needSetup:  needSetup,
		settings:   settingsState{input: newSettingsInput()},
	}
	if needSetup {
		a.setupVals = newSetupValues(cfg)
		a.setupForm = newSetupForm(a.setupVals)
	}
	return a, nil
}

func householdFromConfig(h config.HouseholdConfig) session.Household {
	return session.Household{
		Name:      h.Name,
		Age:       h.Age,
		City:      h.City,
		Area:      h.Area,
		HouseType: h.HouseType,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.Init()
	}
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case flashClearMsg:
		if msg.id == a.flashID {
			a.flash = ""
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.setupForm != nil {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Settings tab has its own keybindings while a field is being edited
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "X":
			a.sess.Reset()
			return a, a.setFlash("All data has been reset", components.StatusOK)
		}

		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}

		switch a.activeTab {
		case tabCalculator:
			return a.updateCalculator(key)
		case tabSettings:
			return a.updateSettings(key)
		}
		return a, nil
	}

	// huh needs its internal messages (cursor blink, focus) forwarded
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

// setFlash shows msg in the status bar and schedules its removal.
func (a *App) setFlash(msg string, kind components.StatusKind) tea.Cmd {
	a.flashID++
	a.flash = msg
	a.flashKind = kind
	id := a.flashID
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashClearMsg{id: id}
	})
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		err := a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		if err != nil {
			return a, a.setFlash("Could not save config: "+err.Error(), components.StatusError)
		}
		return a, a.setFlash("Household saved", components.StatusOK)
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// tabAtX maps a click on the tab bar to a tab index, or -1.
func (a App) tabAtX(x int) int {
	pos := 1
	for i, tab := range components.Tabs {
		w := len(tab.Name) + 2
		if i != a.activeTab && (tab.KeyPos < 0 || tab.KeyPos >= len(tab.Name)) {
			w += 3
		}
		if i != a.activeTab && tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			w += 2 // brackets around the shortcut letter
		}
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1
	}
	return -1
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  wattboard needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Energy).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"c d i s", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Next / Previous day"},
		}},
		{"Calculator", []struct{ key, desc string }{
			{"1-6", "Toggle appliance"},
			{"+ -", "Change dwelling size"},
			{"Enter", "Save day"},
			{"X", "Reset all data"},
		}},
		{"General", []struct{ key, desc string }{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + household line
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	snap := a.sess.Snapshot()
	pill := pillStyle.Render(" ") + pillAccent.Render(fmt.Sprintf("%d BHK", snap.Size))
	if hh := snap.Household; hh.Name != "" {
		pill += pillStyle.Render(" │ ") + pillAccent.Render(hh.Name)
	}
	if hh := snap.Household; hh.City != "" {
		pill += pillStyle.Render(" │ ") + pillAccent.Render(hh.City)
	}
	pill += pillStyle.Render(" │ ") + pillAccent.Render(a.day.String()) + pillStyle.Render(" ")
	header := components.RenderTabBar(a.activeTab, w) +
		"\n" + lipgloss.NewStyle().Background(t.Surface).Width(w).Render(pill)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.hints(), a.flash, a.flashKind)

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabCalculator:
		content = a.renderCalculatorTab(cw)
	case tabDashboard:
		content = a.renderDashboardTab(cw)
	case tabInsights:
		content = a.renderInsightsTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when the terminal is wider than the content
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) hints() string {
	switch {
	case a.activeTab == tabCalculator:
		return "[1-6] toggle  [+/-] size  [j/k] day  [enter] save  [X] reset  [?] help"
	case a.activeTab == tabSettings && a.settings.editing:
		return "[enter] save  [esc] cancel"
	case a.activeTab == tabSettings:
		return "[j/k] select  [enter] edit  [?] help  [q] quit"
	default:
		return "[←/→] tabs  [X] reset  [?] help  [q] quit"
	}
}

// ─── Helpers ────────────────────────────────────────────────────

// padHeight appends empty lines until s has exactly h lines.
func padHeight(s string, h int) string {
	lines := strings.Count(s, "\n") + 1
	if lines >= h {
		return s
	}
	return s + strings.Repeat("\n", h-lines)
}

// truncateHeight keeps the first h lines of s.
func truncateHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= h {
		return s
	}
	return strings.Join(lines[:h], "\n")
}

// fillLinesWithBackground pads every line to width with a background-styled
// fill so no terminal default color shows through.
func fillLinesWithBackground(s string, width int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(width, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// WithConfigSaver replaces how settings are persisted.
func (a App) WithConfigSaver(save func(config.Config) error) App {
	a.saveConfig = save
	return a
}
