package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/wattboard/internal/config"
	"github.com/theirongolddev/wattboard/internal/ledger"
	"github.com/theirongolddev/wattboard/internal/tui/components"
	"github.com/theirongolddev/wattboard/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// settingsField is one editable row of the settings form.
type settingsField struct {
	label       string
	placeholder string
	get         func(config.Config) string
	set         func(*config.Config, string) error
}

var settingsFields = []settingsField{
	{
		label:       "Theme",
		placeholder: strings.Join(theme.Names(), ", "),
		get:         func(c config.Config) string { return c.Appearance.Theme },
		set: func(c *config.Config, v string) error {
			for _, name := range theme.Names() {
				if name == v {
					c.Appearance.Theme = v
					return nil
				}
			}
			return fmt.Errorf("unknown theme %q", v)
		},
	},
	{
		label:       "Default Size",
		placeholder: "1-4 (BHK)",
		get:         func(c config.Config) string { return strconv.Itoa(c.General.DefaultSize) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.New("size must be a number")
			}
			c.General.DefaultSize = n
			return nil
		},
	},
	{
		label:       "Default Day",
		placeholder: "Monday",
		get:         func(c config.Config) string { return c.General.DefaultDay },
		set: func(c *config.Config, v string) error {
			d, err := ledger.ParseDay(v)
			if err != nil {
				return err
			}
			c.General.DefaultDay = d.String()
			return nil
		},
	},
	{
		label: "Name",
		get:   func(c config.Config) string { return c.Household.Name },
		set:   func(c *config.Config, v string) error { c.Household.Name = v; return nil },
	},
	{
		label:       "Age",
		placeholder: "1-120",
		get:         func(c config.Config) string { return strconv.Itoa(c.Household.Age) },
		set: func(c *config.Config, v string) error {
			if err := validateAge(v); err != nil {
				return err
			}
			c.Household.Age, _ = strconv.Atoi(v)
			return nil
		},
	},
	{
		label: "City",
		get:   func(c config.Config) string { return c.Household.City },
		set:   func(c *config.Config, v string) error { c.Household.City = v; return nil },
	},
	{
		label: "Area",
		get:   func(c config.Config) string { return c.Household.Area },
		set:   func(c *config.Config, v string) error { c.Household.Area = v; return nil },
	},
	{
		label:       "House Type",
		placeholder: config.HouseFlat + " or " + config.HouseIndependent,
		get:         func(c config.Config) string { return c.Household.HouseType },
		set: func(c *config.Config, v string) error {
			for _, ht := range []string{config.HouseFlat, config.HouseIndependent} {
				if strings.EqualFold(v, ht) {
					c.Household.HouseType = ht
					return nil
				}
			}
			return fmt.Errorf("house type must be %s or %s", config.HouseFlat, config.HouseIndependent)
		},
	},
	{
		label:       "MQTT Broker",
		placeholder: "localhost:1883 (empty disables publishing)",
		get:         func(c config.Config) string { return c.MQTT.Broker },
		set: func(c *config.Config, v string) error {
			c.MQTT.Broker = v
			c.MQTT.Enabled = v != ""
			return nil
		},
	},
	{
		label:       "MQTT Topic Prefix",
		placeholder: "wattboard",
		get:         func(c config.Config) string { return c.MQTT.TopicPrefix },
		set: func(c *config.Config, v string) error {
			if v == "" {
				return errors.New("topic prefix cannot be empty")
			}
			c.MQTT.TopicPrefix = v
			return nil
		},
	},
}

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 40
	return ti
}

func (a App) updateSettings(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.settings.cursor < len(settingsFields)-1 {
			a.settings.cursor++
		}
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "enter":
		return a.settingsStartEdit()
	}
	return a, nil
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	f := settingsFields[a.settings.cursor]
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()
	ti.Placeholder = f.placeholder
	ti.SetValue(f.get(a.cfg))
	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settings.saveErr = a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave validates the edited field, persists the config and applies
// what can change live. The household never touches the ledger.
func (a *App) settingsSave() error {
	cfg := a.cfg
	val := strings.TrimSpace(a.settings.input.Value())
	if err := settingsFields[a.settings.cursor].set(&cfg, val); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	theme.SetActive(cfg.Appearance.Theme)
	a.sess.SetHousehold(householdFromConfig(cfg.Household))
	return a.saveConfig(cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	innerW := components.CardInnerWidth(cw)

	var formBody strings.Builder
	for i, f := range settingsFields {
		value := f.get(a.cfg)
		if value == "" {
			value = "(not set)"
		}

		switch {
		case a.settings.editing && i == a.settings.cursor:
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
		case i == a.settings.cursor:
			row := markerStyle.Render("▸ ") +
				selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")) +
				selectedStyle.Render(value)
			formBody.WriteString(row)
			if pad := innerW - lipgloss.Width(row); pad > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceHover).Render(strings.Repeat(" ", pad)))
			}
		default:
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		formBody.WriteString("\n")
		formBody.WriteString(lipgloss.NewStyle().Foreground(t.Bad).Background(t.Surface).
			Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(lipgloss.NewStyle().Foreground(t.Good).Background(t.Surface).Render("Saved!"))
	}
	formBody.WriteString("\n")
	formBody.WriteString(dimStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var info strings.Builder
	info.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(config.ConfigPath()) + "\n")
	info.WriteString(labelStyle.Render("Session:      ") + valueStyle.Render(a.sess.ID) + "\n")
	info.WriteString(labelStyle.Render("Daemon addr:  ") + valueStyle.Render(a.cfg.Daemon.Addr) + "\n")
	mqtt := "disabled"
	if a.cfg.MQTT.Enabled {
		mqtt = a.cfg.MQTT.Broker + " → " + a.cfg.MQTT.TopicPrefix + "/…"
	}
	info.WriteString(labelStyle.Render("MQTT:         ") + valueStyle.Render(mqtt))

	return components.ContentCard("Settings", formBody.String(), cw) + "\n" +
		components.ContentCard("General", info.String(), cw)
}
