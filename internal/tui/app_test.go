package tui

import (
	"strings"
	"testing"

	"github.com/theirongolddev/wattboard/internal/config"
	"github.com/theirongolddev/wattboard/internal/ledger"
	"github.com/theirongolddev/wattboard/internal/tui/components"
	"github.com/theirongolddev/wattboard/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp(t *testing.T) (App, *[]config.Config) {
	t.Helper()
	a, err := NewApp(config.DefaultConfig(), false)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	saved := &[]config.Config{}
	a = a.WithConfigSaver(func(c config.Config) error {
		*saved = append(*saved, c)
		return nil
	})
	return a, saved
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func TestCalculatorCommitsDraft(t *testing.T) {
	a, _ := newTestApp(t)

	// 1 = air conditioner, 2 = refrigerator
	a = press(t, a, "1", "2", "enter")
	if got := a.sess.Ledger().Value(ledger.Monday); got != 10.6 {
		t.Fatalf("Monday = %v, want 10.6", got)
	}
	if !strings.Contains(a.flash, "10.60 kWh") {
		t.Errorf("flash = %q, want the saved value", a.flash)
	}

	a = press(t, a, "j", "enter")
	if a.day != ledger.Tuesday {
		t.Fatalf("day = %v, want Tuesday", a.day)
	}
	if got := a.sess.Ledger().Value(ledger.Tuesday); got != 3.6 {
		t.Errorf("Tuesday = %v, want 3.6 (base load only)", got)
	}

	a = press(t, a, "k", "k")
	if a.day != ledger.Sunday {
		t.Errorf("day = %v, want Sunday after wrapping", a.day)
	}
}

func TestCalculatorSizeClamps(t *testing.T) {
	a, _ := newTestApp(t)
	a = press(t, a, "+", "+", "+", "+")
	if a.sess.Size() != 4 {
		t.Errorf("size = %d, want 4", a.sess.Size())
	}
	a = press(t, a, "-", "-", "-", "-", "-")
	if a.sess.Size() != 1 {
		t.Errorf("size = %d, want 1", a.sess.Size())
	}
}

func TestResetKeepsDrafts(t *testing.T) {
	a, _ := newTestApp(t)
	a = press(t, a, "2", "enter", "X")

	if got := a.sess.Ledger().Total(); got != 0 {
		t.Errorf("total after reset = %v, want 0", got)
	}
	draft, err := a.sess.Draft(ledger.Monday)
	if err != nil {
		t.Fatal(err)
	}
	if len(draft.List()) != 1 {
		t.Errorf("draft after reset = %v, want refrigerator kept", draft.List())
	}
}

func TestTabNavigation(t *testing.T) {
	a, _ := newTestApp(t)
	a = press(t, a, "d")
	if a.activeTab != tabDashboard {
		t.Fatalf("activeTab = %d, want dashboard", a.activeTab)
	}
	a = press(t, a, "right", "right")
	if a.activeTab != tabSettings {
		t.Errorf("activeTab = %d, want settings", a.activeTab)
	}
	a = press(t, a, "right")
	if a.activeTab != tabCalculator {
		t.Errorf("activeTab = %d, want wrap to calculator", a.activeTab)
	}
	a = press(t, a, "left")
	if a.activeTab != tabSettings {
		t.Errorf("activeTab = %d, want wrap to settings", a.activeTab)
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 1
		for i, tab := range components.Tabs {
			w := len(tab.Name) + 2
			if i != active {
				w += 2
			}
			if got := a.tabAtX(pos + w/2); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
		if got := a.tabAtX(0); got != -1 {
			t.Errorf("x=0 -> tab=%d, want -1", got)
		}
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a, _ := newTestApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	a = m.(App)
	a = press(t, a, "1", "enter")

	want := map[int]string{
		tabCalculator: "Estimate",
		tabDashboard:  "Weekly Total",
		tabInsights:   "High Consumption Alert",
		tabSettings:   "MQTT Broker",
	}
	for tab, text := range want {
		a.activeTab = tab
		out := a.View()
		if !strings.Contains(out, text) {
			t.Errorf("tab %d view missing %q", tab, text)
		}
		if lines := strings.Count(out, "\n") + 1; lines != 40 {
			t.Errorf("tab %d view has %d lines, want 40", tab, lines)
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a, _ := newTestApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if out := m.(App).View(); !strings.Contains(out, "too narrow") {
		t.Errorf("narrow view = %q", out)
	}
}

func TestFlashExpiresByID(t *testing.T) {
	a, _ := newTestApp(t)
	a = press(t, a, "enter")
	first := a.flashID
	a = press(t, a, "enter")

	m, _ := a.Update(flashClearMsg{id: first})
	a = m.(App)
	if a.flash == "" {
		t.Fatal("stale clear message removed the newer flash")
	}
	m, _ = a.Update(flashClearMsg{id: a.flashID})
	if m.(App).flash != "" {
		t.Error("current clear message did not remove the flash")
	}
}

func TestSettingsEditTheme(t *testing.T) {
	defer theme.SetActive("flexoki-dark")

	a, saved := newTestApp(t)
	a = press(t, a, "s", "enter")
	if !a.settings.editing {
		t.Fatal("enter should start editing")
	}
	a.settings.input.SetValue("meadow")
	a = press(t, a, "enter")

	if a.settings.saveErr != nil {
		t.Fatalf("saveErr = %v", a.settings.saveErr)
	}
	if len(*saved) != 1 || (*saved)[0].Appearance.Theme != "meadow" {
		t.Fatalf("saved = %+v, want one config with theme meadow", *saved)
	}
	if theme.Active.Name != "meadow" {
		t.Errorf("active theme = %s, want meadow", theme.Active.Name)
	}
}

func TestSettingsRejectsInvalidValue(t *testing.T) {
	a, saved := newTestApp(t)
	a.activeTab = tabSettings

	// Age row
	for i, f := range settingsFields {
		if f.label == "Age" {
			a.settings.cursor = i
		}
	}
	a = press(t, a, "enter")
	a.settings.input.SetValue("500")
	a = press(t, a, "enter")

	if a.settings.saveErr == nil {
		t.Fatal("age 500 should be rejected")
	}
	if len(*saved) != 0 {
		t.Errorf("invalid value was saved: %+v", *saved)
	}
	if a.cfg.Household.Age != 25 {
		t.Errorf("age = %d, want unchanged 25", a.cfg.Household.Age)
	}
}

func TestSettingsHouseholdReachesSession(t *testing.T) {
	a, _ := newTestApp(t)
	a.activeTab = tabSettings
	for i, f := range settingsFields {
		if f.label == "City" {
			a.settings.cursor = i
		}
	}
	a = press(t, a, "enter")
	a.settings.input.SetValue("Pune")
	a = press(t, a, "enter")

	if got := a.sess.Household().City; got != "Pune" {
		t.Errorf("session city = %q, want Pune", got)
	}
	if a.sess.Ledger().Total() != 0 {
		t.Error("household change touched the ledger")
	}
}

func TestApplySetup(t *testing.T) {
	v := newSetupValues(config.DefaultConfig())
	v.name = "  Asha "
	v.age = "41"
	v.houseType = config.HouseIndependent
	v.size = 3
	v.theme = "terminal"

	cfg := applySetup(config.DefaultConfig(), v)
	if cfg.Household.Name != "Asha" || cfg.Household.Age != 41 {
		t.Errorf("household = %+v", cfg.Household)
	}
	if cfg.Household.HouseType != config.HouseIndependent {
		t.Errorf("house type = %s", cfg.Household.HouseType)
	}
	if cfg.General.DefaultSize != 3 || cfg.Appearance.Theme != "terminal" {
		t.Errorf("general/appearance = %+v / %+v", cfg.General, cfg.Appearance)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateAge(t *testing.T) {
	for _, ok := range []string{"1", "25", " 120 "} {
		if err := validateAge(ok); err != nil {
			t.Errorf("validateAge(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "0", "121", "abc"} {
		if validateAge(bad) == nil {
			t.Errorf("validateAge(%q) should fail", bad)
		}
	}
}

func TestCalculatorShowsZeroSaveAsSaved(t *testing.T) {
	a, _ := newTestApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	a = m.(App)

	if out := a.View(); !strings.Contains(out, "not saved") {
		t.Fatalf("fresh Monday should read not saved")
	}
	if err := a.sess.SaveValue(ledger.Monday, 0); err != nil {
		t.Fatal(err)
	}
	out := a.View()
	if strings.Contains(out, "not saved") {
		t.Error("a 0 kWh save still reads not saved")
	}
	if !strings.Contains(out, "0.00 kWh") {
		t.Error("saved 0 kWh value not shown")
	}

	a.activeTab = tabDashboard
	if out := a.View(); !strings.Contains(out, "1/7 days saved") {
		t.Error("dashboard does not count the 0 kWh day")
	}
}
