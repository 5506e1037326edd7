package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestFormatters(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"kwh", FormatKWh(10.6), "10.60 kWh"},
		{"kwh thousands", FormatKWh(1234.5), "1,234.50 kWh"},
		{"kwh zero", FormatKWh(0), "0.00 kWh"},
		{"cost", FormatCost(280), "₹280.00"},
		{"cost negative", FormatCost(-8), "-₹8.00"},
		{"carbon", FormatCarbon(28.7), "28.70 kg CO₂"},
		{"number", FormatNumber(1234567), "1,234,567"},
		{"one tree", FormatTrees(1), "1 tree"},
		{"trees", FormatTrees(3), "3 trees"},
		{"percent", FormatPercent(12.345), "12.3%"},
		{"no appliances", FormatAppliances(nil), "none"},
		{"appliances", FormatAppliances([]string{"TV", "AC"}), "TV, AC"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestRenderTableAlignsWideSymbols(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	out := RenderTable(Table{
		Headers: []string{"Day", "Cost"},
		Rows: [][]string{
			{"Monday", "₹84.80"},
			{"---"},
			{"Total", "₹1,084.80"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	w := lipgloss.Width(lines[0])
	for i, line := range lines {
		if lipgloss.Width(line) != w {
			t.Errorf("line %d width = %d, want %d: %q", i, lipgloss.Width(line), w, line)
		}
	}
}

func TestRenderShareBarClamps(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	full := RenderShareBar("Mon", 150, DayColor(0), 10)
	if strings.Count(full, "█") != 10 {
		t.Errorf("bar over 100%% should clamp to width: %q", full)
	}
	empty := RenderShareBar("Tue", 0, DayColor(1), 10)
	if strings.Count(empty, "░") != 10 {
		t.Errorf("empty bar should be all track: %q", empty)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 7}); got != "▁█" {
		t.Errorf("RenderSparkline() = %q, want ▁█", got)
	}
	if got := RenderSparkline(nil); got != "" {
		t.Errorf("RenderSparkline(nil) = %q", got)
	}
}
