package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/wattboard/internal/config"
	"github.com/theirongolddev/wattboard/internal/energy"
	"github.com/theirongolddev/wattboard/internal/ledger"
	"github.com/theirongolddev/wattboard/internal/plan"
)

// useConfig points the commands at a temp config file holding cfg.
func useConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.SaveTo(path, cfg); err != nil {
		t.Fatal(err)
	}
	prevConfig, prevQuiet := flagConfig, flagQuiet
	flagConfig, flagQuiet = path, true
	t.Cleanup(func() { flagConfig, flagQuiet = prevConfig, prevQuiet })
}

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SilenceUsage, c.SilenceErrors = true, true
	c.SetOut(&out)
	c.SetErr(io.Discard)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func writePlan(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "week.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEstimateJSON(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.General.DefaultSize = 3
	useConfig(t, cfg)

	tests := []struct {
		name    string
		args    []string
		size    energy.DwellingSize
		baseKWh float64
		kwh     float64
		cost    float64
		carbon  float64
	}{
		{"size from config", []string{"-a", "ac"}, 3, 4.8, 7.8, 62.4, 6.4},
		{"explicit size", []string{"--size", "1"}, 1, 2.4, 2.4, 19.2, 1.97},
		{"two appliances", []string{"-s", "2", "-a", "ac,fridge"}, 2, 3.6, 10.6, 84.8, 8.69},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, newEstimateCmd(), append(tt.args, "--json")...)
			if err != nil {
				t.Fatalf("estimate: %v", err)
			}
			if strings.Contains(out, "000000") {
				t.Errorf("unrounded float in output: %s", out)
			}
			var got estimateOutput
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("decode %q: %v", out, err)
			}
			if got.Size != tt.size || got.BaseKWh != tt.baseKWh || got.KWh != tt.kwh {
				t.Errorf("got %+v, want size %d base %v kwh %v", got, tt.size, tt.baseKWh, tt.kwh)
			}
			if got.Cost != tt.cost || got.CarbonKg != tt.carbon {
				t.Errorf("cost/carbon = %v/%v, want %v/%v", got.Cost, got.CarbonKg, tt.cost, tt.carbon)
			}
			if got.Appliances == nil {
				t.Error("appliances should encode as a list")
			}
		})
	}
}

func TestEstimateRejectsInvalidInput(t *testing.T) {
	useConfig(t, config.DefaultConfig())

	for _, args := range [][]string{
		{"--size", "0"},
		{"--size", "5"},
		{"-s", "-1"},
		{"-s", "2", "-a", "heater"},
	} {
		out, err := execute(t, newEstimateCmd(), args...)
		if !errors.Is(err, energy.ErrInvalidInput) {
			t.Errorf("estimate %v: err = %v, want ErrInvalidInput", args, err)
		}
		if out != "" {
			t.Errorf("estimate %v printed %q on error", args, out)
		}
	}
}

func TestEstimateTable(t *testing.T) {
	useConfig(t, config.DefaultConfig())

	out, err := execute(t, newEstimateCmd(), "-a", "tv")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Daily Estimate · 2 BHK", "Television", "Estimated total", "5.10 kWh"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

const reportPlan = `size: 2
household:
  name: Asha
days:
  Monday: [ac, fridge]
values:
  Sunday: 0
`

func TestReportJSON(t *testing.T) {
	useConfig(t, config.DefaultConfig())
	path := writePlan(t, reportPlan)

	out, err := execute(t, newReportCmd(), "--plan", path, "--json")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	var got reportOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}

	if got.Household.Name != "Asha" || got.Size != 2 {
		t.Errorf("household/size = %+v / %d", got.Household, got.Size)
	}
	if got.Metrics.TotalKWh != 10.6 || len(got.Days) != ledger.DaysPerWeek || len(got.Bars) != ledger.DaysPerWeek {
		t.Fatalf("report = %+v", got)
	}
	if !got.Days[ledger.Sunday].Saved || got.Days[ledger.Sunday].Committed != 0 {
		t.Errorf("Sunday = %+v, want saved at 0 kWh", got.Days[ledger.Sunday])
	}
	if got.Days[ledger.Tuesday].Saved {
		t.Error("Tuesday was never saved")
	}
	if len(got.Shares) != ledger.DaysPerWeek || got.Shares[ledger.Monday].Percent != 100 {
		t.Errorf("shares = %+v", got.Shares)
	}
	if math.Abs(got.Impact.WeeklyCarbonKg-10.6*ledger.EmissionFactor) > 1e-9 {
		t.Errorf("impact = %+v", got.Impact)
	}
}

func TestReportEmptyWeekJSON(t *testing.T) {
	useConfig(t, config.DefaultConfig())
	path := writePlan(t, "size: 1\n")

	out, err := execute(t, newReportCmd(), "-p", path, "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"shares": []`) {
		t.Errorf("empty week should encode shares as []:\n%s", out)
	}
}

func TestReportTable(t *testing.T) {
	useConfig(t, config.DefaultConfig())
	path := writePlan(t, reportPlan)

	out, err := execute(t, newReportCmd(), "--plan", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Weekly Energy Report · Asha", "10.60 kWh", "0.00 kWh", "Plant"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReportErrors(t *testing.T) {
	useConfig(t, config.DefaultConfig())

	if _, err := execute(t, newReportCmd()); err == nil {
		t.Error("report without --plan should fail")
	}
	if _, err := execute(t, newReportCmd(), "--plan", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("report with a missing plan should fail")
	}
	bad := writePlan(t, "size: 0\n")
	if _, err := execute(t, newReportCmd(), "--plan", bad); !errors.Is(err, energy.ErrInvalidInput) {
		t.Errorf("report size 0: err = %v, want ErrInvalidInput", err)
	}
}

func TestPlanInit(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.General.DefaultSize = 3
	cfg.Household.Name = "Ravi"
	useConfig(t, cfg)
	path := filepath.Join(t.TempDir(), "week.yaml")

	out, err := execute(t, newPlanCmd(), "init", path)
	if err != nil {
		t.Fatalf("plan init: %v", err)
	}
	if !strings.Contains(out, "Wrote "+path) {
		t.Errorf("output = %q", out)
	}
	p, err := plan.Load(path)
	if err != nil {
		t.Fatalf("plan.Load: %v", err)
	}
	if p.Size != 3 || p.Household.Name != "Ravi" {
		t.Errorf("plan = %+v", p)
	}

	if _, err := execute(t, newPlanCmd(), "init", path); err == nil {
		t.Error("plan init over an existing file should fail without --force")
	}
	if _, err := execute(t, newPlanCmd(), "init", path, "--force"); err != nil {
		t.Errorf("plan init --force: %v", err)
	}
}

func TestPublishRequiresMQTT(t *testing.T) {
	useConfig(t, config.DefaultConfig())

	_, err := execute(t, newPublishCmd(), "--plan", writePlan(t, reportPlan))
	if err == nil || !strings.Contains(err.Error(), "not enabled") {
		t.Errorf("err = %v, want mqtt not enabled", err)
	}
}
