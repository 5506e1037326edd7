package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/theirongolddev/wattboard/internal/cli"
	"github.com/theirongolddev/wattboard/internal/energy"
	"github.com/theirongolddev/wattboard/internal/insights"
	"github.com/theirongolddev/wattboard/internal/ledger"
	"github.com/theirongolddev/wattboard/internal/plan"
	"github.com/theirongolddev/wattboard/internal/session"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	flagReportPlan string
	flagReportJSON bool
)

func newReportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "report",
		Short: "Weekly ledger, metrics and distribution from a plan file",
		RunE:  runReport,
	}
	c.Flags().StringVarP(&flagReportPlan, "plan", "p", "", "Week plan YAML file")
	c.Flags().BoolVar(&flagReportJSON, "json", false, "Print JSON instead of tables")
	_ = c.MarkFlagRequired("plan")
	return c
}

func init() {
	rootCmd.AddCommand(newReportCmd())
}

// loadPlanSession builds a session from a plan file.
func loadPlanSession(path string) (*session.Session, error) {
	if path == "" {
		return nil, errors.New("--plan is required")
	}
	p, err := plan.Load(path)
	if err != nil {
		return nil, err
	}
	progressf("  Loaded plan %s (%d days, %d BHK)\n", path, len(p.Entries)+len(p.Values), p.Size)

	sess, err := session.New(uuid.NewString(), p.Size)
	if err != nil {
		return nil, err
	}
	if err := plan.Apply(p, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

type reportOutput struct {
	Household session.Household   `json:"household"`
	Size      energy.DwellingSize `json:"size"`
	Days      []session.DayView   `json:"days"`
	Metrics   ledger.Metrics      `json:"metrics"`
	Bars      []ledger.DaySlot    `json:"bars"`
	Shares    []ledger.Share      `json:"shares"`
	Impact    insights.Impact     `json:"impact"`
}

func runReport(cmd *cobra.Command, _ []string) error {
	sess, err := loadPlanSession(flagReportPlan)
	if err != nil {
		return err
	}
	snap := sess.Snapshot()
	week := sess.Ledger()
	w := cmd.OutOrStdout()

	if flagReportJSON {
		shares := week.Shares()
		if shares == nil {
			shares = []ledger.Share{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reportOutput{
			Household: snap.Household,
			Size:      snap.Size,
			Days:      snap.Days,
			Metrics:   snap.Metrics,
			Bars:      week.Bars(),
			Shares:    shares,
			Impact:    insights.EnvironmentalImpact(snap.Metrics),
		})
	}

	title := "Weekly Energy Report"
	if snap.Household.Name != "" {
		title += " · " + snap.Household.Name
	}
	fmt.Fprintln(w, cli.RenderTitle(title))
	fmt.Fprintln(w)

	renderWeekTable(w, snap, week)
	renderMetrics(w, snap.Metrics)
	renderDistribution(w, week)
	renderInsights(w, week)
	return nil
}

func renderWeekTable(w io.Writer, snap session.Snapshot, week *ledger.Ledger) {
	rows := make([][]string, 0, ledger.DaysPerWeek+2)
	for _, d := range snap.Days {
		labels := make([]string, 0, len(d.Draft))
		for _, a := range d.Draft {
			if info, ok := energy.Lookup(a); ok {
				labels = append(labels, info.Short)
			}
		}
		value := "—"
		if d.Saved {
			value = cli.FormatKWh(d.Committed)
		}
		rows = append(rows, []string{d.Day.String(), cli.FormatAppliances(labels), value})
	}
	rows = append(rows, []string{"---"}, []string{"Total", "", cli.FormatKWh(week.Total())})

	fmt.Fprintln(w, cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("%d BHK · trend %s", snap.Size, cli.RenderSparkline(snap.Values[:])),
		Headers: []string{"Day", "Appliances", "Energy"},
		Rows:    rows,
	}))
}

func renderMetrics(w io.Writer, m ledger.Metrics) {
	fmt.Fprint(w, cli.RenderKeyValues([][2]string{
		{"Weekly total", cli.FormatKWh(m.TotalKWh)},
		{"Daily average", cli.FormatKWh(m.AverageKWh)},
		{"Weekly cost", cli.FormatCost(m.Cost)},
		{"Carbon footprint", cli.FormatCarbon(m.CarbonKg)},
	}))
	fmt.Fprintln(w)
}

func renderDistribution(w io.Writer, week *ledger.Ledger) {
	shares := week.Shares()
	if len(shares) == 0 {
		fmt.Fprintln(w, cli.Warn("  No days saved yet; distribution unavailable."))
		fmt.Fprintln(w)
		return
	}
	for _, s := range shares {
		label := fmt.Sprintf("%-9s", s.Day)
		fmt.Fprintln(w, cli.RenderShareBar(label, s.Percent, cli.DayColor(int(s.Day)), 30))
	}
	fmt.Fprintln(w)
}

func renderInsights(w io.Writer, week *ledger.Ledger) {
	imp := insights.EnvironmentalImpact(week.Metrics())
	alert := insights.HighConsumption(2)

	heavy := make([]string, 0, len(alert.Heaviest))
	for _, info := range alert.Heaviest {
		heavy = append(heavy, fmt.Sprintf("%s (%.1f kWh/day)", info.Label, info.KWhPerDay))
	}

	fmt.Fprintln(w, "  Tips: "+strings.Join(insights.Tips, " · "))
	fmt.Fprintln(w, cli.Warn("  Heaviest appliances: "+strings.Join(heavy, ", ")+". "+alert.Advice+"."))
	fmt.Fprintln(w, cli.Good(fmt.Sprintf("  Monthly CO₂ %s. Plant %s to offset!",
		cli.FormatCarbon(imp.MonthlyCarbonKg), cli.FormatTrees(imp.TreesToOffset))))
}
