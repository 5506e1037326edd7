package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/theirongolddev/wattboard/internal/cli"
	"github.com/theirongolddev/wattboard/internal/energy"
	"github.com/theirongolddev/wattboard/internal/ledger"

	"github.com/spf13/cobra"
)

var (
	flagEstimateSize       int
	flagEstimateAppliances []string
	flagEstimateJSON       bool
)

func newEstimateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate one day's energy use",
		Example: `  wattboard estimate --size 2 --appliances ac,fridge
  wattboard estimate -s 3 -a tv -a washer --json`,
		RunE: runEstimate,
	}
	c.Flags().IntVarP(&flagEstimateSize, "size", "s", 0, "Dwelling size 1-4 BHK (default from config)")
	c.Flags().StringSliceVarP(&flagEstimateAppliances, "appliances", "a", nil, "Appliances in use (ac, fridge, washer, tv, microwave, dishwasher)")
	c.Flags().BoolVar(&flagEstimateJSON, "json", false, "Print JSON instead of a table")
	return c
}

func init() {
	rootCmd.AddCommand(newEstimateCmd())
}

type estimateOutput struct {
	Size       energy.DwellingSize `json:"size"`
	Appliances []energy.Appliance  `json:"appliances"`
	BaseKWh    float64             `json:"base_kwh"`
	KWh        float64             `json:"kwh"`
	Cost       float64             `json:"cost"`
	CarbonKg   float64             `json:"carbon_kg"`
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	size := flagEstimateSize
	if !cmd.Flags().Changed("size") {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		size = cfg.General.DefaultSize
	}

	ds, err := energy.ParseSize(size)
	if err != nil {
		return err
	}
	set, err := energy.ParseAppliances(flagEstimateAppliances)
	if err != nil {
		return err
	}
	kwh, err := energy.EstimateDailyEnergy(ds, set)
	if err != nil {
		return err
	}
	base, _ := energy.BaseLoad(ds)

	out := estimateOutput{
		Size:       ds,
		Appliances: set.List(),
		BaseKWh:    energy.Round2(base),
		KWh:        kwh,
		Cost:       energy.Round2(kwh * ledger.CostPerKWh),
		CarbonKg:   energy.Round2(kwh * ledger.EmissionFactor),
	}
	if out.Appliances == nil {
		out.Appliances = []energy.Appliance{}
	}

	w := cmd.OutOrStdout()
	if flagEstimateJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	rows := [][]string{{"Base load (lights + fans)", cli.FormatKWh(base)}}
	for _, info := range energy.Appliances() {
		if set.Has(info.Appliance) {
			rows = append(rows, []string{info.Label, cli.FormatKWh(info.KWhPerDay)})
		}
	}
	rows = append(rows, []string{"---"}, []string{"Estimated total", cli.FormatKWh(kwh)})

	fmt.Fprintln(w, cli.RenderTitle(fmt.Sprintf("Daily Estimate · %d BHK", ds)))
	fmt.Fprintln(w, cli.RenderTable(cli.Table{
		Headers: []string{"Source", "kWh/day"},
		Rows:    rows,
	}))
	fmt.Fprint(w, cli.RenderKeyValues([][2]string{
		{"Cost per day", cli.FormatCost(out.Cost)},
		{"CO₂ per day", cli.FormatCarbon(out.CarbonKg)},
	}))
	return nil
}
