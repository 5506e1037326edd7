package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/wattboard/internal/cli"
	"github.com/theirongolddev/wattboard/internal/publisher"

	"github.com/spf13/cobra"
)

var (
	flagPublishPlan  string
	flagPublishScope string
	flagPublishClear bool
)

func newPublishCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "publish",
		Short: "Publish a plan's weekly metrics to MQTT",
		Long: `Applies a week plan and publishes the resulting ledger and metrics as retained
MQTT messages under <topic_prefix>/<scope>/.`,
		RunE: runPublish,
	}
	c.Flags().StringVarP(&flagPublishPlan, "plan", "p", "", "Week plan YAML file")
	c.Flags().StringVar(&flagPublishScope, "scope", "week", "Topic scope under the prefix")
	c.Flags().BoolVar(&flagPublishClear, "clear", false, "Clear the retained state for scope instead of publishing")
	return c
}

func init() {
	rootCmd.AddCommand(newPublishCmd())
}

func runPublish(cmd *cobra.Command, _ []string) error {
	progressf("=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cfg.MQTT.Enabled {
		return errors.New("mqtt is not enabled in config")
	}

	pub, err := publisher.New(cfg)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()
	w := cmd.OutOrStdout()

	if flagPublishClear {
		if err := pub.Clear(flagPublishScope); err != nil {
			return err
		}
		fmt.Fprintf(w, "  Cleared %s\n", pub.Topic(flagPublishScope, "state"))
		return nil
	}

	sess, err := loadPlanSession(flagPublishPlan)
	if err != nil {
		return err
	}
	week := sess.Ledger()
	if err := pub.PublishWeek(flagPublishScope, week); err != nil {
		return err
	}

	m := week.Metrics()
	fmt.Fprintln(w, cli.Good(fmt.Sprintf("  Published %s (%s, %s) to %s",
		cli.FormatKWh(m.TotalKWh), cli.FormatCost(m.Cost), cli.FormatCarbon(m.CarbonKg),
		pub.Topic(flagPublishScope, "state"))))
	return nil
}
