package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/wattboard/internal/energy"
	"github.com/theirongolddev/wattboard/internal/plan"
	"github.com/theirongolddev/wattboard/internal/session"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var flagPlanForce bool

func newPlanCmd() *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Work with week plan files",
	}
	initCmd := &cobra.Command{
		Use:   "init PATH",
		Short: "Write an empty week plan for the configured household",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlanInit,
	}
	initCmd.Flags().BoolVarP(&flagPlanForce, "force", "f", false, "Overwrite an existing file")
	planCmd.AddCommand(initCmd)
	return planCmd
}

func init() {
	rootCmd.AddCommand(newPlanCmd())
}

func runPlanInit(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil && !flagPlanForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	size, err := energy.ParseSize(cfg.General.DefaultSize)
	if err != nil {
		return err
	}
	sess, err := session.New(uuid.NewString(), size)
	if err != nil {
		return err
	}
	sess.SetHousehold(session.Household{
		Name:      cfg.Household.Name,
		Age:       cfg.Household.Age,
		City:      cfg.Household.City,
		Area:      cfg.Household.Area,
		HouseType: cfg.Household.HouseType,
	})

	if err := plan.Save(path, sess.Snapshot()); err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "  Wrote %s\n", path)
	fmt.Fprintln(w, "  Every listed day is saved; an empty list counts as base load only.")
	fmt.Fprintln(w, "  Add appliances per day, then run `wattboard report --plan "+path+"`.")
	return nil
}
