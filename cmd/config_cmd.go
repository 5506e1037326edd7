// Package cmd implements the wattboard CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/wattboard/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", configPath())
	if configExists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default size: %d BHK\n", cfg.General.DefaultSize)
	fmt.Printf("    Default day:  %s\n", cfg.General.DefaultDay)
	fmt.Println()

	fmt.Println("  [Household]")
	fmt.Printf("    Name:       %s\n", orNotSet(cfg.Household.Name))
	fmt.Printf("    Age:        %d\n", cfg.Household.Age)
	fmt.Printf("    City:       %s\n", orNotSet(cfg.Household.City))
	fmt.Printf("    Area:       %s\n", orNotSet(cfg.Household.Area))
	fmt.Printf("    House type: %s\n", cfg.Household.HouseType)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:       %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Events buffer: %d\n", cfg.Daemon.EventsBuffer)
	fmt.Println()

	fmt.Println("  [MQTT]")
	if !cfg.MQTT.Enabled {
		fmt.Println("    Publishing: disabled")
	} else {
		fmt.Printf("    Broker:       %s\n", cfg.MQTT.Broker)
		fmt.Printf("    Topic prefix: %s\n", cfg.MQTT.TopicPrefix)
		fmt.Printf("    Client ID:    %s\n", cfg.MQTT.ClientID)
		if cfg.MQTT.Username != "" {
			fmt.Printf("    Username:     %s\n", cfg.MQTT.Username)
		}
		if pw := config.GetMQTTPassword(cfg); pw != "" {
			fmt.Printf("    Password:     %s\n", maskSecret(pw))
		}
	}
	fmt.Println()

	fmt.Println("  Run `wattboard setup` to reconfigure.")
	return nil
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
