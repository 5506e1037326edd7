package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/wattboard/internal/config"

	_ "github.com/joho/godotenv/autoload" // WATTBOARD_* overrides from a local .env
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagQuiet  bool
)

var rootCmd = &cobra.Command{
	Use:   "wattboard",
	Short: "Household energy calculator and weekly dashboard",
	Long: `wattboard estimates a household's daily electricity use from its dwelling
size and appliances, keeps a seven-day ledger, and reports weekly totals, cost,
carbon footprint and tree offsets.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// configPath returns the --config override or the XDG default.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.ConfigPath()
}

// loadConfig reads and validates the config file. A missing file yields
// defaults.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadFrom(configPath())
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", configPath(), err)
	}
	return cfg, nil
}

func saveConfig(cfg config.Config) error {
	return config.SaveTo(configPath(), cfg)
}

func configExists() bool {
	_, err := os.Stat(configPath())
	return err == nil
}

// progressf writes progress lines to stderr unless --quiet is set.
func progressf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
