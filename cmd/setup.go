package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/wattboard/internal/config"
	"github.com/theirongolddev/wattboard/internal/tui/theme"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, err := config.LoadFrom(configPath())
	if err != nil {
		cfg = config.DefaultConfig()
	}

	ask := func(current string) string {
		if current != "" {
			fmt.Printf("     Current: %s\n", current)
		}
		fmt.Print("     > ")
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}

	fmt.Println()
	fmt.Println("  Welcome to wattboard!")
	fmt.Println()

	// 1. Household
	fmt.Println("  1. Your name")
	if v := ask(cfg.Household.Name); v != "" {
		cfg.Household.Name = v
	}
	fmt.Println()

	fmt.Println("  2. Age (1-120)")
	if v := ask(strconv.Itoa(cfg.Household.Age)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Household.Age = n
		}
	}
	fmt.Println()

	fmt.Println("  3. City and area")
	if v := ask(cfg.Household.City); v != "" {
		cfg.Household.City = v
	}
	if v := ask(cfg.Household.Area); v != "" {
		cfg.Household.Area = v
	}
	fmt.Println()

	// 2. Dwelling
	fmt.Println("  4. House type")
	fmt.Println("     (1) Flat [default]")
	fmt.Println("     (2) Independent")
	switch ask("") {
	case "2":
		cfg.Household.HouseType = config.HouseIndependent
	default:
		cfg.Household.HouseType = config.HouseFlat
	}
	fmt.Println()

	fmt.Println("  5. Dwelling size (1-4 BHK)")
	if v := ask(strconv.Itoa(cfg.General.DefaultSize)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.General.DefaultSize = n
		}
	}
	fmt.Println()

	// 3. Theme
	fmt.Println("  6. Color theme")
	names := theme.Names()
	for i, name := range names {
		def := ""
		if name == cfg.Appearance.Theme {
			def = " [current]"
		}
		fmt.Printf("     (%d) %s%s\n", i+1, name, def)
	}
	if n, err := strconv.Atoi(ask("")); err == nil && n >= 1 && n <= len(names) {
		cfg.Appearance.Theme = names[n-1]
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", configPath())
	fmt.Println("  Run `wattboard setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func maskSecret(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}
