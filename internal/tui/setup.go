package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/theirongolddev/wattboard/internal/config"
	"github.com/theirongolddev/wattboard/internal/energy"
	"github.com/theirongolddev/wattboard/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues is bound to the huh form fields.
type setupValues struct {
	name      string
	age       string
	city      string
	area      string
	houseType string
	size      int
	theme     string
}

func newSetupValues(cfg config.Config) *setupValues {
	return &setupValues{
		name:      cfg.Household.Name,
		age:       strconv.Itoa(cfg.Household.Age),
		city:      cfg.Household.City,
		area:      cfg.Household.Area,
		houseType: cfg.Household.HouseType,
		size:      cfg.General.DefaultSize,
		theme:     cfg.Appearance.Theme,
	}
}

func validateAge(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("age must be a number")
	}
	if n < 1 || n > 120 {
		return errors.New("age must be between 1 and 120")
	}
	return nil
}

func newSetupForm(v *setupValues) *huh.Form {
	sizeOpts := make([]huh.Option[int], 0, int(energy.MaxSize))
	for s := energy.MinSize; s <= energy.MaxSize; s++ {
		sizeOpts = append(sizeOpts, huh.NewOption(strconv.Itoa(int(s))+" BHK", int(s)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to wattboard").
				Description("Tell us a little about your household.\nEverything here can be changed later in Settings."),
			huh.NewInput().
				Title("Name").
				Value(&v.name),
			huh.NewInput().
				Title("Age").
				Value(&v.age).
				Validate(validateAge),
			huh.NewInput().
				Title("City").
				Value(&v.city),
			huh.NewInput().
				Title("Area").
				Value(&v.area),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("House type").
				Options(huh.NewOptions(config.HouseFlat, config.HouseIndependent)...).
				Value(&v.houseType),
			huh.NewSelect[int]().
				Title("Dwelling size").
				Description("Number of bedrooms (BHK)").
				Options(sizeOpts...).
				Value(&v.size),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.theme),
		),
	).WithShowHelp(true)
}

// applySetup copies the form answers onto cfg.
func applySetup(cfg config.Config, v *setupValues) config.Config {
	cfg.Household.Name = strings.TrimSpace(v.name)
	if age, err := strconv.Atoi(strings.TrimSpace(v.age)); err == nil {
		cfg.Household.Age = age
	}
	cfg.Household.City = strings.TrimSpace(v.city)
	cfg.Household.Area = strings.TrimSpace(v.area)
	if v.houseType != "" {
		cfg.Household.HouseType = v.houseType
	}
	if v.size != 0 {
		cfg.General.DefaultSize = v.size
	}
	if v.theme != "" {
		cfg.Appearance.Theme = v.theme
	}
	return cfg
}

// saveSetupConfig applies the answers to the running dashboard and saves them.
func (a *App) saveSetupConfig() error {
	cfg := applySetup(a.cfg, a.setupVals)
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	theme.SetActive(cfg.Appearance.Theme)
	a.sess.SetHousehold(householdFromConfig(cfg.Household))
	if size, err := energy.ParseSize(cfg.General.DefaultSize); err == nil {
		_ = a.sess.SetSize(size)
	}

	return a.saveConfig(cfg)
}
