package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all wattboard configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Household  HouseholdConfig  `toml:"household"`
	Appearance AppearanceConfig `toml:"appearance"`
	Daemon     DaemonConfig     `toml:"daemon"`
	MQTT       MQTTConfig       `toml:"mqtt"`
}

// GeneralConfig holds calculator defaults.
type GeneralConfig struct {
	DefaultSize int    `toml:"default_size"`
	DefaultDay  string `toml:"default_day"`
}

// HouseholdConfig is the profile shown on the dashboard.
type HouseholdConfig struct {
	Name      string `toml:"name,omitempty"`
	Age       int    `toml:"age"`
	City      string `toml:"city,omitempty"`
	Area      string `toml:"area,omitempty"`
	HouseType string `toml:"house_type"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DaemonConfig holds the HTTP service settings.
type DaemonConfig struct {
	Addr         string `toml:"addr"`
	EventsBuffer int    `toml:"events_buffer"`
}

// MQTTConfig holds the broker used to publish weekly metrics.
type MQTTConfig struct {
	Enabled     bool   `toml:"enabled"`
	Broker      string `toml:"broker,omitempty"`
	Username    string `toml:"username,omitempty"`
	Password    string `toml:"password,omitempty"`
	TopicPrefix string `toml:"topic_prefix"`
	ClientID    string `toml:"client_id"`
}

// House types.
const (
	HouseFlat        = "Flat"
	HouseIndependent = "Independent"
)

// ErrInvalidConfig marks a config value outside its allowed range.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultSize: 2,
			DefaultDay:  "Monday",
		},
		Household: HouseholdConfig{
			Age:       25,
			HouseType: HouseFlat,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Daemon: DaemonConfig{
			Addr:         "127.0.0.1:8787",
			EventsBuffer: 200,
		},
		MQTT: MQTTConfig{
			TopicPrefix: "wattboard",
			ClientID:    "wattboard",
		},
	}
}

// Validate checks ranges that the calculator and dashboard depend on.
func (c Config) Validate() error {
	if c.General.DefaultSize < 1 || c.General.DefaultSize > 4 {
		return fmt.Errorf("%w: general.default_size %d outside 1-4", ErrInvalidConfig, c.General.DefaultSize)
	}
	if c.Household.Age < 1 || c.Household.Age > 120 {
		return fmt.Errorf("%w: household.age %d outside 1-120", ErrInvalidConfig, c.Household.Age)
	}
	switch c.Household.HouseType {
	case HouseFlat, HouseIndependent:
	default:
		return fmt.Errorf("%w: household.house_type %q", ErrInvalidConfig, c.Household.HouseType)
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return fmt.Errorf("%w: mqtt.broker is required when mqtt is enabled", ErrInvalidConfig)
	}
	return nil
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wattboard")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "wattboard")
}

// RuntimeDir holds the daemon pid, state and log files.
func RuntimeDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "wattboard")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "wattboard")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads a config file at an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // user-selected config path
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to an explicit path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user-selected config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// GetMQTTPassword returns the broker password from env var or config, in that order.
func GetMQTTPassword(cfg Config) string {
	if pw := os.Getenv("WATTBOARD_MQTT_PASSWORD"); pw != "" {
		return pw
	}
	return cfg.MQTT.Password
}
