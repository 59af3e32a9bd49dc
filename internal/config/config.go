// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/mgilabert/lectio/internal/schedule"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Grid     GridConfig     `toml:"grid"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// ScheduleConfig holds the weekly day window.
type ScheduleConfig struct {
	DayStart string `toml:"day_start"` // e.g., "09:00"
	DayEnd   string `toml:"day_end"`   // e.g., "24:00"
}

// GridConfig holds the rendering geometry of the weekly grid.
type GridConfig struct {
	SlotWidthPX     int `toml:"slot_width_px"`
	LaneHeightPX    int `toml:"lane_height_px"`
	MinBlockWidthPX int `toml:"min_block_width_px"`
	ReserveLanes    int `toml:"reserve_lanes"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			DayStart: "09:00",
			DayEnd:   "24:00",
		},
		Grid: GridConfig{
			SlotWidthPX:     100,
			LaneHeightPX:    60,
			MinBlockWidthPX: 40,
			ReserveLanes:    5,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "lectio.db"
	}
	return filepath.Join(home, ".local", "share", "lectio", "lectio.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "lectio", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LECTIO_DAY_START"); v != "" {
		cfg.Schedule.DayStart = v
	}
	if v := os.Getenv("LECTIO_DAY_END"); v != "" {
		cfg.Schedule.DayEnd = v
	}
	if v := os.Getenv("LECTIO_SLOT_WIDTH_PX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Grid.SlotWidthPX = n
		}
	}
	if v := os.Getenv("LECTIO_LANE_HEIGHT_PX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Grid.LaneHeightPX = n
		}
	}
	if v := os.Getenv("LECTIO_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("LECTIO_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	start, err := schedule.ToMinutes(c.Schedule.DayStart)
	if err != nil {
		return fmt.Errorf("day_start: %w", err)
	}
	end, err := schedule.ToMinutes(c.Schedule.DayEnd)
	if err != nil {
		return fmt.Errorf("day_end: %w", err)
	}
	if start >= end {
		return errors.New("day_start must be before day_end")
	}

	if c.Grid.SlotWidthPX < 1 {
		return errors.New("slot_width_px must be positive")
	}
	if c.Grid.LaneHeightPX < 1 {
		return errors.New("lane_height_px must be positive")
	}
	if c.Grid.MinBlockWidthPX < 0 {
		return errors.New("min_block_width_px cannot be negative")
	}
	if c.Grid.ReserveLanes < 1 {
		return errors.New("reserve_lanes must be at least 1")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// DayWindow returns the configured day window in minutes from midnight.
// Validate must have passed first.
func (c *Config) DayWindow() (start, end int) {
	start, _ = schedule.ToMinutes(c.Schedule.DayStart)
	end, _ = schedule.ToMinutes(c.Schedule.DayEnd)
	return start, end
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
