package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Schedule.DayStart != "09:00" {
		t.Errorf("expected day_start 09:00, got %s", cfg.Schedule.DayStart)
	}
	if cfg.Schedule.DayEnd != "24:00" {
		t.Errorf("expected day_end 24:00, got %s", cfg.Schedule.DayEnd)
	}
	if cfg.Grid.SlotWidthPX != 100 {
		t.Errorf("expected slot_width_px 100, got %d", cfg.Grid.SlotWidthPX)
	}
	if cfg.Grid.LaneHeightPX != 60 {
		t.Errorf("expected lane_height_px 60, got %d", cfg.Grid.LaneHeightPX)
	}
	if cfg.Grid.ReserveLanes != 5 {
		t.Errorf("expected reserve_lanes 5, got %d", cfg.Grid.ReserveLanes)
	}
	if cfg.UI.Theme != "frappe" {
		t.Errorf("expected theme frappe, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Schedule.DayStart != "09:00" {
		t.Errorf("expected default day_start, got %s", cfg.Schedule.DayStart)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[schedule]
day_start = "08:00"
day_end = "22:00"

[grid]
slot_width_px = 80
lane_height_px = 40

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Schedule.DayStart != "08:00" {
		t.Errorf("expected day_start 08:00, got %s", cfg.Schedule.DayStart)
	}
	if cfg.Schedule.DayEnd != "22:00" {
		t.Errorf("expected day_end 22:00, got %s", cfg.Schedule.DayEnd)
	}
	if cfg.Grid.SlotWidthPX != 80 {
		t.Errorf("expected slot_width_px 80, got %d", cfg.Grid.SlotWidthPX)
	}
	if cfg.Grid.LaneHeightPX != 40 {
		t.Errorf("expected lane_height_px 40, got %d", cfg.Grid.LaneHeightPX)
	}
	// Defaults are kept for unset fields
	if cfg.Grid.MinBlockWidthPX != 40 {
		t.Errorf("expected default min_block_width_px 40, got %d", cfg.Grid.MinBlockWidthPX)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[schedule]
day_start = "08:00"
day_end = "22:00"

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set env vars
	t.Setenv("LECTIO_DAY_START", "10:00")
	t.Setenv("LECTIO_SLOT_WIDTH_PX", "50")
	t.Setenv("LECTIO_UI_THEME", "latte")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Schedule.DayStart != "10:00" {
		t.Errorf("expected day_start 10:00 from env, got %s", cfg.Schedule.DayStart)
	}
	// File value should be kept when no env override
	if cfg.Schedule.DayEnd != "22:00" {
		t.Errorf("expected day_end 22:00 from file, got %s", cfg.Schedule.DayEnd)
	}
	// Env should override default
	if cfg.Grid.SlotWidthPX != 50 {
		t.Errorf("expected slot_width_px 50 from env, got %d", cfg.Grid.SlotWidthPX)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte from env, got %s", cfg.UI.Theme)
	}
}

func TestValidate_InvalidDayStart(t *testing.T) {
	cfg := Default()
	cfg.Schedule.DayStart = "9:00" // Missing leading zero

	err := cfg.Validate()
	if err == nil {
		t.Error("expected validation error for invalid day_start")
	}
}

func TestValidate_DayStartAfterDayEnd(t *testing.T) {
	cfg := Default()
	cfg.Schedule.DayStart = "18:00"
	cfg.Schedule.DayEnd = "09:00"

	err := cfg.Validate()
	if err == nil {
		t.Error("expected validation error when day_start >= day_end")
	}
}

func TestValidate_OffGridDayStart(t *testing.T) {
	cfg := Default()
	cfg.Schedule.DayStart = "09:15"

	err := cfg.Validate()
	if err == nil {
		t.Error("expected validation error for a day_start off the 30-minute grid")
	}
}

func TestValidate_BadGridGeometry(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero slot width", func(c *Config) { c.Grid.SlotWidthPX = 0 }},
		{"zero lane height", func(c *Config) { c.Grid.LaneHeightPX = 0 }},
		{"negative min block width", func(c *Config) { c.Grid.MinBlockWidthPX = -1 }},
		{"zero reserve lanes", func(c *Config) { c.Grid.ReserveLanes = 0 }},
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if cfg.Validate() == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDayWindow(t *testing.T) {
	cfg := Default()
	start, end := cfg.DayWindow()
	if start != 540 || end != 1440 {
		t.Errorf("DayWindow() = (%d, %d), want (540, 1440)", start, end)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	cfg := Default()
	cfg.Schedule.DayStart = "07:30"
	cfg.Schedule.DayEnd = "15:30"
	cfg.Grid.SlotWidthPX = 120

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Schedule.DayStart != "07:30" {
		t.Errorf("expected day_start 07:30, got %s", loaded.Schedule.DayStart)
	}
	if loaded.Schedule.DayEnd != "15:30" {
		t.Errorf("expected day_end 15:30, got %s", loaded.Schedule.DayEnd)
	}
	if loaded.Grid.SlotWidthPX != 120 {
		t.Errorf("expected slot_width_px 120, got %d", loaded.Grid.SlotWidthPX)
	}
}
