// Package config handles configuration loading and validation for sitecmd.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Defer     DeferConfig     `yaml:"defer"`
	Theme     string          `yaml:"theme"`
	DataDir   string          `yaml:"-"` // set by caller, not from config file

	// Tracking lists the optional record categories this installation
	// keeps (crew_attendance, work_activities, materials,
	// equipment_logs, visitors). Empty means none.
	Tracking []string `yaml:"tracking"`
}

// DatabaseConfig holds sqlite connection pool options.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// DashboardConfig holds command center display options.
type DashboardConfig struct {
	// BucketCap limits how many rows each bucket renders. It is a
	// display limit only; counts always cover the full list.
	BucketCap int `yaml:"bucket_cap"`
}

// DeferConfig holds defer quick-pick options.
type DeferConfig struct {
	// QuickPickDays are the +N day shortcuts offered when deferring.
	QuickPickDays []int `yaml:"quick_pick_days"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			BusyTimeout:  5000,
		},
		Dashboard: DashboardConfig{
			BucketCap: 50,
		},
		Defer: DeferConfig{
			QuickPickDays: []int{1, 3, 7, 14},
		},
		Theme: "default",
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.Dashboard.BucketCap == 0 {
		c.Dashboard.BucketCap = defaults.Dashboard.BucketCap
	}
	if len(c.Defer.QuickPickDays) == 0 {
		c.Defer.QuickPickDays = defaults.Defer.QuickPickDays
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Dashboard.BucketCap < 1 {
		return fmt.Errorf("dashboard.bucket_cap must be at least 1")
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1")
	}

	for _, n := range c.Defer.QuickPickDays {
		if n < 1 {
			return fmt.Errorf("defer.quick_pick_days entries must be positive, got %d", n)
		}
	}

	return nil
}
