// Package config provides YAML-based configuration loading for gridreach.
package config

import (
	"fmt"
	"strings"
)

// Config contains all configuration for the CLI, explorer and server.
type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

// SearchConfig defines reachability query defaults.
type SearchConfig struct {
	DefaultBudget int    `yaml:"default_budget"` // Used when a unit or flag gives none
	MaxBudget     int    `yaml:"max_budget"`     // Upper bound applied to every query
	ScenarioDir   string `yaml:"scenario_dir"`   // Extra scenario files, merged over built-ins
}

// DisplayConfig defines how maps are drawn.
type DisplayConfig struct {
	Color   bool    `yaml:"color"`
	Palette Palette `yaml:"palette"`
}

// Palette holds lipgloss color strings (ANSI numbers or hex).
type Palette struct {
	Floor       string `yaml:"floor"`
	Reach       string `yaml:"reach"`
	Path        string `yaml:"path"`
	Start       string `yaml:"start"`
	Cursor      string `yaml:"cursor"`
	Difficult   string `yaml:"difficult"`
	Obstruction string `yaml:"obstruction"`
	Unit        string `yaml:"unit"`
	Wall        string `yaml:"wall"`
}

// LogConfig defines logger output.
type LogConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	Timestamps bool   `yaml:"timestamps"`
}

// StorageConfig defines the query history database.
type StorageConfig struct {
	DBPath        string `yaml:"db_path"`
	RecordHistory bool   `yaml:"record_history"`
}

// ServerConfig defines the SSH explorer server.
type ServerConfig struct {
	Address     string `yaml:"address"`
	HostKeyPath string `yaml:"host_key_path"`
	IdleTimeout int    `yaml:"idle_timeout_minutes"`
}

// ClampBudget bounds a requested budget to [0, MaxBudget].
// A non-positive MaxBudget disables the upper bound.
func (s SearchConfig) ClampBudget(budget int) int {
	if budget < 0 {
		return 0
	}
	if s.MaxBudget > 0 && budget > s.MaxBudget {
		return s.MaxBudget
	}
	return budget
}

// Validate checks values that would make the tools misbehave.
func (c Config) Validate() error {
	if c.Search.DefaultBudget < 0 {
		return fmt.Errorf("config: search.default_budget must not be negative, got %d", c.Search.DefaultBudget)
	}
	if c.Search.MaxBudget < 0 {
		return fmt.Errorf("config: search.max_budget must not be negative, got %d", c.Search.MaxBudget)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("config: server.idle_timeout_minutes must not be negative, got %d", c.Server.IdleTimeout)
	}
	return nil
}
