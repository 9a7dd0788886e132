package config

import (
	_ "embed"
)

//go:embed defaults/gridreach.yaml
var defaultYAML []byte

// Default returns the hard-coded configuration. It matches the embedded
// defaults/gridreach.yaml.
func Default() Config {
	return Config{
		Search: SearchConfig{
			DefaultBudget: 4,
			MaxBudget:     64,
			ScenarioDir:   "~/.gridreach/scenarios",
		},
		Display: DisplayConfig{
			Color: true,
			Palette: Palette{
				Floor:       "240",
				Reach:       "42",
				Path:        "214",
				Start:       "229",
				Cursor:      "57",
				Difficult:   "136",
				Obstruction: "160",
				Unit:        "39",
				Wall:        "250",
			},
		},
		Log: LogConfig{
			Level:      "info",
			Timestamps: true,
		},
		Storage: StorageConfig{
			DBPath:        "~/.gridreach/history.db",
			RecordHistory: true,
		},
		Server: ServerConfig{
			Address:     ":23235",
			IdleTimeout: 30,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultYAML
}
