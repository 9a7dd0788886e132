package main

import (
	"testing"

	"github.com/vovakirdan/gridreach/internal/config"
)

func TestApplyFlags(t *testing.T) {
	defer func() {
		flagDBPath, flagScenarios, flagLogLevel, flagPlain = "", "", "", false
	}()

	cfg := config.Default()
	applyFlags(&cfg, true)
	if cfg != config.Default() {
		t.Errorf("no flags set: config changed to %+v", cfg)
	}

	flagDBPath = "/tmp/h.db"
	flagScenarios = "/tmp/maps"
	flagLogLevel = "debug"
	applyFlags(&cfg, true)
	if cfg.Storage.DBPath != "/tmp/h.db" {
		t.Errorf("DBPath = %q", cfg.Storage.DBPath)
	}
	if cfg.Search.ScenarioDir != "/tmp/maps" {
		t.Errorf("ScenarioDir = %q", cfg.Search.ScenarioDir)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q", cfg.Log.Level)
	}
	if !cfg.Display.Color {
		t.Error("color disabled on a terminal without --plain")
	}

	applyFlags(&cfg, false)
	if cfg.Display.Color {
		t.Error("color should be disabled when stdout is not a terminal")
	}

	cfg = config.Default()
	flagPlain = true
	applyFlags(&cfg, true)
	if cfg.Display.Color {
		t.Error("color should be disabled with --plain")
	}
}

func TestBudgetFor(t *testing.T) {
	saved := appConfig
	defer func() { appConfig = saved }()

	appConfig = config.Default()
	appConfig.Search.DefaultBudget = 4
	appConfig.Search.MaxBudget = 10

	tests := []struct {
		name       string
		flag       int
		unitBudget int
		hasUnit    bool
		want       int
	}{
		{"flag wins", 2, 6, true, 2},
		{"zero flag", 0, 6, true, 0},
		{"unit budget", -1, 6, true, 6},
		{"unit without budget", -1, 0, true, 4},
		{"cell start", -1, 0, false, 4},
		{"clamped", 50, 0, false, 10},
		{"unit clamped", -1, 12, true, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := budgetFor(tt.flag, tt.unitBudget, tt.hasUnit); got != tt.want {
				t.Errorf("budgetFor(%d, %d, %v) = %d, want %d", tt.flag, tt.unitBudget, tt.hasUnit, got, tt.want)
			}
		})
	}
}

func TestNewLoggerLevel(t *testing.T) {
	l := newLogger(config.LogConfig{Level: "warn"})
	if got := l.GetLevel().String(); got != "warn" {
		t.Errorf("level = %q, want warn", got)
	}
	// Unknown levels keep the logger default.
	l = newLogger(config.LogConfig{Level: "loud"})
	if got := l.GetLevel().String(); got != "info" {
		t.Errorf("level = %q, want info", got)
	}
}
