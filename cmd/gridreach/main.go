// gridreach answers movement questions on tactical grids: which cells a
// unit can reach with its movement budget, and the cheapest route there.
//
// Usage:
//
//	gridreach list                          - List available scenarios
//	gridreach reach <scenario>              - Show what each unit can reach
//	gridreach path <scenario> --to x,y      - Show the cheapest route to a cell
//	gridreach history [scenario]            - Show recorded queries
//	gridreach explore [scenario]            - Explore a scenario interactively
//	gridreach serve                         - Start SSH server for remote exploring
//
// Global flags:
//
//	--config <path>     - Config file (default: search order, then built-in)
//	--db <path>         - Query history database
//	--scenarios <dir>   - Directory with extra scenario files
//	--log-level <lvl>   - debug, info, warn or error
//	--plain             - Disable colors
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridreach/internal/config"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagScenarios string
	flagLogLevel  string
	flagPlain     bool
)

var (
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridreach",
	Short: "gridreach - movement range and pathing on tactical grids",
	Long: `gridreach computes where units on a tactical grid can move within a
movement budget. Grids have full and half walls between cells, difficult
terrain and obstructions, and may have several vertical layers.

Available commands:
  list     - Show all scenarios
  reach    - Show reachable cells for units or a start cell
  path     - Show the cheapest route to a cell
  history  - Show recorded queries
  explore  - Interactive explorer
  serve    - Start SSH server for remote exploring

Examples:
  gridreach list
  gridreach reach courtyard
  gridreach reach courtyard --from 0,0 --budget 3
  gridreach path watchtower --unit archer --to 2,2,1
  gridreach explore courtyard
  gridreach serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to query history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagScenarios, "scenarios", "", "Directory with scenario files (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagPlain, "plain", false, "Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reachCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads configuration, applies flag overrides and creates the logger.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyFlags(&cfg, stdoutIsTerminal())
	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg
	logger = newLogger(cfg.Log)
	logger.Debug("configuration loaded",
		"scenario_dir", cfg.Search.ScenarioDir,
		"db", cfg.Storage.DBPath,
		"max_budget", cfg.Search.MaxBudget,
	)
	return nil
}

// applyFlags overrides configuration with explicitly set global flags.
func applyFlags(cfg *config.Config, tty bool) {
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagScenarios != "" {
		cfg.Search.ScenarioDir = flagScenarios
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagPlain || !tty {
		cfg.Display.Color = false
	}
}

func newLogger(cfg config.LogConfig) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: cfg.Timestamps,
		Prefix:          "gridreach",
	})
	if level, err := log.ParseLevel(cfg.Level); err == nil {
		l.SetLevel(level)
	}
	return l
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalSize returns the terminal size, or 80x24 when unavailable.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
