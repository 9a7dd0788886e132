package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/vovakirdan/gridreach/internal/config"
	"github.com/vovakirdan/gridreach/internal/geom"
	"github.com/vovakirdan/gridreach/internal/scenario"
	"github.com/vovakirdan/gridreach/internal/storage"
)

// exitf prints an error and exits with status 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func scenarioDir() string {
	return config.ExpandPath(appConfig.Search.ScenarioDir)
}

// resolveScenario finds a scenario by ID or file path, exiting on failure.
func resolveScenario(ref string) scenario.Scenario {
	s, err := scenario.Resolve(ref, scenarioDir())
	if errors.Is(err, scenario.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", ref)
		fmt.Fprintln(os.Stderr, "Run 'gridreach list' to see available scenarios.")
		os.Exit(1)
	}
	if err != nil {
		exitf("%v", err)
	}
	logger.Debug("scenario resolved", "id", s.ID, "file", s.FilePath)
	return s
}

// openHistory opens the query history if recording is enabled. Failures
// are logged and recording is skipped.
func openHistory() *storage.Store {
	if !appConfig.Storage.RecordHistory {
		return nil
	}
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		return nil
	}
	return store
}

func record(store *storage.Store, q storage.QueryRecord) {
	if store == nil {
		return
	}
	if _, err := store.SaveQuery(q); err != nil {
		logger.Warn("could not record query", "error", err)
	}
}

// parseLocationFlag parses an optional x,y[,z] flag value.
func parseLocationFlag(name, value string) (geom.Location, bool) {
	if value == "" {
		return geom.Location{}, false
	}
	l, err := geom.ParseLocation(value)
	if err != nil {
		exitf("--%s: %v", name, err)
	}
	return l, true
}

// budgetFor picks the budget for a query: the flag when set, otherwise the
// unit's own budget, otherwise the configured default. The result is clamped
// to the configured maximum.
func budgetFor(flag int, unitBudget int, hasUnit bool) int {
	b := appConfig.Search.DefaultBudget
	switch {
	case flag >= 0:
		b = flag
	case hasUnit && unitBudget > 0:
		b = unitBudget
	}
	return appConfig.Search.ClampBudget(b)
}
