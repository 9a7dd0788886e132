package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridreach/internal/config"
	"github.com/vovakirdan/gridreach/internal/geom"
	"github.com/vovakirdan/gridreach/internal/scenario"
	"github.com/vovakirdan/gridreach/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m ExplorerModel, msgs ...tea.KeyMsg) ExplorerModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		em, ok := next.(ExplorerModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = em
	}
	return m
}

func builtin(t *testing.T, id string) scenario.Scenario {
	t.Helper()
	s, err := scenario.Resolve(id, "")
	if err != nil {
		t.Fatalf("Resolve(%s) failed: %v", id, err)
	}
	return s
}

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestExplorerStartsOnFirstUnit(t *testing.T) {
	m := NewExplorerModel(builtin(t, "courtyard"), config.Default(), nil)

	if m.unit != 0 || !m.fromUnit {
		t.Fatalf("expected first unit selected, got unit=%d fromUnit=%v", m.unit, m.fromUnit)
	}
	if m.cursor != geom.L(0, 0) || m.budget != 4 {
		t.Errorf("cursor=%v budget=%d, expected (0,0) and 4", m.cursor, m.budget)
	}
	if !m.result.Contains(geom.L(0, 0)) {
		t.Error("the unit's own cell should be in its reach")
	}
	if !strings.Contains(m.View(), "Courtyard") {
		t.Error("view should show the scenario name")
	}
}

func TestExplorerBudgetKeys(t *testing.T) {
	cfg := config.Default()
	cfg.Search.MaxBudget = 5
	m := NewExplorerModel(builtin(t, "courtyard"), cfg, nil)
	reached := m.result.Len()

	m = press(t, m, runes("+"))
	if m.budget != 5 || m.result.Len() < reached {
		t.Errorf("budget up: budget=%d reached=%d", m.budget, m.result.Len())
	}
	m = press(t, m, runes("+"))
	if m.budget != 5 {
		t.Errorf("budget should clamp to max, got %d", m.budget)
	}

	m = press(t, m, runes("-"), runes("-"), runes("-"), runes("-"), runes("-"), runes("-"))
	if m.budget != 0 || m.result.Len() != 1 {
		t.Errorf("zero budget should reach only the start, budget=%d reached=%d", m.budget, m.result.Len())
	}
}

func TestExplorerCursorAndPath(t *testing.T) {
	m := NewExplorerModel(builtin(t, "courtyard"), config.Default(), nil)

	m = press(t, m, runes("d"))
	if m.cursor != geom.L(1, 0) {
		t.Fatalf("cursor = %v, expected (1,0)", m.cursor)
	}
	if len(m.path) != 2 || m.path[0] != geom.L(0, 0) || m.path[1] != geom.L(1, 0) {
		t.Errorf("path = %v", m.path)
	}

	// The cursor stays inside the grid.
	m = press(t, m, runes("w"), runes("q"))
	if m.cursor != geom.L(1, 0) {
		t.Errorf("cursor left the grid: %v", m.cursor)
	}

	m = press(t, m, runes("o"))
	if m.fromUnit || m.path != nil || m.origin() != m.cursor {
		t.Error("origin toggle should measure from the cursor without a path")
	}
}

func TestExplorerCommitMoveRecords(t *testing.T) {
	store := testStore(t)
	m := NewExplorerModel(builtin(t, "courtyard"), config.Default(), store)

	m = press(t, m, runes("d"), tea.KeyMsg{Type: tea.KeyEnter})
	if at, _ := m.tracker.Locate("scout"); at != geom.L(1, 0) {
		t.Fatalf("scout at %v, expected (1,0)", at)
	}
	if m.grid.IsObstructed(geom.L(0, 0)) || !m.grid.IsObstructed(geom.L(1, 0)) {
		t.Error("obstruction should follow the unit")
	}

	queries, err := store.RecentQueries(10)
	if err != nil {
		t.Fatalf("RecentQueries() failed: %v", err)
	}
	if len(queries) != 1 {
		t.Fatalf("expected 1 recorded query, got %d", len(queries))
	}
	q := queries[0]
	if q.ScenarioID != "courtyard" || q.Kind != storage.KindPath || q.PathCost != 1 || q.Target == nil || *q.Target != geom.L(1, 0) {
		t.Errorf("recorded %+v", q)
	}

	// Out of reach with a zero budget.
	m = press(t, m, runes("-"), runes("-"), runes("-"), runes("-"), runes("d"), tea.KeyMsg{Type: tea.KeyEnter})
	if at, _ := m.tracker.Locate("scout"); at != geom.L(1, 0) {
		t.Errorf("scout should not move out of reach, at %v", at)
	}
	if !strings.Contains(m.status, "out of reach") {
		t.Errorf("status = %q", m.status)
	}
	queries, _ = store.RecentQueries(10)
	if len(queries) != 2 || queries[0].PathCost != -1 {
		t.Errorf("failed move should be recorded with cost -1, got %+v", queries)
	}

	// Reset restores the scenario.
	m = press(t, m, runes("r"))
	if at, _ := m.tracker.Locate("scout"); at != geom.L(0, 0) {
		t.Errorf("reset should return scout to (0,0), got %v", at)
	}
}

func TestExplorerUnitsCycle(t *testing.T) {
	m := NewExplorerModel(builtin(t, "courtyard"), config.Default(), nil)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.scn.Units[m.unit].ID != "sentry" || m.cursor != geom.L(5, 4) || m.budget != 3 {
		t.Errorf("tab: unit=%d cursor=%v budget=%d", m.unit, m.cursor, m.budget)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.scn.Units[m.unit].ID != "scout" {
		t.Errorf("shift+tab should return to scout, got %d", m.unit)
	}
}

func TestExplorerEditing(t *testing.T) {
	m := NewExplorerModel(builtin(t, "courtyard"), config.Default(), nil)

	m = press(t, m, runes("x"))
	if m.status == "" {
		t.Error("obstructing an occupied cell should be refused")
	}

	m = press(t, m, runes("s"), runes("x"))
	if !m.grid.IsObstructed(geom.L(0, 1)) || m.result.Contains(geom.L(0, 1)) {
		t.Error("x should obstruct the cursor cell")
	}
	m = press(t, m, runes("t"))
	if !m.grid.IsDifficult(geom.L(0, 1)) {
		t.Error("t should mark the cursor cell difficult")
	}
}

func TestExplorerLayers(t *testing.T) {
	m := NewExplorerModel(builtin(t, "watchtower"), config.Default(), nil)
	z := m.cursor.Z

	m = press(t, m, runes("l"))
	if m.cursor.Z != (z+1)%2 {
		t.Errorf("layer key: z=%d", m.cursor.Z)
	}
	if !strings.Contains(m.View(), "layer") {
		t.Error("volumetric view should show the layer")
	}
}

func TestExplorerLeaving(t *testing.T) {
	m := NewExplorerModel(builtin(t, "crossroads"), config.Default(), nil)

	back := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.IsGoingBack() || back.View() != "" {
		t.Error("esc should leave the explorer")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(ExplorerModel).IsQuitting() || cmd == nil {
		t.Error("ctrl+c should quit")
	}
}
