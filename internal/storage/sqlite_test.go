package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/gridreach/internal/geom"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	target := geom.L(3, 4)
	queries := []QueryRecord{
		{ScenarioID: "courtyard", Kind: KindReach, Start: geom.L(0, 0), Budget: 4, Reached: 12},
		{ScenarioID: "watchtower", Kind: KindReach, Start: geom.L3(0, 0, 1), Budget: 2, Reached: 5},
		{ScenarioID: "courtyard", Kind: KindPath, Start: geom.L(0, 0), Budget: 6, Reached: 20, Target: &target, PathCost: 5},
	}
	for _, q := range queries {
		id, err := store.SaveQuery(q)
		if err != nil {
			t.Fatalf("SaveQuery() failed: %v", err)
		}
		if id == 0 {
			t.Error("Expected non-zero ID")
		}
	}

	recent, err := store.RecentQueries(10)
	if err != nil {
		t.Fatalf("RecentQueries() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 queries, got %d", len(recent))
	}
	// Same-second inserts fall back to id order, newest first.
	if recent[0].Kind != KindPath {
		t.Errorf("Expected newest query first, got %+v", recent[0])
	}
	if recent[0].Target == nil || *recent[0].Target != target || recent[0].PathCost != 5 {
		t.Errorf("Path target not round-tripped: %+v", recent[0])
	}
	if recent[1].Start != geom.L3(0, 0, 1) || recent[1].Target != nil {
		t.Errorf("Reach query not round-tripped: %+v", recent[1])
	}
	if recent[2].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	court, err := store.QueriesForScenario("courtyard", 10)
	if err != nil {
		t.Fatalf("QueriesForScenario() failed: %v", err)
	}
	if len(court) != 2 {
		t.Errorf("Expected 2 courtyard queries, got %d", len(court))
	}
}

func TestStoreRejectsInvalidQueries(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveQuery(QueryRecord{Kind: KindReach}); err == nil {
		t.Error("Expected error for missing scenario id")
	}
	if _, err := store.SaveQuery(QueryRecord{ScenarioID: "x", Kind: "teleport"}); err == nil {
		t.Error("Expected error for unknown kind")
	}
}

func TestStoreRecentQueriesLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveQuery(QueryRecord{ScenarioID: "test", Kind: KindReach, Budget: i})
	}

	recent, err := store.RecentQueries(3)
	if err != nil {
		t.Fatalf("RecentQueries() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("Expected 3 queries with limit, got %d", len(recent))
	}
	if recent[0].Budget != 4 {
		t.Errorf("Expected latest budget 4, got %d", recent[0].Budget)
	}
}

func TestStoreScenarioStats(t *testing.T) {
	store := openTestStore(t)

	// Empty scenario
	stats, err := store.ScenarioStats("none")
	if err != nil {
		t.Fatalf("ScenarioStats() failed: %v", err)
	}
	if stats.Queries != 0 || !stats.LastQueried.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	target := geom.L(1, 1)
	store.SaveQuery(QueryRecord{ScenarioID: "courtyard", Kind: KindReach, Reached: 10})
	store.SaveQuery(QueryRecord{ScenarioID: "courtyard", Kind: KindReach, Reached: 20})
	store.SaveQuery(QueryRecord{ScenarioID: "courtyard", Kind: KindPath, Reached: 30, Target: &target, PathCost: -1})

	stats, err = store.ScenarioStats("courtyard")
	if err != nil {
		t.Fatalf("ScenarioStats() failed: %v", err)
	}
	if stats.Queries != 3 || stats.PathQueries != 1 {
		t.Errorf("Expected 3 queries (1 path), got %+v", stats)
	}
	if stats.AvgReached != 20 || stats.MaxReached != 30 {
		t.Errorf("Expected avg 20 max 30, got %+v", stats)
	}
	if stats.LastQueried.IsZero() {
		t.Error("LastQueried should be set")
	}
}

func TestStoreClearHistory(t *testing.T) {
	store := openTestStore(t)

	store.SaveQuery(QueryRecord{ScenarioID: "a", Kind: KindReach})
	store.SaveQuery(QueryRecord{ScenarioID: "a", Kind: KindReach})
	store.SaveQuery(QueryRecord{ScenarioID: "b", Kind: KindReach})

	n, err := store.ClearHistory("a")
	if err != nil {
		t.Fatalf("ClearHistory() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 deleted rows, got %d", n)
	}

	remaining, _ := store.RecentQueries(10)
	if len(remaining) != 1 || remaining[0].ScenarioID != "b" {
		t.Errorf("Expected only scenario b to remain, got %+v", remaining)
	}

	if n, _ := store.ClearHistory(""); n != 1 {
		t.Errorf("Expected clearing all to delete 1 row, got %d", n)
	}
}

func TestStorePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "persist.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveQuery(QueryRecord{ScenarioID: "courtyard", Kind: KindReach, Reached: 7})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer store.Close()

	recent, err := store.RecentQueries(1)
	if err != nil {
		t.Fatalf("RecentQueries() failed: %v", err)
	}
	if len(recent) != 1 || recent[0].Reached != 7 {
		t.Errorf("Expected persisted query, got %+v", recent)
	}
}
