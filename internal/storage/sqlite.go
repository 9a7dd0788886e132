// Package storage provides SQLite-based persistence for reachability query history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/gridreach/internal/geom"
)

// Query kinds.
const (
	KindReach = "reach"
	KindPath  = "path"
)

// Store manages the SQLite database connection for query history.
type Store struct {
	db *sql.DB
}

// QueryRecord represents one recorded reachability or path query.
type QueryRecord struct {
	ID         int64
	ScenarioID string
	Kind       string // KindReach or KindPath
	Start      geom.Location
	Budget     int
	Reached    int // Number of locations within budget

	// Target and PathCost are only set for path queries. PathCost is -1
	// when the target was not reachable within budget.
	Target    *geom.Location
	PathCost  int
	CreatedAt time.Time
}

// ScenarioStats contains aggregated statistics for a scenario.
type ScenarioStats struct {
	ScenarioID  string
	Queries     int
	PathQueries int
	AvgReached  float64
	MaxReached  int
	LastQueried time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS queries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			start_x INTEGER NOT NULL,
			start_y INTEGER NOT NULL,
			start_z INTEGER NOT NULL DEFAULT 0,
			budget INTEGER NOT NULL,
			reached INTEGER NOT NULL DEFAULT 0,
			target_x INTEGER,
			target_y INTEGER,
			target_z INTEGER,
			path_cost INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_queries_scenario_id ON queries(scenario_id);
		CREATE INDEX IF NOT EXISTS idx_queries_created ON queries(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveQuery records a query. Returns the ID of the inserted record.
func (s *Store) SaveQuery(q QueryRecord) (int64, error) {
	if q.ScenarioID == "" {
		return 0, errors.New("storage: query has no scenario id")
	}
	if q.Kind != KindReach && q.Kind != KindPath {
		return 0, fmt.Errorf("storage: unknown query kind %q", q.Kind)
	}

	var tx, ty, tz, cost sql.NullInt64
	if q.Target != nil {
		tx = sql.NullInt64{Int64: int64(q.Target.X), Valid: true}
		ty = sql.NullInt64{Int64: int64(q.Target.Y), Valid: true}
		tz = sql.NullInt64{Int64: int64(q.Target.Z), Valid: true}
		cost = sql.NullInt64{Int64: int64(q.PathCost), Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO queries
		 (scenario_id, kind, start_x, start_y, start_z, budget, reached, target_x, target_y, target_z, path_cost)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ScenarioID, q.Kind,
		q.Start.X, q.Start.Y, q.Start.Z,
		q.Budget, q.Reached,
		tx, ty, tz, cost,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save query: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const selectQueries = `SELECT id, scenario_id, kind, start_x, start_y, start_z, budget, reached,
		        target_x, target_y, target_z, path_cost, created_at
		 FROM queries`

// RecentQueries retrieves the most recent queries across all scenarios,
// newest first.
func (s *Store) RecentQueries(limit int) ([]QueryRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(selectQueries+`
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	return scanQueries(rows)
}

// QueriesForScenario retrieves the most recent queries for one scenario,
// newest first.
func (s *Store) QueriesForScenario(scenarioID string, limit int) ([]QueryRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(selectQueries+`
		 WHERE scenario_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		scenarioID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scenario history: %w", err)
	}
	return scanQueries(rows)
}

func scanQueries(rows *sql.Rows) ([]QueryRecord, error) {
	defer rows.Close()

	var records []QueryRecord
	for rows.Next() {
		var q QueryRecord
		var tx, ty, tz, cost sql.NullInt64
		var createdAt any
		if err := rows.Scan(
			&q.ID,
			&q.ScenarioID,
			&q.Kind,
			&q.Start.X,
			&q.Start.Y,
			&q.Start.Z,
			&q.Budget,
			&q.Reached,
			&tx,
			&ty,
			&tz,
			&cost,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if tx.Valid && ty.Valid && tz.Valid {
			target := geom.L3(int(tx.Int64), int(ty.Int64), int(tz.Int64))
			q.Target = &target
			q.PathCost = int(cost.Int64)
		}
		q.CreatedAt = parseTime(createdAt)
		records = append(records, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// ScenarioStats retrieves aggregated statistics for a scenario.
func (s *Store) ScenarioStats(scenarioID string) (*ScenarioStats, error) {
	stats := &ScenarioStats{ScenarioID: scenarioID}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(reached), 0),
		        COALESCE(MAX(reached), 0)
		 FROM queries WHERE scenario_id = ?`,
		KindPath, scenarioID,
	).Scan(&stats.Queries, &stats.PathQueries, &stats.AvgReached, &stats.MaxReached)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}

	// Get last queried
	var last any
	err = s.db.QueryRow(
		`SELECT created_at FROM queries WHERE scenario_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		scenarioID,
	).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last query: %w", err)
	}
	if err == nil {
		stats.LastQueried = parseTime(last)
	}

	return stats, nil
}

// ClearHistory deletes recorded queries for the given scenario, or all
// queries when scenarioID is empty. Returns the number of deleted rows.
func (s *Store) ClearHistory(scenarioID string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if scenarioID == "" {
		res, err = s.db.Exec("DELETE FROM queries")
	} else {
		res, err = s.db.Exec("DELETE FROM queries WHERE scenario_id = ?", scenarioID)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	return n, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
