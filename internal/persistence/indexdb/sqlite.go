// Package indexdb keeps a sqlite index of experiment runs and their per-step
// metrics.
package indexdb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

type SQLiteIndex struct {
	db *sql.DB
}

// Run is one experiment execution.
type Run struct {
	ID           int64
	Name         string
	Rule         string
	Topology     string
	Cells        int
	Steps        int
	StartedAt    time.Time
	FinishedAt   time.Time
	FinalActive  int
	SnapshotPath string
}

// MetricRow is the metrics record of one generation.
type MetricRow struct {
	Step            int
	ActiveCells     int
	Density         float64
	BranchingFactor float64
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, errors.New("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteIndex{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			rule TEXT NOT NULL,
			topology TEXT NOT NULL,
			cells INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			final_active INTEGER,
			snapshot_path TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_name ON runs(name);`,
		`CREATE TABLE IF NOT EXISTS metrics (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			step INTEGER NOT NULL,
			active_cells INTEGER NOT NULL,
			density REAL NOT NULL,
			branching_factor REAL NOT NULL,
			PRIMARY KEY (run_id, step)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun inserts a run row and returns its id.
func (s *SQLiteIndex) BeginRun(ctx context.Context, r Run) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(name, rule, topology, cells, steps, started_at) VALUES(?, ?, ?, ?, ?, ?)`,
		r.Name, r.Rule, r.Topology, r.Cells, r.Steps, r.StartedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, errors.Wrap(err, "insert run")
	}
	return res.LastInsertId()
}

// RecordMetrics stores metric rows for a run in one transaction.
func (s *SQLiteIndex) RecordMetrics(ctx context.Context, runID int64, rows []MetricRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO metrics(run_id, step, active_cells, density, branching_factor) VALUES(?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, runID, row.Step, row.ActiveCells, row.Density, row.BranchingFactor); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "insert metrics step %d", row.Step)
		}
	}
	return tx.Commit()
}

// FinishRun records the outcome of a run.
func (s *SQLiteIndex) FinishRun(ctx context.Context, runID int64, finalActive int, snapshotPath string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, final_active = ?, snapshot_path = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), finalActive, snapshotPath, runID)
	return err
}

// Runs lists recorded runs, newest first.
func (s *SQLiteIndex) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, rule, topology, cells, steps, started_at,
			COALESCE(finished_at, ''), COALESCE(final_active, 0), COALESCE(snapshot_path, '')
		FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &r.Name, &r.Rule, &r.Topology, &r.Cells, &r.Steps, &started, &finished, &r.FinalActive, &r.SnapshotPath); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		if finished != "" {
			r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Metrics returns the metric rows of a run ordered by step.
func (s *SQLiteIndex) Metrics(ctx context.Context, runID int64) ([]MetricRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT step, active_cells, density, branching_factor FROM metrics WHERE run_id = ? ORDER BY step`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MetricRow
	for rows.Next() {
		var m MetricRow
		if err := rows.Scan(&m.Step, &m.ActiveCells, &m.Density, &m.BranchingFactor); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
