package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Single writer; the simulator and API share one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

var pragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA foreign_keys = ON;",
	"PRAGMA busy_timeout = 5000;",
}

// Timestamps are stored as fixed-width UTC text (see repository.TimeLayout)
// so range filters compare lexicographically.

const schemaGridSignals = `
CREATE TABLE IF NOT EXISTS grid_signals (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    temperature INTEGER NOT NULL,
    humidity INTEGER NOT NULL,
    age_score INTEGER NOT NULL,
    load_pct INTEGER NOT NULL,
    fault INTEGER NOT NULL,
    topology TEXT NOT NULL,
    renewable_mw INTEGER NOT NULL,
    weather REAL NOT NULL,
    updated_at TEXT NOT NULL
);
`

const schemaGridReports = `
CREATE TABLE IF NOT EXISTS grid_reports (
    id TEXT PRIMARY KEY,
    evaluated_at TEXT NOT NULL,
    tier TEXT NOT NULL,
    stress REAL NOT NULL,
    snapshot TEXT NOT NULL,
    report TEXT NOT NULL
);
`

const indexGridReports = `
CREATE INDEX IF NOT EXISTS idx_grid_reports_evaluated_at ON grid_reports (evaluated_at);
`

const schemaGridEvents = `
CREATE TABLE IF NOT EXISTS grid_events (
    id TEXT PRIMARY KEY,
    occurred_at TEXT NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaGridSignals,
		schemaGridReports,
		indexGridReports,
		schemaGridEvents,
		schemaUsers,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
