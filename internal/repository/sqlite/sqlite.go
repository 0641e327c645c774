// Package sqlite implements the repository interfaces on an embedded
// SQLite database.
//
// WHY modernc.org/sqlite?
// It is a pure Go translation of SQLite — no CGo, no C compiler, trivial
// cross-compilation. The blank import below registers it with database/sql
// as the driver named "sqlite".
//
// The whole app runs against one file-backed database (":memory:" in
// tests). Request volume is tiny and single-writer, so the store's own
// serialization is all the isolation used; there are no explicit
// transactions outside the migration runner.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the sql.DB pool and provides the repository methods.
type DB struct {
	conn *sql.DB
}

// New opens the database, applies pragmas, and runs any pending migrations.
//
// dbPath examples:
//   - "data/skillgap.db" → file-based, persistent
//   - ":memory:"         → in-memory, lost on close (tests)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Force an actual connection now so a bad path fails at startup, not
	// on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// progress.username references users; enforce it.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrations is the full, ordered schema history. Version N is the SQL at
// index N-1. Entries are append-only: never edit or reorder a shipped
// migration — add a new one.
//
// This replaces the older "ALTER TABLE ... if the column is missing"
// approach: each schema change is a numbered step, applied exactly once,
// recorded in schema_migrations.
var migrations = []string{
	// v1: accounts with streak counters on the row.
	`CREATE TABLE users (
		username        TEXT PRIMARY KEY,
		email           TEXT NOT NULL DEFAULT '',
		password_hash   TEXT NOT NULL,
		streak          INTEGER NOT NULL DEFAULT 0,
		total_days      INTEGER NOT NULL DEFAULT 0,
		last_active     TEXT NOT NULL DEFAULT '',
		created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,

	// v2: append-only quiz attempt log.
	`CREATE TABLE progress (
		id         TEXT PRIMARY KEY,
		username   TEXT NOT NULL REFERENCES users(username),
		goal       TEXT NOT NULL,
		score      INTEGER NOT NULL,
		date       TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX idx_progress_username ON progress(username);`,

	// v3: daily gate for the automated reminder.
	`ALTER TABLE users ADD COLUMN last_email_date TEXT NOT NULL DEFAULT '';`,
}

// migrate applies every migration newer than the recorded schema version.
// Each step runs in its own transaction together with its version bump, so
// a failed step leaves the database at the previous version.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	err = db.conn.QueryRow(
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`,
	).Scan(&current)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		version := i + 1

		tx, err := db.conn.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", version, err)
		}

		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}

		if _, err := tx.Exec(
			`INSERT INTO schema_migrations (version) VALUES (?)`, version,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}

	return nil
}
