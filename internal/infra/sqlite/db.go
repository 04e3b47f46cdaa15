// Package sqlite provides SQLite-based persistent storage for the engine.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS learners (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			class_code      TEXT NOT NULL DEFAULT '',
			xp              INTEGER NOT NULL DEFAULT 0,
			gems            INTEGER NOT NULL DEFAULT 0,
			last_active_day TEXT NOT NULL DEFAULT '',
			streak          INTEGER NOT NULL DEFAULT 0,
			freezes         INTEGER NOT NULL DEFAULT 0,
			xp_day          TEXT NOT NULL DEFAULT '',
			xp_gained_today INTEGER NOT NULL DEFAULT 0,
			created_at      INTEGER NOT NULL,
			updated_at      INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_learners_class ON learners(class_code)`,

		// Append-only sets. Rows are only ever inserted.
		`CREATE TABLE IF NOT EXISTS completed_tasks (
			learner_id   TEXT NOT NULL,
			task_id      TEXT NOT NULL,
			completed_at INTEGER NOT NULL,
			PRIMARY KEY (learner_id, task_id)
		)`,
		`CREATE TABLE IF NOT EXISTS learner_badges (
			learner_id TEXT NOT NULL,
			badge      TEXT NOT NULL,
			PRIMARY KEY (learner_id, badge)
		)`,
		`CREATE TABLE IF NOT EXISTS learner_stickers (
			learner_id TEXT NOT NULL,
			sticker    TEXT NOT NULL,
			PRIMARY KEY (learner_id, sticker)
		)`,
		`CREATE TABLE IF NOT EXISTS freeze_days (
			learner_id TEXT NOT NULL,
			day        TEXT NOT NULL,
			PRIMARY KEY (learner_id, day)
		)`,

		// Reward claims: existence of a row IS the grant. The composite
		// primary key makes the claim check-and-record a single atomic
		// INSERT OR IGNORE.
		`CREATE TABLE IF NOT EXISTS reward_claims (
			learner_id TEXT NOT NULL,
			kind       TEXT NOT NULL,
			period_key TEXT NOT NULL,
			granted_at INTEGER NOT NULL,
			PRIMARY KEY (learner_id, kind, period_key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_claims_granted ON reward_claims(granted_at)`,

		`CREATE TABLE IF NOT EXISTS classes (
			code       TEXT PRIMARY KEY,
			label      TEXT NOT NULL,
			created_by TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
