// Package sqlite stores players and completions in a single SQLite file.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (and creates if missing) the database file and makes sure the schema exists
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS players (
		player_id INTEGER PRIMARY KEY,
		progress TEXT NOT NULL DEFAULT '{}',
		created_at INTEGER NOT NULL DEFAULT (strftime('%s','now')),
		updated_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
	);

	CREATE TABLE IF NOT EXISTS completions (
		player_id INTEGER NOT NULL,
		date_key TEXT NOT NULL,
		score INTEGER NOT NULL,
		snapshot TEXT NOT NULL,
		completed_at INTEGER NOT NULL,
		PRIMARY KEY (player_id, date_key),
		FOREIGN KEY (player_id) REFERENCES players(player_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_completions_completed_at ON completions (completed_at);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
