package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so
// Migrate can run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := backfillStatusPositions(db); err != nil {
		return fmt.Errorf("backfilling status positions: %w", err)
	}
	return nil
}

// backfillStatusPositions numbers statuses that predate the position
// column in name order, after any already positioned ones.
func backfillStatusPositions(db *sql.DB) error {
	var next int
	if err := db.QueryRow(`SELECT COALESCE(MAX(position), -1) + 1 FROM statuses`).Scan(&next); err != nil {
		return fmt.Errorf("reading max position: %w", err)
	}

	rows, err := db.Query(`SELECT id FROM statuses WHERE position < 0 ORDER BY name, id`)
	if err != nil {
		return fmt.Errorf("listing unpositioned statuses: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning status id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating statuses: %w", err)
	}

	for _, id := range ids {
		if _, err := db.Exec(`UPDATE statuses SET position = ? WHERE id = ?`, next, id); err != nil {
			return fmt.Errorf("positioning status %s: %w", id, err)
		}
		next++
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS statuses (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		color      TEXT NOT NULL DEFAULT '#6B7280',
		created_at TEXT NOT NULL
	)`,

	`ALTER TABLE statuses ADD COLUMN position INTEGER NOT NULL DEFAULT -1`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_statuses_name ON statuses(name)`,

	`CREATE TABLE IF NOT EXISTS items (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		start_at   TEXT NOT NULL,
		end_at     TEXT,
		status_id  TEXT NOT NULL REFERENCES statuses(id) ON DELETE RESTRICT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`ALTER TABLE items ADD COLUMN group_name TEXT NOT NULL DEFAULT ''`,

	`CREATE INDEX IF NOT EXISTS idx_items_status ON items(status_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_end ON items(end_at)`,

	`CREATE TABLE IF NOT EXISTS markers (
		id               TEXT PRIMARY KEY,
		date             TEXT NOT NULL,
		label            TEXT NOT NULL,
		background_color TEXT NOT NULL DEFAULT '',
		text_color       TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_markers_date ON markers(date)`,
}
