package migrations

import (
	"database/sql"
	"fmt"
)

func init() {
	RegisterGoMigration(1, Up_000001_initial_schema, Down_000001_initial_schema)
}

// Up_000001_initial_schema creates the entity catalog and the session event
// log. Timestamps are stored as RFC3339 TEXT, which sorts correctly as text.
func Up_000001_initial_schema(tx *sql.Tx) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS entities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL DEFAULT 'project',
			priority INTEGER NOT NULL DEFAULT 3,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tags (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS entity_tags (
			entity_id INTEGER NOT NULL,
			tag_id INTEGER NOT NULL,
			PRIMARY KEY (entity_id, tag_id),
			FOREIGN KEY (entity_id) REFERENCES entities(id),
			FOREIGN KEY (tag_id) REFERENCES tags(id)
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			entity_id INTEGER NOT NULL,
			kind TEXT NOT NULL,
			ts TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			FOREIGN KEY (entity_id) REFERENCES entities(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_ts ON events(ts)`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("initial schema: %w", err)
		}
	}
	return nil
}

// Down_000001_initial_schema drops everything created by the up migration.
func Down_000001_initial_schema(tx *sql.Tx) error {
	statements := []string{
		`DROP INDEX IF EXISTS idx_events_ts`,
		`DROP INDEX IF EXISTS idx_events_entity`,
		`DROP INDEX IF EXISTS idx_events_session`,
		`DROP TABLE IF EXISTS events`,
		`DROP TABLE IF EXISTS entity_tags`,
		`DROP TABLE IF EXISTS tags`,
		`DROP TABLE IF EXISTS entities`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("drop initial schema: %w", err)
		}
	}
	return nil
}
