package storage

import (
	"database/sql"
	"fmt"
)

// initializeSchema creates all tables and indexes. Every statement is
// idempotent, so opening an existing database is a no-op.
func (db *DB) initializeSchema() error {
	return db.WithTx(func(tx *sql.Tx) error {
		statements := []string{
			`CREATE TABLE IF NOT EXISTS entities (
				id TEXT NOT NULL,
				file_path TEXT NOT NULL,
				entity_type TEXT NOT NULL,
				name TEXT NOT NULL,
				parent_id TEXT,
				content TEXT NOT NULL,
				content_hash TEXT NOT NULL,
				start_line INTEGER NOT NULL,
				end_line INTEGER NOT NULL,
				commit_sha TEXT,
				snapshot TEXT NOT NULL DEFAULT 'current',
				PRIMARY KEY (id, snapshot)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_entities_file_path ON entities(file_path)`,
			`CREATE INDEX IF NOT EXISTS idx_entities_entity_type ON entities(entity_type)`,
			`CREATE INDEX IF NOT EXISTS idx_entities_snapshot ON entities(snapshot)`,
			`CREATE INDEX IF NOT EXISTS idx_entities_content_hash ON entities(content_hash)`,

			`CREATE TABLE IF NOT EXISTS changes (
				id TEXT PRIMARY KEY,
				entity_id TEXT NOT NULL,
				change_type TEXT NOT NULL,
				entity_type TEXT NOT NULL,
				entity_name TEXT NOT NULL,
				file_path TEXT NOT NULL,
				old_file_path TEXT,
				before_content TEXT,
				after_content TEXT,
				commit_sha TEXT,
				author TEXT,
				timestamp TEXT NOT NULL DEFAULT (datetime('now'))
			)`,
			`CREATE INDEX IF NOT EXISTS idx_changes_file_path ON changes(file_path)`,
			`CREATE INDEX IF NOT EXISTS idx_changes_change_type ON changes(change_type)`,
			`CREATE INDEX IF NOT EXISTS idx_changes_entity_type ON changes(entity_type)`,
			`CREATE INDEX IF NOT EXISTS idx_changes_commit_sha ON changes(commit_sha)`,

			`CREATE TABLE IF NOT EXISTS metadata (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			)`,

			`CREATE TABLE IF NOT EXISTS labels (
				entity_id TEXT NOT NULL,
				label TEXT NOT NULL,
				created_at TEXT NOT NULL DEFAULT (datetime('now')),
				PRIMARY KEY (entity_id, label)
			)`,

			`CREATE TABLE IF NOT EXISTS comments (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				entity_id TEXT NOT NULL,
				author TEXT,
				body TEXT NOT NULL,
				created_at TEXT NOT NULL DEFAULT (datetime('now'))
			)`,
		}

		for _, stmt := range statements {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("schema statement failed: %w", err)
			}
		}
		return nil
	})
}
