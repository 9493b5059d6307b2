package storage

import (
	"database/sql"

	"sem/internal/model"
)

// SaveEntities upserts a batch of entities into a snapshot. The batch is
// transactional: either every entity lands or none does.
func (db *DB) SaveEntities(entities []model.Entity, snapshot, commitSha string) error {
	if snapshot == "" {
		snapshot = "current"
	}
	return db.WithTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT OR REPLACE INTO entities
				(id, file_path, entity_type, name, parent_id, content,
				 content_hash, start_line, end_line, commit_sha, snapshot)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, e := range entities {
			if _, err := stmt.Exec(
				e.ID, e.FilePath, e.EntityType, e.Name, nullable(e.ParentID),
				e.Content, e.ContentHash, e.StartLine, e.EndLine,
				nullable(commitSha), snapshot,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetEntities reads back a snapshot, optionally restricted to one file.
// Entities come out ordered by file path and start line.
func (db *DB) GetEntities(snapshot, filePath string) ([]model.Entity, error) {
	if snapshot == "" {
		snapshot = "current"
	}

	query := `
		SELECT id, file_path, entity_type, name, COALESCE(parent_id, ''),
		       content, content_hash, start_line, end_line
		FROM entities
		WHERE snapshot = ?`
	args := []interface{}{snapshot}
	if filePath != "" {
		query += " AND file_path = ?"
		args = append(args, filePath)
	}
	query += " ORDER BY file_path, start_line, id"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []model.Entity
	for rows.Next() {
		var e model.Entity
		if err := rows.Scan(&e.ID, &e.FilePath, &e.EntityType, &e.Name,
			&e.ParentID, &e.Content, &e.ContentHash, &e.StartLine, &e.EndLine); err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// ClearSnapshot deletes every entity in a snapshot.
func (db *DB) ClearSnapshot(snapshot string) error {
	if snapshot == "" {
		snapshot = "current"
	}
	return db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec("DELETE FROM entities WHERE snapshot = ?", snapshot)
		return err
	})
}

// nullable maps "" to NULL so optional columns stay NULL rather than empty.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
