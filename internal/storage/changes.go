package storage

import (
	"database/sql"
	"strconv"

	"sem/internal/model"
)

// ChangeFilter narrows a GetChanges read. Zero values mean "any".
type ChangeFilter struct {
	FilePath   string
	ChangeType string
	EntityType string
	CommitSha  string
	Limit      int
}

// SaveChanges appends a batch of change records, transactionally.
func (db *DB) SaveChanges(changes []model.Change) error {
	return db.WithTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT OR REPLACE INTO changes
				(id, entity_id, change_type, entity_type, entity_name,
				 file_path, old_file_path, before_content, after_content,
				 commit_sha, author)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, c := range changes {
			if _, err := stmt.Exec(
				c.ID, c.EntityID, string(c.ChangeType), c.EntityType,
				c.EntityName, c.FilePath, nullable(c.OldFilePath),
				nullable(c.BeforeContent), nullable(c.AfterContent),
				nullable(c.CommitSha), nullable(c.Author),
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetChanges reads change records matching the filter, newest first.
func (db *DB) GetChanges(filter ChangeFilter) ([]model.Change, error) {
	query := `
		SELECT id, entity_id, change_type, entity_type, entity_name,
		       file_path, COALESCE(old_file_path, ''),
		       COALESCE(before_content, ''), COALESCE(after_content, ''),
		       COALESCE(commit_sha, ''), COALESCE(author, ''), timestamp
		FROM changes
		WHERE 1=1`
	var args []interface{}

	if filter.FilePath != "" {
		query += " AND file_path = ?"
		args = append(args, filter.FilePath)
	}
	if filter.ChangeType != "" {
		query += " AND change_type = ?"
		args = append(args, filter.ChangeType)
	}
	if filter.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filter.EntityType)
	}
	if filter.CommitSha != "" {
		query += " AND commit_sha = ?"
		args = append(args, filter.CommitSha)
	}
	query += " ORDER BY timestamp DESC, id"
	if filter.Limit > 0 {
		query += " LIMIT " + strconv.Itoa(filter.Limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []model.Change
	for rows.Next() {
		var c model.Change
		var changeType string
		if err := rows.Scan(&c.ID, &c.EntityID, &changeType, &c.EntityType,
			&c.EntityName, &c.FilePath, &c.OldFilePath, &c.BeforeContent,
			&c.AfterContent, &c.CommitSha, &c.Author, &c.Timestamp); err != nil {
			return nil, err
		}
		c.ChangeType = model.ChangeType(changeType)
		changes = append(changes, c)
	}
	return changes, rows.Err()
}
