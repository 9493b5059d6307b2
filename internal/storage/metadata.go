package storage

import "database/sql"

// SetMetadata stores a key/value pair, replacing any previous value.
func (db *DB) SetMetadata(key, value string) error {
	return db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)",
			key, value,
		)
		return err
	})
}

// GetMetadata reads a value; missing keys return "" with ok=false.
func (db *DB) GetMetadata(key string) (string, bool, error) {
	var value string
	err := db.conn.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}
