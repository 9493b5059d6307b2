// Package storage persists entities and change records in a single-file
// SQLite store under .sem/ and answers the filter and ad-hoc queries built
// on top of it.
package storage

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"sem/internal/semerr"
)

// DB wraps the SQLite connection with transaction helpers. The connection is
// single-writer: mutations serialise through a transaction lock while
// readers run concurrently.
type DB struct {
	conn    *sql.DB
	logger  *slog.Logger
	dbPath  string
	writeMu sync.Mutex
}

// Open opens or creates the database at <repoRoot>/.sem/sem.db and ensures
// the schema exists. Any failure is reported as STORE_UNAVAILABLE and leaves
// no partial state behind.
func Open(repoRoot string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	semDir := filepath.Join(repoRoot, ".sem")
	if err := os.MkdirAll(semDir, 0755); err != nil {
		return nil, semerr.New(semerr.StoreUnavailable, "failed to create .sem directory", err)
	}

	dbPath := filepath.Join(semDir, "sem.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, semerr.New(semerr.StoreUnavailable, "failed to open database", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",   // Write-Ahead Logging for better concurrency
		"PRAGMA synchronous=NORMAL", // Balance between safety and performance
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, semerr.New(semerr.StoreUnavailable, "failed to set pragma", err)
		}
	}

	db := &DB{conn: conn, logger: logger, dbPath: dbPath}
	if err := db.initializeSchema(); err != nil {
		conn.Close()
		return nil, semerr.New(semerr.StoreUnavailable, "failed to initialize schema", err)
	}

	logger.Debug("database opened", "path", dbPath)
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Path returns the database file location.
func (db *DB) Path() string {
	return db.dbPath
}

// WithTx executes fn inside a transaction, committing on success and rolling
// back on error or panic. Mutating callers funnel through here, which keeps
// the store single-writer.
func (db *DB) WithTx(fn func(*sql.Tx) error) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return semerr.New(semerr.StoreUnavailable, "failed to begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Error("failed to rollback transaction",
				"error", err, "rollback_error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return semerr.New(semerr.StoreUnavailable, "failed to commit transaction", err)
	}
	return nil
}
