// Package storage persists normalized matches in SQLite so ratings can be
// replayed from them at any time.
package storage

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// walSuffixes are the side files SQLite keeps next to a WAL-mode database.
var walSuffixes = []string{"-wal", "-shm"}

// DB is the match store.
type DB struct {
	conn *sql.DB
	path string
}

func dsn(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
}

// Open opens the match store at path, creating it and its tables if needed.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// In-memory stores live as long as their only connection.
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &DB{conn: conn, path: path}, nil
}

// Path is the location the store was opened from.
func (db *DB) Path() string { return db.path }

// Close releases the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Remove deletes the store at path together with its write-ahead log and
// shared-memory files, so no stale log is replayed into a new store. It reports
// whether the main file existed.
func Remove(path string) (bool, error) {
	existed := true
	if err := os.Remove(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("remove %s: %w", path, err)
		}
		existed = false
	}
	for _, suffix := range walSuffixes {
		if err := os.Remove(path + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return existed, fmt.Errorf("remove %s: %w", path+suffix, err)
		}
	}
	return existed, nil
}
