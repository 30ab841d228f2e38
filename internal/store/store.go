// Package store persists PhotoScout entities in SQLite and keeps the
// per-location weather aggregates in memory. Inserts assign entity identity
// from the database; reads rehydrate entities without raising domain events.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

const schema = `
CREATE TABLE IF NOT EXISTS locations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	lat REAL NOT NULL,
	lon REAL NOT NULL,
	city TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL DEFAULT '',
	photo_path TEXT NOT NULL DEFAULT '',
	deleted INTEGER NOT NULL DEFAULT 0,
	modified_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	key TEXT NOT NULL UNIQUE,
	value TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tip_types (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	locale TEXT NOT NULL DEFAULT 'en-US'
);
CREATE TABLE IF NOT EXISTS tips (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	tip_type_id INTEGER NOT NULL REFERENCES tip_types(id),
	title TEXT NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	locale TEXT NOT NULL DEFAULT 'en-US',
	f_stop TEXT NOT NULL DEFAULT '',
	shutter_speed TEXT NOT NULL DEFAULT '',
	iso TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_locations_deleted ON locations(deleted);
CREATE INDEX IF NOT EXISTS idx_tips_type ON tips(tip_type_id);
`

// timeLayout is the column format for timestamps; RFC3339Nano round-trips
// entity timestamps exactly.
const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"

// Store wraps the SQLite handle shared by the repositories.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and bootstraps the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
