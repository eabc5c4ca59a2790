// Package catalog implements the photolib.Library interface on top of a
// SQLite database. A catalog is built by indexing a directory once and then
// serves photo queries and album bookkeeping without re-reading metadata
// from disk. Albums live in the database only; no files are moved or linked.
package catalog

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fpang/photo-clusters/internal/photolib"
)

// Catalog is a photo library backed by a SQLite database.
type Catalog struct {
	conn *sql.DB
	path string
}

var _ photolib.Library = (*Catalog)(nil)

// Open opens or creates the catalog database at dbPath.
func Open(dbPath string) (*Catalog, error) {
	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	c := &Catalog{conn: conn, path: dbPath}

	if err := c.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return c, nil
}

// migrate creates the necessary tables if they don't exist.
func (c *Catalog) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS photos (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL UNIQUE,
		filename TEXT NOT NULL,
		size INTEGER DEFAULT 0,
		taken_at DATETIME NOT NULL,
		taken_at_source TEXT NOT NULL,
		indexed_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS albums (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		parent_id TEXT REFERENCES albums(id) ON DELETE CASCADE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS album_photos (
		album_id TEXT NOT NULL REFERENCES albums(id) ON DELETE CASCADE,
		photo_id TEXT NOT NULL REFERENCES photos(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		PRIMARY KEY (album_id, photo_id)
	);

	CREATE INDEX IF NOT EXISTS idx_photos_taken_at ON photos(taken_at);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_albums_name_parent ON albums(name, parent_id);
	CREATE INDEX IF NOT EXISTS idx_album_photos_album ON album_photos(album_id);
	`

	_, err := c.conn.Exec(schema)
	return err
}

// Path returns the catalog database path.
func (c *Catalog) Path() string {
	return c.path
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.conn.Close()
}
