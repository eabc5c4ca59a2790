package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fpang/photo-clusters/internal/photolib"
)

// CreateAlbum returns the album with the given name and parent, creating it
// if it does not exist yet.
func (c *Catalog) CreateAlbum(ctx context.Context, name string, parent *photolib.Album) (*photolib.Album, error) {
	if name == "" {
		return nil, fmt.Errorf("album name is empty")
	}

	var parentID interface{}
	if parent != nil {
		parentID = parent.ID
	}

	var id string
	err := c.conn.QueryRowContext(ctx, `
		SELECT id FROM albums WHERE name = ? AND parent_id IS ?
	`, name, parentID).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		id = uuid.NewString()
		_, err = c.conn.ExecContext(ctx, `
			INSERT INTO albums (id, name, parent_id) VALUES (?, ?, ?)
		`, id, name, parentID)
		if err != nil {
			return nil, fmt.Errorf("failed to create album %q: %w", name, err)
		}

	case err != nil:
		return nil, fmt.Errorf("failed to look up album %q: %w", name, err)
	}

	return &photolib.Album{
		ID:     id,
		Name:   name,
		Parent: parent,
	}, nil
}

// AddToAlbum appends photos to an album, preserving the given order. Photos
// already in the album keep their original position.
func (c *Catalog) AddToAlbum(ctx context.Context, album *photolib.Album, photos []photolib.Photo) error {
	if album == nil {
		return fmt.Errorf("album is nil")
	}

	var next int
	err := c.conn.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(position), -1) + 1 FROM album_photos WHERE album_id = ?
	`, album.ID).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to read album %q: %w", album.Name, err)
	}

	for _, photo := range photos {
		_, err := c.conn.ExecContext(ctx, `
			INSERT OR IGNORE INTO album_photos (album_id, photo_id, position)
			VALUES (?, ?, ?)
		`, album.ID, photo.ID, next)
		if err != nil {
			return fmt.Errorf("failed to add %s to album %q: %w", photo.Filename, album.Name, err)
		}
		next++
	}

	return nil
}

// AlbumPhotos returns the photos in an album in insertion order.
func (c *Catalog) AlbumPhotos(ctx context.Context, album *photolib.Album) ([]photolib.Photo, error) {
	if album == nil {
		return nil, fmt.Errorf("album is nil")
	}

	rows, err := c.conn.QueryContext(ctx, `
		SELECT p.id, p.path, p.filename, p.size, p.taken_at, p.taken_at_source
		FROM album_photos ap
		JOIN photos p ON p.id = ap.photo_id
		WHERE ap.album_id = ?
		ORDER BY ap.position
	`, album.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query album %q: %w", album.Name, err)
	}
	defer rows.Close()

	var photos []photolib.Photo
	for rows.Next() {
		var p photolib.Photo
		var source string
		if err := rows.Scan(&p.ID, &p.Path, &p.Filename, &p.Size, &p.TakenAt, &source); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		p.TakenAtSource = photolib.TimestampSource(source)
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read album %q: %w", album.Name, err)
	}

	return photos, nil
}
