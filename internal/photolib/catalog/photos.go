package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fpang/photo-clusters/internal/photolib"
)

// UpsertPhoto records a photo in the catalog, keyed by its file path. A
// photo seen for the first time is inserted under a fresh ID and true is
// returned; a photo already present has its metadata refreshed in place.
func (c *Catalog) UpsertPhoto(ctx context.Context, photo photolib.Photo) (bool, error) {
	var id string
	err := c.conn.QueryRowContext(ctx, `SELECT id FROM photos WHERE path = ?`, photo.Path).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		id = uuid.NewString()
		_, err = c.conn.ExecContext(ctx, `
			INSERT INTO photos (id, path, filename, size, taken_at, taken_at_source)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, photo.Path, photo.Filename, photo.Size, photo.TakenAt, string(photo.TakenAtSource))
		if err != nil {
			return false, fmt.Errorf("failed to insert photo: %w", err)
		}
		return true, nil

	case err != nil:
		return false, fmt.Errorf("failed to look up photo: %w", err)
	}

	_, err = c.conn.ExecContext(ctx, `
		UPDATE photos
		SET filename = ?, size = ?, taken_at = ?, taken_at_source = ?, indexed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, photo.Filename, photo.Size, photo.TakenAt, string(photo.TakenAtSource), id)
	if err != nil {
		return false, fmt.Errorf("failed to update photo: %w", err)
	}
	return false, nil
}

// Photos returns every cataloged photo ordered ascending by capture time.
func (c *Catalog) Photos(ctx context.Context) ([]photolib.Photo, error) {
	rows, err := c.conn.QueryContext(ctx, `
		SELECT id, path, filename, size, taken_at, taken_at_source
		FROM photos
		ORDER BY taken_at, path
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
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
		return nil, fmt.Errorf("failed to read photos: %w", err)
	}

	return photos, nil
}

// CountPhotos returns the number of cataloged photos.
func (c *Catalog) CountPhotos(ctx context.Context) (int, error) {
	var count int
	if err := c.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return count, nil
}
