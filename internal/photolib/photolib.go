// Package photolib defines the photo-library surface the clustering workflow
// consumes: enumerate photos with capture timestamps, create albums, and
// assign photos to albums.
//
// Backends translate their own storage into the plain Photo record defined
// here, so the grouping logic never touches backend types. Two backends are
// provided: fslib walks a directory tree and reads metadata per run, and
// catalog serves the same surface from a SQLite database.
package photolib

import (
	"context"
	"sort"
	"time"
)

// TimestampSource records where a photo's capture time was recovered from.
type TimestampSource string

const (
	// SourceEXIF means the timestamp came from embedded EXIF metadata.
	SourceEXIF TimestampSource = "exif"
	// SourceFilename means the timestamp was parsed from the filename.
	SourceFilename TimestampSource = "filename"
	// SourceModTime means the file modification time was used as a last resort.
	SourceModTime TimestampSource = "mtime"
)

// Photo is a reference to a single photo in a library. The record is
// immutable from the workflow's point of view; the backing file or row is
// owned by the library.
type Photo struct {
	// ID is the backend identifier: the absolute file path for the
	// filesystem backend, a UUID for the catalog backend.
	ID string

	// Path is the location of the photo file on disk.
	Path string

	// Filename is the base name of the photo file.
	Filename string

	// Size is the file size in bytes.
	Size int64

	// TakenAt is the capture timestamp, second precision or better.
	TakenAt time.Time

	// TakenAtSource records how TakenAt was determined.
	TakenAtSource TimestampSource
}

// Album is a reference to an album, possibly nested under a parent.
type Album struct {
	// ID is the backend identifier; filesystem albums use their directory
	// path, catalog albums a UUID.
	ID string

	// Name is the album display name.
	Name string

	// Path locates the album for the filesystem backend. Empty for
	// catalog albums.
	Path string

	// Parent is the enclosing album, or nil for a top-level album.
	Parent *Album
}

// Library is the photo-library surface consumed by the clustering workflow.
// All calls are blocking and issued sequentially; implementations do not need
// to be safe for concurrent use.
type Library interface {
	// Photos returns every photo in the library that has a usable
	// timestamp, ordered ascending by capture time. An empty library
	// yields an empty slice, not an error.
	Photos(ctx context.Context) ([]Photo, error)

	// CreateAlbum creates an album with the given name, nested under
	// parent when parent is non-nil. Creating an album that already
	// exists returns the existing album.
	CreateAlbum(ctx context.Context, name string, parent *Album) (*Album, error)

	// AddToAlbum appends photos to an album in the given order. Photos
	// already present in the album are left in place.
	AddToAlbum(ctx context.Context, album *Album, photos []Photo) error
}

// SortByTakenAt orders photos ascending by capture time in place. The sort
// is stable so photos sharing a timestamp keep their relative order.
func SortByTakenAt(photos []Photo) {
	sort.SliceStable(photos, func(i, j int) bool {
		return photos[i].TakenAt.Before(photos[j].TakenAt)
	})
}
