// Package fslib implements the photolib.Library interface on top of a plain
// directory tree. Photos are discovered by walking the library root, capture
// times come from EXIF metadata with filename and mtime fallbacks, and albums
// are directories of hard links under a dedicated albums directory.
package fslib

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/fpang/photo-clusters/internal/photolib"
)

// Options configures a filesystem library.
type Options struct {
	// AlbumsDir names the directory albums are created under, relative to
	// the library root. Defaults to "Albums". The subtree is excluded from
	// scans so linked photos are not discovered twice.
	AlbumsDir string

	// MaxDepth limits scan recursion depth. 0 = unlimited, 1 = top-level only.
	MaxDepth int

	// Limit caps the number of photos returned by a scan. 0 = unlimited.
	Limit int
}

// Library is a photo library backed by a directory tree.
type Library struct {
	root      string
	albumsDir string
	opts      Options
}

var _ photolib.Library = (*Library)(nil)

// skipDirs contains directory names that never hold user photos, mostly
// sync-tool and camera system folders.
var skipDirs = map[string]bool{
	".stfolder":       true,
	".fseventsd":      true,
	".Trashes":        true,
	".Spotlight-V100": true,
	"PRIVATE":         true,
	"AVF_INFO":        true,
	"THMBNL":          true,
}

// Open validates dir and returns a Library rooted there. The albums
// directory is not created until the first album is.
func Open(dir string, opts Options) (*Library, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory not found: %s", dir)
		}
		return nil, fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	if opts.AlbumsDir == "" {
		opts.AlbumsDir = "Albums"
	}

	return &Library{
		root:      absPath,
		albumsDir: filepath.Join(absPath, opts.AlbumsDir),
		opts:      opts,
	}, nil
}

// Root returns the library's root directory.
func (l *Library) Root() string {
	return l.root
}

// Photos walks the library tree and returns every photo and video with its
// capture time, ordered ascending by capture time.
//
// Hidden files, camera system folders and the albums directory are skipped.
// Symlinks to files are followed; symlinks to directories are skipped to
// prevent infinite loops. Unreadable entries are logged and skipped rather
// than failing the scan.
func (l *Library) Photos(ctx context.Context) ([]photolib.Photo, error) {
	log.Info().
		Str("path", l.root).
		Int("max_depth", l.opts.MaxDepth).
		Int("limit", l.opts.Limit).
		Msg("Scanning library for photos")

	baseDepth := strings.Count(l.root, string(os.PathSeparator))

	var photos []photolib.Photo
	limitReached := false

	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error accessing path, skipping")
			return nil // Continue walking despite errors
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if path == l.albumsDir {
				return fs.SkipDir
			}
			if path != l.root && (strings.HasPrefix(d.Name(), ".") || skipDirs[d.Name()]) {
				return fs.SkipDir
			}
			if l.opts.MaxDepth > 0 {
				currentDepth := strings.Count(path, string(os.PathSeparator)) - baseDepth
				if currentDepth >= l.opts.MaxDepth {
					return fs.SkipDir
				}
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		// Handle symlinks: follow file symlinks, skip directory symlinks
		if d.Type()&fs.ModeSymlink != 0 {
			linkTarget, err := filepath.EvalSymlinks(path)
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Failed to resolve symlink, skipping")
				return nil
			}

			targetInfo, err := os.Stat(linkTarget)
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Failed to stat symlink target, skipping")
				return nil
			}

			if targetInfo.IsDir() {
				log.Debug().Str("path", path).Msg("Skipping symlink to directory")
				return nil
			}
		}

		if l.opts.Limit > 0 && len(photos) >= l.opts.Limit {
			limitReached = true
			return fs.SkipAll
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if !isSupported(ext) {
			return nil
		}

		photo, err := loadPhoto(path)
		if err != nil {
			log.Warn().Err(err).Str("file", d.Name()).Msg("Failed to load photo, skipping")
			return nil
		}

		photos = append(photos, photo)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	photolib.SortByTakenAt(photos)

	logEvent := log.Info().
		Int("total_photos", len(photos)).
		Str("directory", l.root)
	if limitReached {
		logEvent.Bool("limit_reached", true)
	}
	logEvent.Msg("Library scan complete")

	return photos, nil
}

// loadPhoto builds a Photo record for the file at path, resolving its
// capture time through the EXIF, filename and mtime fallback chain.
func loadPhoto(path string) (photolib.Photo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return photolib.Photo{}, fmt.Errorf("failed to stat file: %w", err)
	}

	takenAt, source := photoDate(path, info)

	log.Debug().
		Str("path", path).
		Time("taken_at", takenAt).
		Str("source", string(source)).
		Msg("Photo loaded")

	return photolib.Photo{
		ID:            path,
		Path:          path,
		Filename:      filepath.Base(path),
		Size:          info.Size(),
		TakenAt:       takenAt,
		TakenAtSource: source,
	}, nil
}
