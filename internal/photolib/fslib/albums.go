package fslib

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/fpang/photo-clusters/internal/photolib"
)

// CreateAlbum creates an album directory with the given name, nested under
// parent when parent is non-nil and under the albums directory otherwise.
// An album that already exists is returned as-is.
func (l *Library) CreateAlbum(ctx context.Context, name string, parent *photolib.Album) (*photolib.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("album name is empty")
	}

	base := l.albumsDir
	if parent != nil {
		base = parent.Path
	}
	path := filepath.Join(base, sanitizeAlbumName(name))

	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create album %q: %w", name, err)
	}

	log.Debug().Str("name", name).Str("path", path).Msg("Album ready")

	return &photolib.Album{
		ID:     path,
		Name:   name,
		Path:   path,
		Parent: parent,
	}, nil
}

// AddToAlbum links photos into an album directory. Hard links keep albums
// cheap; a copy is made when linking fails (cross-device libraries, or
// filesystems without hard links). A photo whose name and size already match
// a file in the album is treated as present and skipped; a name collision
// with a different size gets a numeric suffix.
func (l *Library) AddToAlbum(ctx context.Context, album *photolib.Album, photos []photolib.Photo) error {
	if album == nil {
		return fmt.Errorf("album is nil")
	}

	for _, photo := range photos {
		if err := ctx.Err(); err != nil {
			return err
		}

		destPath := filepath.Join(album.Path, photo.Filename)

		if destInfo, err := os.Stat(destPath); err == nil {
			if destInfo.Size() == photo.Size {
				log.Debug().Str("file", photo.Filename).Str("album", album.Name).Msg("Photo already in album, skipping")
				continue
			}
			// Different file with same name - add numeric suffix
			ext := filepath.Ext(destPath)
			base := strings.TrimSuffix(destPath, ext)
			counter := 1
			for {
				destPath = fmt.Sprintf("%s_%d%s", base, counter, ext)
				if _, err := os.Stat(destPath); os.IsNotExist(err) {
					break
				}
				counter++
			}
		}

		if err := linkOrCopy(photo.Path, destPath); err != nil {
			return fmt.Errorf("failed to add %s to album %q: %w", photo.Filename, album.Name, err)
		}
	}

	return nil
}

// sanitizeAlbumName makes an album name safe to use as a directory name.
func sanitizeAlbumName(name string) string {
	name = strings.ReplaceAll(name, string(os.PathSeparator), "-")
	name = strings.ReplaceAll(name, "\x00", "")
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return "_"
	}
	return name
}

// linkOrCopy hard-links src to dst, falling back to a copy when the link
// fails.
func linkOrCopy(src, dst string) error {
	if err := os.Link(src, dst); err == nil {
		return nil
	}
	return copyFile(src, dst)
}

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}
	return dstFile.Close()
}
