package config

import (
	"testing"
)

// clearEnv blanks every config variable so tests see the built-in defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PHOTO_CLUSTERS_LIBRARY",
		"PHOTO_CLUSTERS_CATALOG",
		"PHOTO_CLUSTERS_ALBUMS_DIR",
		"PHOTO_CLUSTERS_WINDOW",
		"PHOTO_CLUSTERS_ALBUM",
		"PHOTO_CLUSTERS_MIN_SIZE",
		"PHOTO_CLUSTERS_SUB_ALBUMS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.Library != "" {
		t.Errorf("Library = %q, want empty", cfg.Library)
	}
	if cfg.AlbumsDir != "Albums" {
		t.Errorf("AlbumsDir = %q, want Albums", cfg.AlbumsDir)
	}
	if cfg.Window != "1 min" {
		t.Errorf("Window = %q, want \"1 min\"", cfg.Window)
	}
	if cfg.AlbumName != "Photo Clusters" {
		t.Errorf("AlbumName = %q, want \"Photo Clusters\"", cfg.AlbumName)
	}
	if cfg.MinSize != 10 {
		t.Errorf("MinSize = %d, want 10", cfg.MinSize)
	}
	if !cfg.SubAlbums {
		t.Error("SubAlbums = false, want true")
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PHOTO_CLUSTERS_LIBRARY", "/photos")
	t.Setenv("PHOTO_CLUSTERS_WINDOW", "30 sec")
	t.Setenv("PHOTO_CLUSTERS_ALBUM", "Bursts")
	t.Setenv("PHOTO_CLUSTERS_MIN_SIZE", "3")
	t.Setenv("PHOTO_CLUSTERS_SUB_ALBUMS", "no")

	cfg := Load()

	if cfg.Library != "/photos" {
		t.Errorf("Library = %q, want /photos", cfg.Library)
	}
	if cfg.Window != "30 sec" {
		t.Errorf("Window = %q, want \"30 sec\"", cfg.Window)
	}
	if cfg.AlbumName != "Bursts" {
		t.Errorf("AlbumName = %q, want Bursts", cfg.AlbumName)
	}
	if cfg.MinSize != 3 {
		t.Errorf("MinSize = %d, want 3", cfg.MinSize)
	}
	if cfg.SubAlbums {
		t.Error("SubAlbums = true, want false")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PHOTO_CLUSTERS_WINDOW", "soonish")
	t.Setenv("PHOTO_CLUSTERS_MIN_SIZE", "lots")
	t.Setenv("PHOTO_CLUSTERS_SUB_ALBUMS", "maybe")

	cfg := Load()

	if cfg.Window != "1 min" {
		t.Errorf("Window = %q, want the default for an unparseable value", cfg.Window)
	}
	if cfg.MinSize != 10 {
		t.Errorf("MinSize = %d, want the default for an unparseable value", cfg.MinSize)
	}
	if !cfg.SubAlbums {
		t.Error("SubAlbums should fall back to the default for an unparseable value")
	}
}

func TestLoadRejectsNonPositiveWindow(t *testing.T) {
	clearEnv(t)
	t.Setenv("PHOTO_CLUSTERS_WINDOW", "-5 min")

	cfg := Load()

	if cfg.Window != "1 min" {
		t.Errorf("Window = %q, want the default for a non-positive value", cfg.Window)
	}
}
