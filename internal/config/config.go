// Package config resolves runtime defaults from the environment. A .env
// file in the working directory is honored when present, so repeated runs
// against the same library do not need flags every time.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/fpang/photo-clusters/internal/durationutil"
)

type Config struct {
	// Library is the photo-library directory to scan.
	Library string
	// Catalog is the path to a SQLite catalog database. Empty means
	// derive it from the library directory.
	Catalog string
	// AlbumsDir is the directory name albums are created under, relative
	// to the library root.
	AlbumsDir string
	// Window is the default cluster window as a human duration string.
	Window string
	// AlbumName is the default base album name.
	AlbumName string
	// MinSize is the default minimum cluster size.
	MinSize int
	// SubAlbums selects one nested album per cluster by default.
	SubAlbums bool
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Library:   getEnv("PHOTO_CLUSTERS_LIBRARY", ""),
		Catalog:   getEnv("PHOTO_CLUSTERS_CATALOG", ""),
		AlbumsDir: getEnv("PHOTO_CLUSTERS_ALBUMS_DIR", "Albums"),
		Window:    getEnvAsWindow("PHOTO_CLUSTERS_WINDOW", "1 min"),
		AlbumName: getEnv("PHOTO_CLUSTERS_ALBUM", "Photo Clusters"),
		MinSize:   getEnvAsInt("PHOTO_CLUSTERS_MIN_SIZE", 10),
		SubAlbums: getEnvAsBool("PHOTO_CLUSTERS_SUB_ALBUMS", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsWindow keeps the window default usable as a prompt fallback: a
// value that does not parse as a positive duration is replaced by the
// built-in default.
func getEnvAsWindow(key, defaultValue string) string {
	value := getEnv(key, defaultValue)
	if d, err := durationutil.Parse(value); err != nil || d <= 0 {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "t", "true", "y", "yes":
		return true
	case "0", "f", "false", "n", "no":
		return false
	}
	return defaultValue
}
