package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fpang/photo-clusters/internal/cli"
	"github.com/fpang/photo-clusters/internal/config"
	"github.com/fpang/photo-clusters/internal/logging"
	"github.com/fpang/photo-clusters/internal/photolib"
	"github.com/fpang/photo-clusters/internal/photolib/catalog"
	"github.com/fpang/photo-clusters/internal/photolib/fslib"
)

// CLI flags
var (
	directoryFlag string
	catalogFlag   string
	albumsDirFlag string
	maxDepthFlag  int
	limitFlag     int
	verboseFlag   bool
)

// rootCmd is the main Cobra command for the photo-scan CLI.
var rootCmd = &cobra.Command{
	Use:   "photo-scan",
	Short: "Index a photo library into a catalog database",
	Long: `Photo Scan walks a photo library, extracts capture times from EXIF metadata
(with filename patterns and file modification times as fallbacks) and records
every photo in a SQLite catalog. Re-running refreshes metadata for photos
that are already cataloged.

photo-clusters can then cluster from the catalog without re-reading image
metadata from disk:

  photo-scan -d ~/Photos
  photo-clusters --catalog ~/Photos/.photo-clusters.db

Examples:
  photo-scan --directory ~/Photos
  photo-scan -d ~/Photos --catalog /tmp/photos.db
  photo-scan -d ~/Photos --max-depth 2 --limit 1000
  photo-scan  # Interactive mode - prompts for directory`,
	Run: runMain,
}

func init() {
	rootCmd.Flags().StringVarP(&directoryFlag, "directory", "d", "", "Photo library directory to index")
	rootCmd.Flags().StringVar(&catalogFlag, "catalog", "", "Catalog database path (default <directory>/.photo-clusters.db)")
	rootCmd.Flags().StringVar(&albumsDirFlag, "albums-dir", "", "Album directory to exclude from the scan (default \"Albums\")")
	rootCmd.Flags().IntVar(&maxDepthFlag, "max-depth", 0, "Maximum scan recursion depth (0 = unlimited)")
	rootCmd.Flags().IntVar(&limitFlag, "limit", 0, "Maximum photos to index (0 = unlimited)")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runMain is the main execution logic called by Cobra.
func runMain(cmd *cobra.Command, args []string) {
	logging.Init()
	if verboseFlag {
		logging.SetVerbose()
	}

	cfg := config.Load()

	dirPath := directoryFlag
	if dirPath == "" {
		dirPath = cfg.Library
	}
	if dirPath == "" {
		dirPath = cli.PromptForDirectory()
	}
	dirPath = cli.ValidateAndResolveDirectory(dirPath)

	catalogPath := catalogFlag
	if catalogPath == "" {
		catalogPath = cfg.Catalog
	}
	if catalogPath == "" {
		catalogPath = filepath.Join(dirPath, ".photo-clusters.db")
	}

	albumsDir := albumsDirFlag
	if albumsDir == "" {
		albumsDir = cfg.AlbumsDir
	}

	runScan(context.Background(), dirPath, catalogPath, albumsDir)
}

// runScan walks the library and records every photo in the catalog.
func runScan(ctx context.Context, dirPath, catalogPath, albumsDir string) {
	lib, err := fslib.Open(dirPath, fslib.Options{
		AlbumsDir: albumsDir,
		MaxDepth:  maxDepthFlag,
		Limit:     limitFlag,
	})
	if err != nil {
		log.Fatal().Err(err).Str("path", dirPath).Msg("Failed to open library")
	}

	photos, err := lib.Photos(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to scan library")
	}

	if len(photos) == 0 {
		fmt.Println("No photos found.")
		return
	}

	cat, err := catalog.Open(catalogPath)
	if err != nil {
		log.Fatal().Err(err).Str("catalog", catalogPath).Msg("Failed to open catalog")
	}
	defer cat.Close()

	fmt.Println()
	fmt.Println("============================================")
	fmt.Println("Photo Scan")
	fmt.Println("============================================")
	fmt.Printf("Library: %s\n", dirPath)
	fmt.Printf("Catalog: %s\n", catalogPath)
	fmt.Printf("Photos found: %d\n", len(photos))
	if limitFlag > 0 && len(photos) == limitFlag {
		fmt.Printf("(limited to %d)\n", limitFlag)
	}
	fmt.Println("--------------------------------------------")

	var indexed, refreshed int
	sources := make(map[photolib.TimestampSource]int)

	for _, photo := range photos {
		inserted, err := cat.UpsertPhoto(ctx, photo)
		if err != nil {
			log.Fatal().Err(err).Str("path", photo.Path).Msg("Failed to catalog photo")
		}
		if inserted {
			indexed++
		} else {
			refreshed++
		}
		sources[photo.TakenAtSource]++
	}

	total, err := cat.CountPhotos(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to count cataloged photos")
	}

	fmt.Printf("Indexed %d new photos, refreshed %d\n", indexed, refreshed)
	fmt.Printf("Capture times: %d from EXIF, %d from filenames, %d from file mtimes\n",
		sources[photolib.SourceEXIF], sources[photolib.SourceFilename], sources[photolib.SourceModTime])
	fmt.Printf("Catalog now holds %d photos\n", total)
}
