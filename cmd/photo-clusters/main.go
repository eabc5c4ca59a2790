package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fpang/photo-clusters/internal/cli"
	"github.com/fpang/photo-clusters/internal/config"
	"github.com/fpang/photo-clusters/internal/durationutil"
	"github.com/fpang/photo-clusters/internal/logging"
	"github.com/fpang/photo-clusters/internal/organize"
	"github.com/fpang/photo-clusters/internal/photolib"
	"github.com/fpang/photo-clusters/internal/photolib/catalog"
	"github.com/fpang/photo-clusters/internal/photolib/fslib"
)

// CLI flags
var (
	directoryFlag string
	catalogFlag   string
	albumsDirFlag string
	windowFlag    string
	albumFlag     string
	minSizeFlag   int
	subAlbumsFlag bool
	maxDepthFlag  int
	limitFlag     int
	dryRunFlag    bool
	verboseFlag   bool
)

// rootCmd is the main Cobra command for the photo-clusters CLI.
var rootCmd = &cobra.Command{
	Use:   "photo-clusters",
	Short: "Group photos into time clusters and organize them into albums",
	Long: `Photo Clusters scans a photo library, groups photos taken close together in
time into clusters, and creates albums for them. Capture times come from EXIF
metadata, with filename patterns and file modification times as fallbacks.

Photos whose gap to the previous photo stays within the time window belong to
the same cluster. Clusters smaller than the minimum size are ignored. Each
kept cluster becomes a sub-album named "Cluster N (start time)" under the
base album; with sub-albums off, all clustered photos land in the base album.

Options omitted on the command line are asked for interactively.

Examples:
  photo-clusters --directory ~/Photos
  photo-clusters -d ~/Photos --window "30 sec" --min-size 5
  photo-clusters -d ~/Photos --album "Bursts" --sub-albums=false
  photo-clusters --catalog ~/Photos/.photo-clusters.db --dry-run
  photo-clusters  # Interactive mode - prompts for everything`,
	Run: runMain,
}

func init() {
	rootCmd.Flags().StringVarP(&directoryFlag, "directory", "d", "", "Photo library directory to scan")
	rootCmd.Flags().StringVar(&catalogFlag, "catalog", "", "Cluster from a photo-scan catalog instead of scanning a directory")
	rootCmd.Flags().StringVar(&albumsDirFlag, "albums-dir", "", "Directory albums are created under, relative to the library root (default \"Albums\")")
	rootCmd.Flags().StringVarP(&windowFlag, "window", "w", "1 min", "Largest time gap between photos in a cluster (e.g. \"30 sec\", \"1.5 hour\")")
	rootCmd.Flags().StringVarP(&albumFlag, "album", "a", "Photo Clusters", "Base album name")
	rootCmd.Flags().IntVarP(&minSizeFlag, "min-size", "m", 10, "Minimum photos per cluster")
	rootCmd.Flags().BoolVarP(&subAlbumsFlag, "sub-albums", "s", true, "Create one sub-album per cluster")
	rootCmd.Flags().IntVar(&maxDepthFlag, "max-depth", 0, "Maximum scan recursion depth (0 = unlimited)")
	rootCmd.Flags().IntVar(&limitFlag, "limit", 0, "Maximum photos to consider (0 = unlimited)")
	rootCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Report clusters without creating albums")
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

	opts := organize.Options{DryRun: dryRunFlag}

	// Each core option falls back to an interactive prompt when its flag
	// is omitted; the environment supplies the prompt defaults.
	if cmd.Flags().Changed("window") {
		window, err := durationutil.Parse(windowFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid cluster window")
		}
		opts.Window = window
	} else {
		opts.Window = cli.PromptDuration("Time delta between clusters", cfg.Window)
	}

	if cmd.Flags().Changed("album") {
		opts.AlbumName = albumFlag
	} else {
		opts.AlbumName = cli.PromptString("Album name", cfg.AlbumName)
	}

	if cmd.Flags().Changed("min-size") {
		opts.MinSize = minSizeFlag
	} else {
		opts.MinSize = cli.PromptInt("Minimum photos in a cluster", cfg.MinSize, 1)
	}

	if cmd.Flags().Changed("sub-albums") {
		opts.SubAlbums = subAlbumsFlag
	} else {
		opts.SubAlbums = cli.PromptBool("Create sub-albums", cfg.SubAlbums)
	}

	if err := opts.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid options")
	}

	lib, source := openLibrary(cfg)
	if closer, ok := lib.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	run(context.Background(), lib, source, opts)
}

// openLibrary picks the backend for this run: a SQLite catalog when one is
// requested, the directory scanner otherwise.
func openLibrary(cfg *config.Config) (photolib.Library, string) {
	catalogPath := catalogFlag
	if catalogPath == "" && directoryFlag == "" && cfg.Library == "" {
		catalogPath = cfg.Catalog
	}

	if catalogPath != "" {
		if _, err := os.Stat(catalogPath); err != nil {
			log.Fatal().Err(err).Str("catalog", catalogPath).Msg("Catalog not found, run photo-scan first")
		}
		cat, err := catalog.Open(catalogPath)
		if err != nil {
			log.Fatal().Err(err).Str("catalog", catalogPath).Msg("Failed to open catalog")
		}
		return cat, catalogPath
	}

	dirPath := directoryFlag
	if dirPath == "" {
		dirPath = cfg.Library
	}
	if dirPath == "" {
		dirPath = cli.PromptForDirectory()
	}
	dirPath = cli.ValidateAndResolveDirectory(dirPath)

	albumsDir := albumsDirFlag
	if albumsDir == "" {
		albumsDir = cfg.AlbumsDir
	}

	lib, err := fslib.Open(dirPath, fslib.Options{
		AlbumsDir: albumsDir,
		MaxDepth:  maxDepthFlag,
		Limit:     limitFlag,
	})
	if err != nil {
		log.Fatal().Err(err).Str("path", dirPath).Msg("Failed to open library")
	}
	return lib, dirPath
}

// run enumerates photos, clusters them and reports the outcome.
func run(ctx context.Context, lib photolib.Library, source string, opts organize.Options) {
	photos, err := lib.Photos(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to enumerate photos")
	}

	if len(photos) == 0 {
		fmt.Println("No photos found.")
		return
	}

	fmt.Println()
	fmt.Println("============================================")
	fmt.Println("Photo Clusters")
	fmt.Println("============================================")
	fmt.Printf("Library: %s\n", source)
	fmt.Printf("Photos found: %d\n", len(photos))
	if limitFlag > 0 && len(photos) == limitFlag {
		fmt.Printf("(limited to %d)\n", limitFlag)
	}
	fmt.Printf("Window: %v\n", opts.Window)
	fmt.Printf("Minimum cluster size: %d\n", opts.MinSize)
	fmt.Printf("Sub-albums: %s\n", yesNo(opts.SubAlbums))
	if opts.DryRun {
		fmt.Println("Mode: DRY RUN (no albums created)")
	}
	fmt.Println("--------------------------------------------")

	report, err := organize.Run(ctx, lib, photos, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to organize clusters")
	}

	if report.Empty() {
		fmt.Println("No photo clusters found.")
		return
	}

	fmt.Printf("Found %d clusters with a total of %d photos\n", len(report.Clusters), report.TotalPhotos)
	fmt.Println()
	for _, c := range report.Clusters {
		fmt.Printf("  %2d. %s - %d photos, spanning %s\n",
			c.Index, cli.FormatTimestamp(c.Start), c.Size, cli.FormatDurationShort(c.End.Sub(c.Start)))
	}
	fmt.Println()

	if opts.DryRun {
		fmt.Println("Dry run complete. No albums were created.")
		return
	}

	fmt.Printf("Added photos to album '%s'\n", opts.AlbumName)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
