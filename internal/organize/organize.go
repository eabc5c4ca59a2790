// Package organize turns photo clusters into albums. It is the workflow
// layer between the grouping algorithm and a photolib.Library backend:
// cluster the photos, create the requested album structure, assign members.
package organize

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fpang/photo-clusters/internal/cluster"
	"github.com/fpang/photo-clusters/internal/photolib"
)

// Options configures a clustering run.
type Options struct {
	// Window is the largest time gap allowed inside a cluster.
	Window time.Duration

	// MinSize drops clusters with fewer photos.
	MinSize int

	// AlbumName is the base album every run works under.
	AlbumName string

	// SubAlbums creates one nested album per cluster. When false, all
	// clustered photos land directly in the base album.
	SubAlbums bool

	// DryRun reports what would happen without touching the library.
	DryRun bool
}

// Validate checks the options before a run. Violations are reported one at
// a time so prompts can re-ask for the offending value.
func (o Options) Validate() error {
	if o.Window <= 0 {
		return fmt.Errorf("cluster window must be positive, got %v", o.Window)
	}
	if o.MinSize < 1 {
		return fmt.Errorf("minimum cluster size must be at least 1, got %d", o.MinSize)
	}
	if o.AlbumName == "" {
		return fmt.Errorf("album name must not be empty")
	}
	return nil
}

// AlbumName returns the display name for one cluster's album. Index is
// 1-based in chronological cluster order.
func AlbumName(index int, start time.Time) string {
	return fmt.Sprintf("Cluster %d (%s)", index, start.Format("2006-01-02 15:04:05"))
}

// ClusterSummary describes one kept cluster in a run report.
type ClusterSummary struct {
	Index int
	Size  int
	Start time.Time
	End   time.Time
	Album string
}

// Report summarizes what a run did, or would do under DryRun.
type Report struct {
	// Clusters lists the kept clusters in chronological order.
	Clusters []ClusterSummary

	// TotalPhotos is the number of photos across all kept clusters.
	TotalPhotos int

	// Albums lists the album names created, base album first.
	Albums []string
}

// Empty reports whether the run found nothing to organize.
func (r *Report) Empty() bool {
	return len(r.Clusters) == 0
}

// Run clusters photos and materializes albums in lib. Photos come from the
// caller so the same pass can serve any backend; they do not need to be
// sorted. With no qualifying clusters the library is left untouched and an
// empty report is returned.
func Run(ctx context.Context, lib photolib.Library, photos []photolib.Photo, opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	clusters := cluster.Build(photos, cluster.Options{Window: opts.Window, MinSize: opts.MinSize})

	report := &Report{}
	for i, c := range clusters {
		summary := ClusterSummary{
			Index: i + 1,
			Size:  c.Size(),
			Start: c.Start(),
			End:   c.End(),
			Album: opts.AlbumName,
		}
		if opts.SubAlbums {
			summary.Album = AlbumName(i+1, c.Start())
		}
		report.Clusters = append(report.Clusters, summary)
		report.TotalPhotos += c.Size()

		log.Debug().
			Int("cluster", i+1).
			Int("photos", c.Size()).
			Time("start", c.Start()).
			Time("end", c.End()).
			Msg("Cluster found")
	}

	if report.Empty() {
		log.Info().
			Int("photos", len(photos)).
			Dur("window", opts.Window).
			Int("min_size", opts.MinSize).
			Msg("No clusters met the minimum size")
		return report, nil
	}

	report.Albums = append(report.Albums, opts.AlbumName)
	if opts.SubAlbums {
		for _, c := range report.Clusters {
			report.Albums = append(report.Albums, c.Album)
		}
	}

	if opts.DryRun {
		log.Info().
			Int("clusters", len(report.Clusters)).
			Int("photos", report.TotalPhotos).
			Msg("Dry run, skipping album creation")
		return report, nil
	}

	base, err := lib.CreateAlbum(ctx, opts.AlbumName, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create album %q: %w", opts.AlbumName, err)
	}

	if opts.SubAlbums {
		for i, c := range clusters {
			name := report.Clusters[i].Album
			sub, err := lib.CreateAlbum(ctx, name, base)
			if err != nil {
				return nil, fmt.Errorf("failed to create album %q: %w", name, err)
			}
			if err := lib.AddToAlbum(ctx, sub, c.Photos); err != nil {
				return nil, err
			}
			log.Info().
				Str("album", name).
				Int("photos", c.Size()).
				Msg("Cluster album created")
		}
		return report, nil
	}

	// Flat mode: every clustered photo goes straight into the base album.
	for _, c := range clusters {
		if err := lib.AddToAlbum(ctx, base, c.Photos); err != nil {
			return nil, err
		}
	}
	log.Info().
		Str("album", opts.AlbumName).
		Int("photos", report.TotalPhotos).
		Msg("Photos added to album")

	return report, nil
}
