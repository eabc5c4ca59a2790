// Package cluster groups time-ordered photos into bursts. A burst is a
// maximal run of photos in which no two chronologically adjacent shots are
// further apart than a configurable window.
package cluster

import (
	"time"

	"github.com/fpang/photo-clusters/internal/photolib"
)

// Cluster is one contiguous run of photos ordered by capture time.
type Cluster struct {
	Photos []photolib.Photo
}

// Size returns the number of photos in the cluster.
func (c Cluster) Size() int {
	return len(c.Photos)
}

// Start returns the capture time of the first photo.
func (c Cluster) Start() time.Time {
	if len(c.Photos) == 0 {
		return time.Time{}
	}
	return c.Photos[0].TakenAt
}

// End returns the capture time of the last photo.
func (c Cluster) End() time.Time {
	if len(c.Photos) == 0 {
		return time.Time{}
	}
	return c.Photos[len(c.Photos)-1].TakenAt
}

// Duration returns the time spanned by the cluster, zero for a single photo.
func (c Cluster) Duration() time.Duration {
	return c.End().Sub(c.Start())
}

// Options configures Build.
type Options struct {
	// Window is the largest gap allowed between adjacent photos in a
	// cluster. Must be positive.
	Window time.Duration

	// MinSize drops clusters with fewer members from the result.
	// Values below 2 keep every cluster, including single photos.
	MinSize int
}

// Partition splits photos into clusters, breaking wherever the gap between
// two consecutive capture times exceeds window. The gap is measured against
// the previous photo, not the cluster's first photo, so a long burst stays
// together as long as no single step exceeds the window.
//
// The input is sorted by capture time before partitioning; the caller's
// slice is not modified. Every input photo lands in exactly one cluster and
// clusters come back in chronological order. Empty input yields nil.
func Partition(photos []photolib.Photo, window time.Duration) []Cluster {
	if len(photos) == 0 {
		return nil
	}

	sorted := make([]photolib.Photo, len(photos))
	copy(sorted, photos)
	photolib.SortByTakenAt(sorted)

	var clusters []Cluster
	current := []photolib.Photo{sorted[0]}

	for _, photo := range sorted[1:] {
		gap := photo.TakenAt.Sub(current[len(current)-1].TakenAt)
		if gap <= window {
			current = append(current, photo)
			continue
		}
		clusters = append(clusters, Cluster{Photos: current})
		current = []photolib.Photo{photo}
	}
	clusters = append(clusters, Cluster{Photos: current})

	return clusters
}

// Build partitions photos by window and discards clusters smaller than
// opts.MinSize. This is the entry point the organizing workflow uses.
func Build(photos []photolib.Photo, opts Options) []Cluster {
	clusters := Partition(photos, opts.Window)
	if opts.MinSize < 2 {
		return clusters
	}

	kept := clusters[:0]
	for _, c := range clusters {
		if c.Size() >= opts.MinSize {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
