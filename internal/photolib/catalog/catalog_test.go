package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fpang/photo-clusters/internal/photolib"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func testPhoto(path string, takenAt time.Time) photolib.Photo {
	return photolib.Photo{
		Path:          path,
		Filename:      filepath.Base(path),
		Size:          1024,
		TakenAt:       takenAt,
		TakenAtSource: photolib.SourceEXIF,
	}
}

func TestUpsertPhoto(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	inserted, err := c.UpsertPhoto(ctx, testPhoto("/photos/a.jpg", at))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inserted {
		t.Error("first upsert should report an insert")
	}

	// Same path again refreshes instead of inserting.
	refreshed := testPhoto("/photos/a.jpg", at.Add(time.Hour))
	refreshed.Size = 2048
	inserted, err = c.UpsertPhoto(ctx, refreshed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted {
		t.Error("second upsert should report a refresh")
	}

	photos, err := c.Photos(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(photos) != 1 {
		t.Fatalf("got %d photos, want 1", len(photos))
	}
	if photos[0].Size != 2048 {
		t.Errorf("size = %d, want 2048", photos[0].Size)
	}
	if !photos[0].TakenAt.Equal(at.Add(time.Hour)) {
		t.Errorf("taken_at = %v, want %v", photos[0].TakenAt, at.Add(time.Hour))
	}
	if photos[0].ID == "" {
		t.Error("expected a generated photo ID")
	}
}

func TestPhotosOrderedByCaptureTime(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	// Inserted out of chronological order on purpose.
	for _, p := range []photolib.Photo{
		testPhoto("/photos/c.jpg", at.Add(2*time.Minute)),
		testPhoto("/photos/a.jpg", at),
		testPhoto("/photos/b.jpg", at.Add(time.Minute)),
	} {
		if _, err := c.UpsertPhoto(ctx, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	photos, err := c.Photos(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a.jpg", "b.jpg", "c.jpg"}
	if len(photos) != len(want) {
		t.Fatalf("got %d photos, want %d", len(photos), len(want))
	}
	for i, name := range want {
		if photos[i].Filename != name {
			t.Errorf("photo %d = %q, want %q", i, photos[i].Filename, name)
		}
	}
}

func TestPhotosEmptyCatalog(t *testing.T) {
	c := openTestCatalog(t)

	photos, err := c.Photos(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(photos) != 0 {
		t.Errorf("got %d photos from empty catalog, want 0", len(photos))
	}
}

func TestCountPhotos(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	for i, path := range []string{"/photos/a.jpg", "/photos/b.jpg"} {
		if _, err := c.UpsertPhoto(ctx, testPhoto(path, at.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	count, err := c.CountPhotos(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestCatalogPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	c, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	if _, err := c.UpsertPhoto(ctx, testPhoto("/photos/a.jpg", at)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("failed to close catalog: %v", err)
	}

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen catalog: %v", err)
	}
	defer reopened.Close()

	photos, err := reopened.Photos(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(photos) != 1 {
		t.Errorf("got %d photos after reopen, want 1", len(photos))
	}
}

func TestCreateAlbum(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	parent, err := c.CreateAlbum(ctx, "Photo Clusters", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parent.ID == "" {
		t.Error("expected a generated album ID")
	}

	// Same name and parent returns the existing album.
	again, err := c.CreateAlbum(ctx, "Photo Clusters", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.ID != parent.ID {
		t.Errorf("got ID %q, want %q", again.ID, parent.ID)
	}

	child, err := c.CreateAlbum(ctx, "Cluster 1 (2024-06-01 10:00:00)", parent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if child.ID == parent.ID {
		t.Error("child album should have its own ID")
	}
	if child.Parent != parent {
		t.Error("child album does not reference its parent")
	}

	// The same name under a different parent is a different album.
	other, err := c.CreateAlbum(ctx, "Cluster 1 (2024-06-01 10:00:00)", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other.ID == child.ID {
		t.Error("albums under different parents should be distinct")
	}
}

func TestCreateAlbumEmptyName(t *testing.T) {
	c := openTestCatalog(t)

	if _, err := c.CreateAlbum(context.Background(), "", nil); err == nil {
		t.Error("expected error for empty album name")
	}
}

func TestAddToAlbum(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	for i, path := range []string{"/photos/a.jpg", "/photos/b.jpg", "/photos/c.jpg"} {
		if _, err := c.UpsertPhoto(ctx, testPhoto(path, at.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	photos, err := c.Photos(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	album, err := c.CreateAlbum(ctx, "Photo Clusters", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.AddToAlbum(ctx, album, photos[:2]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	members, err := c.AlbumPhotos(ctx, album)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("album holds %d photos, want 2", len(members))
	}
	if members[0].Filename != "a.jpg" || members[1].Filename != "b.jpg" {
		t.Errorf("unexpected order: %q, %q", members[0].Filename, members[1].Filename)
	}

	// Re-adding an existing photo is ignored; new photos are appended.
	if err := c.AddToAlbum(ctx, album, photos); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	members, err = c.AlbumPhotos(ctx, album)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("album holds %d photos, want 3", len(members))
	}
	if members[2].Filename != "c.jpg" {
		t.Errorf("appended photo = %q, want c.jpg", members[2].Filename)
	}
}
