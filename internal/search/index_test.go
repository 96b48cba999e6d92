package search

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/dmfalke/tunecast/internal/domain"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Open(filepath.Join(t.TempDir(), "test.bleve"))
	if err != nil {
		t.Fatalf("failed to open index: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestIndex_SearchRoundTrip(t *testing.T) {
	idx := newTestIndex(t)

	album := domain.Album{ID: "b1", Title: "Discovery", Artist: "Daft Punk", Year: 2001, Cover: "discovery.jpg"}
	artist := domain.Artist{ID: "a1", Name: "Daft Punk"}
	song := domain.SimplifiedSong{
		ID: "t1", Title: "One More Time", Artist: "Daft Punk", Album: "Discovery",
		Duration: 320 * time.Second, ArtistID: "a1", AlbumID: "b1",
	}

	if err := idx.IndexAlbum(album); err != nil {
		t.Fatalf("IndexAlbum failed: %v", err)
	}
	if err := idx.IndexArtist(artist); err != nil {
		t.Fatalf("IndexArtist failed: %v", err)
	}
	if err := idx.IndexSong(song); err != nil {
		t.Fatalf("IndexSong failed: %v", err)
	}

	results, err := idx.Search(context.Background(), "daft", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results.Albums) != 1 {
		t.Fatalf("got %d albums, want 1", len(results.Albums))
	}
	if !reflect.DeepEqual(results.Albums[0], album) {
		t.Errorf("album round trip mismatch:\n got %+v\nwant %+v", results.Albums[0], album)
	}
	if len(results.Artists) != 1 || results.Artists[0].Name != "Daft Punk" {
		t.Errorf("artists = %+v", results.Artists)
	}
	if len(results.Songs) != 1 {
		t.Fatalf("got %d songs, want 1", len(results.Songs))
	}
	if got := results.Songs[0]; got.ID != "t1" || got.Duration != 320*time.Second || got.AlbumID != "b1" {
		t.Errorf("song round trip mismatch: %+v", got)
	}
}

func TestIndex_Reindex(t *testing.T) {
	idx := newTestIndex(t)

	album := domain.Album{ID: "b1", Title: "Homework", Artist: "Daft Punk"}
	if err := idx.IndexAlbum(album); err != nil {
		t.Fatalf("IndexAlbum failed: %v", err)
	}
	album.Cover = "homework.jpg"
	if err := idx.IndexAlbum(album); err != nil {
		t.Fatalf("IndexAlbum failed: %v", err)
	}

	results, err := idx.Search(context.Background(), "homework", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results.Albums) != 1 {
		t.Fatalf("got %d albums, want 1 after reindex", len(results.Albums))
	}
	if results.Albums[0].Cover != "homework.jpg" {
		t.Errorf("Cover = %q, want updated value", results.Albums[0].Cover)
	}
}

func TestIndex_GetByID(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	album := domain.Album{ID: "b1", Title: "Discovery", Artist: "Daft Punk"}
	if err := idx.IndexAlbum(album); err != nil {
		t.Fatalf("IndexAlbum failed: %v", err)
	}
	song := domain.SimplifiedSong{ID: "t1", Title: "Aerodynamic", AlbumID: "b1"}
	if err := idx.IndexSongFile(song, "/music/daft punk/aerodynamic.flac"); err != nil {
		t.Fatalf("IndexSongFile failed: %v", err)
	}

	got, err := idx.GetAlbum(ctx, "b1")
	if err != nil {
		t.Fatalf("GetAlbum failed: %v", err)
	}
	if got.Title != "Discovery" {
		t.Errorf("Title = %q", got.Title)
	}

	path, err := idx.TrackPath(ctx, "t1")
	if err != nil {
		t.Fatalf("TrackPath failed: %v", err)
	}
	if path != "/music/daft punk/aerodynamic.flac" {
		t.Errorf("TrackPath = %q", path)
	}

	if _, err := idx.GetAlbum(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAlbum(missing) error = %v, want ErrNotFound", err)
	}
}

func TestIndex_NoMatches(t *testing.T) {
	idx := newTestIndex(t)

	results, err := idx.Search(context.Background(), "nothing", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results.Albums)+len(results.Artists)+len(results.Songs) != 0 {
		t.Errorf("expected no results, got %+v", results)
	}
}
