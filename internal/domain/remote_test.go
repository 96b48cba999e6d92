package domain

import "testing"

const baseURL = "http://h:1234"

func TestTrack_WithRemoteTrackURL(t *testing.T) {
	track := Track{ID: "42", URI: "/music/file.flac"}

	rehomed := track.WithRemoteTrackURL(baseURL)

	if rehomed.URI != "http://h:1234/tracks/42" {
		t.Errorf("URI = %q, want %q", rehomed.URI, "http://h:1234/tracks/42")
	}
	if track.URI != "/music/file.flac" {
		t.Errorf("original mutated: URI = %q", track.URI)
	}
}

// Track rehoming is documented as non-idempotent: re-applying it to an
// already-remote uri stacks the prefix.
func TestTrack_WithRemoteTrackURL_Stacks(t *testing.T) {
	once := Track{ID: "42"}.WithRemoteTrackURL(baseURL)
	twice := Track{ID: once.URI}.WithRemoteTrackURL(baseURL)

	want := "http://h:1234/tracks/http://h:1234/tracks/42"
	if twice.URI != want {
		t.Errorf("URI = %q, want %q", twice.URI, want)
	}
}

func TestAlbum_WithRemoteCoverURL(t *testing.T) {
	tests := []struct {
		name     string
		cover    string
		expected string
	}{
		{"local cover", "art.jpg", "http://h:1234/covers/art.jpg"},
		{"already remote", "http://h:1234/covers/art.jpg", "http://h:1234/covers/art.jpg"},
		{"https remote", "https://cdn.example.com/art.jpg", "https://cdn.example.com/art.jpg"},
		{"no cover", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			album := Album{ID: "a1", Cover: tt.cover}
			result := album.WithRemoteCoverURL(baseURL)
			if result.Cover != tt.expected {
				t.Errorf("Cover = %q, want %q", result.Cover, tt.expected)
			}
		})
	}
}

func TestAlbum_WithRemoteCoverURL_RecursesIntoTracks(t *testing.T) {
	album := Album{
		Cover: "art.jpg",
		Tracks: []Track{
			{ID: "1", Album: &Album{Cover: "nested.jpg"}},
		},
	}

	result := album.WithRemoteCoverURL(baseURL)

	nested := result.Tracks[0].Album.Cover
	if nested != "http://h:1234/covers/nested.jpg" {
		t.Errorf("nested cover = %q, want %q", nested, "http://h:1234/covers/nested.jpg")
	}
	if album.Tracks[0].Album.Cover != "nested.jpg" {
		t.Error("original nested album mutated")
	}
}

func TestArtist_Rehoming(t *testing.T) {
	artist := Artist{
		Albums: []Album{{Cover: "a.jpg", Tracks: []Track{{ID: "1"}}}},
		Songs:  []Track{{ID: "2", Album: &Album{Cover: "b.jpg"}}},
	}

	covers := artist.WithRemoteCoverURL(baseURL)
	if covers.Albums[0].Cover != "http://h:1234/covers/a.jpg" {
		t.Errorf("album cover = %q", covers.Albums[0].Cover)
	}
	if covers.Songs[0].Album.Cover != "http://h:1234/covers/b.jpg" {
		t.Errorf("song album cover = %q", covers.Songs[0].Album.Cover)
	}

	tracks := artist.WithRemoteTrackURL(baseURL)
	if tracks.Songs[0].URI != "http://h:1234/tracks/2" {
		t.Errorf("song uri = %q", tracks.Songs[0].URI)
	}
	// Album tracks are only reachable through Album.WithRemoteTrackURL.
	if tracks.Albums[0].Tracks[0].URI != "" {
		t.Errorf("album track uri = %q, want empty", tracks.Albums[0].Tracks[0].URI)
	}
}

func TestPlaylist_Rehoming(t *testing.T) {
	playlist := Playlist{
		Tracks: []Track{
			{ID: "1", Album: &Album{Cover: "art.jpg"}},
			{ID: "2"},
		},
	}

	tracks := playlist.WithRemoteTrackURL(baseURL)
	if tracks.Tracks[0].URI != "http://h:1234/tracks/1" || tracks.Tracks[1].URI != "http://h:1234/tracks/2" {
		t.Errorf("track uris = %q, %q", tracks.Tracks[0].URI, tracks.Tracks[1].URI)
	}

	covers := playlist.WithRemoteCoverURL(baseURL)
	if covers.Tracks[0].Album.Cover != "http://h:1234/covers/art.jpg" {
		t.Errorf("cover = %q", covers.Tracks[0].Album.Cover)
	}
}

func TestSong_WithProperties(t *testing.T) {
	song := Song{Title: "One More Time"}

	updated := song.WithProperties(AudioProperties{
		Bitrate:    1411,
		SampleRate: 44100,
		BitDepth:   16,
		Channels:   2,
	})

	if updated.Bitrate != 1411 || updated.SampleRate != 44100 || updated.BitDepth != 16 || updated.Channels != 2 {
		t.Errorf("properties not applied: %+v", updated)
	}
	if song.Bitrate != 0 {
		t.Error("original mutated")
	}
}
