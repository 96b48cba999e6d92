package domain

import (
	"fmt"
	"strings"
)

// Rehoming rewrites locally-rooted resource references into absolute URLs
// under a base URL, recursing through every nested entity so one call at
// the tree root rewrites every reachable reference.
//
// Cover rehoming is idempotent: a value already carrying an http scheme is
// treated as remote and left alone. Track rehoming is not; the uri is
// rewritten unconditionally, so applying it twice stacks the prefix. That
// asymmetry is part of the contract and callers must not double-apply the
// track variant.

// WithRemoteTrackURL returns a copy whose uri points at base_url/tracks/id.
func (t Track) WithRemoteTrackURL(baseURL string) Track {
	t.URI = fmt.Sprintf("%s/tracks/%s", baseURL, t.ID)
	return t
}

// WithRemoteCoverURL returns a copy with the embedded album's cover
// rehomed.
func (t Track) WithRemoteCoverURL(baseURL string) Track {
	if t.Album != nil {
		album := t.Album.WithRemoteCoverURL(baseURL)
		t.Album = &album
	}
	return t
}

// WithRemoteCoverURL returns a copy with the album cover and every track
// cover rehomed.
func (a Album) WithRemoteCoverURL(baseURL string) Album {
	if a.Cover != "" && !strings.HasPrefix(a.Cover, "http") {
		a.Cover = fmt.Sprintf("%s/covers/%s", baseURL, a.Cover)
	}
	a.Tracks = mapTracks(a.Tracks, func(t Track) Track {
		return t.WithRemoteCoverURL(baseURL)
	})
	return a
}

// WithRemoteTrackURL returns a copy with every track uri rehomed.
func (a Album) WithRemoteTrackURL(baseURL string) Album {
	a.Tracks = mapTracks(a.Tracks, func(t Track) Track {
		return t.WithRemoteTrackURL(baseURL)
	})
	return a
}

// WithRemoteCoverURL returns a copy with covers rehomed across the
// artist's albums and songs.
func (ar Artist) WithRemoteCoverURL(baseURL string) Artist {
	albums := make([]Album, len(ar.Albums))
	for i, album := range ar.Albums {
		albums[i] = album.WithRemoteCoverURL(baseURL)
	}
	ar.Albums = albums
	ar.Songs = mapTracks(ar.Songs, func(t Track) Track {
		return t.WithRemoteCoverURL(baseURL)
	})
	return ar
}

// WithRemoteTrackURL returns a copy with every song uri rehomed.
func (ar Artist) WithRemoteTrackURL(baseURL string) Artist {
	ar.Songs = mapTracks(ar.Songs, func(t Track) Track {
		return t.WithRemoteTrackURL(baseURL)
	})
	return ar
}

// WithRemoteTrackURL returns a copy with every track uri rehomed.
func (p Playlist) WithRemoteTrackURL(baseURL string) Playlist {
	p.Tracks = mapTracks(p.Tracks, func(t Track) Track {
		return t.WithRemoteTrackURL(baseURL)
	})
	return p
}

// WithRemoteCoverURL returns a copy with every track cover rehomed.
func (p Playlist) WithRemoteCoverURL(baseURL string) Playlist {
	p.Tracks = mapTracks(p.Tracks, func(t Track) Track {
		return t.WithRemoteCoverURL(baseURL)
	})
	return p
}

func mapTracks(tracks []Track, fn func(Track) Track) []Track {
	if tracks == nil {
		return nil
	}
	out := make([]Track, len(tracks))
	for i, t := range tracks {
		out[i] = fn(t)
	}
	return out
}
