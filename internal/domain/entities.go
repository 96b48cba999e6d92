// Package domain defines the canonical entities every external record
// format (mDNS advertisements, UPnP descriptors, audio tags, index
// documents) is normalized into. Entities are plain values; composition is
// by-value containment and every "mutation" returns a new copy.
package domain

import (
	"sync"
	"time"
)

// Song is flat audio metadata extracted from one file's tags.
type Song struct {
	Title       string        `json:"title"`
	Artist      string        `json:"artist"`
	Album       string        `json:"album"`
	Genre       string        `json:"genre"`
	Year        int           `json:"year,omitempty"`
	Track       int           `json:"track,omitempty"`
	Bitrate     int           `json:"bitrate,omitempty"`
	SampleRate  int           `json:"sample_rate,omitempty"`
	BitDepth    int           `json:"bit_depth,omitempty"`
	Channels    int           `json:"channels,omitempty"`
	Duration    time.Duration `json:"duration"`
	URI         string        `json:"uri,omitempty"`
	Cover       string        `json:"cover,omitempty"`
	AlbumArtist string        `json:"album_artist"`
}

// AudioProperties are the numeric stream properties reported by the tag
// extraction layer, separate from the textual tag fields.
type AudioProperties struct {
	Bitrate    int
	SampleRate int
	BitDepth   int
	Channels   int
	Duration   time.Duration
}

// WithProperties returns a copy of the song augmented with stream
// properties. The receiver is left untouched.
func (s Song) WithProperties(p AudioProperties) Song {
	s.Bitrate = p.Bitrate
	s.SampleRate = p.SampleRate
	s.BitDepth = p.BitDepth
	s.Channels = p.Channels
	s.Duration = p.Duration
	return s
}

// SimplifiedSong is the search-result projection of song data. Unlike Song
// it is built from an index document and must tolerate partial fields, and
// it carries explicit artist/album ids.
type SimplifiedSong struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Artist   string        `json:"artist"`
	Album    string        `json:"album"`
	Genre    string        `json:"genre"`
	Duration time.Duration `json:"duration"`
	Cover    string        `json:"cover,omitempty"`
	ArtistID string        `json:"artist_id"`
	AlbumID  string        `json:"album_id"`
}

// ToTrack projects a search result onto the playable Track shape, carrying
// owned album/artist copies built from the result's explicit ids.
func (s SimplifiedSong) ToTrack() Track {
	track := Track{
		ID:       s.ID,
		Title:    s.Title,
		Artist:   s.Artist,
		Duration: s.Duration.Seconds(),
	}
	if s.AlbumID != "" || s.Album != "" || s.Cover != "" {
		track.Album = &Album{
			ID:       s.AlbumID,
			Title:    s.Album,
			Artist:   s.Artist,
			ArtistID: s.ArtistID,
			Cover:    s.Cover,
		}
	}
	if s.ArtistID != "" {
		track.Artists = []Artist{{ID: s.ArtistID, Name: s.Artist}}
	}
	return track
}

// Album aggregates tracks under a content-addressed id derived from the
// album title.
type Album struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	ArtistID string  `json:"artist_id,omitempty"`
	Year     int     `json:"year,omitempty"`
	Cover    string  `json:"cover,omitempty"`
	Tracks   []Track `json:"tracks,omitempty"`
}

// Artist aggregates albums and songs under a content-addressed id derived
// from the album-artist name.
type Artist struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Picture string  `json:"picture,omitempty"`
	Albums  []Album `json:"albums,omitempty"`
	Songs   []Track `json:"songs,omitempty"`
}

// Track is a playable unit. The embedded album (and its artists) are owned
// copies, never back-references, so the composite tree is bounded and
// cycle-free.
type Track struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Duration    float64  `json:"duration,omitempty"`
	DiscNumber  int      `json:"disc_number"`
	TrackNumber int      `json:"track_number,omitempty"`
	URI         string   `json:"uri"`
	Artists     []Artist `json:"artists,omitempty"`
	Album       *Album   `json:"album,omitempty"`
	Artist      string   `json:"artist"`
}

// Playlist is an ordered container of tracks. Insertion order is
// significant.
type Playlist struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Tracks      []Track `json:"tracks"`
}

// Folder is an ordered container of playlists.
type Folder struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Playlists []Playlist `json:"playlists"`
}

// PlaybackItem pairs a track with its tracklist row id.
type PlaybackItem struct {
	Track Track `json:"track"`
	ID    int   `json:"id"`
}

// Playback is the state of the playback queue.
type Playback struct {
	CurrentTrack  *Track         `json:"current_track,omitempty"`
	Index         int            `json:"index"`
	CurrentItemID int            `json:"current_item_id,omitempty"`
	PositionMS    int            `json:"position_ms"`
	IsPlaying     bool           `json:"is_playing"`
	Items         []PlaybackItem `json:"items"`
}

// CurrentPlayback holds the reported playback state, if any. Safe for
// concurrent use.
type CurrentPlayback struct {
	mu      sync.Mutex
	current *Playback
}

// NewCurrentPlayback returns an empty playback holder.
func NewCurrentPlayback() *CurrentPlayback {
	return &CurrentPlayback{}
}

// Set replaces the held playback state.
func (c *CurrentPlayback) Set(p Playback) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = &p
}

// Get returns a copy of the held state and whether any state has been
// reported yet.
func (c *CurrentPlayback) Get() (Playback, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Playback{}, false
	}
	return *c.current, true
}

// Clear drops the held state.
func (c *CurrentPlayback) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}
