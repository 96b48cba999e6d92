// Package library scans the music directory and feeds the search index.
package library

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmfalke/tunecast/internal/constants"
	"github.com/dmfalke/tunecast/internal/domain"
	"github.com/dmfalke/tunecast/internal/logger"
	"github.com/dmfalke/tunecast/internal/search"
	"github.com/dmfalke/tunecast/internal/tagging"
)

// Scanner walks the music directory, maps file tags onto canonical
// entities and indexes them. Artists and albums are deduplicated across
// files purely through their content-addressed ids; no registry is kept.
type Scanner struct {
	MusicDir  string
	CoversDir string
	Index     *search.Index
	Logger    *logger.Logger
}

// Stats summarizes one scan pass.
type Stats struct {
	Tracks  int
	Albums  int
	Artists int
	Skipped int
}

func NewScanner(musicDir, coversDir string, index *search.Index, log *logger.Logger) *Scanner {
	return &Scanner{
		MusicDir:  musicDir,
		CoversDir: coversDir,
		Index:     index,
		Logger:    log.WithComponent("library"),
	}
}

// Scan walks the music directory once. Unreadable files are skipped and
// counted, never fatal; the scan only fails when the walk itself or the
// index does.
func (s *Scanner) Scan(ctx context.Context) (Stats, error) {
	if err := os.MkdirAll(s.CoversDir, 0o755); err != nil {
		return Stats{}, fmt.Errorf("failed to create covers dir: %w", err)
	}

	var stats Stats
	albums := map[string]domain.Album{}
	artists := map[string]domain.Artist{}

	err := filepath.WalkDir(s.MusicDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() || !isAudioFile(path) {
			return nil
		}

		meta, err := tagging.ReadFile(path)
		if err != nil {
			s.Logger.Warn("Skipping unreadable file", "path", path, "error", err)
			stats.Skipped++
			return nil
		}

		song := tagging.SongFromTags(meta.Tags).WithProperties(meta.Properties)
		artist := tagging.ArtistFromTags(meta.Tags)
		album := tagging.AlbumFromTags(meta.Tags)

		cover := s.saveCover(album.ID, meta.Cover, meta.CoverMIME)
		trackID := domain.DeriveID(path)

		if err := s.Index.IndexSongFile(domain.SimplifiedSong{
			ID:       trackID,
			Title:    song.Title,
			Artist:   song.Artist,
			Album:    song.Album,
			Genre:    song.Genre,
			Duration: song.Duration,
			Cover:    cover,
			ArtistID: artist.ID,
			AlbumID:  album.ID,
		}, path); err != nil {
			return fmt.Errorf("failed to index track %s: %w", path, err)
		}
		stats.Tracks++

		rememberAlbum(albums, album, cover)
		if _, seen := artists[artist.ID]; !seen {
			artists[artist.ID] = artist
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("scan failed: %w", err)
	}

	for _, album := range albums {
		if err := s.Index.IndexAlbum(album); err != nil {
			return stats, fmt.Errorf("failed to index album %s: %w", album.ID, err)
		}
	}
	for _, artist := range artists {
		if err := s.Index.IndexArtist(artist); err != nil {
			return stats, fmt.Errorf("failed to index artist %s: %w", artist.ID, err)
		}
	}

	stats.Albums = len(albums)
	stats.Artists = len(artists)
	return stats, nil
}

// saveCover writes embedded cover art under the album's content id and
// returns the local cover reference, or "" when there is none. The file
// extension follows the reported MIME type so the cover route serves the
// right Content-Type. The reference is rehomed to an absolute URL when the
// entity crosses the network boundary.
func (s *Scanner) saveCover(albumID string, data []byte, mime string) string {
	if len(data) == 0 {
		return ""
	}
	ext := ".jpg"
	if mime == constants.MimeTypePNG {
		ext = ".png"
	}
	name := albumID + ext
	path := filepath.Join(s.CoversDir, name)
	if _, err := os.Stat(path); err == nil {
		return name
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.Logger.Warn("Failed to write cover", "path", path, "error", err)
		return ""
	}
	return name
}

// rememberAlbum dedupes albums by content id across the scan. Cover art
// can live on any track of an album, so a cover found on a later file
// backfills an entry first seen without one.
func rememberAlbum(albums map[string]domain.Album, album domain.Album, cover string) {
	existing, seen := albums[album.ID]
	if !seen {
		album.Cover = cover
		albums[album.ID] = album
		return
	}
	if existing.Cover == "" && cover != "" {
		existing.Cover = cover
		albums[album.ID] = existing
	}
}

func isAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, known := range constants.AudioExtensions {
		if ext == known {
			return true
		}
	}
	return false
}
