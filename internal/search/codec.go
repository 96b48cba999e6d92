package search

import (
	"fmt"
	"time"

	"github.com/dmfalke/tunecast/internal/domain"
)

// Document is the wire shape stored in the index: a flat field map keyed
// by the schema's field names.
type Document map[string]interface{}

// AlbumDocument encodes an album against the album schema.
func AlbumDocument(album domain.Album) Document {
	return Document{
		fieldKind:   KindAlbum,
		fieldID:     album.ID,
		fieldTitle:  album.Title,
		fieldArtist: album.Artist,
		fieldYear:   album.Year,
		fieldCover:  album.Cover,
	}
}

// AlbumFromDocument decodes an album. A missing id is a broken indexer
// invariant and aborts the decode; every other field degrades to its
// default. An empty cover value means no cover, not a literal empty URL.
func AlbumFromDocument(doc Document) (domain.Album, error) {
	id, err := requiredText(doc, fieldID)
	if err != nil {
		return domain.Album{}, fmt.Errorf("album document: %w", err)
	}
	return domain.Album{
		ID:     id,
		Title:  optionalText(doc, fieldTitle),
		Artist: optionalText(doc, fieldArtist),
		Year:   int(optionalNumber(doc, fieldYear)),
		Cover:  optionalText(doc, fieldCover),
	}, nil
}

// ArtistDocument encodes an artist against the artist schema.
func ArtistDocument(artist domain.Artist) Document {
	return Document{
		fieldKind: KindArtist,
		fieldID:   artist.ID,
		fieldName: artist.Name,
	}
}

// ArtistFromDocument decodes an artist; only the id is required.
func ArtistFromDocument(doc Document) (domain.Artist, error) {
	id, err := requiredText(doc, fieldID)
	if err != nil {
		return domain.Artist{}, fmt.Errorf("artist document: %w", err)
	}
	return domain.Artist{
		ID:   id,
		Name: optionalText(doc, fieldName),
	}, nil
}

// SongDocument encodes a search-result song against the song schema.
// Duration is stored as whole seconds.
func SongDocument(song domain.SimplifiedSong) Document {
	return Document{
		fieldKind:     KindSong,
		fieldID:       song.ID,
		fieldTitle:    song.Title,
		fieldArtist:   song.Artist,
		fieldAlbum:    song.Album,
		fieldGenre:    song.Genre,
		fieldCover:    song.Cover,
		fieldDuration: int64(song.Duration / time.Second),
		fieldArtistID: song.ArtistID,
		fieldAlbumID:  song.AlbumID,
	}
}

// SongFromDocument decodes a search-result song; only the id is required.
func SongFromDocument(doc Document) (domain.SimplifiedSong, error) {
	id, err := requiredText(doc, fieldID)
	if err != nil {
		return domain.SimplifiedSong{}, fmt.Errorf("song document: %w", err)
	}
	return domain.SimplifiedSong{
		ID:       id,
		Title:    optionalText(doc, fieldTitle),
		Artist:   optionalText(doc, fieldArtist),
		Album:    optionalText(doc, fieldAlbum),
		Genre:    optionalText(doc, fieldGenre),
		Duration: time.Duration(optionalNumber(doc, fieldDuration)) * time.Second,
		Cover:    optionalText(doc, fieldCover),
		ArtistID: optionalText(doc, fieldArtistID),
		AlbumID:  optionalText(doc, fieldAlbumID),
	}, nil
}

// requiredText reads a field the schema defines as unconditionally
// present. Absence signals a contract breach by whoever wrote the
// document, not sparse source data, so it is an error rather than a
// default.
func requiredText(doc Document, field string) (string, error) {
	raw, ok := doc[field]
	if !ok {
		return "", fmt.Errorf("missing required field %q", field)
	}
	value, ok := asText(raw)
	if !ok {
		return "", fmt.Errorf("required field %q is not text", field)
	}
	return value, nil
}

func optionalText(doc Document, field string) string {
	value, _ := asText(doc[field])
	return value
}

func optionalNumber(doc Document, field string) float64 {
	switch v := doc[field].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case []interface{}:
		if len(v) > 0 {
			if f, ok := v[0].(float64); ok {
				return f
			}
		}
	}
	return 0
}

// asText unwraps stored field values, which come back from the index
// either as a string or as a multi-valued slice.
func asText(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case []interface{}:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s, true
			}
		}
	}
	return "", false
}
