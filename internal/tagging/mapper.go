// Package tagging extracts audio file metadata and maps it onto the
// canonical Song/Artist/Album entities.
package tagging

import (
	"github.com/dmfalke/tunecast/internal/constants"
	"github.com/dmfalke/tunecast/internal/domain"
)

// Tags is the raw tag record handed to the mapper. An empty string or zero
// number means the field was absent from the source; real-world tags are
// frequently incomplete, so absence is never an error.
type Tags struct {
	Title       string
	Artist      string
	Album       string
	Genre       string
	AlbumArtist string
	Year        int
	Track       int
}

// textOr substitutes the "None" placeholder for absent textual fields.
func textOr(value string) string {
	if value == "" {
		return constants.NoneTag
	}
	return value
}

// albumArtist resolves the album-artist name: the explicit album artist
// tag, falling back to the plain artist tag, falling back to "None". The
// same resolution feeds Artist.Name, Artist.ID and Album.ArtistID so the
// three always agree without a lookup.
func albumArtist(tags Tags) string {
	if tags.AlbumArtist != "" {
		return tags.AlbumArtist
	}
	return textOr(tags.Artist)
}

// SongFromTags maps a tag record to a Song. Stream properties are applied
// separately via Song.WithProperties.
func SongFromTags(tags Tags) domain.Song {
	return domain.Song{
		Title:       textOr(tags.Title),
		Artist:      textOr(tags.Artist),
		Album:       textOr(tags.Album),
		Genre:       textOr(tags.Genre),
		Year:        tags.Year,
		Track:       tags.Track,
		AlbumArtist: albumArtist(tags),
	}
}

// ArtistFromTags maps a tag record to an Artist keyed by the
// content-addressed id of the resolved album-artist name.
func ArtistFromTags(tags Tags) domain.Artist {
	name := albumArtist(tags)
	return domain.Artist{
		ID:   domain.DeriveID(name),
		Name: name,
	}
}

// AlbumFromTags maps a tag record to an Album keyed by the
// content-addressed id of the album title.
func AlbumFromTags(tags Tags) domain.Album {
	name := albumArtist(tags)
	return domain.Album{
		ID:       domain.DeriveID(textOr(tags.Album)),
		Title:    textOr(tags.Album),
		Artist:   name,
		ArtistID: domain.DeriveID(name),
		Year:     tags.Year,
	}
}
