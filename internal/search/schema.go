// Package search owns the full-text index: one field schema per entity
// kind, shared by every encode and decode path. If an encoder and the
// mapping ever disagree on a field, round-trips silently drop data, so the
// schema is declared exactly once here.
package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Document kinds. The kind is stored on every document and doubles as the
// bleve type discriminator.
const (
	KindAlbum  = "album"
	KindArtist = "artist"
	KindSong   = "song"
)

// Field names, shared by the mappings and the codec. Lookup is always by
// name, never by position, so adding a field does not break older
// documents.
const (
	fieldKind     = "kind"
	fieldID       = "id"
	fieldTitle    = "title"
	fieldName     = "name"
	fieldArtist   = "artist"
	fieldAlbum    = "album"
	fieldGenre    = "genre"
	fieldYear     = "year"
	fieldCover    = "cover"
	fieldDuration = "duration"
	fieldArtistID = "artist_id"
	fieldAlbumID  = "album_id"
	fieldURI      = "uri"
)

func buildIndexMapping() mapping.IndexMapping {
	m := bleve.NewIndexMapping()
	m.TypeField = fieldKind
	m.AddDocumentMapping(KindAlbum, albumMapping())
	m.AddDocumentMapping(KindArtist, artistMapping())
	m.AddDocumentMapping(KindSong, songMapping())
	return m
}

func albumMapping() *mapping.DocumentMapping {
	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt(fieldKind, keywordField())
	doc.AddFieldMappingsAt(fieldID, keywordField())
	doc.AddFieldMappingsAt(fieldTitle, textField())
	doc.AddFieldMappingsAt(fieldArtist, textField())
	doc.AddFieldMappingsAt(fieldYear, storedNumberField())
	doc.AddFieldMappingsAt(fieldCover, keywordField())
	return doc
}

func artistMapping() *mapping.DocumentMapping {
	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt(fieldKind, keywordField())
	doc.AddFieldMappingsAt(fieldID, keywordField())
	doc.AddFieldMappingsAt(fieldName, textField())
	return doc
}

func songMapping() *mapping.DocumentMapping {
	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt(fieldKind, keywordField())
	doc.AddFieldMappingsAt(fieldID, keywordField())
	doc.AddFieldMappingsAt(fieldTitle, textField())
	doc.AddFieldMappingsAt(fieldArtist, textField())
	doc.AddFieldMappingsAt(fieldAlbum, textField())
	doc.AddFieldMappingsAt(fieldGenre, unstoredTextField())
	doc.AddFieldMappingsAt(fieldCover, keywordField())
	doc.AddFieldMappingsAt(fieldDuration, storedNumberField())
	doc.AddFieldMappingsAt(fieldArtistID, keywordField())
	doc.AddFieldMappingsAt(fieldAlbumID, keywordField())
	doc.AddFieldMappingsAt(fieldURI, storedOnlyField())
	return doc
}

// keywordField is stored and indexed verbatim (ids, covers, kinds).
func keywordField() *mapping.FieldMapping {
	f := bleve.NewKeywordFieldMapping()
	f.Store = true
	return f
}

// textField is stored and analyzed for full-text matching.
func textField() *mapping.FieldMapping {
	f := bleve.NewTextFieldMapping()
	f.Store = true
	return f
}

// unstoredTextField is searchable but not retrievable; decoding falls back
// to the field default.
func unstoredTextField() *mapping.FieldMapping {
	f := bleve.NewTextFieldMapping()
	f.Store = false
	return f
}

// storedOnlyField is retrievable but never matched (local file paths).
func storedOnlyField() *mapping.FieldMapping {
	f := bleve.NewKeywordFieldMapping()
	f.Store = true
	f.Index = false
	return f
}

// storedNumberField is stored without being searchable.
func storedNumberField() *mapping.FieldMapping {
	f := bleve.NewNumericFieldMapping()
	f.Store = true
	f.Index = false
	return f
}
