package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/blevesearch/bleve/v2"

	"github.com/dmfalke/tunecast/internal/domain"
)

// Index wraps the bleve index with entity-aware add and search methods.
type Index struct {
	idx bleve.Index
}

// Open opens the index at path, creating it with the entity mappings when
// it does not exist yet.
func Open(path string) (*Index, error) {
	idx, err := bleve.Open(path)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		idx, err = bleve.New(path, buildIndexMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	return &Index{idx: idx}, nil
}

// Close releases the underlying index.
func (i *Index) Close() error {
	return i.idx.Close()
}

// IndexAlbum adds or replaces an album document.
func (i *Index) IndexAlbum(album domain.Album) error {
	return i.idx.Index(docID(KindAlbum, album.ID), AlbumDocument(album))
}

// IndexArtist adds or replaces an artist document.
func (i *Index) IndexArtist(artist domain.Artist) error {
	return i.idx.Index(docID(KindArtist, artist.ID), ArtistDocument(artist))
}

// IndexSong adds or replaces a song document.
func (i *Index) IndexSong(song domain.SimplifiedSong) error {
	return i.idx.Index(docID(KindSong, song.ID), SongDocument(song))
}

// IndexSongFile adds or replaces a song document together with the local
// file path backing it, so the track can be streamed later.
func (i *Index) IndexSongFile(song domain.SimplifiedSong, path string) error {
	doc := SongDocument(song)
	doc[fieldURI] = path
	return i.idx.Index(docID(KindSong, song.ID), doc)
}

// Results groups decoded search hits by entity kind.
type Results struct {
	Albums  []domain.Album          `json:"albums"`
	Artists []domain.Artist         `json:"artists"`
	Songs   []domain.SimplifiedSong `json:"songs"`
}

// Search runs a match query over all entity kinds and decodes the stored
// fields of every hit back into canonical entities.
func (i *Index) Search(ctx context.Context, query string, limit int) (Results, error) {
	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, 0, false)
	req.Fields = []string{"*"}

	res, err := i.idx.SearchInContext(ctx, req)
	if err != nil {
		return Results{}, fmt.Errorf("search failed: %w", err)
	}

	var results Results
	for _, hit := range res.Hits {
		doc := Document(hit.Fields)
		kind, _ := asText(doc[fieldKind])
		switch kind {
		case KindAlbum:
			album, err := AlbumFromDocument(doc)
			if err != nil {
				return Results{}, err
			}
			results.Albums = append(results.Albums, album)
		case KindArtist:
			artist, err := ArtistFromDocument(doc)
			if err != nil {
				return Results{}, err
			}
			results.Artists = append(results.Artists, artist)
		case KindSong:
			song, err := SongFromDocument(doc)
			if err != nil {
				return Results{}, err
			}
			results.Songs = append(results.Songs, song)
		}
	}
	return results, nil
}

// ErrNotFound is returned by the by-id lookups when no document with the
// given id exists.
var ErrNotFound = errors.New("document not found")

// GetAlbum looks an album up by its content-addressed id.
func (i *Index) GetAlbum(ctx context.Context, id string) (domain.Album, error) {
	doc, err := i.getDocument(ctx, KindAlbum, id)
	if err != nil {
		return domain.Album{}, err
	}
	return AlbumFromDocument(doc)
}

// GetArtist looks an artist up by its content-addressed id.
func (i *Index) GetArtist(ctx context.Context, id string) (domain.Artist, error) {
	doc, err := i.getDocument(ctx, KindArtist, id)
	if err != nil {
		return domain.Artist{}, err
	}
	return ArtistFromDocument(doc)
}

// GetSong looks a song up by its track id.
func (i *Index) GetSong(ctx context.Context, id string) (domain.SimplifiedSong, error) {
	doc, err := i.getDocument(ctx, KindSong, id)
	if err != nil {
		return domain.SimplifiedSong{}, err
	}
	return SongFromDocument(doc)
}

// TrackPath returns the local file path stored alongside a song document.
func (i *Index) TrackPath(ctx context.Context, id string) (string, error) {
	doc, err := i.getDocument(ctx, KindSong, id)
	if err != nil {
		return "", err
	}
	path, ok := asText(doc[fieldURI])
	if !ok || path == "" {
		return "", fmt.Errorf("track %s has no stored file path", id)
	}
	return path, nil
}

// AlbumSongs returns the songs carrying the given album id.
func (i *Index) AlbumSongs(ctx context.Context, albumID string) ([]domain.SimplifiedSong, error) {
	return i.songsByTerm(ctx, fieldAlbumID, albumID)
}

// ArtistSongs returns the songs carrying the given artist id.
func (i *Index) ArtistSongs(ctx context.Context, artistID string) ([]domain.SimplifiedSong, error) {
	return i.songsByTerm(ctx, fieldArtistID, artistID)
}

func (i *Index) songsByTerm(ctx context.Context, field, term string) ([]domain.SimplifiedSong, error) {
	q := bleve.NewTermQuery(term)
	q.SetField(field)
	req := bleve.NewSearchRequestOptions(q, 1000, 0, false)
	req.Fields = []string{"*"}

	res, err := i.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("lookup failed: %w", err)
	}

	songs := make([]domain.SimplifiedSong, 0, len(res.Hits))
	for _, hit := range res.Hits {
		song, err := SongFromDocument(Document(hit.Fields))
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, nil
}

func (i *Index) getDocument(ctx context.Context, kind, id string) (Document, error) {
	req := bleve.NewSearchRequestOptions(bleve.NewDocIDQuery([]string{docID(kind, id)}), 1, 0, false)
	req.Fields = []string{"*"}

	res, err := i.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("lookup failed: %w", err)
	}
	if len(res.Hits) == 0 {
		return nil, fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return Document(res.Hits[0].Fields), nil
}

func docID(kind, id string) string {
	return kind + ":" + id
}
