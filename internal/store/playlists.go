package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmfalke/tunecast/internal/domain"
)

// PlaylistRepo persists playlists and folders. Track ordering within a
// playlist is the insertion order, kept explicit through the position
// column.
type PlaylistRepo struct {
	db *DB
}

func NewPlaylistRepo(db *DB) *PlaylistRepo {
	return &PlaylistRepo{db: db}
}

func (r *PlaylistRepo) Create(name, description string) (domain.Playlist, error) {
	playlist := domain.Playlist{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
	}
	_, err := r.db.Exec(
		`INSERT INTO playlists (id, name, description) VALUES (?, ?, ?)`,
		playlist.ID, playlist.Name, playlist.Description,
	)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("failed to create playlist: %w", err)
	}
	return playlist, nil
}

func (r *PlaylistRepo) Delete(id string) error {
	if _, err := r.db.Exec(`DELETE FROM playlist_tracks WHERE playlist_id = ?`, id); err != nil {
		return err
	}
	_, err := r.db.Exec(`DELETE FROM playlists WHERE id = ?`, id)
	return err
}

// AddTrack appends a track at the end of the playlist.
func (r *PlaylistRepo) AddTrack(playlistID, trackID string) error {
	_, err := r.db.Exec(`
		INSERT INTO playlist_tracks (playlist_id, track_id, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM playlist_tracks WHERE playlist_id = ?))
	`, playlistID, trackID, playlistID)
	return err
}

func (r *PlaylistRepo) RemoveTrack(playlistID, trackID string) error {
	_, err := r.db.Exec(
		`DELETE FROM playlist_tracks WHERE playlist_id = ? AND track_id = ?`,
		playlistID, trackID,
	)
	return err
}

// Get returns a playlist with its track ids in playlist order. The caller
// resolves ids to full tracks through the search index.
func (r *PlaylistRepo) Get(id string) (domain.Playlist, error) {
	var row struct {
		ID          string         `db:"id"`
		Name        string         `db:"name"`
		Description sql.NullString `db:"description"`
	}
	err := r.db.Get(&row, `SELECT id, name, description FROM playlists WHERE id = ?`, id)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("failed to load playlist %s: %w", id, err)
	}

	var trackIDs []string
	err = r.db.Select(&trackIDs,
		`SELECT track_id FROM playlist_tracks WHERE playlist_id = ? ORDER BY position`, id)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("failed to load playlist tracks: %w", err)
	}

	playlist := domain.Playlist{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description.String,
		Tracks:      make([]domain.Track, len(trackIDs)),
	}
	for i, trackID := range trackIDs {
		playlist.Tracks[i] = domain.Track{ID: trackID}
	}
	return playlist, nil
}

func (r *PlaylistRepo) List() ([]domain.Playlist, error) {
	var rows []struct {
		ID          string         `db:"id"`
		Name        string         `db:"name"`
		Description sql.NullString `db:"description"`
	}
	err := r.db.Select(&rows, `SELECT id, name, description FROM playlists ORDER BY created_at`)
	if err != nil {
		return nil, err
	}

	playlists := make([]domain.Playlist, len(rows))
	for i, row := range rows {
		playlists[i] = domain.Playlist{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description.String,
		}
	}
	return playlists, nil
}

// CreateFolder creates an empty playlist folder.
func (r *PlaylistRepo) CreateFolder(name string) (domain.Folder, error) {
	folder := domain.Folder{
		ID:   uuid.New().String(),
		Name: name,
	}
	_, err := r.db.Exec(`INSERT INTO folders (id, name) VALUES (?, ?)`, folder.ID, folder.Name)
	if err != nil {
		return domain.Folder{}, fmt.Errorf("failed to create folder: %w", err)
	}
	return folder, nil
}

// MoveToFolder assigns a playlist to a folder.
func (r *PlaylistRepo) MoveToFolder(playlistID, folderID string) error {
	_, err := r.db.Exec(`UPDATE playlists SET folder_id = ? WHERE id = ?`, folderID, playlistID)
	return err
}

// GetFolder returns a folder with its playlists in creation order.
func (r *PlaylistRepo) GetFolder(id string) (domain.Folder, error) {
	var folderRow struct {
		ID   string `db:"id"`
		Name string `db:"name"`
	}
	err := r.db.Get(&folderRow, `SELECT id, name FROM folders WHERE id = ?`, id)
	if err != nil {
		return domain.Folder{}, fmt.Errorf("failed to load folder %s: %w", id, err)
	}
	folder := domain.Folder{ID: folderRow.ID, Name: folderRow.Name}

	var rows []struct {
		ID          string         `db:"id"`
		Name        string         `db:"name"`
		Description sql.NullString `db:"description"`
	}
	err = r.db.Select(&rows,
		`SELECT id, name, description FROM playlists WHERE folder_id = ? ORDER BY created_at`, id)
	if err != nil {
		return domain.Folder{}, err
	}
	for _, row := range rows {
		folder.Playlists = append(folder.Playlists, domain.Playlist{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description.String,
		})
	}
	return folder, nil
}
