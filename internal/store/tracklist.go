package store

// TracklistRepo persists the playback queue as a single-column identity
// table. The full track data lives in the search index; only the ids are
// durable, in insertion order.
type TracklistRepo struct {
	db *DB
}

func NewTracklistRepo(db *DB) *TracklistRepo {
	return &TracklistRepo{db: db}
}

func (r *TracklistRepo) Add(trackID string) error {
	_, err := r.db.Exec(`INSERT OR IGNORE INTO tracklist (id) VALUES (?)`, trackID)
	return err
}

// List returns the queued track ids in insertion order.
func (r *TracklistRepo) List() ([]string, error) {
	var ids []string
	err := r.db.Select(&ids, `SELECT id FROM tracklist ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *TracklistRepo) Remove(trackID string) error {
	_, err := r.db.Exec(`DELETE FROM tracklist WHERE id = ?`, trackID)
	return err
}

func (r *TracklistRepo) Clear() error {
	_, err := r.db.Exec(`DELETE FROM tracklist`)
	return err
}
