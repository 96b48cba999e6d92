package store

const Schema = `
CREATE TABLE IF NOT EXISTS tracklist (
	id TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS folders (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS playlists (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	folder_id TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS playlist_tracks (
	playlist_id TEXT NOT NULL,
	track_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY (playlist_id, position)
);
`
