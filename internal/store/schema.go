package store

// Both schemas describe the same tables. Join tables are keyed by the
// (parent, child) pair; cascades are done by the services, not by the store.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS roles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL UNIQUE
)`,
	`CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	login TEXT NOT NULL UNIQUE,
	nickname TEXT NOT NULL,
	password TEXT NOT NULL,
	role_id INTEGER NOT NULL REFERENCES roles(id)
)`,
	`CREATE TABLE IF NOT EXISTS genres (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS labels (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS release_types (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL UNIQUE
)`,
	`CREATE TABLE IF NOT EXISTS artists (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	bio TEXT NOT NULL DEFAULT '',
	avatar TEXT NOT NULL DEFAULT '',
	banner TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS releases (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	cover TEXT NOT NULL DEFAULT '',
	release_type_id INTEGER REFERENCES release_types(id),
	release_date TEXT
)`,
	`CREATE TABLE IF NOT EXISTS tracks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	audio TEXT NOT NULL DEFAULT '',
	explicit_content INTEGER NOT NULL DEFAULT 0,
	listens INTEGER NOT NULL DEFAULT 0 CHECK (listens >= 0),
	release_id INTEGER REFERENCES releases(id),
	genre_id INTEGER REFERENCES genres(id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_tracks_release ON tracks(release_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tracks_genre ON tracks(genre_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tracks_listens ON tracks(listens)`,
	`CREATE TABLE IF NOT EXISTS track_artists (
	track_id INTEGER NOT NULL REFERENCES tracks(id),
	artist_id INTEGER NOT NULL REFERENCES artists(id),
	PRIMARY KEY (track_id, artist_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_track_artists_artist ON track_artists(artist_id)`,
	`CREATE TABLE IF NOT EXISTS release_artists (
	release_id INTEGER NOT NULL REFERENCES releases(id),
	artist_id INTEGER NOT NULL REFERENCES artists(id),
	PRIMARY KEY (release_id, artist_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_release_artists_artist ON release_artists(artist_id)`,
	`CREATE TABLE IF NOT EXISTS release_labels (
	release_id INTEGER NOT NULL REFERENCES releases(id),
	label_id INTEGER NOT NULL REFERENCES labels(id),
	PRIMARY KEY (release_id, label_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_release_labels_label ON release_labels(label_id)`,
	`CREATE TABLE IF NOT EXISTS playlists (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	user_id INTEGER REFERENCES users(id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_playlists_user ON playlists(user_id)`,
	`CREATE TABLE IF NOT EXISTS playlist_tracks (
	playlist_id INTEGER NOT NULL REFERENCES playlists(id),
	track_id INTEGER NOT NULL REFERENCES tracks(id),
	position INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (playlist_id, track_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_playlist_tracks_track ON playlist_tracks(track_id)`,
}

var postgresSchema = []string{
	`CREATE OR REPLACE FUNCTION unicode_lower(s TEXT) RETURNS TEXT
	LANGUAGE SQL IMMUTABLE AS $$ SELECT lower(s) $$`,
	`CREATE TABLE IF NOT EXISTS roles (
	id SERIAL PRIMARY KEY,
	title TEXT NOT NULL UNIQUE
)`,
	`CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	login TEXT NOT NULL UNIQUE,
	nickname TEXT NOT NULL,
	password TEXT NOT NULL,
	role_id INTEGER NOT NULL REFERENCES roles(id)
)`,
	`CREATE TABLE IF NOT EXISTS genres (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS labels (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS release_types (
	id SERIAL PRIMARY KEY,
	title TEXT NOT NULL UNIQUE
)`,
	`CREATE TABLE IF NOT EXISTS artists (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	bio TEXT NOT NULL DEFAULT '',
	avatar TEXT NOT NULL DEFAULT '',
	banner TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS releases (
	id SERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	cover TEXT NOT NULL DEFAULT '',
	release_type_id INTEGER REFERENCES release_types(id),
	release_date DATE
)`,
	`CREATE TABLE IF NOT EXISTS tracks (
	id SERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	audio TEXT NOT NULL DEFAULT '',
	explicit_content BOOLEAN NOT NULL DEFAULT FALSE,
	listens INTEGER NOT NULL DEFAULT 0 CHECK (listens >= 0),
	release_id INTEGER REFERENCES releases(id),
	genre_id INTEGER REFERENCES genres(id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_tracks_release ON tracks(release_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tracks_genre ON tracks(genre_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tracks_listens ON tracks(listens)`,
	`CREATE TABLE IF NOT EXISTS track_artists (
	track_id INTEGER NOT NULL REFERENCES tracks(id),
	artist_id INTEGER NOT NULL REFERENCES artists(id),
	PRIMARY KEY (track_id, artist_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_track_artists_artist ON track_artists(artist_id)`,
	`CREATE TABLE IF NOT EXISTS release_artists (
	release_id INTEGER NOT NULL REFERENCES releases(id),
	artist_id INTEGER NOT NULL REFERENCES artists(id),
	PRIMARY KEY (release_id, artist_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_release_artists_artist ON release_artists(artist_id)`,
	`CREATE TABLE IF NOT EXISTS release_labels (
	release_id INTEGER NOT NULL REFERENCES releases(id),
	label_id INTEGER NOT NULL REFERENCES labels(id),
	PRIMARY KEY (release_id, label_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_release_labels_label ON release_labels(label_id)`,
	`CREATE TABLE IF NOT EXISTS playlists (
	id SERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	user_id INTEGER REFERENCES users(id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_playlists_user ON playlists(user_id)`,
	`CREATE TABLE IF NOT EXISTS playlist_tracks (
	playlist_id INTEGER NOT NULL REFERENCES playlists(id),
	track_id INTEGER NOT NULL REFERENCES tracks(id),
	position INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (playlist_id, track_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_playlist_tracks_track ON playlist_tracks(track_id)`,
}
