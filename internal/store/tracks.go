package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

// ReleaseState narrows track listings by release membership.
type ReleaseState int

const (
	AnyRelease ReleaseState = iota
	WithRelease
	WithoutRelease
)

// TrackFilter selects tracks for ListTracks.
type TrackFilter struct {
	Title   string
	Release ReleaseState
}

func (f TrackFilter) where() where {
	var w where
	w.contains("title", f.Title)
	switch f.Release {
	case WithRelease:
		w.add("release_id IS NOT NULL")
	case WithoutRelease:
		w.add("release_id IS NULL")
	}
	return w
}

func (db *DB) CreateTrack(ctx context.Context, t *domain.Track) error {
	id, err := db.insertID(ctx, `INSERT INTO tracks (
		title, audio, explicit_content, listens, release_id, genre_id
	) VALUES (?, ?, ?, 0, ?, ?) RETURNING id`,
		t.Title, t.Audio, t.ExplicitContent, t.ReleaseID, t.GenreID)
	if err != nil {
		return fmt.Errorf("failed to create track: %w", err)
	}
	t.ID = id
	t.Listens = 0
	return nil
}

// GetTrack returns nil when the track does not exist.
func (db *DB) GetTrack(ctx context.Context, id int) (*domain.Track, error) {
	var t domain.Track
	ok, err := db.getOne(ctx, &t, `SELECT * FROM tracks WHERE id = ?`, id)
	if err != nil || !ok {
		return nil, err
	}
	return &t, nil
}

// UpdateTrack saves scalar fields. Listens and release membership have their own paths.
func (db *DB) UpdateTrack(ctx context.Context, t *domain.Track) (bool, error) {
	n, err := db.exec(ctx,
		`UPDATE tracks SET title = ?, audio = ?, explicit_content = ?, genre_id = ? WHERE id = ?`,
		t.Title, t.Audio, t.ExplicitContent, t.GenreID, t.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update track: %w", err)
	}
	return n > 0, nil
}

// DeleteTrack removes artist and playlist links, then the row.
func (db *DB) DeleteTrack(ctx context.Context, id int) error {
	if _, err := db.exec(ctx, `DELETE FROM track_artists WHERE track_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete track artists: %w", err)
	}
	if _, err := db.exec(ctx, `DELETE FROM playlist_tracks WHERE track_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete track playlist entries: %w", err)
	}
	if _, err := db.exec(ctx, `DELETE FROM tracks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete track: %w", err)
	}
	return nil
}

func (db *DB) ListTracks(ctx context.Context, f TrackFilter, page domain.PageRequest) ([]domain.Track, int, error) {
	return listPage[domain.Track](ctx, db, "tracks", f.where(), "id", page)
}

// TopTracks returns released tracks by listens, most played first.
func (db *DB) TopTracks(ctx context.Context, limit int) ([]domain.Track, error) {
	tracks := []domain.Track{}
	err := db.SelectContext(ctx, &tracks, db.Rebind(`SELECT * FROM tracks
		WHERE release_id IS NOT NULL
		ORDER BY listens DESC, id ASC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list top tracks: %w", err)
	}
	return tracks, nil
}

// IncrementListens adds one listen atomically. It reports false when the track does not exist.
func (db *DB) IncrementListens(ctx context.Context, id int) (bool, error) {
	n, err := db.exec(ctx, `UPDATE tracks SET listens = listens + 1 WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to increment listens: %w", err)
	}
	return n > 0, nil
}

// TracksByRelease groups tracks by release id.
func (db *DB) TracksByRelease(ctx context.Context, releaseIDs []int) (map[int][]domain.Track, error) {
	out := make(map[int][]domain.Track)
	if len(releaseIDs) == 0 {
		return out, nil
	}
	var tracks []domain.Track
	if err := db.selectIn(ctx, &tracks, `SELECT * FROM tracks WHERE release_id IN (?) ORDER BY id`, releaseIDs); err != nil {
		return nil, fmt.Errorf("failed to load release tracks: %w", err)
	}
	for _, t := range tracks {
		out[*t.ReleaseID] = append(out[*t.ReleaseID], t)
	}
	return out, nil
}

func (db *DB) TracksByArtist(ctx context.Context, artistID int) ([]domain.Track, error) {
	tracks := []domain.Track{}
	err := db.SelectContext(ctx, &tracks, db.Rebind(`SELECT t.* FROM tracks t
		JOIN track_artists ta ON ta.track_id = t.id
		WHERE ta.artist_id = ? ORDER BY t.id`), artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to load artist tracks: %w", err)
	}
	return tracks, nil
}

func (db *DB) TracksByGenre(ctx context.Context, genreID int) ([]domain.Track, error) {
	tracks := []domain.Track{}
	err := db.SelectContext(ctx, &tracks, db.Rebind(`SELECT * FROM tracks WHERE genre_id = ? ORDER BY id`), genreID)
	if err != nil {
		return nil, fmt.Errorf("failed to load genre tracks: %w", err)
	}
	return tracks, nil
}

type playlistTrackRow struct {
	domain.Track
	PlaylistID int `db:"playlist_id"`
	Position   int `db:"position"`
}

// TracksByPlaylist groups tracks by playlist id in insertion order.
func (db *DB) TracksByPlaylist(ctx context.Context, playlistIDs []int) (map[int][]domain.Track, error) {
	out := make(map[int][]domain.Track)
	if len(playlistIDs) == 0 {
		return out, nil
	}
	var rows []playlistTrackRow
	err := db.selectIn(ctx, &rows, `SELECT t.*, pt.playlist_id, pt.position FROM tracks t
		JOIN playlist_tracks pt ON pt.track_id = t.id
		WHERE pt.playlist_id IN (?) ORDER BY pt.playlist_id, pt.position`, playlistIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load playlist tracks: %w", err)
	}
	for _, r := range rows {
		out[r.PlaylistID] = append(out[r.PlaylistID], r.Track)
	}
	return out, nil
}

// DetachReleaseTracks clears release_id on every track of the release.
func (db *DB) DetachReleaseTracks(ctx context.Context, releaseID int) (int64, error) {
	n, err := db.exec(ctx, `UPDATE tracks SET release_id = NULL WHERE release_id = ?`, releaseID)
	if err != nil {
		return 0, fmt.Errorf("failed to detach release tracks: %w", err)
	}
	return n, nil
}

// TrackReleaseIDs returns the distinct releases the given tracks currently belong to.
func (db *DB) TrackReleaseIDs(ctx context.Context, trackIDs []int) ([]int, error) {
	ids := []int{}
	if len(trackIDs) == 0 {
		return ids, nil
	}
	err := db.selectIn(ctx, &ids,
		`SELECT DISTINCT release_id FROM tracks WHERE id IN (?) AND release_id IS NOT NULL ORDER BY release_id`, trackIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load track releases: %w", err)
	}
	return ids, nil
}

// CountReleaseTracks returns how many tracks point at the release.
func (db *DB) CountReleaseTracks(ctx context.Context, releaseID int) (int, error) {
	var n int
	if err := db.GetContext(ctx, &n, db.Rebind(`SELECT COUNT(*) FROM tracks WHERE release_id = ?`), releaseID); err != nil {
		return 0, fmt.Errorf("failed to count release tracks: %w", err)
	}
	return n, nil
}

// AttachReleaseTracks points the given tracks at the release.
func (db *DB) AttachReleaseTracks(ctx context.Context, releaseID int, trackIDs []int) error {
	if len(trackIDs) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`UPDATE tracks SET release_id = ? WHERE id IN (?)`, releaseID, trackIDs)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to attach release tracks: %w", err)
	}
	return nil
}
