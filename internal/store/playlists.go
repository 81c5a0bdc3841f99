package store

import (
	"context"
	"fmt"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

func (db *DB) CreatePlaylist(ctx context.Context, p *domain.Playlist) error {
	id, err := db.insertID(ctx, `INSERT INTO playlists (title, user_id) VALUES (?, ?) RETURNING id`, p.Title, p.UserID)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	p.ID = id
	return nil
}

func (db *DB) GetPlaylist(ctx context.Context, id int) (*domain.Playlist, error) {
	var p domain.Playlist
	ok, err := db.getOne(ctx, &p, `SELECT * FROM playlists WHERE id = ?`, id)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (db *DB) UpdatePlaylist(ctx context.Context, p *domain.Playlist) (bool, error) {
	n, err := db.exec(ctx, `UPDATE playlists SET title = ?, user_id = ? WHERE id = ?`, p.Title, p.UserID, p.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update playlist: %w", err)
	}
	return n > 0, nil
}

// DeletePlaylist removes the playlist entries, then the row.
func (db *DB) DeletePlaylist(ctx context.Context, id int) error {
	if _, err := db.exec(ctx, `DELETE FROM playlist_tracks WHERE playlist_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete playlist tracks: %w", err)
	}
	if _, err := db.exec(ctx, `DELETE FROM playlists WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	return nil
}

func (db *DB) PlaylistsByUser(ctx context.Context, userID int) ([]domain.Playlist, error) {
	playlists := []domain.Playlist{}
	err := db.SelectContext(ctx, &playlists, db.Rebind(`SELECT * FROM playlists WHERE user_id = ? ORDER BY id`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user playlists: %w", err)
	}
	return playlists, nil
}

// AddPlaylistTrack appends the track at the end of the playlist. It reports
// false when the track was already present.
func (db *DB) AddPlaylistTrack(ctx context.Context, playlistID, trackID int) (bool, error) {
	n, err := db.exec(ctx, `INSERT INTO playlist_tracks (playlist_id, track_id, position)
		SELECT CAST(? AS INTEGER), CAST(? AS INTEGER), COALESCE(MAX(position), 0) + 1
		FROM playlist_tracks WHERE playlist_id = ?
		ON CONFLICT (playlist_id, track_id) DO NOTHING`, playlistID, trackID, playlistID)
	if err != nil {
		return false, fmt.Errorf("failed to add playlist track: %w", err)
	}
	return n > 0, nil
}

// RemovePlaylistTrack reports false when the pair was not linked.
func (db *DB) RemovePlaylistTrack(ctx context.Context, playlistID, trackID int) (bool, error) {
	n, err := db.exec(ctx, `DELETE FROM playlist_tracks WHERE playlist_id = ? AND track_id = ?`, playlistID, trackID)
	if err != nil {
		return false, fmt.Errorf("failed to remove playlist track: %w", err)
	}
	return n > 0, nil
}
