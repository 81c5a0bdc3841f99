package store

import (
	"context"
	"fmt"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

func (db *DB) CreateArtist(ctx context.Context, a *domain.Artist) error {
	id, err := db.insertID(ctx,
		`INSERT INTO artists (name, bio, avatar, banner) VALUES (?, ?, ?, ?) RETURNING id`,
		a.Name, a.Bio, a.Avatar, a.Banner)
	if err != nil {
		return fmt.Errorf("failed to create artist: %w", err)
	}
	a.ID = id
	return nil
}

// GetArtist returns nil when the artist does not exist.
func (db *DB) GetArtist(ctx context.Context, id int) (*domain.Artist, error) {
	var a domain.Artist
	ok, err := db.getOne(ctx, &a, `SELECT * FROM artists WHERE id = ?`, id)
	if err != nil || !ok {
		return nil, err
	}
	return &a, nil
}

func (db *DB) UpdateArtist(ctx context.Context, a *domain.Artist) (bool, error) {
	n, err := db.exec(ctx,
		`UPDATE artists SET name = ?, bio = ?, avatar = ?, banner = ? WHERE id = ?`,
		a.Name, a.Bio, a.Avatar, a.Banner, a.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update artist: %w", err)
	}
	return n > 0, nil
}

// DeleteArtist removes the artist's track and release links, then the row.
func (db *DB) DeleteArtist(ctx context.Context, id int) error {
	if _, err := db.exec(ctx, `DELETE FROM track_artists WHERE artist_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete artist tracks: %w", err)
	}
	if _, err := db.exec(ctx, `DELETE FROM release_artists WHERE artist_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete artist releases: %w", err)
	}
	if _, err := db.exec(ctx, `DELETE FROM artists WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}
	return nil
}

func (db *DB) ListArtists(ctx context.Context, name string, page domain.PageRequest) ([]domain.Artist, int, error) {
	var w where
	w.contains("name", name)
	return listPage[domain.Artist](ctx, db, "artists", w, "id", page)
}

type trackArtistRow struct {
	domain.Artist
	TrackID int `db:"track_id"`
}

// ArtistsByTrack groups artists by track id.
func (db *DB) ArtistsByTrack(ctx context.Context, trackIDs []int) (map[int][]domain.Artist, error) {
	out := make(map[int][]domain.Artist)
	if len(trackIDs) == 0 {
		return out, nil
	}
	var rows []trackArtistRow
	err := db.selectIn(ctx, &rows, `SELECT a.*, ta.track_id FROM artists a
		JOIN track_artists ta ON ta.artist_id = a.id
		WHERE ta.track_id IN (?) ORDER BY a.id`, trackIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load track artists: %w", err)
	}
	for _, r := range rows {
		out[r.TrackID] = append(out[r.TrackID], r.Artist)
	}
	return out, nil
}

type releaseArtistRow struct {
	domain.Artist
	ReleaseID int `db:"release_id"`
}

// ArtistsByRelease groups artists by release id.
func (db *DB) ArtistsByRelease(ctx context.Context, releaseIDs []int) (map[int][]domain.Artist, error) {
	out := make(map[int][]domain.Artist)
	if len(releaseIDs) == 0 {
		return out, nil
	}
	var rows []releaseArtistRow
	err := db.selectIn(ctx, &rows, `SELECT a.*, ra.release_id FROM artists a
		JOIN release_artists ra ON ra.artist_id = a.id
		WHERE ra.release_id IN (?) ORDER BY a.id`, releaseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load release artists: %w", err)
	}
	for _, r := range rows {
		out[r.ReleaseID] = append(out[r.ReleaseID], r.Artist)
	}
	return out, nil
}

// SetTrackArtists replaces every artist link of a track.
func (db *DB) SetTrackArtists(ctx context.Context, trackID int, artistIDs []int) error {
	if _, err := db.exec(ctx, `DELETE FROM track_artists WHERE track_id = ?`, trackID); err != nil {
		return fmt.Errorf("failed to clear track artists: %w", err)
	}
	for _, artistID := range artistIDs {
		if _, err := db.exec(ctx, `INSERT INTO track_artists (track_id, artist_id) VALUES (?, ?)`, trackID, artistID); err != nil {
			return fmt.Errorf("failed to link artist %d: %w", artistID, err)
		}
	}
	return nil
}

// SetReleaseArtists replaces every artist link of a release.
func (db *DB) SetReleaseArtists(ctx context.Context, releaseID int, artistIDs []int) error {
	if _, err := db.exec(ctx, `DELETE FROM release_artists WHERE release_id = ?`, releaseID); err != nil {
		return fmt.Errorf("failed to clear release artists: %w", err)
	}
	for _, artistID := range artistIDs {
		if _, err := db.exec(ctx, `INSERT INTO release_artists (release_id, artist_id) VALUES (?, ?)`, releaseID, artistID); err != nil {
			return fmt.Errorf("failed to link artist %d: %w", artistID, err)
		}
	}
	return nil
}
