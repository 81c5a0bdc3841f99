package store

import (
	"context"
	"fmt"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

// ReleaseFilter selects releases for ListReleases. A non-nil ReleasedBy hides
// releases dated after it.
type ReleaseFilter struct {
	Title      string
	ReleasedBy *domain.Date
}

func (f ReleaseFilter) where() where {
	var w where
	w.contains("title", f.Title)
	if f.ReleasedBy != nil {
		w.add("release_date <= ?", *f.ReleasedBy)
	}
	return w
}

func (db *DB) CreateRelease(ctx context.Context, r *domain.Release) error {
	id, err := db.insertID(ctx,
		`INSERT INTO releases (title, cover, release_type_id, release_date) VALUES (?, ?, ?, ?) RETURNING id`,
		r.Title, r.Cover, r.ReleaseTypeID, r.ReleaseDate)
	if err != nil {
		return fmt.Errorf("failed to create release: %w", err)
	}
	r.ID = id
	return nil
}

// GetRelease returns nil when the release does not exist.
func (db *DB) GetRelease(ctx context.Context, id int) (*domain.Release, error) {
	var r domain.Release
	ok, err := db.getOne(ctx, &r, `SELECT * FROM releases WHERE id = ?`, id)
	if err != nil || !ok {
		return nil, err
	}
	return &r, nil
}

func (db *DB) UpdateRelease(ctx context.Context, r *domain.Release) (bool, error) {
	n, err := db.exec(ctx,
		`UPDATE releases SET title = ?, cover = ?, release_type_id = ?, release_date = ? WHERE id = ?`,
		r.Title, r.Cover, r.ReleaseTypeID, r.ReleaseDate, r.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update release: %w", err)
	}
	return n > 0, nil
}

// SetReleaseType changes only the release type; nil clears it.
func (db *DB) SetReleaseType(ctx context.Context, releaseID int, typeID *int) error {
	if _, err := db.exec(ctx, `UPDATE releases SET release_type_id = ? WHERE id = ?`, typeID, releaseID); err != nil {
		return fmt.Errorf("failed to set release type: %w", err)
	}
	return nil
}

// DeleteRelease removes label and artist links, detaches the tracks and removes the row.
func (db *DB) DeleteRelease(ctx context.Context, id int) error {
	if _, err := db.exec(ctx, `DELETE FROM release_labels WHERE release_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete release labels: %w", err)
	}
	if _, err := db.exec(ctx, `DELETE FROM release_artists WHERE release_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete release artists: %w", err)
	}
	if _, err := db.DetachReleaseTracks(ctx, id); err != nil {
		return err
	}
	if _, err := db.exec(ctx, `DELETE FROM releases WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete release: %w", err)
	}
	return nil
}

func (db *DB) ListReleases(ctx context.Context, f ReleaseFilter, page domain.PageRequest) ([]domain.Release, int, error) {
	return listPage[domain.Release](ctx, db, "releases", f.where(), "id", page)
}

func (db *DB) ReleasesByIDs(ctx context.Context, ids []int) (map[int]domain.Release, error) {
	return byIDs(ctx, db, "releases", ids, func(r domain.Release) int { return r.ID })
}

func (db *DB) ReleasesByArtist(ctx context.Context, artistID int) ([]domain.Release, error) {
	releases := []domain.Release{}
	err := db.SelectContext(ctx, &releases, db.Rebind(`SELECT r.* FROM releases r
		JOIN release_artists ra ON ra.release_id = r.id
		WHERE ra.artist_id = ? ORDER BY r.id`), artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to load artist releases: %w", err)
	}
	return releases, nil
}

func (db *DB) ReleasesByLabel(ctx context.Context, labelID int) ([]domain.Release, error) {
	releases := []domain.Release{}
	err := db.SelectContext(ctx, &releases, db.Rebind(`SELECT r.* FROM releases r
		JOIN release_labels rl ON rl.release_id = r.id
		WHERE rl.label_id = ? ORDER BY r.id`), labelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load label releases: %w", err)
	}
	return releases, nil
}

func (db *DB) ReleasesByType(ctx context.Context, releaseTypeID int) ([]domain.Release, error) {
	releases := []domain.Release{}
	err := db.SelectContext(ctx, &releases, db.Rebind(`SELECT * FROM releases WHERE release_type_id = ? ORDER BY id`), releaseTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load releases by type: %w", err)
	}
	return releases, nil
}
