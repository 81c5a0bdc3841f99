package store

import (
	"context"
	"fmt"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

func (db *DB) CreateReleaseType(ctx context.Context, rt *domain.ReleaseType) error {
	id, err := db.insertID(ctx, `INSERT INTO release_types (title) VALUES (?) RETURNING id`, rt.Title)
	if err != nil {
		return fmt.Errorf("failed to create release type: %w", err)
	}
	rt.ID = id
	return nil
}

func (db *DB) GetReleaseType(ctx context.Context, id int) (*domain.ReleaseType, error) {
	var rt domain.ReleaseType
	ok, err := db.getOne(ctx, &rt, `SELECT * FROM release_types WHERE id = ?`, id)
	if err != nil || !ok {
		return nil, err
	}
	return &rt, nil
}

// GetReleaseTypeByTitle matches the title exactly.
func (db *DB) GetReleaseTypeByTitle(ctx context.Context, title string) (*domain.ReleaseType, error) {
	var rt domain.ReleaseType
	ok, err := db.getOne(ctx, &rt, `SELECT * FROM release_types WHERE title = ?`, title)
	if err != nil || !ok {
		return nil, err
	}
	return &rt, nil
}

func (db *DB) UpdateReleaseType(ctx context.Context, rt *domain.ReleaseType) (bool, error) {
	n, err := db.exec(ctx, `UPDATE release_types SET title = ? WHERE id = ?`, rt.Title, rt.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update release type: %w", err)
	}
	return n > 0, nil
}

// DeleteReleaseType detaches releases of this type and removes the row.
func (db *DB) DeleteReleaseType(ctx context.Context, id int) error {
	if _, err := db.exec(ctx, `UPDATE releases SET release_type_id = NULL WHERE release_type_id = ?`, id); err != nil {
		return fmt.Errorf("failed to detach releases: %w", err)
	}
	if _, err := db.exec(ctx, `DELETE FROM release_types WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete release type: %w", err)
	}
	return nil
}

func (db *DB) ListReleaseTypes(ctx context.Context, title string, page domain.PageRequest) ([]domain.ReleaseType, int, error) {
	var w where
	w.contains("title", title)
	return listPage[domain.ReleaseType](ctx, db, "release_types", w, "id", page)
}

func (db *DB) ReleaseTypesByIDs(ctx context.Context, ids []int) (map[int]domain.ReleaseType, error) {
	return byIDs(ctx, db, "release_types", ids, func(rt domain.ReleaseType) int { return rt.ID })
}

// SeedReleaseTypes inserts the missing titles.
func (db *DB) SeedReleaseTypes(ctx context.Context, titles ...string) error {
	for _, title := range titles {
		if _, err := db.exec(ctx, `INSERT INTO release_types (title) VALUES (?) ON CONFLICT (title) DO NOTHING`, title); err != nil {
			return fmt.Errorf("failed to seed release type %q: %w", title, err)
		}
	}
	return nil
}
