package store

import (
	"context"
	"fmt"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

func (db *DB) CreateGenre(ctx context.Context, g *domain.Genre) error {
	id, err := db.insertID(ctx, `INSERT INTO genres (name) VALUES (?) RETURNING id`, g.Name)
	if err != nil {
		return fmt.Errorf("failed to create genre: %w", err)
	}
	g.ID = id
	return nil
}

// GetGenre returns nil when the genre does not exist.
func (db *DB) GetGenre(ctx context.Context, id int) (*domain.Genre, error) {
	var g domain.Genre
	ok, err := db.getOne(ctx, &g, `SELECT * FROM genres WHERE id = ?`, id)
	if err != nil || !ok {
		return nil, err
	}
	return &g, nil
}

// UpdateGenre reports false when no row matched.
func (db *DB) UpdateGenre(ctx context.Context, g *domain.Genre) (bool, error) {
	n, err := db.exec(ctx, `UPDATE genres SET name = ? WHERE id = ?`, g.Name, g.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update genre: %w", err)
	}
	return n > 0, nil
}

// DeleteGenre detaches the genre's tracks and removes the row.
func (db *DB) DeleteGenre(ctx context.Context, id int) error {
	if _, err := db.exec(ctx, `UPDATE tracks SET genre_id = NULL WHERE genre_id = ?`, id); err != nil {
		return fmt.Errorf("failed to detach genre tracks: %w", err)
	}
	if _, err := db.exec(ctx, `DELETE FROM genres WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}
	return nil
}

// ListGenres pages through genres whose name contains name.
func (db *DB) ListGenres(ctx context.Context, name string, page domain.PageRequest) ([]domain.Genre, int, error) {
	var w where
	w.contains("name", name)
	return listPage[domain.Genre](ctx, db, "genres", w, "id", page)
}

func (db *DB) GenresByIDs(ctx context.Context, ids []int) (map[int]domain.Genre, error) {
	return byIDs(ctx, db, "genres", ids, func(g domain.Genre) int { return g.ID })
}
