package store

import (
	"context"
	"fmt"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

func (db *DB) GetRole(ctx context.Context, id int) (*domain.Role, error) {
	var r domain.Role
	ok, err := db.getOne(ctx, &r, `SELECT * FROM roles WHERE id = ?`, id)
	if err != nil || !ok {
		return nil, err
	}
	return &r, nil
}

func (db *DB) GetRoleByTitle(ctx context.Context, title string) (*domain.Role, error) {
	var r domain.Role
	ok, err := db.getOne(ctx, &r, `SELECT * FROM roles WHERE title = ?`, title)
	if err != nil || !ok {
		return nil, err
	}
	return &r, nil
}

func (db *DB) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles := []domain.Role{}
	if err := db.SelectContext(ctx, &roles, `SELECT * FROM roles ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// SeedRoles inserts the missing role titles.
func (db *DB) SeedRoles(ctx context.Context, titles ...string) error {
	for _, title := range titles {
		if _, err := db.exec(ctx, `INSERT INTO roles (title) VALUES (?) ON CONFLICT (title) DO NOTHING`, title); err != nil {
			return fmt.Errorf("failed to seed role %q: %w", title, err)
		}
	}
	return nil
}
