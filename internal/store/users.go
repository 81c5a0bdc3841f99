package store

import (
	"context"
	"fmt"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

func (db *DB) CreateUser(ctx context.Context, u *domain.User) error {
	id, err := db.insertID(ctx,
		`INSERT INTO users (login, nickname, password, role_id) VALUES (?, ?, ?, ?) RETURNING id`,
		u.Login, u.Nickname, u.Password, u.RoleID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	u.ID = id
	return nil
}

func (db *DB) GetUser(ctx context.Context, id int) (*domain.User, error) {
	var u domain.User
	ok, err := db.getOne(ctx, &u, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

func (db *DB) GetUserByLogin(ctx context.Context, login string) (*domain.User, error) {
	var u domain.User
	ok, err := db.getOne(ctx, &u, `SELECT * FROM users WHERE login = ?`, login)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}
