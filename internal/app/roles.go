package app

import (
	"context"
	"fmt"

	"github.com/Interreferences/NoWayDpl-back/internal/constants"
	"github.com/Interreferences/NoWayDpl-back/internal/domain"
	"github.com/Interreferences/NoWayDpl-back/internal/logger"
	"github.com/Interreferences/NoWayDpl-back/internal/store"
)

type RoleService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewRoleService(repo *store.DB, log *logger.Logger) *RoleService {
	return &RoleService{Repo: repo, Logger: log.WithComponent("roles")}
}

// EnsureDefaults creates the Admin and User roles when missing.
func (s *RoleService) EnsureDefaults(ctx context.Context) error {
	if err := s.Repo.SeedRoles(ctx, constants.RoleAdmin, constants.RoleUser); err != nil {
		return err
	}
	s.Logger.Debug("Roles ensured")
	return nil
}

func (s *RoleService) ByTitle(ctx context.Context, title string) (*domain.Role, error) {
	role, err := s.Repo.GetRoleByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("role %q: %w", title, domain.ErrNotFound)
	}
	return role, nil
}

func (s *RoleService) FindAll(ctx context.Context) ([]domain.Role, error) {
	return s.Repo.ListRoles(ctx)
}
