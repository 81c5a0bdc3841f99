package app

import (
	"context"
	"fmt"

	"github.com/Interreferences/NoWayDpl-back/internal/constants"
	"github.com/Interreferences/NoWayDpl-back/internal/domain"
	"github.com/Interreferences/NoWayDpl-back/internal/logger"
	"github.com/Interreferences/NoWayDpl-back/internal/store"
)

type ReleaseTypeService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewReleaseTypeService(repo *store.DB, log *logger.Logger) *ReleaseTypeService {
	return &ReleaseTypeService{Repo: repo, Logger: log.WithComponent("release_types")}
}

// EnsureDefaults creates the Single, EP and Album types when missing.
func (s *ReleaseTypeService) EnsureDefaults(ctx context.Context) error {
	return s.Repo.SeedReleaseTypes(ctx, constants.ReleaseTypeSingle, constants.ReleaseTypeEP, constants.ReleaseTypeAlbum)
}

func (s *ReleaseTypeService) Create(ctx context.Context, title string) (*domain.ReleaseType, error) {
	verr := &domain.ValidationError{}
	title = requireText(verr, "title", &title)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	rt := &domain.ReleaseType{Title: title}
	if err := s.Repo.CreateReleaseType(ctx, rt); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, fmt.Errorf("release type %q already exists: %w", title, domain.ErrConflict)
		}
		return nil, err
	}
	return rt, nil
}

func (s *ReleaseTypeService) FindAll(ctx context.Context, page domain.PageRequest) (domain.Page[domain.ReleaseType], error) {
	items, total, err := s.Repo.ListReleaseTypes(ctx, "", page)
	if err != nil {
		return domain.Page[domain.ReleaseType]{}, err
	}
	return domain.NewPage(items, total, page), nil
}

// FindByID loads the release type with its releases and their artists.
func (s *ReleaseTypeService) FindByID(ctx context.Context, id int) (*domain.ReleaseType, error) {
	rt, err := s.Repo.GetReleaseType(ctx, id)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, domain.NotFoundError("release type", id)
	}
	releases, err := s.Repo.ReleasesByType(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := hydrateReleases(ctx, s.Repo, releases, releaseIncludes{artists: true}); err != nil {
		return nil, err
	}
	rt.Releases = releases
	return rt, nil
}

func (s *ReleaseTypeService) Update(ctx context.Context, id int, title string) (*domain.ReleaseType, error) {
	verr := &domain.ValidationError{}
	title = requireText(verr, "title", &title)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	rt := &domain.ReleaseType{ID: id, Title: title}
	ok, err := s.Repo.UpdateReleaseType(ctx, rt)
	if store.IsUniqueViolation(err) {
		return nil, fmt.Errorf("release type %q already exists: %w", title, domain.ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFoundError("release type", id)
	}
	return rt, nil
}

// Delete detaches releases of this type and removes it. Missing types are a no-op.
func (s *ReleaseTypeService) Delete(ctx context.Context, id int) (*domain.ReleaseType, error) {
	rt, err := s.Repo.GetReleaseType(ctx, id)
	if err != nil || rt == nil {
		return nil, err
	}
	if err := s.Repo.RunInTx(ctx, func(tx *store.DB) error { return tx.DeleteReleaseType(ctx, id) }); err != nil {
		return nil, fmt.Errorf("failed to delete release type %d: %w", id, err)
	}
	s.Logger.Info("Release type deleted", "release_type_id", id)
	return rt, nil
}

func (s *ReleaseTypeService) FindByName(ctx context.Context, title string, page domain.PageRequest) (domain.Page[domain.ReleaseType], error) {
	items, total, err := s.Repo.ListReleaseTypes(ctx, title, page)
	if err != nil {
		return domain.Page[domain.ReleaseType]{}, err
	}
	if total == 0 {
		return domain.Page[domain.ReleaseType]{}, noMatch("release types", title)
	}
	return domain.NewPage(items, total, page), nil
}
