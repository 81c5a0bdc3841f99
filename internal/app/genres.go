package app

import (
	"context"
	"fmt"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
	"github.com/Interreferences/NoWayDpl-back/internal/logger"
	"github.com/Interreferences/NoWayDpl-back/internal/store"
)

type GenreService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewGenreService(repo *store.DB, log *logger.Logger) *GenreService {
	return &GenreService{Repo: repo, Logger: log.WithComponent("genres")}
}

func (s *GenreService) Create(ctx context.Context, name string) (*domain.Genre, error) {
	verr := &domain.ValidationError{}
	name = requireText(verr, "name", &name)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	g := &domain.Genre{Name: name}
	if err := s.Repo.CreateGenre(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GenreService) FindAll(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Genre], error) {
	items, total, err := s.Repo.ListGenres(ctx, "", page)
	if err != nil {
		return domain.Page[domain.Genre]{}, err
	}
	return domain.NewPage(items, total, page), nil
}

// FindByID loads the genre with its tracks and their artists.
func (s *GenreService) FindByID(ctx context.Context, id int) (*domain.Genre, error) {
	g, err := s.Repo.GetGenre(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.NotFoundError("genre", id)
	}
	tracks, err := s.Repo.TracksByGenre(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := hydrateTracks(ctx, s.Repo, tracks, listIncludes); err != nil {
		return nil, err
	}
	g.Tracks = tracks
	return g, nil
}

func (s *GenreService) Update(ctx context.Context, id int, name string) (*domain.Genre, error) {
	verr := &domain.ValidationError{}
	name = requireText(verr, "name", &name)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	g := &domain.Genre{ID: id, Name: name}
	ok, err := s.Repo.UpdateGenre(ctx, g)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFoundError("genre", id)
	}
	return g, nil
}

// Delete detaches the genre's tracks and removes it. Missing genres are a no-op.
func (s *GenreService) Delete(ctx context.Context, id int) (*domain.Genre, error) {
	g, err := s.Repo.GetGenre(ctx, id)
	if err != nil || g == nil {
		return nil, err
	}
	if err := s.Repo.RunInTx(ctx, func(tx *store.DB) error { return tx.DeleteGenre(ctx, id) }); err != nil {
		return nil, fmt.Errorf("failed to delete genre %d: %w", id, err)
	}
	s.Logger.Info("Genre deleted", "genre_id", id)
	return g, nil
}

func (s *GenreService) FindByName(ctx context.Context, name string, page domain.PageRequest) (domain.Page[domain.Genre], error) {
	items, total, err := s.Repo.ListGenres(ctx, name, page)
	if err != nil {
		return domain.Page[domain.Genre]{}, err
	}
	if total == 0 {
		return domain.Page[domain.Genre]{}, noMatch("genres", name)
	}
	return domain.NewPage(items, total, page), nil
}
