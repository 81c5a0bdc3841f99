package app

import (
	"context"
	"fmt"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
	"github.com/Interreferences/NoWayDpl-back/internal/logger"
	"github.com/Interreferences/NoWayDpl-back/internal/store"
)

type LabelService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewLabelService(repo *store.DB, log *logger.Logger) *LabelService {
	return &LabelService{Repo: repo, Logger: log.WithComponent("labels")}
}

func (s *LabelService) Create(ctx context.Context, name string) (*domain.Label, error) {
	verr := &domain.ValidationError{}
	name = requireText(verr, "name", &name)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	l := &domain.Label{Name: name}
	if err := s.Repo.CreateLabel(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *LabelService) FindAll(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Label], error) {
	items, total, err := s.Repo.ListLabels(ctx, "", page)
	if err != nil {
		return domain.Page[domain.Label]{}, err
	}
	return domain.NewPage(items, total, page), nil
}

// FindByID loads the label with its releases and their artists.
func (s *LabelService) FindByID(ctx context.Context, id int) (*domain.Label, error) {
	l, err := s.Repo.GetLabel(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.NotFoundError("label", id)
	}
	releases, err := s.Repo.ReleasesByLabel(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := hydrateReleases(ctx, s.Repo, releases, releaseIncludes{releaseType: true, artists: true}); err != nil {
		return nil, err
	}
	l.Releases = releases
	return l, nil
}

func (s *LabelService) Update(ctx context.Context, id int, name string) (*domain.Label, error) {
	verr := &domain.ValidationError{}
	name = requireText(verr, "name", &name)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	l := &domain.Label{ID: id, Name: name}
	ok, err := s.Repo.UpdateLabel(ctx, l)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFoundError("label", id)
	}
	return l, nil
}

// Delete unlinks the label from its releases and removes it. Missing labels are a no-op.
func (s *LabelService) Delete(ctx context.Context, id int) (*domain.Label, error) {
	l, err := s.Repo.GetLabel(ctx, id)
	if err != nil || l == nil {
		return nil, err
	}
	if err := s.Repo.RunInTx(ctx, func(tx *store.DB) error { return tx.DeleteLabel(ctx, id) }); err != nil {
		return nil, fmt.Errorf("failed to delete label %d: %w", id, err)
	}
	s.Logger.Info("Label deleted", "label_id", id)
	return l, nil
}

func (s *LabelService) FindByName(ctx context.Context, name string, page domain.PageRequest) (domain.Page[domain.Label], error) {
	items, total, err := s.Repo.ListLabels(ctx, name, page)
	if err != nil {
		return domain.Page[domain.Label]{}, err
	}
	if total == 0 {
		return domain.Page[domain.Label]{}, noMatch("labels", name)
	}
	return domain.NewPage(items, total, page), nil
}
