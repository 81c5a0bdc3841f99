package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Interreferences/NoWayDpl-back/internal/constants"
	"github.com/Interreferences/NoWayDpl-back/internal/domain"
	"github.com/Interreferences/NoWayDpl-back/internal/logger"
	"github.com/Interreferences/NoWayDpl-back/internal/storage"
	"github.com/Interreferences/NoWayDpl-back/internal/store"
)

type ArtistService struct {
	Repo   *store.DB
	Files  FileStore
	Logger *logger.Logger
}

func NewArtistService(repo *store.DB, files FileStore, log *logger.Logger) *ArtistService {
	return &ArtistService{Repo: repo, Files: files, Logger: log.WithComponent("artists")}
}

// Create stores the avatar and banner, then persists the artist. Either upload may be nil.
func (s *ArtistService) Create(ctx context.Context, in ArtistInput, avatar, banner storage.Upload) (*domain.Artist, error) {
	verr := &domain.ValidationError{}
	name := requireText(verr, "name", in.Name)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	staged := newStagedFiles(s.Files, s.Logger)
	artist := &domain.Artist{Name: name}
	if in.Bio != nil {
		artist.Bio = strings.TrimSpace(*in.Bio)
	}

	var err error
	if artist.Avatar, err = staged.store(constants.BucketImage, avatar); err != nil {
		return nil, err
	}
	if artist.Banner, err = staged.store(constants.BucketImage, banner); err != nil {
		staged.rollback()
		return nil, err
	}

	if err := s.Repo.CreateArtist(ctx, artist); err != nil {
		staged.rollback()
		return nil, err
	}
	s.Logger.Info("Artist created", "artist_id", artist.ID, "name", artist.Name)
	return artist, nil
}

// FindAll pages through every artist.
func (s *ArtistService) FindAll(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Artist], error) {
	items, total, err := s.Repo.ListArtists(ctx, "", page)
	if err != nil {
		return domain.Page[domain.Artist]{}, err
	}
	return domain.NewPage(items, total, page), nil
}

// FindByID loads the artist with its tracks and releases.
func (s *ArtistService) FindByID(ctx context.Context, id int) (*domain.Artist, error) {
	artist, err := s.Repo.GetArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	if artist == nil {
		return nil, domain.NotFoundError("artist", id)
	}

	tracks, err := s.Repo.TracksByArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	inc := trackIncludes{artists: true, release: true, releaseDetails: true}
	if err := hydrateTracks(ctx, s.Repo, tracks, inc); err != nil {
		return nil, err
	}

	releases, err := s.Repo.ReleasesByArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := hydrateReleases(ctx, s.Repo, releases, releaseIncludes{releaseType: true, artists: true, labels: true}); err != nil {
		return nil, err
	}

	artist.Tracks = tracks
	artist.Releases = releases
	return artist, nil
}

// Update applies the supplied fields and swaps assets when new uploads are given.
func (s *ArtistService) Update(ctx context.Context, id int, in ArtistInput, avatar, banner storage.Upload) (*domain.Artist, error) {
	verr := &domain.ValidationError{}
	optionalText(verr, "name", in.Name)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	artist, err := s.Repo.GetArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	if artist == nil {
		return nil, domain.NotFoundError("artist", id)
	}

	if in.Name != nil {
		artist.Name = strings.TrimSpace(*in.Name)
	}
	if in.Bio != nil {
		artist.Bio = strings.TrimSpace(*in.Bio)
	}

	staged := newStagedFiles(s.Files, s.Logger)
	if avatar != nil {
		path, err := staged.store(constants.BucketImage, avatar)
		if err != nil {
			return nil, err
		}
		staged.replace(artist.Avatar)
		artist.Avatar = path
	}
	if banner != nil {
		path, err := staged.store(constants.BucketImage, banner)
		if err != nil {
			staged.rollback()
			return nil, err
		}
		staged.replace(artist.Banner)
		artist.Banner = path
	}

	ok, err := s.Repo.UpdateArtist(ctx, artist)
	if err == nil && !ok {
		err = domain.NotFoundError("artist", id)
	}
	if err != nil {
		staged.rollback()
		return nil, err
	}
	staged.commit()

	return s.FindByID(ctx, id)
}

// Delete removes the artist and its links. A missing artist is a no-op returning nil.
func (s *ArtistService) Delete(ctx context.Context, id int) (*domain.Artist, error) {
	artist, err := s.Repo.GetArtist(ctx, id)
	if err != nil || artist == nil {
		return nil, err
	}

	err = s.Repo.RunInTx(ctx, func(tx *store.DB) error {
		return tx.DeleteArtist(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete artist %d: %w", id, err)
	}
	removeFiles(s.Files, s.Logger, artist.Avatar, artist.Banner)
	s.Logger.Info("Artist deleted", "artist_id", id)
	return artist, nil
}

// FindByName matches names case-insensitively and fails with ErrNotFound on no match.
func (s *ArtistService) FindByName(ctx context.Context, name string, page domain.PageRequest) (domain.Page[domain.Artist], error) {
	items, total, err := s.Repo.ListArtists(ctx, name, page)
	if err != nil {
		return domain.Page[domain.Artist]{}, err
	}
	if total == 0 {
		return domain.Page[domain.Artist]{}, noMatch("artists", name)
	}
	return domain.NewPage(items, total, page), nil
}
