package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Interreferences/NoWayDpl-back/internal/constants"
	"github.com/Interreferences/NoWayDpl-back/internal/domain"
	"github.com/Interreferences/NoWayDpl-back/internal/logger"
	"github.com/Interreferences/NoWayDpl-back/internal/storage"
	"github.com/Interreferences/NoWayDpl-back/internal/store"
)

type ReleaseService struct {
	Repo   *store.DB
	Files  FileStore
	Logger *logger.Logger
	// Now decides which releases are in the future. Defaults to time.Now.
	Now func() time.Time
}

func NewReleaseService(repo *store.DB, files FileStore, log *logger.Logger) *ReleaseService {
	return &ReleaseService{Repo: repo, Files: files, Logger: log.WithComponent("releases"), Now: time.Now}
}

// resolveReleaseType maps a track count to a release type id. Zero tracks give nil.
func resolveReleaseType(ctx context.Context, tx *store.DB, trackCount int) (*int, error) {
	title, ok := domain.ReleaseTypeTitle(trackCount)
	if !ok {
		return nil, nil
	}
	rt, err := tx.GetReleaseTypeByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, fmt.Errorf("release type %q: %w", title, domain.ErrNotFound)
	}
	return &rt.ID, nil
}

// moveTracksToRelease moves the tracks onto the release. Releases that lose tracks
// to it are reclassified by their remaining track count.
func moveTracksToRelease(ctx context.Context, tx *store.DB, releaseID int, trackIDs []int) error {
	previous, err := tx.TrackReleaseIDs(ctx, trackIDs)
	if err != nil {
		return err
	}
	if err := tx.AttachReleaseTracks(ctx, releaseID, trackIDs); err != nil {
		return err
	}
	for _, id := range previous {
		if id == releaseID {
			continue
		}
		remaining, err := tx.CountReleaseTracks(ctx, id)
		if err != nil {
			return err
		}
		typeID, err := resolveReleaseType(ctx, tx, remaining)
		if err != nil {
			return err
		}
		if err := tx.SetReleaseType(ctx, id, typeID); err != nil {
			return err
		}
	}
	return nil
}

// Create stores the cover, classifies the release by its track count and
// links artists, labels and tracks in one transaction.
func (s *ReleaseService) Create(ctx context.Context, in ReleaseInput, cover storage.Upload) (*domain.Release, error) {
	verr := &domain.ValidationError{}
	title := requireText(verr, "title", in.Title)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	staged := newStagedFiles(s.Files, s.Logger)
	coverPath, err := staged.store(constants.BucketImage, cover)
	if err != nil {
		return nil, err
	}

	release := &domain.Release{Title: title, Cover: coverPath}
	if in.ReleaseDate != nil {
		release.ReleaseDate = *in.ReleaseDate
	}
	artistIDs := domain.UniqueIDs(in.ArtistIDs)
	labelIDs := domain.UniqueIDs(in.LabelIDs)
	trackIDs := domain.UniqueIDs(in.TrackIDs)

	err = s.Repo.RunInTx(ctx, func(tx *store.DB) error {
		if err := verifyIDs(ctx, tx, "artists", "artists", artistIDs); err != nil {
			return err
		}
		if err := verifyIDs(ctx, tx, "labels", "labels", labelIDs); err != nil {
			return err
		}
		if err := verifyIDs(ctx, tx, "tracks", "tracks", trackIDs); err != nil {
			return err
		}

		typeID, err := resolveReleaseType(ctx, tx, len(trackIDs))
		if err != nil {
			return err
		}
		release.ReleaseTypeID = typeID

		if err := tx.CreateRelease(ctx, release); err != nil {
			return err
		}
		if err := tx.SetReleaseArtists(ctx, release.ID, artistIDs); err != nil {
			return err
		}
		if err := tx.SetReleaseLabels(ctx, release.ID, labelIDs); err != nil {
			return err
		}
		return moveTracksToRelease(ctx, tx, release.ID, trackIDs)
	})
	if err != nil {
		staged.rollback()
		return nil, err
	}

	s.Logger.Info("Release created", "release_id", release.ID, "title", release.Title, "tracks", len(trackIDs))
	return s.FindByID(ctx, release.ID)
}

// FindAll pages through releases with their type, artists and labels.
func (s *ReleaseService) FindAll(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Release], error) {
	items, total, err := s.Repo.ListReleases(ctx, store.ReleaseFilter{}, page)
	if err != nil {
		return domain.Page[domain.Release]{}, err
	}
	inc := releaseIncludes{releaseType: true, artists: true, labels: true}
	if err := hydrateReleases(ctx, s.Repo, items, inc); err != nil {
		return domain.Page[domain.Release]{}, err
	}
	return domain.NewPage(items, total, page), nil
}

// FindByID loads the release with artists, labels, type and tracks.
func (s *ReleaseService) FindByID(ctx context.Context, id int) (*domain.Release, error) {
	release, err := s.Repo.GetRelease(ctx, id)
	if err != nil {
		return nil, err
	}
	if release == nil {
		return nil, domain.NotFoundError("release", id)
	}

	releases := []domain.Release{*release}
	inc := releaseIncludes{releaseType: true, artists: true, labels: true, tracks: true}
	if err := hydrateReleases(ctx, s.Repo, releases, inc); err != nil {
		return nil, err
	}
	return &releases[0], nil
}

// Update applies supplied fields. Non-nil id lists replace the matching
// association; a new track list also reclassifies the release.
func (s *ReleaseService) Update(ctx context.Context, id int, in ReleaseInput, cover storage.Upload) (*domain.Release, error) {
	verr := &domain.ValidationError{}
	optionalText(verr, "title", in.Title)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetRelease(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NotFoundError("release", id)
	}

	staged := newStagedFiles(s.Files, s.Logger)
	newCover, err := staged.store(constants.BucketImage, cover)
	if err != nil {
		return nil, err
	}

	err = s.Repo.RunInTx(ctx, func(tx *store.DB) error {
		release, err := tx.GetRelease(ctx, id)
		if err != nil {
			return err
		}
		if release == nil {
			return domain.NotFoundError("release", id)
		}

		if in.Title != nil {
			release.Title = strings.TrimSpace(*in.Title)
		}
		if in.ReleaseDate != nil {
			release.ReleaseDate = *in.ReleaseDate
		}
		if newCover != "" {
			staged.replace(release.Cover)
			release.Cover = newCover
		}

		if in.ArtistIDs != nil {
			artistIDs := domain.UniqueIDs(in.ArtistIDs)
			if err := verifyIDs(ctx, tx, "artists", "artists", artistIDs); err != nil {
				return err
			}
			if err := tx.SetReleaseArtists(ctx, id, artistIDs); err != nil {
				return err
			}
		}
		if in.LabelIDs != nil {
			labelIDs := domain.UniqueIDs(in.LabelIDs)
			if err := verifyIDs(ctx, tx, "labels", "labels", labelIDs); err != nil {
				return err
			}
			if err := tx.SetReleaseLabels(ctx, id, labelIDs); err != nil {
				return err
			}
		}
		if in.TrackIDs != nil {
			trackIDs := domain.UniqueIDs(in.TrackIDs)
			if err := verifyIDs(ctx, tx, "tracks", "tracks", trackIDs); err != nil {
				return err
			}
			detached, err := tx.DetachReleaseTracks(ctx, id)
			if err != nil {
				return err
			}
			typeID, err := resolveReleaseType(ctx, tx, len(trackIDs))
			if err != nil {
				return err
			}
			release.ReleaseTypeID = typeID
			if err := moveTracksToRelease(ctx, tx, id, trackIDs); err != nil {
				return err
			}
			s.Logger.Debug("Release tracks replaced", "release_id", id, "detached", detached, "attached", len(trackIDs))
		}

		_, err = tx.UpdateRelease(ctx, release)
		return err
	})
	if err != nil {
		staged.rollback()
		return nil, err
	}
	staged.commit()

	return s.FindByID(ctx, id)
}

// Delete unlinks labels and artists, detaches the tracks and removes the
// release, then its cover.
func (s *ReleaseService) Delete(ctx context.Context, id int) (*domain.Release, error) {
	release, err := s.Repo.GetRelease(ctx, id)
	if err != nil {
		return nil, err
	}
	if release == nil {
		return nil, domain.NotFoundError("release", id)
	}

	err = s.Repo.RunInTx(ctx, func(tx *store.DB) error {
		return tx.DeleteRelease(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete release %d: %w", id, err)
	}
	removeFiles(s.Files, s.Logger, release.Cover)
	s.Logger.WithEntity("release", id).Info("Release deleted")
	return release, nil
}

// FindByName matches titles case-insensitively. Unless includeFuture is set,
// releases dated after today are hidden.
func (s *ReleaseService) FindByName(ctx context.Context, title string, includeFuture bool, page domain.PageRequest) (domain.Page[domain.Release], error) {
	f := store.ReleaseFilter{Title: title}
	if !includeFuture {
		today := domain.NewDate(s.Now().UTC())
		f.ReleasedBy = &today
	}

	items, total, err := s.Repo.ListReleases(ctx, f, page)
	if err != nil {
		return domain.Page[domain.Release]{}, err
	}
	if total == 0 {
		return domain.Page[domain.Release]{}, noMatch("releases", title)
	}
	inc := releaseIncludes{releaseType: true, artists: true, tracks: true}
	if err := hydrateReleases(ctx, s.Repo, items, inc); err != nil {
		return domain.Page[domain.Release]{}, err
	}
	return domain.NewPage(items, total, page), nil
}
