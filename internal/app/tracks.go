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
	"github.com/Interreferences/NoWayDpl-back/internal/tagging"
)

type TrackService struct {
	Repo   *store.DB
	Files  FileStore
	Logger *logger.Logger
}

func NewTrackService(repo *store.DB, files FileStore, log *logger.Logger) *TrackService {
	return &TrackService{Repo: repo, Files: files, Logger: log.WithComponent("tracks")}
}

var listIncludes = trackIncludes{artists: true, release: true}

// Create stores the audio file and persists the track with zero listens.
// Without a title the audio file's embedded title is used.
func (s *TrackService) Create(ctx context.Context, in TrackInput, audio storage.Upload) (*domain.Track, error) {
	verr := &domain.ValidationError{}
	if audio == nil {
		verr.Add("audio", "is required")
	}
	title := ""
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
	}
	if title == "" && audio != nil {
		title = s.embeddedTitle(audio)
	}
	if title == "" {
		verr.Add("title", "is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	staged := newStagedFiles(s.Files, s.Logger)
	audioPath, err := staged.store(constants.BucketAudio, audio)
	if err != nil {
		return nil, err
	}

	track := &domain.Track{Title: title, Audio: audioPath}
	if in.ExplicitContent != nil {
		track.ExplicitContent = *in.ExplicitContent
	}
	if in.GenreID != nil && *in.GenreID > 0 {
		track.GenreID = in.GenreID
	}
	artistIDs := domain.UniqueIDs(in.ArtistIDs)

	err = s.Repo.RunInTx(ctx, func(tx *store.DB) error {
		if err := verifyIDs(ctx, tx, "artists", "artists", artistIDs); err != nil {
			return err
		}
		if track.GenreID != nil {
			if err := verifyIDs(ctx, tx, "genres", "genre", []int{*track.GenreID}); err != nil {
				return err
			}
		}
		if err := tx.CreateTrack(ctx, track); err != nil {
			return err
		}
		return tx.SetTrackArtists(ctx, track.ID, artistIDs)
	})
	if err != nil {
		staged.rollback()
		return nil, err
	}

	s.Logger.Info("Track created", "track_id", track.ID, "title", track.Title, "artists", len(artistIDs))
	return s.FindByID(ctx, track.ID)
}

func (s *TrackService) embeddedTitle(audio storage.Upload) string {
	rc, err := audio.Open()
	if err != nil {
		return ""
	}
	defer rc.Close()

	title, err := tagging.ReadTitle(audio.Name(), rc)
	if err != nil {
		s.Logger.Debug("No embedded title", "file", audio.Name(), "error", err)
		return ""
	}
	return title
}

// FindAll lists tracks narrowed by release membership.
func (s *TrackService) FindAll(ctx context.Context, state store.ReleaseState, page domain.PageRequest) (domain.Page[domain.Track], error) {
	return s.list(ctx, store.TrackFilter{Release: state}, page)
}

func (s *TrackService) list(ctx context.Context, f store.TrackFilter, page domain.PageRequest) (domain.Page[domain.Track], error) {
	items, total, err := s.Repo.ListTracks(ctx, f, page)
	if err != nil {
		return domain.Page[domain.Track]{}, err
	}
	if err := hydrateTracks(ctx, s.Repo, items, listIncludes); err != nil {
		return domain.Page[domain.Track]{}, err
	}
	return domain.NewPage(items, total, page), nil
}

// FindByID loads the track with its artists, genre and release details.
func (s *TrackService) FindByID(ctx context.Context, id int) (*domain.Track, error) {
	track, err := s.Repo.GetTrack(ctx, id)
	if err != nil {
		return nil, err
	}
	if track == nil {
		return nil, domain.NotFoundError("track", id)
	}

	tracks := []domain.Track{*track}
	inc := trackIncludes{artists: true, genre: true, release: true, releaseDetails: true}
	if err := hydrateTracks(ctx, s.Repo, tracks, inc); err != nil {
		return nil, err
	}
	return &tracks[0], nil
}

// Update applies supplied fields, replaces the artist set when ArtistIDs is
// non-nil and swaps the audio file when a new upload is given.
func (s *TrackService) Update(ctx context.Context, id int, in TrackInput, audio storage.Upload) (*domain.Track, error) {
	verr := &domain.ValidationError{}
	optionalText(verr, "title", in.Title)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	current, err := s.Repo.GetTrack(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.NotFoundError("track", id)
	}

	staged := newStagedFiles(s.Files, s.Logger)
	newAudio, err := staged.store(constants.BucketAudio, audio)
	if err != nil {
		return nil, err
	}

	err = s.Repo.RunInTx(ctx, func(tx *store.DB) error {
		track, err := tx.GetTrack(ctx, id)
		if err != nil {
			return err
		}
		if track == nil {
			return domain.NotFoundError("track", id)
		}

		if in.Title != nil {
			track.Title = strings.TrimSpace(*in.Title)
		}
		if in.ExplicitContent != nil {
			track.ExplicitContent = *in.ExplicitContent
		}
		if in.GenreID != nil {
			if *in.GenreID <= 0 {
				track.GenreID = nil
			} else {
				if err := verifyIDs(ctx, tx, "genres", "genre", []int{*in.GenreID}); err != nil {
					return err
				}
				track.GenreID = in.GenreID
			}
		}
		if newAudio != "" {
			staged.replace(track.Audio)
			track.Audio = newAudio
		}

		if _, err := tx.UpdateTrack(ctx, track); err != nil {
			return err
		}

		if in.ArtistIDs != nil {
			artistIDs := domain.UniqueIDs(in.ArtistIDs)
			if err := verifyIDs(ctx, tx, "artists", "artists", artistIDs); err != nil {
				return err
			}
			if err := tx.SetTrackArtists(ctx, id, artistIDs); err != nil {
				return err
			}
			s.Logger.Debug("Track artists replaced", "track_id", id, "artists", len(artistIDs))
		}
		return nil
	})
	if err != nil {
		staged.rollback()
		return nil, err
	}
	staged.commit()

	return s.FindByID(ctx, id)
}

// Delete removes the track, its artist links and playlist entries, then the audio file.
func (s *TrackService) Delete(ctx context.Context, id int) (*domain.Track, error) {
	track, err := s.Repo.GetTrack(ctx, id)
	if err != nil {
		return nil, err
	}
	if track == nil {
		return nil, domain.NotFoundError("track", id)
	}

	err = s.Repo.RunInTx(ctx, func(tx *store.DB) error {
		return tx.DeleteTrack(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete track %d: %w", id, err)
	}
	removeFiles(s.Files, s.Logger, track.Audio)
	s.Logger.WithEntity("track", id).Info("Track deleted")
	return track, nil
}

// FindByTitle matches titles case-insensitively across all tracks.
func (s *TrackService) FindByTitle(ctx context.Context, title string, page domain.PageRequest) (domain.Page[domain.Track], error) {
	return s.search(ctx, store.TrackFilter{Title: title}, page)
}

// FindReleasedByTitle is FindByTitle restricted to tracks that belong to a release.
func (s *TrackService) FindReleasedByTitle(ctx context.Context, title string, page domain.PageRequest) (domain.Page[domain.Track], error) {
	return s.search(ctx, store.TrackFilter{Title: title, Release: store.WithRelease}, page)
}

func (s *TrackService) search(ctx context.Context, f store.TrackFilter, page domain.PageRequest) (domain.Page[domain.Track], error) {
	result, err := s.list(ctx, f, page)
	if err != nil {
		return result, err
	}
	if result.TotalCount == 0 {
		return domain.Page[domain.Track]{}, noMatch("tracks", f.Title)
	}
	return result, nil
}

// MostPopular returns the released tracks with the most listens.
func (s *TrackService) MostPopular(ctx context.Context) ([]domain.Track, error) {
	tracks, err := s.Repo.TopTracks(ctx, constants.TopTracksLimit)
	if err != nil {
		return nil, err
	}
	if err := hydrateTracks(ctx, s.Repo, tracks, listIncludes); err != nil {
		return nil, err
	}
	return tracks, nil
}

// IncrementListens adds exactly one listen. Concurrent calls never lose updates.
func (s *TrackService) IncrementListens(ctx context.Context, id int) (*domain.Track, error) {
	ok, err := s.Repo.IncrementListens(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFoundError("track", id)
	}

	track, err := s.Repo.GetTrack(ctx, id)
	if err != nil {
		return nil, err
	}
	if track == nil {
		return nil, domain.NotFoundError("track", id)
	}
	tracks := []domain.Track{*track}
	if err := hydrateTracks(ctx, s.Repo, tracks, trackIncludes{artists: true}); err != nil {
		return nil, err
	}
	return &tracks[0], nil
}
