package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
	"github.com/Interreferences/NoWayDpl-back/internal/logger"
	"github.com/Interreferences/NoWayDpl-back/internal/store"
)

type PlaylistService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewPlaylistService(repo *store.DB, log *logger.Logger) *PlaylistService {
	return &PlaylistService{Repo: repo, Logger: log.WithComponent("playlists")}
}

func ownerID(id *int) *int {
	if id == nil || *id <= 0 {
		return nil
	}
	return id
}

func (s *PlaylistService) Create(ctx context.Context, in PlaylistInput) (*domain.Playlist, error) {
	verr := &domain.ValidationError{}
	title := requireText(verr, "title", in.Title)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	playlist := &domain.Playlist{Title: title, UserID: ownerID(in.UserID)}
	err := s.Repo.RunInTx(ctx, func(tx *store.DB) error {
		if playlist.UserID != nil {
			if err := verifyIDs(ctx, tx, "users", "user", []int{*playlist.UserID}); err != nil {
				return err
			}
		}
		return tx.CreatePlaylist(ctx, playlist)
	})
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Playlist created", "playlist_id", playlist.ID)
	return s.FindByID(ctx, playlist.ID)
}

// AddTrack appends a track. Adding a track that is already present changes nothing.
func (s *PlaylistService) AddTrack(ctx context.Context, playlistID, trackID int) (*domain.Playlist, error) {
	err := s.Repo.RunInTx(ctx, func(tx *store.DB) error {
		if err := s.requirePlaylist(ctx, tx, playlistID); err != nil {
			return err
		}
		if err := verifyIDs(ctx, tx, "tracks", "track", []int{trackID}); err != nil {
			return err
		}
		added, err := tx.AddPlaylistTrack(ctx, playlistID, trackID)
		if err != nil {
			return err
		}
		if !added {
			s.Logger.Debug("Track already in playlist", "playlist_id", playlistID, "track_id", trackID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, playlistID)
}

// RemoveTrack fails with ErrNotFound when the track is not in the playlist.
func (s *PlaylistService) RemoveTrack(ctx context.Context, playlistID, trackID int) (*domain.Playlist, error) {
	removed, err := s.Repo.RemovePlaylistTrack(ctx, playlistID, trackID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, fmt.Errorf("track %d in playlist %d: %w", trackID, playlistID, domain.ErrNotFound)
	}
	return s.FindByID(ctx, playlistID)
}

func (s *PlaylistService) requirePlaylist(ctx context.Context, tx *store.DB, id int) error {
	p, err := tx.GetPlaylist(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NotFoundError("playlist", id)
	}
	return nil
}

// FindByID loads the playlist with its ordered tracks and owner.
func (s *PlaylistService) FindByID(ctx context.Context, id int) (*domain.Playlist, error) {
	playlist, err := s.Repo.GetPlaylist(ctx, id)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, domain.NotFoundError("playlist", id)
	}

	playlists := []domain.Playlist{*playlist}
	if err := s.attachTracks(ctx, playlists); err != nil {
		return nil, err
	}
	if playlist.UserID != nil {
		user, err := s.Repo.GetUser(ctx, *playlist.UserID)
		if err != nil {
			return nil, err
		}
		playlists[0].User = user
	}
	return &playlists[0], nil
}

// FindByUserID lists every playlist owned by the user.
func (s *PlaylistService) FindByUserID(ctx context.Context, userID int) ([]domain.Playlist, error) {
	playlists, err := s.Repo.PlaylistsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.attachTracks(ctx, playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

func (s *PlaylistService) attachTracks(ctx context.Context, playlists []domain.Playlist) error {
	ids := make([]int, len(playlists))
	for i := range playlists {
		ids[i] = playlists[i].ID
	}
	byPlaylist, err := s.Repo.TracksByPlaylist(ctx, ids)
	if err != nil {
		return err
	}
	for i := range playlists {
		tracks := byPlaylist[playlists[i].ID]
		if err := hydrateTracks(ctx, s.Repo, tracks, listIncludes); err != nil {
			return err
		}
		playlists[i].Tracks = tracks
	}
	return nil
}

// Update applies the supplied fields.
func (s *PlaylistService) Update(ctx context.Context, id int, in PlaylistInput) (*domain.Playlist, error) {
	verr := &domain.ValidationError{}
	optionalText(verr, "title", in.Title)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	err := s.Repo.RunInTx(ctx, func(tx *store.DB) error {
		playlist, err := tx.GetPlaylist(ctx, id)
		if err != nil {
			return err
		}
		if playlist == nil {
			return domain.NotFoundError("playlist", id)
		}
		if in.Title != nil {
			playlist.Title = strings.TrimSpace(*in.Title)
		}
		if in.UserID != nil {
			playlist.UserID = ownerID(in.UserID)
			if playlist.UserID != nil {
				if err := verifyIDs(ctx, tx, "users", "user", []int{*playlist.UserID}); err != nil {
					return err
				}
			}
		}
		_, err = tx.UpdatePlaylist(ctx, playlist)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// Delete removes the playlist and its entries. A missing playlist is a no-op returning nil.
func (s *PlaylistService) Delete(ctx context.Context, id int) (*domain.Playlist, error) {
	playlist, err := s.Repo.GetPlaylist(ctx, id)
	if err != nil || playlist == nil {
		return nil, err
	}
	err = s.Repo.RunInTx(ctx, func(tx *store.DB) error {
		return tx.DeletePlaylist(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete playlist %d: %w", id, err)
	}
	s.Logger.Info("Playlist deleted", "playlist_id", id)
	return playlist, nil
}
