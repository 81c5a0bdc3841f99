package app

import (
	"context"
	"fmt"

	"github.com/Interreferences/NoWayDpl-back/internal/logger"
	"github.com/Interreferences/NoWayDpl-back/internal/store"
)

// Catalog bundles every service over one store and file gateway.
type Catalog struct {
	Artists      *ArtistService
	Tracks       *TrackService
	Releases     *ReleaseService
	Playlists    *PlaylistService
	Users        *UserService
	Roles        *RoleService
	Genres       *GenreService
	Labels       *LabelService
	ReleaseTypes *ReleaseTypeService
}

func NewCatalog(repo *store.DB, files FileStore, hasher PasswordHasher, log *logger.Logger) *Catalog {
	roles := NewRoleService(repo, log)
	return &Catalog{
		Artists:      NewArtistService(repo, files, log),
		Tracks:       NewTrackService(repo, files, log),
		Releases:     NewReleaseService(repo, files, log),
		Playlists:    NewPlaylistService(repo, log),
		Users:        NewUserService(repo, hasher, roles, log),
		Roles:        roles,
		Genres:       NewGenreService(repo, log),
		Labels:       NewLabelService(repo, log),
		ReleaseTypes: NewReleaseTypeService(repo, log),
	}
}

// Bootstrap seeds the reference rows the services depend on.
func (c *Catalog) Bootstrap(ctx context.Context) error {
	if err := c.Roles.EnsureDefaults(ctx); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	if err := c.ReleaseTypes.EnsureDefaults(ctx); err != nil {
		return fmt.Errorf("failed to seed release types: %w", err)
	}
	return nil
}
