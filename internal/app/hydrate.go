package app

import (
	"context"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
	"github.com/Interreferences/NoWayDpl-back/internal/store"
)

// trackIncludes selects the associations loaded onto tracks.
type trackIncludes struct {
	artists bool
	genre   bool
	release bool
	// releaseDetails loads the release's type, artists and labels too.
	releaseDetails bool
}

type releaseIncludes struct {
	releaseType bool
	artists     bool
	labels      bool
	tracks      bool
}

func trackIDs(tracks []domain.Track) []int {
	ids := make([]int, len(tracks))
	for i := range tracks {
		ids[i] = tracks[i].ID
	}
	return ids
}

func releaseIDs(releases []domain.Release) []int {
	ids := make([]int, len(releases))
	for i := range releases {
		ids[i] = releases[i].ID
	}
	return ids
}

func hydrateTracks(ctx context.Context, db *store.DB, tracks []domain.Track, inc trackIncludes) error {
	if len(tracks) == 0 {
		return nil
	}

	if inc.artists {
		byTrack, err := db.ArtistsByTrack(ctx, trackIDs(tracks))
		if err != nil {
			return err
		}
		for i := range tracks {
			tracks[i].Artists = byTrack[tracks[i].ID]
		}
	}

	if inc.genre {
		var ids []int
		for _, t := range tracks {
			if t.GenreID != nil {
				ids = append(ids, *t.GenreID)
			}
		}
		genres, err := db.GenresByIDs(ctx, domain.UniqueIDs(ids))
		if err != nil {
			return err
		}
		for i := range tracks {
			if tracks[i].GenreID == nil {
				continue
			}
			if g, ok := genres[*tracks[i].GenreID]; ok {
				tracks[i].Genre = &g
			}
		}
	}

	if inc.release {
		var ids []int
		for _, t := range tracks {
			if t.ReleaseID != nil {
				ids = append(ids, *t.ReleaseID)
			}
		}
		byID, err := db.ReleasesByIDs(ctx, domain.UniqueIDs(ids))
		if err != nil {
			return err
		}
		releases := make([]domain.Release, 0, len(byID))
		for _, r := range byID {
			releases = append(releases, r)
		}
		if inc.releaseDetails {
			err := hydrateReleases(ctx, db, releases, releaseIncludes{releaseType: true, artists: true, labels: true})
			if err != nil {
				return err
			}
		}
		for _, r := range releases {
			byID[r.ID] = r
		}
		for i := range tracks {
			if tracks[i].ReleaseID == nil {
				continue
			}
			if r, ok := byID[*tracks[i].ReleaseID]; ok {
				tracks[i].Release = &r
			}
		}
	}
	return nil
}

func hydrateReleases(ctx context.Context, db *store.DB, releases []domain.Release, inc releaseIncludes) error {
	if len(releases) == 0 {
		return nil
	}
	ids := releaseIDs(releases)

	if inc.releaseType {
		var typeIDs []int
		for _, r := range releases {
			if r.ReleaseTypeID != nil {
				typeIDs = append(typeIDs, *r.ReleaseTypeID)
			}
		}
		types, err := db.ReleaseTypesByIDs(ctx, domain.UniqueIDs(typeIDs))
		if err != nil {
			return err
		}
		for i := range releases {
			if releases[i].ReleaseTypeID == nil {
				continue
			}
			if rt, ok := types[*releases[i].ReleaseTypeID]; ok {
				releases[i].ReleaseType = &rt
			}
		}
	}

	if inc.artists {
		byRelease, err := db.ArtistsByRelease(ctx, ids)
		if err != nil {
			return err
		}
		for i := range releases {
			releases[i].Artists = byRelease[releases[i].ID]
		}
	}

	if inc.labels {
		byRelease, err := db.LabelsByRelease(ctx, ids)
		if err != nil {
			return err
		}
		for i := range releases {
			releases[i].Labels = byRelease[releases[i].ID]
		}
	}

	if inc.tracks {
		byRelease, err := db.TracksByRelease(ctx, ids)
		if err != nil {
			return err
		}
		for i := range releases {
			tracks := byRelease[releases[i].ID]
			if err := hydrateTracks(ctx, db, tracks, trackIncludes{artists: true, genre: true}); err != nil {
				return err
			}
			releases[i].Tracks = tracks
		}
	}
	return nil
}
