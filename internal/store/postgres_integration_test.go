//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Interreferences/NoWayDpl-back/internal/constants"
	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

func setupPostgres(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("music-stream"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := NewDB(constants.DriverPostgres, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPostgres_CatalogRoundTrip(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	require.NoError(t, db.SeedReleaseTypes(ctx, constants.ReleaseTypeSingle, constants.ReleaseTypeEP, constants.ReleaseTypeAlbum))
	require.NoError(t, db.SeedReleaseTypes(ctx, constants.ReleaseTypeSingle))
	single, err := db.GetReleaseTypeByTitle(ctx, constants.ReleaseTypeSingle)
	require.NoError(t, err)
	require.NotNil(t, single)

	artist := &domain.Artist{Name: "Björk"}
	require.NoError(t, db.CreateArtist(ctx, artist))

	date, _ := domain.ParseDate("2001-08-27")
	rel := &domain.Release{Title: "Vespertine", ReleaseTypeID: &single.ID, ReleaseDate: date}
	tr := &domain.Track{Title: "Hidden Place"}

	err = db.RunInTx(ctx, func(tx *DB) error {
		if err := tx.CreateRelease(ctx, rel); err != nil {
			return err
		}
		if err := tx.CreateTrack(ctx, tr); err != nil {
			return err
		}
		if err := tx.SetTrackArtists(ctx, tr.ID, []int{artist.ID}); err != nil {
			return err
		}
		return tx.AttachReleaseTracks(ctx, rel.ID, []int{tr.ID})
	})
	require.NoError(t, err)

	fetched, err := db.GetRelease(ctx, rel.ID)
	require.NoError(t, err)
	assert.Equal(t, "2001-08-27", fetched.ReleaseDate.String())

	items, total, err := db.ListTracks(ctx, TrackFilter{Title: "HIDDEN", Release: WithRelease}, domain.NewPageRequest(10, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, tr.ID, items[0].ID)

	artists, total, err := db.ListArtists(ctx, "BJÖRK", domain.NewPageRequest(10, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Björk", artists[0].Name)

	byTrack, err := db.ArtistsByTrack(ctx, []int{tr.ID})
	require.NoError(t, err)
	assert.Len(t, byTrack[tr.ID], 1)

	ok, err := db.IncrementListens(ctx, tr.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, db.RunInTx(ctx, func(tx *DB) error { return tx.DeleteRelease(ctx, rel.ID) }))
	after, err := db.GetTrack(ctx, tr.ID)
	require.NoError(t, err)
	assert.Nil(t, after.ReleaseID)
	assert.Equal(t, 1, after.Listens)
}
