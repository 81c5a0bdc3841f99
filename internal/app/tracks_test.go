package app

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
	"github.com/Interreferences/NoWayDpl-back/internal/storage"
	"github.com/Interreferences/NoWayDpl-back/internal/store"
)

func TestTrackService_CreateWithArtists(t *testing.T) {
	f := newFixture(t)
	for i := 1; i <= 7; i++ {
		f.artist(t, "artist")
	}
	genre, err := f.cat.Genres.Create(f.ctx, "Trip hop")
	require.NoError(t, err)

	tr, err := f.cat.Tracks.Create(f.ctx, TrackInput{
		Title:           strPtr("Roads"),
		ExplicitContent: boolPtr(true),
		GenreID:         &genre.ID,
		ArtistIDs:       []int{5, 7, 5},
	}, audioUpload("roads.mp3"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []int{5, 7}, artistIDsOf(tr.Artists))
	assert.Equal(t, 0, tr.Listens)
	assert.True(t, tr.ExplicitContent)
	require.NotNil(t, tr.Genre)
	assert.Equal(t, "Trip hop", tr.Genre.Name)
	assert.Nil(t, tr.ReleaseID)
	assert.Equal(t, []string{tr.Audio}, f.files(t, "audio"))
}

func TestTrackService_CreateRequiresAudio(t *testing.T) {
	f := newFixture(t)

	_, err := f.cat.Tracks.Create(f.ctx, TrackInput{Title: strPtr("x")}, nil)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "audio", verr.Fields[0].Field)

	_, err = f.cat.Tracks.Create(f.ctx, TrackInput{Title: strPtr("x")}, audioUpload("x.exe"))
	assert.True(t, errors.Is(err, domain.ErrValidation), err)
	assert.Empty(t, f.files(t, "audio"))
}

func TestTrackService_CreateRollsBackOnUnknownArtist(t *testing.T) {
	f := newFixture(t)
	a := f.artist(t, "known")

	_, err := f.cat.Tracks.Create(f.ctx, TrackInput{Title: strPtr("x"), ArtistIDs: []int{a.ID, 999}}, audioUpload("x.flac"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound), err)

	page, err := f.cat.Tracks.FindAll(f.ctx, store.AnyRelease, domain.NewPageRequest(10, 0))
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount, "no track row is left behind")
	assert.Empty(t, f.files(t, "audio"), "stored audio is removed")
}

func TestTrackService_CreateUsesEmbeddedTitle(t *testing.T) {
	f := newFixture(t)

	tag := id3v2.NewEmptyTag()
	tag.SetTitle("Glory Box")
	var buf bytes.Buffer
	_, err := tag.WriteTo(&buf)
	require.NoError(t, err)
	buf.Write([]byte{0xFF, 0xFB, 0x90, 0x00})

	tr, err := f.cat.Tracks.Create(f.ctx, TrackInput{}, storage.BytesUpload{Filename: "11.mp3", Data: buf.Bytes()})
	require.NoError(t, err)
	assert.Equal(t, "Glory Box", tr.Title)

	_, err = f.cat.Tracks.Create(f.ctx, TrackInput{}, audioUpload("untagged.mp3"))
	assert.True(t, errors.Is(err, domain.ErrValidation), err)
}

func TestTrackService_UpdateReplacesAudio(t *testing.T) {
	f := newFixture(t)
	a := f.artist(t, "A")
	b := f.artist(t, "B")
	tr := f.track(t, "old", a.ID)

	updated, err := f.cat.Tracks.Update(f.ctx, tr.ID, TrackInput{
		Title:     strPtr("new"),
		ArtistIDs: []int{b.ID},
	}, audioUpload("new.ogg"))
	require.NoError(t, err)

	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, []int{b.ID}, artistIDsOf(updated.Artists))
	assert.NotEqual(t, tr.Audio, updated.Audio)
	assert.Equal(t, []string{updated.Audio}, f.files(t, "audio"), "old audio is removed")

	kept, err := f.cat.Tracks.Update(f.ctx, tr.ID, TrackInput{ExplicitContent: boolPtr(true)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "new", kept.Title)
	assert.Equal(t, []int{b.ID}, artistIDsOf(kept.Artists), "nil artist list leaves artists alone")

	_, err = f.cat.Tracks.Update(f.ctx, 404, TrackInput{}, nil)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTrackService_UpdateRollsBack(t *testing.T) {
	f := newFixture(t)
	tr := f.track(t, "old")

	_, err := f.cat.Tracks.Update(f.ctx, tr.ID, TrackInput{Title: strPtr("new"), GenreID: intPtr(77)}, audioUpload("n.wav"))
	assert.True(t, errors.Is(err, domain.ErrNotFound), err)

	after, err := f.cat.Tracks.FindByID(f.ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, "old", after.Title)
	assert.Equal(t, []string{tr.Audio}, f.files(t, "audio"))
}

func TestTrackService_Delete(t *testing.T) {
	f := newFixture(t)
	tr := f.track(t, "doomed", f.artist(t, "A").ID)
	pl, err := f.cat.Playlists.Create(f.ctx, PlaylistInput{Title: strPtr("mix")})
	require.NoError(t, err)
	_, err = f.cat.Playlists.AddTrack(f.ctx, pl.ID, tr.ID)
	require.NoError(t, err)

	deleted, err := f.cat.Tracks.Delete(f.ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, tr.ID, deleted.ID)
	assert.Empty(t, f.files(t, "audio"))

	after, err := f.cat.Playlists.FindByID(f.ctx, pl.ID)
	require.NoError(t, err)
	assert.Empty(t, after.Tracks)

	_, err = f.cat.Tracks.Delete(f.ctx, tr.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTrackService_FindByIDIdempotent(t *testing.T) {
	f := newFixture(t)
	tr := f.track(t, "T", f.artist(t, "A").ID)
	_, err := f.cat.Releases.Create(f.ctx, ReleaseInput{Title: strPtr("R"), TrackIDs: []int{tr.ID}}, nil)
	require.NoError(t, err)

	first, err := f.cat.Tracks.FindByID(f.ctx, tr.ID)
	require.NoError(t, err)
	second, err := f.cat.Tracks.FindByID(f.ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.NotNil(t, first.Release)
	require.NotNil(t, first.Release.ReleaseType)
	assert.Equal(t, "Single", first.Release.ReleaseType.Title)
}

func TestTrackService_Search(t *testing.T) {
	f := newFixture(t)
	loose := f.track(t, "Wandering Star")
	released := f.track(t, "Only You")
	f.track(t, "Numb")
	_, err := f.cat.Releases.Create(f.ctx, ReleaseInput{Title: strPtr("R"), TrackIDs: []int{released.ID}}, nil)
	require.NoError(t, err)

	page := domain.NewPageRequest(10, 0)

	found, err := f.cat.Tracks.FindByTitle(f.ctx, "STAR", page)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, loose.ID, found.Items[0].ID)

	_, err = f.cat.Tracks.FindReleasedByTitle(f.ctx, "star", page)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	onlyReleased, err := f.cat.Tracks.FindReleasedByTitle(f.ctx, "you", page)
	require.NoError(t, err)
	require.Len(t, onlyReleased.Items, 1)
	require.NotNil(t, onlyReleased.Items[0].Release)

	_, err = f.cat.Tracks.FindByTitle(f.ctx, "100%", page)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	withRelease, err := f.cat.Tracks.FindAll(f.ctx, store.WithRelease, page)
	require.NoError(t, err)
	assert.Equal(t, 1, withRelease.TotalCount)

	without, err := f.cat.Tracks.FindAll(f.ctx, store.WithoutRelease, page)
	require.NoError(t, err)
	assert.Equal(t, 2, without.TotalCount)
}

func TestTrackService_ConcurrentIncrementListens(t *testing.T) {
	f := newFixture(t)
	tr := f.track(t, "hit")

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.cat.Tracks.IncrementListens(f.ctx, tr.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	after, err := f.cat.Tracks.FindByID(f.ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, n, after.Listens)

	_, err = f.cat.Tracks.IncrementListens(f.ctx, 404)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTrackService_MostPopular(t *testing.T) {
	f := newFixture(t)
	var ids []int
	for i := 0; i < 3; i++ {
		ids = append(ids, f.track(t, "t").ID)
	}
	unreleased := f.track(t, "hidden")
	_, err := f.cat.Releases.Create(f.ctx, ReleaseInput{Title: strPtr("R"), TrackIDs: ids}, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := f.cat.Tracks.IncrementListens(f.ctx, ids[2])
		require.NoError(t, err)
	}
	_, err = f.cat.Tracks.IncrementListens(f.ctx, ids[1])
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := f.cat.Tracks.IncrementListens(f.ctx, unreleased.ID)
		require.NoError(t, err)
	}

	top, err := f.cat.Tracks.MostPopular(f.ctx)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []int{ids[2], ids[1], ids[0]}, trackIDs(top))
}
