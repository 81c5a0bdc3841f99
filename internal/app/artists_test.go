package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

func TestArtistService_CreateAndFind(t *testing.T) {
	f := newFixture(t)

	a, err := f.cat.Artists.Create(f.ctx, ArtistInput{Name: strPtr(" Massive Attack "), Bio: strPtr("Bristol")},
		imageUpload("avatar.png"), imageUpload("banner.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "Massive Attack", a.Name)
	assert.NotEmpty(t, a.Avatar)
	assert.NotEmpty(t, a.Banner)
	assert.Len(t, f.files(t, "image"), 2)

	tr := f.track(t, "Teardrop", a.ID)
	_, err = f.cat.Releases.Create(f.ctx, ReleaseInput{Title: strPtr("Mezzanine"), ArtistIDs: []int{a.ID}, TrackIDs: []int{tr.ID}}, nil)
	require.NoError(t, err)

	first, err := f.cat.Artists.FindByID(f.ctx, a.ID)
	require.NoError(t, err)
	second, err := f.cat.Artists.FindByID(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.Len(t, first.Tracks, 1)
	require.Len(t, first.Releases, 1)
	require.NotNil(t, first.Tracks[0].Release)
	assert.Equal(t, "Mezzanine", first.Tracks[0].Release.Title)

	_, err = f.cat.Artists.FindByID(f.ctx, 404)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestArtistService_CreateValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.cat.Artists.Create(f.ctx, ArtistInput{}, nil, nil)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = f.cat.Artists.Create(f.ctx, ArtistInput{Name: strPtr("x")}, imageUpload("a.png"), imageUpload("b.txt"))
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Empty(t, f.files(t, "image"), "avatar is removed when the banner is rejected")
}

func TestArtistService_UpdateReplacesAvatar(t *testing.T) {
	f := newFixture(t)
	a, err := f.cat.Artists.Create(f.ctx, ArtistInput{Name: strPtr("A")}, imageUpload("old.png"), nil)
	require.NoError(t, err)

	updated, err := f.cat.Artists.Update(f.ctx, a.ID, ArtistInput{Bio: strPtr("new bio")}, imageUpload("new.gif"), nil)
	require.NoError(t, err)
	assert.Equal(t, "A", updated.Name)
	assert.Equal(t, "new bio", updated.Bio)
	assert.Equal(t, []string{updated.Avatar}, f.files(t, "image"))

	_, err = f.cat.Artists.Update(f.ctx, a.ID, ArtistInput{Name: strPtr(" ")}, nil, nil)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = f.cat.Artists.Update(f.ctx, 404, ArtistInput{}, nil, nil)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestArtistService_Delete(t *testing.T) {
	f := newFixture(t)
	a, err := f.cat.Artists.Create(f.ctx, ArtistInput{Name: strPtr("A")}, imageUpload("a.png"), nil)
	require.NoError(t, err)
	tr := f.track(t, "T", a.ID)

	deleted, err := f.cat.Artists.Delete(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, deleted.ID)
	assert.Empty(t, f.files(t, "image"))

	after, err := f.cat.Tracks.FindByID(f.ctx, tr.ID)
	require.NoError(t, err)
	assert.Empty(t, after.Artists)

	missing, err := f.cat.Artists.Delete(f.ctx, a.ID)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestArtistService_FindByName(t *testing.T) {
	f := newFixture(t)
	f.artist(t, "Tricky")
	f.artist(t, "Massive Attack")
	page := domain.NewPageRequest(10, 0)

	found, err := f.cat.Artists.FindByName(f.ctx, "TRICK", page)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Tricky", found.Items[0].Name)

	_, err = f.cat.Artists.FindByName(f.ctx, "burial", page)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	all, err := f.cat.Artists.FindAll(f.ctx, domain.NewPageRequest(1, 1))
	require.NoError(t, err)
	assert.Len(t, all.Items, 1)
	assert.Equal(t, 2, all.TotalCount)
	assert.Equal(t, 2, all.MaxPages)

	f.artist(t, "Кино")
	f.artist(t, "ÉDITH")
	for query, want := range map[string]string{"кино": "Кино", "КИНО": "Кино", "Кино": "Кино", "édith": "ÉDITH", "ÉDITH": "ÉDITH"} {
		found, err := f.cat.Artists.FindByName(f.ctx, query, page)
		require.NoError(t, err, query)
		require.Len(t, found.Items, 1, query)
		assert.Equal(t, want, found.Items[0].Name)
	}
}
