package dto

import (
	"errors"
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Interreferences/NoWayDpl-back/internal/constants"
	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

func TestIDList(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		want   []int
	}{
		{"missing", url.Values{}, nil},
		{"empty value", url.Values{"ids": {""}}, []int{}},
		{"repeated", url.Values{"ids": {"5", "7"}}, []int{5, 7}},
		{"comma separated", url.Values{"ids": {"5, 7,9"}}, []int{5, 7, 9}},
		{"bracket key", url.Values{"ids[]": {"3"}}, []int{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IDList(tt.values, "ids")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := IDList(url.Values{"ids": {"1,x"}}, "ids")
	assert.True(t, errors.Is(err, domain.ErrValidation))
	_, err = IDList(url.Values{"ids": {"-2"}}, "ids")
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestPage(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		want  domain.PageRequest
	}{
		{"defaults", url.Values{}, domain.PageRequest{Limit: constants.DefaultPageLimit}},
		{"limit offset", url.Values{"limit": {"5"}, "offset": {"15"}}, domain.PageRequest{Limit: 5, Offset: 15}},
		{"page number", url.Values{"limit": {"5"}, "page": {"3"}}, domain.PageRequest{Limit: 5, Offset: 10}},
		{"garbage", url.Values{"limit": {"lots"}, "offset": {"-4"}}, domain.PageRequest{Limit: constants.DefaultPageLimit}},
		{"capped", url.Values{"limit": {"100000"}}, domain.PageRequest{Limit: constants.MaxPageLimit}},
		{"huge page", url.Values{"limit": {"5"}, "page": {"9223372036854775807"}}, domain.PageRequest{Limit: 5, Offset: (math.MaxInt/5 - 1) * 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Page(tt.query))
		})
	}
}

func TestFlag(t *testing.T) {
	q := url.Values{"withRelease": {"true"}, "includeFutureReleases": {"1"}}
	assert.True(t, Flag(q, "withRelease"))
	assert.False(t, Flag(q, "includeFutureReleases"))
	assert.False(t, Flag(q, "missing"))
}

func TestDecodeFormRelease(t *testing.T) {
	var req ReleaseRequest
	err := DecodeForm(url.Values{"title": {"Dummy"}, "releaseDate": {"1994-08-22"}}, &req)
	require.NoError(t, err)
	require.NotNil(t, req.Title)
	assert.Equal(t, "Dummy", *req.Title)
	require.NotNil(t, req.ReleaseDate)
	assert.Equal(t, "1994-08-22", req.ReleaseDate.String())

	err = DecodeForm(url.Values{"releaseDate": {"22/08/1994"}}, &ReleaseRequest{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "releaseDate", verr.Fields[0].Field)
}

func TestDecodeFormTrack(t *testing.T) {
	var req TrackRequest
	err := DecodeForm(url.Values{"explicit": {"true"}, "genreId": {"4"}}, &req)
	require.NoError(t, err)
	assert.Nil(t, req.Title)
	require.NotNil(t, req.ExplicitContent)
	assert.True(t, *req.ExplicitContent)
	require.NotNil(t, req.GenreID)
	assert.Equal(t, 4, *req.GenreID)
	assert.Nil(t, req.ArtistIDs)
}

func TestValidateUser(t *testing.T) {
	err := Validate(UserRequest{Login: "alice1", Nickname: "Alice", Password: "secret123"})
	assert.NoError(t, err)

	err = Validate(UserRequest{Login: "al", Nickname: "Alice"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "must be at least 4 characters", fields["login"])
	assert.Equal(t, "is required", fields["password"])
	assert.NotContains(t, fields, "nickname")
}
