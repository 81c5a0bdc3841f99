// Package dto decodes and validates request bodies for the catalog API.
package dto

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/form/v4"

	"github.com/Interreferences/NoWayDpl-back/internal/app"
	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

var decoder = newDecoder()

func newDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		if vals[0] == "" {
			return domain.Date{}, nil
		}
		d, err := domain.ParseDate(vals[0])
		if err != nil {
			return nil, err
		}
		return d, nil
	}, domain.Date{})
	return d
}

type ArtistRequest struct {
	Name *string `form:"name" json:"name" validate:"omitempty,min=1,max=60"`
	Bio  *string `form:"bio" json:"bio"`
}

func (r ArtistRequest) Input() app.ArtistInput {
	return app.ArtistInput{Name: r.Name, Bio: r.Bio}
}

type ReleaseRequest struct {
	Title       *string      `form:"title" validate:"omitempty,max=120"`
	ReleaseDate *domain.Date `form:"releaseDate"`
	ArtistIDs   []int        `form:"-"`
	LabelIDs    []int        `form:"-"`
	TrackIDs    []int        `form:"-"`
}

func (r ReleaseRequest) Input() app.ReleaseInput {
	return app.ReleaseInput{
		Title:       r.Title,
		ReleaseDate: r.ReleaseDate,
		ArtistIDs:   r.ArtistIDs,
		LabelIDs:    r.LabelIDs,
		TrackIDs:    r.TrackIDs,
	}
}

type TrackRequest struct {
	Title           *string `form:"title" validate:"omitempty,max=120"`
	ExplicitContent *bool   `form:"explicit"`
	GenreID         *int    `form:"genreId" validate:"omitempty,min=0"`
	ArtistIDs       []int   `form:"-"`
}

func (r TrackRequest) Input() app.TrackInput {
	return app.TrackInput{
		Title:           r.Title,
		ExplicitContent: r.ExplicitContent,
		GenreID:         r.GenreID,
		ArtistIDs:       r.ArtistIDs,
	}
}

type PlaylistRequest struct {
	Title  *string `form:"title" json:"title" validate:"omitempty,min=1,max=60"`
	UserID *int    `form:"userId" json:"userId" validate:"omitempty,min=0"`
}

func (r PlaylistRequest) Input() app.PlaylistInput {
	return app.PlaylistInput{Title: r.Title, UserID: r.UserID}
}

type UserRequest struct {
	Login    string `form:"login" json:"login" validate:"required,min=4,max=60"`
	Nickname string `form:"nickname" json:"nickname" validate:"required,min=4,max=60"`
	Password string `form:"password" json:"password" validate:"required,min=4,max=60"`
}

func (r UserRequest) Input() app.UserInput {
	return app.UserInput{Login: r.Login, Nickname: r.Nickname, Password: r.Password}
}

type LoginRequest struct {
	Login    string `form:"login" json:"login" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// NameRequest carries the single text field of genres and labels.
type NameRequest struct {
	Name string `form:"name" json:"name" validate:"required,max=60"`
}

type TitleRequest struct {
	Title string `form:"title" json:"title" validate:"required,max=60"`
}

// DecodeForm fills req from form values, then validates it.
func DecodeForm(values url.Values, req any) error {
	if err := decoder.Decode(req, values); err != nil {
		return decodeErrors(err)
	}
	return Validate(req)
}

// IDList reads an id list sent as repeated keys or as one comma-separated
// value. A missing key yields nil; a present but empty key yields an empty list.
func IDList(values url.Values, key string) ([]int, error) {
	raw, ok := values[key]
	if !ok {
		raw, ok = values[key+"[]"]
	}
	if !ok {
		return nil, nil
	}
	ids := []int{}
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil || id <= 0 {
				verr := &domain.ValidationError{}
				verr.Add(key, "must list positive ids")
				return nil, verr
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
