package app

import "github.com/Interreferences/NoWayDpl-back/internal/domain"

// Nil pointer and nil slice fields mean "not supplied". A non-nil empty id
// slice clears the association.

type ArtistInput struct {
	Name *string
	Bio  *string
}

type ReleaseInput struct {
	Title       *string
	ReleaseDate *domain.Date
	ArtistIDs   []int
	LabelIDs    []int
	TrackIDs    []int
}

// TrackInput.GenreID pointing at 0 clears the genre.
type TrackInput struct {
	Title           *string
	ExplicitContent *bool
	GenreID         *int
	ArtistIDs       []int
}

// PlaylistInput.UserID pointing at 0 clears the owner.
type PlaylistInput struct {
	Title  *string
	UserID *int
}

type UserInput struct {
	Login    string
	Nickname string
	Password string
}
