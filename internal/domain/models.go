package domain

// Artist is a performer profile. Tracks and Releases are filled only by detail lookups.
type Artist struct {
	ID       int       `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	Bio      string    `json:"bio,omitempty" db:"bio"`
	Avatar   string    `json:"avatar,omitempty" db:"avatar"`
	Banner   string    `json:"banner,omitempty" db:"banner"`
	Tracks   []Track   `json:"tracks,omitempty" db:"-"`
	Releases []Release `json:"releases,omitempty" db:"-"`
}

// Release groups tracks under one cover. ReleaseTypeID stays nil while the
// release has no tracks.
type Release struct {
	ID            int          `json:"id" db:"id"`
	Title         string       `json:"title" db:"title"`
	Cover         string       `json:"cover" db:"cover"`
	ReleaseTypeID *int         `json:"release_type_id" db:"release_type_id"`
	ReleaseDate   Date         `json:"release_date" db:"release_date"`
	ReleaseType   *ReleaseType `json:"release_type,omitempty" db:"-"`
	Artists       []Artist     `json:"artists,omitempty" db:"-"`
	Labels        []Label      `json:"labels,omitempty" db:"-"`
	Tracks        []Track      `json:"tracks,omitempty" db:"-"`
}

// Track is a single audio asset. ReleaseID is nil for unreleased tracks.
type Track struct {
	ID              int      `json:"id" db:"id"`
	Title           string   `json:"title" db:"title"`
	Audio           string   `json:"audio" db:"audio"`
	ExplicitContent bool     `json:"explicit_content" db:"explicit_content"`
	Listens         int      `json:"listens" db:"listens"`
	ReleaseID       *int     `json:"release_id" db:"release_id"`
	GenreID         *int     `json:"genre_id" db:"genre_id"`
	Artists         []Artist `json:"artists,omitempty" db:"-"`
	Genre           *Genre   `json:"genre,omitempty" db:"-"`
	Release         *Release `json:"release,omitempty" db:"-"`
}

type Genre struct {
	ID     int     `json:"id" db:"id"`
	Name   string  `json:"name" db:"name"`
	Tracks []Track `json:"tracks,omitempty" db:"-"`
}

type Label struct {
	ID       int       `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	Releases []Release `json:"releases,omitempty" db:"-"`
}

type ReleaseType struct {
	ID       int       `json:"id" db:"id"`
	Title    string    `json:"title" db:"title"`
	Releases []Release `json:"releases,omitempty" db:"-"`
}

type Role struct {
	ID    int    `json:"id" db:"id"`
	Title string `json:"title" db:"title"`
}

// User is an account. The password hash never leaves the server.
type User struct {
	ID       int    `json:"id" db:"id"`
	Login    string `json:"login" db:"login"`
	Nickname string `json:"nickname" db:"nickname"`
	Password string `json:"-" db:"password"`
	RoleID   int    `json:"role_id" db:"role_id"`
	Role     *Role  `json:"role,omitempty" db:"-"`
}

// Playlist is a user-owned ordered list of tracks. UserID is nullable.
type Playlist struct {
	ID     int     `json:"id" db:"id"`
	Title  string  `json:"title" db:"title"`
	UserID *int    `json:"user_id" db:"user_id"`
	User   *User   `json:"user,omitempty" db:"-"`
	Tracks []Track `json:"tracks,omitempty" db:"-"`
}
