package httpapp

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

// RouterConfig holds the settings the router needs beyond the handler.
type RouterConfig struct {
	StaticDir     string
	AuthRateLimit float64
	AuthRateBurst int
}

// NewRouter builds the full API router with middleware and static file serving.
func NewRouter(h *Handler, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(h.Logger))
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", staticFiles(cfg.StaticDir))

	r.Route("/api", func(r chi.Router) {
		h.RegisterRoutes(r)
		r.Route("/users", func(r chi.Router) {
			r.Use(h.RateLimit(cfg.AuthRateLimit, cfg.AuthRateBurst))
			r.Post("/register", h.RegisterUser)
			r.Post("/registerAdmin", h.RegisterAdmin)
			r.Post("/login", h.Login)
		})
	})
	return r
}

// RegisterRoutes mounts the catalog resources.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/artists", func(r chi.Router) {
		r.Post("/", h.CreateArtist)
		r.Get("/", h.ListArtists)
		r.Get("/search/{name}", h.SearchArtists)
		r.Get("/{id}", h.GetArtist)
		r.Patch("/{id}", h.UpdateArtist)
		r.Delete("/{id}", h.DeleteArtist)
	})

	r.Route("/releases", func(r chi.Router) {
		r.Post("/", h.CreateRelease)
		r.Get("/", h.ListReleases)
		r.Get("/search/{title}", h.SearchReleases)
		r.Get("/{id}", h.GetRelease)
		r.Patch("/{id}", h.UpdateRelease)
		r.Delete("/{id}", h.DeleteRelease)
	})

	r.Route("/tracks", func(r chi.Router) {
		r.Post("/", h.CreateTrack)
		r.Get("/", h.ListTracks)
		r.Get("/top", h.TopTracks)
		r.Get("/released", h.ListReleasedTracks)
		r.Get("/admin/withoutRelease", h.ListTracksWithoutRelease)
		r.Get("/view/{id}", h.ViewTrack)
		r.Get("/search/{title}", h.SearchTracks)
		r.Get("/search-released/{title}", h.SearchReleasedTracks)
		r.Get("/{id}", h.GetTrack)
		r.Patch("/{id}", h.UpdateTrack)
		r.Delete("/{id}", h.DeleteTrack)
	})

	r.Route("/playlists", func(r chi.Router) {
		r.Post("/", h.CreatePlaylist)
		r.Post("/{playlistId}/tracks/{trackId}", h.AddPlaylistTrack)
		r.Delete("/{playlistId}/tracks/{trackId}", h.RemovePlaylistTrack)
		r.Get("/user/{userId}", h.UserPlaylists)
		r.Get("/{id}", h.GetPlaylist)
		r.Put("/{id}", h.UpdatePlaylist)
		r.Delete("/{id}", h.DeletePlaylist)
	})

	r.Route("/genres", lookupRoutes[domain.Genre]{
		h: h, svc: h.Catalog.Genres, field: "name", deleted: "Genre deleted successfully",
	}.register)
	r.Route("/labels", lookupRoutes[domain.Label]{
		h: h, svc: h.Catalog.Labels, field: "name", deleted: "Label deleted successfully",
	}.register)
	r.Route("/release-types", lookupRoutes[domain.ReleaseType]{
		h: h, svc: h.Catalog.ReleaseTypes, field: "title", deleted: "Release type deleted successfully",
	}.register)
}

// staticFiles serves uploaded assets without directory listings.
func staticFiles(dir string) http.Handler {
	fs := http.StripPrefix("/static/", http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	})
}
