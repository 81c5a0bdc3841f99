package httpapp

import (
	"net/http"

	"github.com/Interreferences/NoWayDpl-back/internal/http/dto"
	"github.com/Interreferences/NoWayDpl-back/internal/store"
)

func (h *Handler) trackForm(w http.ResponseWriter, r *http.Request) (dto.TrackRequest, error) {
	var req dto.TrackRequest
	values, err := h.parseForm(w, r)
	if err != nil {
		return req, err
	}
	if err := dto.DecodeForm(values, &req); err != nil {
		return req, err
	}
	req.ArtistIDs, err = dto.IDList(values, "artistIds")
	return req, err
}

func (h *Handler) CreateTrack(w http.ResponseWriter, r *http.Request) {
	req, err := h.trackForm(w, r)
	defer cleanupForm(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	track, err := h.Catalog.Tracks.Create(r.Context(), req.Input(), formFile(r, "audio"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, track)
}

// ListTracks lists every track, or only released ones with withRelease=true.
func (h *Handler) ListTracks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := store.AnyRelease
	if dto.Flag(q, "withRelease") {
		state = store.WithRelease
	}
	h.listTracks(w, r, state)
}

func (h *Handler) ListReleasedTracks(w http.ResponseWriter, r *http.Request) {
	h.listTracks(w, r, store.WithRelease)
}

func (h *Handler) ListTracksWithoutRelease(w http.ResponseWriter, r *http.Request) {
	h.listTracks(w, r, store.WithoutRelease)
}

func (h *Handler) listTracks(w http.ResponseWriter, r *http.Request, state store.ReleaseState) {
	page, err := h.Catalog.Tracks.FindAll(r.Context(), state, dto.Page(r.URL.Query()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

func (h *Handler) TopTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.Catalog.Tracks.MostPopular(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tracks)
}

// ViewTrack records one listen and returns the track.
func (h *Handler) ViewTrack(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	track, err := h.Catalog.Tracks.IncrementListens(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, track)
}

func (h *Handler) GetTrack(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	track, err := h.Catalog.Tracks.FindByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, track)
}

func (h *Handler) UpdateTrack(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	req, err := h.trackForm(w, r)
	defer cleanupForm(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	track, err := h.Catalog.Tracks.Update(r.Context(), id, req.Input(), formFile(r, "audio"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, track)
}

func (h *Handler) DeleteTrack(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if _, err := h.Catalog.Tracks.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeMessage(w, http.StatusOK, "Track deleted successfully")
}

// SearchTracks matches titles; withRelease=true narrows to released tracks.
func (h *Handler) SearchTracks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if dto.Flag(q, "withRelease") {
		h.SearchReleasedTracks(w, r)
		return
	}
	page, err := h.Catalog.Tracks.FindByTitle(r.Context(), pathText(r, "title"), dto.Page(q))
	h.writeSearch(w, r, page, err)
}

func (h *Handler) SearchReleasedTracks(w http.ResponseWriter, r *http.Request) {
	page, err := h.Catalog.Tracks.FindReleasedByTitle(r.Context(), pathText(r, "title"), dto.Page(r.URL.Query()))
	h.writeSearch(w, r, page, err)
}
