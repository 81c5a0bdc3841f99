package httpapp

import (
	"net/http"

	"github.com/Interreferences/NoWayDpl-back/internal/http/dto"
)

func (h *Handler) artistForm(w http.ResponseWriter, r *http.Request) (dto.ArtistRequest, error) {
	var req dto.ArtistRequest
	values, err := h.parseForm(w, r)
	if err != nil {
		return req, err
	}
	return req, dto.DecodeForm(values, &req)
}

func (h *Handler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	req, err := h.artistForm(w, r)
	defer cleanupForm(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	artist, err := h.Catalog.Artists.Create(r.Context(), req.Input(), formFile(r, "avatar"), formFile(r, "banner"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, artist)
}

func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	page, err := h.Catalog.Artists.FindAll(r.Context(), dto.Page(r.URL.Query()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

func (h *Handler) GetArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	artist, err := h.Catalog.Artists.FindByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, artist)
}

func (h *Handler) UpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	req, err := h.artistForm(w, r)
	defer cleanupForm(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	artist, err := h.Catalog.Artists.Update(r.Context(), id, req.Input(), formFile(r, "avatar"), formFile(r, "banner"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, artist)
}

func (h *Handler) DeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if _, err := h.Catalog.Artists.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeMessage(w, http.StatusOK, "Artist deleted successfully")
}

func (h *Handler) SearchArtists(w http.ResponseWriter, r *http.Request) {
	page, err := h.Catalog.Artists.FindByName(r.Context(), pathText(r, "name"), dto.Page(r.URL.Query()))
	h.writeSearch(w, r, page, err)
}
