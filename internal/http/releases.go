package httpapp

import (
	"net/http"

	"github.com/Interreferences/NoWayDpl-back/internal/http/dto"
)

func (h *Handler) releaseForm(w http.ResponseWriter, r *http.Request) (dto.ReleaseRequest, error) {
	var req dto.ReleaseRequest
	values, err := h.parseForm(w, r)
	if err != nil {
		return req, err
	}
	if err := dto.DecodeForm(values, &req); err != nil {
		return req, err
	}
	if req.ArtistIDs, err = dto.IDList(values, "artistIds"); err != nil {
		return req, err
	}
	if req.LabelIDs, err = dto.IDList(values, "labelIds"); err != nil {
		return req, err
	}
	req.TrackIDs, err = dto.IDList(values, "trackIds")
	return req, err
}

func (h *Handler) CreateRelease(w http.ResponseWriter, r *http.Request) {
	req, err := h.releaseForm(w, r)
	defer cleanupForm(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	release, err := h.Catalog.Releases.Create(r.Context(), req.Input(), formFile(r, "cover"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, release)
}

func (h *Handler) ListReleases(w http.ResponseWriter, r *http.Request) {
	page, err := h.Catalog.Releases.FindAll(r.Context(), dto.Page(r.URL.Query()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

func (h *Handler) GetRelease(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	release, err := h.Catalog.Releases.FindByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, release)
}

func (h *Handler) UpdateRelease(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	req, err := h.releaseForm(w, r)
	defer cleanupForm(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	release, err := h.Catalog.Releases.Update(r.Context(), id, req.Input(), formFile(r, "cover"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, release)
}

func (h *Handler) DeleteRelease(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if _, err := h.Catalog.Releases.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeMessage(w, http.StatusOK, "Release deleted successfully")
}

func (h *Handler) SearchReleases(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.Catalog.Releases.FindByName(r.Context(), pathText(r, "title"), dto.Flag(q, "includeFutureReleases"), dto.Page(q))
	h.writeSearch(w, r, page, err)
}
