package httpapp

import (
	"net/http"

	"github.com/Interreferences/NoWayDpl-back/internal/http/dto"
)

func (h *Handler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaylistRequest
	if err := h.bind(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	playlist, err := h.Catalog.Playlists.Create(r.Context(), req.Input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, playlist)
}

func (h *Handler) playlistTrackIDs(r *http.Request) (int, int, error) {
	playlistID, err := pathID(r, "playlistId")
	if err != nil {
		return 0, 0, err
	}
	trackID, err := pathID(r, "trackId")
	if err != nil {
		return 0, 0, err
	}
	return playlistID, trackID, nil
}

func (h *Handler) AddPlaylistTrack(w http.ResponseWriter, r *http.Request) {
	playlistID, trackID, err := h.playlistTrackIDs(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	playlist, err := h.Catalog.Playlists.AddTrack(r.Context(), playlistID, trackID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, playlist)
}

func (h *Handler) RemovePlaylistTrack(w http.ResponseWriter, r *http.Request) {
	playlistID, trackID, err := h.playlistTrackIDs(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	playlist, err := h.Catalog.Playlists.RemoveTrack(r.Context(), playlistID, trackID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, playlist)
}

func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	playlist, err := h.Catalog.Playlists.FindByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, playlist)
}

func (h *Handler) UserPlaylists(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	playlists, err := h.Catalog.Playlists.FindByUserID(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, playlists)
}

func (h *Handler) UpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req dto.PlaylistRequest
	if err := h.bind(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	playlist, err := h.Catalog.Playlists.Update(r.Context(), id, req.Input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, playlist)
}

func (h *Handler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if _, err := h.Catalog.Playlists.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeMessage(w, http.StatusOK, "Playlist deleted successfully")
}
