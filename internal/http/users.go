package httpapp

import (
	"context"
	"net/http"

	"github.com/Interreferences/NoWayDpl-back/internal/app"
	"github.com/Interreferences/NoWayDpl-back/internal/domain"
	"github.com/Interreferences/NoWayDpl-back/internal/http/dto"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request, fn func(context.Context, app.UserInput) (*domain.User, error)) {
	var req dto.UserRequest
	if err := h.bind(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := fn(r.Context(), req.Input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, userResponse{Message: "User registered successfully", User: user})
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.Catalog.Users.RegisterUser)
}

func (h *Handler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.Catalog.Users.RegisterAdmin)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := h.bind(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := h.Catalog.Users.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, userResponse{Message: "Logged in successfully", User: user})
}
