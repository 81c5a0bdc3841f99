package httpapp

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
	"github.com/Interreferences/NoWayDpl-back/internal/http/dto"
)

// lookupService is the shared surface of the genre, label and release type services.
type lookupService[T any] interface {
	Create(ctx context.Context, name string) (*T, error)
	FindAll(ctx context.Context, page domain.PageRequest) (domain.Page[T], error)
	FindByID(ctx context.Context, id int) (*T, error)
	Update(ctx context.Context, id int, name string) (*T, error)
	Delete(ctx context.Context, id int) (*T, error)
	FindByName(ctx context.Context, name string, page domain.PageRequest) (domain.Page[T], error)
}

// lookupRoutes serves CRUD and search for one reference table.
type lookupRoutes[T any] struct {
	h   *Handler
	svc lookupService[T]
	// field is the body field holding the name: "name" or "title".
	field   string
	deleted string
}

func (lr lookupRoutes[T]) register(r chi.Router) {
	r.Post("/", lr.create)
	r.Get("/", lr.list)
	r.Get("/search/{name}", lr.search)
	r.Get("/{id}", lr.get)
	r.Patch("/{id}", lr.update)
	r.Delete("/{id}", lr.delete)
}

func (lr lookupRoutes[T]) text(w http.ResponseWriter, r *http.Request) (string, error) {
	if lr.field == "title" {
		var req dto.TitleRequest
		err := lr.h.bind(w, r, &req)
		return req.Title, err
	}
	var req dto.NameRequest
	err := lr.h.bind(w, r, &req)
	return req.Name, err
}

func (lr lookupRoutes[T]) create(w http.ResponseWriter, r *http.Request) {
	name, err := lr.text(w, r)
	if err != nil {
		lr.h.writeError(w, r, err)
		return
	}
	item, err := lr.svc.Create(r.Context(), name)
	if err != nil {
		lr.h.writeError(w, r, err)
		return
	}
	lr.h.writeJSON(w, http.StatusCreated, item)
}

func (lr lookupRoutes[T]) list(w http.ResponseWriter, r *http.Request) {
	page, err := lr.svc.FindAll(r.Context(), dto.Page(r.URL.Query()))
	if err != nil {
		lr.h.writeError(w, r, err)
		return
	}
	lr.h.writeJSON(w, http.StatusOK, page)
}

func (lr lookupRoutes[T]) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		lr.h.writeError(w, r, err)
		return
	}
	item, err := lr.svc.FindByID(r.Context(), id)
	if err != nil {
		lr.h.writeError(w, r, err)
		return
	}
	lr.h.writeJSON(w, http.StatusOK, item)
}

func (lr lookupRoutes[T]) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		lr.h.writeError(w, r, err)
		return
	}
	name, err := lr.text(w, r)
	if err != nil {
		lr.h.writeError(w, r, err)
		return
	}
	item, err := lr.svc.Update(r.Context(), id, name)
	if err != nil {
		lr.h.writeError(w, r, err)
		return
	}
	lr.h.writeJSON(w, http.StatusOK, item)
}

func (lr lookupRoutes[T]) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		lr.h.writeError(w, r, err)
		return
	}
	if _, err := lr.svc.Delete(r.Context(), id); err != nil {
		lr.h.writeError(w, r, err)
		return
	}
	lr.h.writeMessage(w, http.StatusOK, lr.deleted)
}

func (lr lookupRoutes[T]) search(w http.ResponseWriter, r *http.Request) {
	page, err := lr.svc.FindByName(r.Context(), pathText(r, "name"), dto.Page(r.URL.Query()))
	lr.h.writeSearch(w, r, page, err)
}
