// Package httpapp exposes the catalog services as a JSON REST API.
package httpapp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Interreferences/NoWayDpl-back/internal/app"
	"github.com/Interreferences/NoWayDpl-back/internal/domain"
	"github.com/Interreferences/NoWayDpl-back/internal/http/dto"
	"github.com/Interreferences/NoWayDpl-back/internal/logger"
	"github.com/Interreferences/NoWayDpl-back/internal/storage"
)

// multipartMemory is how much of a multipart body is kept in memory; the rest spills to temp files.
const multipartMemory = 8 << 20

type Handler struct {
	Catalog        *app.Catalog
	Logger         *logger.Logger
	MaxUploadBytes int64
}

func NewHandler(c *app.Catalog, log *logger.Logger, maxUploadBytes int64) *Handler {
	return &Handler{Catalog: c, Logger: log.WithComponent("http"), MaxUploadBytes: maxUploadBytes}
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

type userResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeMessage(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, messageResponse{Message: msg})
}

// writeError maps service error kinds onto status codes.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &verr):
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Message: verr.Error(), Errors: verr.Fields})
	case errors.As(err, &tooBig):
		h.writeMessage(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.Is(err, domain.ErrValidation):
		h.writeMessage(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		h.writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		h.writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		h.writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrInvalidOperation):
		h.writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		h.requestLogger(r).Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		h.writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// writeSearch answers a search. No match is reported as a 200 message payload.
func (h *Handler) writeSearch(w http.ResponseWriter, r *http.Request, result any, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		h.writeMessage(w, http.StatusOK, err.Error())
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) requestLogger(r *http.Request) *logger.Logger {
	return h.Logger.WithRequest(middleware.GetReqID(r.Context()))
}

func pathID(r *http.Request, key string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, key))
	if err != nil || id <= 0 {
		return 0, errInvalidID(key)
	}
	return id, nil
}

func errInvalidID(key string) error {
	return fmt.Errorf("invalid %s: %w", key, domain.ErrInvalidOperation)
}

// pathText returns a decoded path parameter.
func pathText(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// parseForm reads a multipart or urlencoded body within the upload limit.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, err
		}
		return nil, fmt.Errorf("malformed request body (%v): %w", err, domain.ErrInvalidOperation)
	}
	return r.PostForm, nil
}

func cleanupForm(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}

// fileUpload adapts a multipart file part to storage.Upload.
type fileUpload struct {
	header *multipart.FileHeader
}

func (f fileUpload) Name() string { return f.header.Filename }

func (f fileUpload) Open() (io.ReadCloser, error) { return f.header.Open() }

// formFile returns the first file sent under key, or nil.
func formFile(r *http.Request, key string) storage.Upload {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[key]
	if len(files) == 0 {
		return nil
	}
	return fileUpload{header: files[0]}
}

// bind decodes a JSON or form body into req and validates it.
func (h *Handler) bind(w http.ResponseWriter, r *http.Request, req any) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		body := http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
		if err := json.NewDecoder(body).Decode(req); err != nil {
			return fmt.Errorf("malformed JSON body (%v): %w", err, domain.ErrInvalidOperation)
		}
		return dto.Validate(req)
	}
	values, err := h.parseForm(w, r)
	if err != nil {
		return err
	}
	defer cleanupForm(r)
	return dto.DecodeForm(values, req)
}
