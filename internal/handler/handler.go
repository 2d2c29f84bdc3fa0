// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
	"github.com/Shivanand-hulikatti/eventdesk/internal/repository"
	"github.com/Shivanand-hulikatti/eventdesk/internal/service"
)

// collection is the service surface a ResourceHandler drives.
type collection[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, v T) (T, error)
	Update(ctx context.Context, id string, v T) (T, error)
	Delete(ctx context.Context, id string) error
}

// ResourceHandler serves one json-server style collection.
type ResourceHandler[T any] struct {
	name string
	svc  collection[T]
	log  *zap.Logger
}

// NewResourceHandler constructs a ResourceHandler for the named resource.
func NewResourceHandler[T any](name string, svc collection[T], log *zap.Logger) *ResourceHandler[T] {
	return &ResourceHandler[T]{name: name, svc: svc, log: log}
}

// Routes mounts the collection endpoints.
func (h *ResourceHandler[T]) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// fail maps service and repository errors onto HTTP statuses.
func (h *ResourceHandler[T]) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, h.name+" not found")
	case errors.Is(err, repository.ErrAlreadyExists):
		writeError(w, http.StatusConflict, h.name+" already exists")
	case errors.Is(err, service.ErrInvalid):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("request failed",
			zap.String("resource", h.name),
			zap.String("op", op),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to "+op+" "+h.name)
	}
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// List handles GET /{resource}
func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /{resource}/{id}
func (h *ResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /{resource}
// A body without an id gets the next free id assigned.
func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var req T
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	item, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /{resource}/{id}
// The path id wins over any id in the body.
func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	var req T
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	item, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, r, "update", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /{resource}/{id}
func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "delete", err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
