package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/markerhq/marker/internal/auth"
	"github.com/markerhq/marker/internal/bookmarks"
	"github.com/markerhq/marker/internal/store"
)

// bookmarksHandler provides REST handlers for bookmark management. Every
// handler resolves the owner id from the request context once and threads it
// explicitly into the service.
type bookmarksHandler struct {
	svc *bookmarks.Service
}

func registerBookmarkRoutes(r chi.Router, svc *bookmarks.Service) {
	h := &bookmarksHandler{svc: svc}
	r.Get("/bookmarks", h.List)
	r.Post("/bookmarks", h.Create)
	r.Get("/bookmarks/{id}", h.Get)
	r.Put("/bookmarks/{id}", h.Update)
	r.Delete("/bookmarks/{id}", h.Delete)
}

// Create creates a new bookmark owned by the caller.
// POST /api/v1/bookmarks
func (h *bookmarksHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner := auth.OwnerFromContext(r.Context())
	if owner == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}

	var req BookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	b, err := h.svc.Create(r.Context(), owner, req.Title, req.URL, req.Memo, req.Tags)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookmarkResponse(b))
}

// Get fetches one bookmark by id, through the cache.
// GET /api/v1/bookmarks/{id}
func (h *bookmarksHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner := auth.OwnerFromContext(r.Context())
	if owner == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}

	b, err := h.svc.GetByID(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookmarkResponse(b))
}

// Update replaces title, url, memo, and the whole tag set.
// PUT /api/v1/bookmarks/{id}
func (h *bookmarksHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner := auth.OwnerFromContext(r.Context())
	if owner == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}

	var req BookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	b, err := h.svc.Update(r.Context(), owner, chi.URLParam(r, "id"), req.Title, req.URL, req.Memo, req.Tags)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookmarkResponse(b))
}

// Delete removes a bookmark.
// DELETE /api/v1/bookmarks/{id}
func (h *bookmarksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner := auth.OwnerFromContext(r.Context())
	if owner == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}

	if err := h.svc.Delete(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List returns one page of the caller's bookmarks. The tag and q parameters
// select mutually exclusive filter modes: tag filters by exact tag name,
// q searches title/url case-insensitively. Supplying both is an error.
// GET /api/v1/bookmarks?page=0&size=20&sort=created_at&direction=asc[&tag=...|&q=...]
func (h *bookmarksHandler) List(w http.ResponseWriter, r *http.Request) {
	owner := auth.OwnerFromContext(r.Context())
	if owner == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}

	page := parsePagination(r)
	tag := r.URL.Query().Get("tag")
	keyword := r.URL.Query().Get("q")
	if tag != "" && keyword != "" {
		writeError(w, http.StatusBadRequest, "tag and q are mutually exclusive", "BAD_REQUEST")
		return
	}

	var (
		result *store.BookmarkPage
		err    error
	)
	switch {
	case tag != "":
		result, err = h.svc.ListByTag(r.Context(), owner, tag, page)
	case keyword != "":
		result, err = h.svc.Search(r.Context(), owner, keyword, page)
	default:
		result, err = h.svc.ListOwned(r.Context(), owner, page)
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageResponse(result))
}
