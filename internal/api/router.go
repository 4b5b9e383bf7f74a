package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/markerhq/marker/internal/auth"
	"github.com/markerhq/marker/internal/bookmarks"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	BearerAuth *auth.Middleware
	Bookmarks  *bookmarks.Service
}

// NewRouter creates the top-level router: /api/v1 behind Bearer auth, plus
// an unauthenticated /metrics endpoint.
func NewRouter(deps Deps) chi.Router {
	root := chi.NewRouter()
	root.Handle("/metrics", promhttp.Handler())

	api := chi.NewRouter()
	api.Use(jsonContentType)
	api.Use(deps.BearerAuth.Authenticate)
	registerBookmarkRoutes(api, deps.Bookmarks)

	root.Mount("/api/v1", api)
	return root
}

// jsonContentType sets Content-Type: application/json on all API responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
