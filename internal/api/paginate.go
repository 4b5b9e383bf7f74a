package api

import (
	"net/http"
	"strconv"

	"github.com/markerhq/marker/internal/store"
)

// parsePagination extracts page, size, sort, and direction from query
// parameters. Page index is 0-based; bounds and the sort whitelist are
// enforced by the store.
func parsePagination(r *http.Request) store.PageRequest {
	q := r.URL.Query()
	page := store.PageRequest{
		Sort:      q.Get("sort"),
		Direction: q.Get("direction"),
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil {
		page.Page = p
	}
	if s, err := strconv.Atoi(q.Get("size")); err == nil {
		page.Size = s
	}
	return page
}
