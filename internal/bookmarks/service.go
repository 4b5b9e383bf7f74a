// Package bookmarks orchestrates the bookmark store and the cache into the
// public operation set. The caller resolves the owner id (once per request)
// and passes it explicitly; the service never reads ambient identity state.
package bookmarks

import (
	"context"

	"github.com/markerhq/marker/internal/cache"
	"github.com/markerhq/marker/internal/metrics"
	"github.com/markerhq/marker/internal/store"
)

// Service wires the store and cache as explicit collaborators. Cache
// mutations are issued only after the corresponding store write committed;
// a failed write leaves the cache untouched.
type Service struct {
	store store.BookmarkStoreIface
	cache *cache.BookmarkCache
}

func NewService(st store.BookmarkStoreIface, c *cache.BookmarkCache) *Service {
	return &Service{store: st, cache: c}
}

// Create persists a new bookmark. Creation is not cached; the first GetByID
// populates the entry.
func (s *Service) Create(ctx context.Context, ownerID, title, url, memo string, tags []string) (*store.Bookmark, error) {
	b, err := s.store.Create(ctx, ownerID, title, url, memo, tags)
	if err != nil {
		return nil, err
	}
	metrics.BookmarksCreatedTotal.Inc()
	return b, nil
}

// GetByID routes through the cache, with the ownership-checked store fetch
// as the loader. NotFound/Forbidden results are never cached, so ownership
// is re-validated on every cache population.
func (s *Service) GetByID(ctx context.Context, ownerID, id string) (*store.Bookmark, error) {
	return s.cache.GetOrLoad(ctx, ownerID, id, func(ctx context.Context) (*store.Bookmark, error) {
		return s.store.GetOwned(ctx, ownerID, id)
	})
}

// Update replaces title/url/memo and the whole tag set, then write-throughs
// the returned record so the next read observes the new state.
func (s *Service) Update(ctx context.Context, ownerID, id, title, url, memo string, tags []string) (*store.Bookmark, error) {
	b, err := s.store.Update(ctx, ownerID, id, title, url, memo, tags)
	if err != nil {
		return nil, err
	}
	s.cache.Put(ctx, ownerID, id, b)
	return b, nil
}

// Delete removes the bookmark and evicts its cache entry.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.store.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.cache.Evict(ctx, ownerID, id)
	metrics.BookmarksDeletedTotal.Inc()
	return nil
}

// ListOwned returns one page of the owner's bookmarks. Never cached.
func (s *Service) ListOwned(ctx context.Context, ownerID string, page store.PageRequest) (*store.BookmarkPage, error) {
	return s.store.ListOwned(ctx, ownerID, page)
}

// ListByTag returns one page of the owner's bookmarks carrying tagName.
func (s *Service) ListByTag(ctx context.Context, ownerID, tagName string, page store.PageRequest) (*store.BookmarkPage, error) {
	return s.store.ListByTag(ctx, ownerID, tagName, page)
}

// Search returns one page of the owner's bookmarks whose title or URL
// contains keyword, case-insensitive.
func (s *Service) Search(ctx context.Context, ownerID, keyword string, page store.PageRequest) (*store.BookmarkPage, error) {
	return s.store.Search(ctx, ownerID, keyword, page)
}
