// Package cache provides the read-through/write-through cache that fronts
// single-bookmark lookups. List, filter, and search results are never
// cached. The cache is an optimization, never a source of truth: backend
// failures degrade to a miss (on reads) or a no-op (on writes) and are never
// surfaced to callers.
package cache

import (
	"context"
	"encoding/json"
	"log"

	"github.com/markerhq/marker/internal/metrics"
	"github.com/markerhq/marker/internal/store"
)

// KV is the narrow port the bookmark cache needs from a backend. Get returns
// (nil, false, nil) on a clean miss.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte) error
	Del(ctx context.Context, key string) error
}

// Key builds the cache key for a bookmark. The owner id is part of the key
// so an entry can never be served to another owner.
func Key(ownerID, id string) string {
	return "bookmark:" + ownerID + ":" + id
}

// Loader performs the authoritative, ownership-checked store fetch on a miss.
type Loader func(ctx context.Context) (*store.Bookmark, error)

// BookmarkCache caches single bookmarks keyed by (owner, id).
type BookmarkCache struct {
	kv KV
}

func New(kv KV) *BookmarkCache {
	return &BookmarkCache{kv: kv}
}

// GetOrLoad returns the cached bookmark for (ownerID, id) if present,
// otherwise invokes load, caches a successful result, and returns it. Loader
// errors (NotFound, Forbidden, store failures) are propagated and nothing is
// cached. Concurrent misses for the same key may each load and each write;
// last writer wins, which is safe because all loaders return an equivalent
// value at a given point in time.
func (c *BookmarkCache) GetOrLoad(ctx context.Context, ownerID, id string, load Loader) (*store.Bookmark, error) {
	key := Key(ownerID, id)

	raw, ok, err := c.kv.Get(ctx, key)
	if err != nil {
		metrics.CacheErrorsTotal.Inc()
		log.Printf("cache: get %s: %v", key, err)
	} else if ok {
		var b store.Bookmark
		if err := json.Unmarshal(raw, &b); err != nil {
			metrics.CacheErrorsTotal.Inc()
			log.Printf("cache: decode %s: %v", key, err)
		} else {
			metrics.CacheHitsTotal.Inc()
			return &b, nil
		}
	}

	metrics.CacheMissesTotal.Inc()
	b, err := load(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, b)
	return b, nil
}

// Put unconditionally overwrites the entry for (ownerID, id). Called after a
// successful update so the next read observes the new state without a store
// round-trip. Must only be called once the store write is committed.
func (c *BookmarkCache) Put(ctx context.Context, ownerID, id string, b *store.Bookmark) {
	c.store(ctx, Key(ownerID, id), b)
}

// Evict removes the entry for (ownerID, id). Called after a successful
// delete. Evicting an absent key is a no-op.
func (c *BookmarkCache) Evict(ctx context.Context, ownerID, id string) {
	key := Key(ownerID, id)
	if err := c.kv.Del(ctx, key); err != nil {
		metrics.CacheErrorsTotal.Inc()
		log.Printf("cache: evict %s: %v", key, err)
	}
}

func (c *BookmarkCache) store(ctx context.Context, key string, b *store.Bookmark) {
	raw, err := json.Marshal(b)
	if err != nil {
		metrics.CacheErrorsTotal.Inc()
		log.Printf("cache: encode %s: %v", key, err)
		return
	}
	if err := c.kv.Set(ctx, key, raw); err != nil {
		metrics.CacheErrorsTotal.Inc()
		log.Printf("cache: set %s: %v", key, err)
	}
}
