package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marker_cache_hits_total",
		Help: "Single-bookmark lookups served from the cache.",
	})

	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marker_cache_misses_total",
		Help: "Single-bookmark lookups that fell through to the store.",
	})

	CacheErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marker_cache_errors_total",
		Help: "Cache backend failures, all treated as misses or no-ops.",
	})

	BookmarksCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marker_bookmarks_created_total",
		Help: "Bookmarks successfully created.",
	})

	BookmarksDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marker_bookmarks_deleted_total",
		Help: "Bookmarks successfully deleted.",
	})
)
