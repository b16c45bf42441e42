package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hitTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scopetrack_cache_hits_total",
		Help: "Number of cache reads served from the store.",
	})
	missTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scopetrack_cache_misses_total",
		Help: "Number of cache reads that fell through to the repository.",
	})
	setTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scopetrack_cache_sets_total",
		Help: "Number of whole-entry cache replacements.",
	})
	invalidateTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scopetrack_cache_invalidations_total",
		Help: "Number of key-family invalidations after successful mutations.",
	})
)
