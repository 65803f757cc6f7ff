package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bloom_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// ResonanceConflicts counts resonance attempts rejected because the user
	// had already resonated with the post.
	ResonanceConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bloom_resonance_conflicts_total",
		Help: "Total number of duplicate resonance attempts rejected",
	})

	// FeedCacheResults counts feed page lookups by cache outcome.
	FeedCacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bloom_feed_cache_results_total",
		Help: "Total feed page lookups by cache outcome (hit or miss)",
	}, []string{"outcome"})
)
