// Package metrics exposes prometheus instrumentation for quadtree queries.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Traversal modes.
const (
	ModeSequential = "sequential"
	ModeParallel   = "parallel"
)

const modeLabel = "mode"

var (
	queries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "galaxyquad_queries_total",
		Help: "The number of viewport queries run against a quadtree.",
	}, []string{
		modeLabel,
	})

	visitedNodes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "galaxyquad_visited_nodes",
		Help:    "The number of nodes visited by a query.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{
		modeLabel,
	})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "galaxyquad_query_duration_seconds",
		Help: "The time spent traversing the quadtree for a query.",
	}, []string{
		modeLabel,
	})

	prunedSubtrees = promauto.NewCounter(prometheus.CounterOpts{
		Name: "galaxyquad_pruned_subtrees_total",
		Help: "The number of subtrees discarded by traversal.",
	})

	// Subdivisions counts nodes that gained children.
	Subdivisions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "galaxyquad_subdivisions_total",
		Help: "The number of quadtree nodes subdivided.",
	})

	// StarsGenerated counts generated content items.
	StarsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "galaxyquad_stars_generated_total",
		Help: "The number of stars generated for quadtree nodes.",
	})
)

// ObserveQuery records one finished query.
func ObserveQuery(mode string, visited, pruned int, elapsed time.Duration) {
	labels := prometheus.Labels{modeLabel: mode}
	queries.With(labels).Inc()
	visitedNodes.With(labels).Observe(float64(visited))
	queryDuration.With(labels).Observe(elapsed.Seconds())
	prunedSubtrees.Add(float64(pruned))
}
