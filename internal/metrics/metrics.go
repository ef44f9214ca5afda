package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ComputationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_computations_total",
			Help: "Total number of match computation passes run",
		},
	)

	CandidatesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_candidates_scored_total",
			Help: "Total number of opportunities scored across all passes",
		},
	)

	DegradedSimilarity = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_similarity_degraded_total",
			Help: "Similarity computations that fell back to a default score",
		},
		[]string{"reason"},
	)

	MatchesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matches_created_total",
			Help: "Total number of new match records created",
		},
	)

	StaleMatchesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matches_stale_deleted_total",
			Help: "Total number of stale non-actioned matches deleted",
		},
	)
)
