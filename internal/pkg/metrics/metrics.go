package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counts how many full site analyses have been run.
var AnalysesTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "edanalyzer_analyses_total",
	Help: "Total number of site analyses executed",
})

// Measures end-to-end analysis duration.
var AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "edanalyzer_analysis_duration_seconds",
	Help:    "Time taken to run one full site analysis",
	Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
})

// Counts how many page records were merged into site aggregates.
var PagesAggregated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "edanalyzer_pages_aggregated_total",
	Help: "Total number of page records merged into site aggregates",
})

// Counts scorers that failed and were replaced by an error record.
var ScorerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "edanalyzer_scorer_failures_total",
	Help: "Total number of indicator scorers that failed",
}, []string{"indicator"})

// Counts collaborator calls that failed and degraded to empty evidence.
var CollaboratorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "edanalyzer_collaborator_failures_total",
	Help: "Total number of failed collaborator calls, by pipeline stage",
}, []string{"stage"})

// Result cache metrics.
var (
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edanalyzer_result_cache_hits_total",
		Help: "Total number of analysis results served from the cache",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edanalyzer_result_cache_misses_total",
		Help: "Total number of cache lookups that missed",
	})
)

// Result sink metrics.
var (
	SinkFlushes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edanalyzer_sink_flushes_total",
		Help: "Total number of bulk flushes to the result sink",
	})

	SinkFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edanalyzer_sink_failures_total",
		Help: "Total number of failed bulk requests to the result sink",
	})

	ResultsExported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edanalyzer_results_exported_total",
		Help: "Total number of analysis documents flushed to the sink",
	})
)

// Conclusion (LLM summary) metrics.
var (
	ConclusionRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edanalyzer_conclusion_requests_total",
		Help: "Total number of requests sent to the conclusion model",
	})

	ConclusionErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edanalyzer_conclusion_errors_total",
		Help: "Total number of failed conclusion model requests",
	})

	ConclusionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "edanalyzer_conclusion_latency_seconds",
		Help:    "Time taken to generate the report conclusion",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)

var CircuitBreakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "edanalyzer_circuit_breaker_state",
		Help: "Current state of circuit breakers (0=closed, 1=half-open, 2=open)",
	},
	[]string{"service"},
)
