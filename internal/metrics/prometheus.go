package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the excitement analyzer

var (
	// API Call metrics
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eplwatch_api_calls_total",
			Help: "Total number of football-data.org API calls",
		},
		[]string{"endpoint", "status"},
	)

	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eplwatch_api_call_duration_seconds",
			Help:    "Duration of API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Database metrics
	DBQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eplwatch_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "table", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eplwatch_db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eplwatch_cache_hits_total",
			Help: "Total number of standings cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eplwatch_cache_misses_total",
			Help: "Total number of standings cache misses",
		},
	)

	// Ranking metrics
	RankingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eplwatch_ranking_runs_total",
			Help: "Total number of ranking runs",
		},
		[]string{"status"},
	)

	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eplwatch_ranking_duration_seconds",
			Help:    "Duration of ranking runs in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30},
		},
	)

	MatchesRankedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eplwatch_matches_ranked_total",
			Help: "Total number of matches scored and ranked",
		},
	)

	MatchesSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eplwatch_matches_skipped_total",
			Help: "Total number of matches skipped due to malformed data",
		},
	)

	TopExcitementScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eplwatch_top_excitement_score",
			Help: "Normalized excitement score of the top-ranked match in the last run",
		},
	)

	MatchesIngested = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eplwatch_matches_ingested_total",
			Help: "Total number of matches in database",
		},
	)

	StandingsTeams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eplwatch_standings_teams",
			Help: "Number of teams in the current standings snapshot",
		},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eplwatch_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eplwatch_system_uptime_seconds",
			Help: "System uptime in seconds",
		},
	)

	LastSuccessfulRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eplwatch_last_successful_run_timestamp",
			Help: "Timestamp of last successful ranking run",
		},
	)
)

// RecordAPICall records an API call metric
func RecordAPICall(endpoint, status string, duration float64) {
	APICallsTotal.WithLabelValues(endpoint, status).Inc()
	APICallDuration.WithLabelValues(endpoint).Observe(duration)
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table, status string, duration float64) {
	DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration)
}

// RecordCacheHit records a cache hit
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordRankingRun records a completed ranking run
func RecordRankingRun(status string, duration float64, ranked, skipped int) {
	RankingRunsTotal.WithLabelValues(status).Inc()
	RankingDuration.Observe(duration)
	MatchesRankedTotal.Add(float64(ranked))
	MatchesSkippedTotal.Add(float64(skipped))

	if status == "success" {
		LastSuccessfulRun.SetToCurrentTime()
	}
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

// UpdateIngestionStats updates ingestion statistics
func UpdateIngestionStats(matches, standingsTeams int64) {
	MatchesIngested.Set(float64(matches))
	StandingsTeams.Set(float64(standingsTeams))
}
