// internal/metrics/metrics.go

// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leagus_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leagus_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "leagus_http_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	PointsRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leagus_points_refresh_total",
			Help: "Points table refresh runs by outcome",
		},
		[]string{"outcome"},
	)

	PointsRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "leagus_points_refresh_duration_seconds",
			Help:    "Time taken to refresh every active season's points table",
			Buckets: prometheus.DefBuckets,
		},
	)

	PointsTablesRefreshed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "leagus_points_tables_refreshed",
			Help: "Seasons refreshed by the most recent points refresh",
		},
	)

	MatchesGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leagus_matches_generated_total",
			Help: "Matches created by round match generation",
		},
	)

	MatchResultsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leagus_match_results_recorded_total",
			Help: "Match results recorded",
		},
	)
)

// RecordHTTPRequest records one finished request. route should be the mux
// pattern, not the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(route, method, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
	HTTPRequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

func TrackActiveRequest(start bool) {
	if start {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}

// RecordPointsRefresh records the outcome of a points refresh run.
func RecordPointsRefresh(refreshed int, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	PointsRefreshTotal.WithLabelValues(outcome).Inc()
	PointsRefreshDuration.Observe(duration.Seconds())
	PointsTablesRefreshed.Set(float64(refreshed))
}
