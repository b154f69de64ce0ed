// Package metrics exposes Prometheus metrics for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warbler_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "warbler_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// SignupsTotal counts accounts created.
	SignupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "warbler_signups_total",
			Help: "Total number of accounts created",
		},
	)

	// AuthenticationsTotal counts authentication attempts by result.
	AuthenticationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warbler_authentications_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)

	// FollowChangesTotal counts follow and unfollow operations.
	FollowChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warbler_follow_changes_total",
			Help: "Total number of follow and unfollow operations",
		},
		[]string{"operation"},
	)

	// CacheLookupsTotal counts user cache lookups by result.
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warbler_user_cache_lookups_total",
			Help: "Total number of user cache lookups",
		},
		[]string{"result"},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRequest records an HTTP request.
func RecordRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordSignup records a created account.
func RecordSignup() {
	SignupsTotal.Inc()
}

// RecordAuthentication records an authentication attempt.
func RecordAuthentication(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	AuthenticationsTotal.WithLabelValues(result).Inc()
}

// RecordFollowChange records a follow or unfollow.
func RecordFollowChange(operation string) {
	FollowChangesTotal.WithLabelValues(operation).Inc()
}

// RecordCacheHit records a user cache hit.
func RecordCacheHit() {
	CacheLookupsTotal.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a user cache miss.
func RecordCacheMiss() {
	CacheLookupsTotal.WithLabelValues("miss").Inc()
}
