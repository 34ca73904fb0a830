package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and path
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookoff_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cookoff_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cookoff_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "path"},
	)

	// RateLimiterRejections counts requests rejected by the per-IP limiter
	RateLimiterRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookoff_rate_limiter_rejections_total",
			Help: "Total number of requests rejected by the per-IP rate limiter",
		},
		[]string{"ip"},
	)

	// JoinRateLimited counts join attempts rejected by the sliding-window limit
	JoinRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cookoff_join_rate_limited_total",
			Help: "Total number of join attempts rejected by the sliding-window limit",
		},
	)

	// JoinsTotal counts successful competition joins by kind (new or re-auth)
	JoinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookoff_joins_total",
			Help: "Total number of successful competition joins",
		},
		[]string{"kind"},
	)

	// VotesCast counts persisted vote casts
	VotesCast = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cookoff_votes_cast_total",
			Help: "Total number of votes cast",
		},
	)

	// PhaseAdvances counts competition phase transitions by target phase
	PhaseAdvances = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookoff_phase_advances_total",
			Help: "Total number of competition phase transitions",
		},
		[]string{"to"},
	)
)
