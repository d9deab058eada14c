package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scentquiz_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scentquiz_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// Recommendation engine
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scentquiz_recommendations_total",
			Help: "Recommendation entries returned, by kind (scored or fallback)",
		},
		[]string{"kind"},
	)

	RecommendationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scentquiz_recommendation_runs_total",
			Help: "Recommendation engine runs, by entry point",
		},
		[]string{"source"}, // "stateless", "session"
	)

	QuizEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scentquiz_quiz_events_total",
			Help: "Analytics events reported by the quiz front end",
		},
		[]string{"event"},
	)

	// Catalog
	CatalogProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scentquiz_catalog_products",
			Help: "Products in the currently loaded catalog snapshot",
		},
	)

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scentquiz_catalog_reloads_total",
			Help: "Catalog reload attempts by outcome",
		},
		[]string{"status"},
	)

	// Catalog sync
	CatalogSyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scentquiz_catalog_sync_runs_total",
			Help: "Catalog sync runs by mode and outcome",
		},
		[]string{"mode", "status"},
	)

	ShopifyRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scentquiz_shopify_requests_total",
			Help: "GraphQL requests sent to the commerce API by outcome",
		},
		[]string{"status"}, // "success", "failure", "rejected"
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scentquiz_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)
