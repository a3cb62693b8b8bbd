// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flyerhub_http_requests_total",
			Help: "HTTP requests by method, route and status class",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flyerhub_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AssetSlots counts reconciled asset slots by kind and outcome
	// (uploaded, library, empty, failed).
	AssetSlots = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flyerhub_asset_slots_total",
			Help: "Asset slots reconciled during order and cart submission",
		},
		[]string{"kind", "outcome"},
	)

	StorageOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flyerhub_storage_operations_total",
			Help: "Storage backend operations by backend, op and result",
		},
		[]string{"backend", "op", "result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "flyerhub_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flyerhub_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flyerhub_notifications_total",
			Help: "Admin notifications by severity and result",
		},
		[]string{"severity", "result"},
	)

	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flyerhub_orders_created_total",
		Help: "Orders created",
	})

	CartAdds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flyerhub_cart_adds_total",
			Help: "Cart add requests by outcome (created, duplicate)",
		},
		[]string{"outcome"},
	)
)
