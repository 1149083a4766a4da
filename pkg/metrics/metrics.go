// Package metrics provides Prometheus metrics for the juniper service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueriesTotal tracks dispatched queries by name and outcome status
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "juniper",
			Subsystem: "queries",
			Name:      "dispatched_total",
			Help:      "Total number of dispatched queries by name and status",
		},
		[]string{"query", "status"},
	)

	// QueryDuration tracks query handler duration in seconds
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "juniper",
			Subsystem: "queries",
			Name:      "duration_seconds",
			Help:      "Duration of query handling in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"query"},
	)

	// PeerRequestsTotal tracks outbound peer-service requests
	PeerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "juniper",
			Subsystem: "peer",
			Name:      "requests_total",
			Help:      "Total number of outbound peer-service requests",
		},
		[]string{"service", "status_code"},
	)

	// ConsumerMessagesTotal tracks Kafka query envelopes consumed
	ConsumerMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "juniper",
			Subsystem: "consumer",
			Name:      "messages_total",
			Help:      "Total number of query envelopes consumed by outcome",
		},
		[]string{"outcome"},
	)
)

// QueryRecorder implements the registry's dispatch observer on top of the
// Prometheus collectors.
type QueryRecorder struct{}

func NewQueryRecorder() *QueryRecorder {
	return &QueryRecorder{}
}

func (r *QueryRecorder) RecordQuery(name string, status string, duration time.Duration) {
	QueriesTotal.WithLabelValues(name, status).Inc()
	QueryDuration.WithLabelValues(name).Observe(duration.Seconds())
}
