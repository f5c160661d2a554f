// Package metrics exposes prometheus instruments for the delivery pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	outcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_outcomes_total",
		Help: "Delivery attempts by outcome status.",
	}, []string{"status"})

	events = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_events_total",
		Help: "Domain events dispatched, by kind.",
	}, []string{"kind"})

	liveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "realtime_connections",
		Help: "Currently open realtime connections.",
	})
)

// RecordOutcome counts one delivery attempt result.
func RecordOutcome(status string) {
	outcomes.WithLabelValues(status).Inc()
}

// RecordEvent counts one dispatched event.
func RecordEvent(kind string) {
	events.WithLabelValues(kind).Inc()
}

// ConnectionOpened increments the live connection gauge.
func ConnectionOpened() {
	liveConnections.Inc()
}

// ConnectionClosed decrements the live connection gauge.
func ConnectionClosed() {
	liveConnections.Dec()
}
