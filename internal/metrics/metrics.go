// Package metrics declares the Prometheus collectors of the delivery engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch collects delivery metrics.
type Dispatch struct {
	attempts     *prometheus.CounterVec
	dispatches   *prometheus.CounterVec
	sendDuration *prometheus.HistogramVec
}

// NewDispatch creates the collectors and registers them with reg.
func NewDispatch(reg prometheus.Registerer) *Dispatch {
	m := &Dispatch{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifier_attempts_total",
				Help: "Delivery attempts by channel and outcome.",
			},
			[]string{"channel", "outcome"},
		),
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifier_dispatch_total",
				Help: "Finished dispatches by final notification status.",
			},
			[]string{"status"},
		),
		sendDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "notifier_send_duration_seconds",
				Help:    "Time spent in a transport send.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"channel"},
		),
	}

	reg.MustRegister(m.attempts, m.dispatches, m.sendDuration)

	return m
}

// ObserveAttempt records one transport call.
func (m *Dispatch) ObserveAttempt(channel, outcome string, took time.Duration) {
	m.attempts.WithLabelValues(channel, outcome).Inc()
	m.sendDuration.WithLabelValues(channel).Observe(took.Seconds())
}

// ObserveDispatch records a dispatch that reached a terminal status.
func (m *Dispatch) ObserveDispatch(status string) {
	m.dispatches.WithLabelValues(status).Inc()
}
