// Package metrics holds the prometheus collectors of the dashboard.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "honeypot_dashboard_upstream_requests_total",
			Help: "Upstream api requests by endpoint and the source of the returned data",
		},
		[]string{"endpoint", "source"},
	)
	pollDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "honeypot_dashboard_poll_duration_seconds",
			Help:    "Duration of a single view poll",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"view"},
	)
	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "honeypot_dashboard_active_sessions",
			Help: "Number of logged in sessions",
		},
	)
	realtimeSubscribers = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "honeypot_dashboard_realtime_subscribers",
			Help: "Connected realtime clients by transport",
		},
		[]string{"transport"},
	)
)

func init() {
	prometheus.MustRegister(upstreamRequests)
	prometheus.MustRegister(pollDuration)
	prometheus.MustRegister(activeSessions)
	prometheus.MustRegister(realtimeSubscribers)
}

func ObserveUpstream(endpoint string, source string) {
	upstreamRequests.WithLabelValues(endpoint, source).Inc()
}

func ObservePoll(view string, took time.Duration) {
	pollDuration.WithLabelValues(view).Observe(took.Seconds())
}

func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}

func SetRealtimeSubscribers(transport string, n int) {
	realtimeSubscribers.WithLabelValues(transport).Set(float64(n))
}
