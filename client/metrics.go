package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// clientMetrics holds the optional Prometheus instrumentation for the client.
type clientMetrics struct {
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// newClientMetrics registers the client's collectors on reg. A nil reg
// disables instrumentation.
func newClientMetrics(reg prometheus.Registerer) *clientMetrics {
	if reg == nil {
		return nil
	}
	m := &clientMetrics{
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yieldroute_requests_total",
				Help: "Total number of backend requests issued",
			},
			[]string{"endpoint", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "yieldroute_request_duration_seconds",
				Help:    "Backend request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}
	reg.MustRegister(m.requestCounter, m.requestDuration)
	return m
}

// observe records one request outcome. Safe to call on a nil receiver.
func (m *clientMetrics) observe(endpoint string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.requestCounter.WithLabelValues(endpoint, status).Inc()
	m.requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
