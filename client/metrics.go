package client

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carrental_client",
			Name:      "requests_total",
			Help:      "HTTP attempts issued by the client, by outcome.",
		},
		[]string{"area", "method", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "carrental_client",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP attempts issued by the client.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"area", "method"},
	)
)

// metricsObserver feeds the collectors above from the request helper.
type metricsObserver struct{}

func (metricsObserver) ObserveRequest(_ context.Context, area, method, outcome string, elapsed time.Duration) {
	requestsTotal.WithLabelValues(area, method, outcome).Inc()
	requestDuration.WithLabelValues(area, method).Observe(elapsed.Seconds())
}
