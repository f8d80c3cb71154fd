package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventboard_client",
			Name:      "requests_total",
			Help:      "API requests by route template and outcome.",
		},
		[]string{"method", "route", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "eventboard_client",
			Name:      "request_duration_seconds",
			Help:      "Time from send to response for API requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func observe(method, route string, status int, elapsed time.Duration) {
	code := "network_error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	requestsTotal.WithLabelValues(method, route, code).Inc()
	requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
