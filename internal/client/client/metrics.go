package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK              = "ok"
	outcomeUnauthenticated = "unauthenticated"
	outcomeUnauthorized    = "unauthorized"
	outcomeTimeout         = "timeout"
	outcomeUnavailable     = "unavailable"
	outcomeServerError     = "server_error"
	outcomeCanceled        = "canceled"
	outcomeError           = "error"
)

var (
	apiRequestsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bloodlink",
			Name:      "api_requests_total",
			Help:      "Total backend API calls by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	apiRequestDurationHist = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bloodlink",
			Name:      "api_request_duration_seconds",
			Help:      "Duration of backend API calls, refresh and replay included.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)
