// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bagoloot",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bagoloot",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	TokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bagoloot",
		Name:      "tokens_issued_total",
		Help:      "Bearer tokens issued, by kind (login or refresh).",
	}, []string{"kind"})

	TokenRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bagoloot",
		Name:      "token_rejections_total",
		Help:      "Rejected token requests and bearer validations, by reason.",
	}, []string{"reason"})

	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "bagoloot",
		Name:      "websocket_clients",
		Help:      "Currently connected live-update clients.",
	})
)
