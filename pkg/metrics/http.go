package metrics

import "github.com/prometheus/client_golang/prometheus"

var HTTPRequestsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "chartdesk_http_requests_total",
		Help: "number of api requests by route and status",
	}, []string{"method", "route", "status"})

var HTTPRequestDurationMetrics = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "chartdesk_http_request_duration_seconds",
		Help:    "api request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

func init() {
	prometheus.MustRegister(HTTPRequestsMetrics, HTTPRequestDurationMetrics)
}
