// Package metrics defines the Prometheus metrics exported by the CWMS
// client and the cwms CLI.
//
// The following metrics are registered with the default registry:
//
//	┌────────────────────────────────────┬─────────┬──────────────────────────────────────┐
//	│ Metric Name                        │ Type    │ Description                          │
//	├────────────────────────────────────┼─────────┼──────────────────────────────────────┤
//	│ cda_client_requests_total          │ Counter │ CDA requests by method and endpoint  │
//	│ cda_client_errors_total            │ Counter │ CDA errors by method and kind        │
//	│ cda_client_latency_seconds         │ Hist    │ CDA response latency                 │
//	│ cda_client_pages_total             │ Counter │ Pages fetched by paged operations    │
//	│ cwms_uploads_total                 │ Counter │ CLI blob uploads by result           │
//	│ cwms_upload_bytes_total            │ Counter │ Bytes uploaded by the CLI            │
//	└────────────────────────────────────┴─────────┴──────────────────────────────────────┘
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics used by the client and CLI.
// Using promauto for automatic registration with the default registry.
var Metrics = struct {
	APIRequestsTotal *prometheus.CounterVec
	APIErrorsTotal   *prometheus.CounterVec
	APILatency       *prometheus.HistogramVec
	APIPagesTotal    *prometheus.CounterVec

	UploadsTotal     *prometheus.CounterVec
	UploadBytesTotal prometheus.Counter
}{
	APIRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cda_client_requests_total",
		Help: "Total number of CWMS Data API requests.",
	}, []string{"method", "endpoint"}),

	APIErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cda_client_errors_total",
		Help: "Total number of CWMS Data API errors by error kind.",
	}, []string{"method", "kind"}),

	APILatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cda_client_latency_seconds",
		Help:    "CWMS Data API response latency in seconds.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"method", "endpoint"}),

	APIPagesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cda_client_pages_total",
		Help: "Total number of pages fetched by paged retrievals.",
	}, []string{"endpoint"}),

	UploadsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cwms_uploads_total",
		Help: "Total number of CLI blob uploads by result.",
	}, []string{"result"}),

	UploadBytesTotal: promauto.NewCounter(prometheus.CounterOpts{
		Name: "cwms_upload_bytes_total",
		Help: "Total number of bytes uploaded by the CLI.",
	}),
}
