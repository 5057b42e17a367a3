package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the seeder
type MetricsRegistry struct {
	// Record-level outcomes per stage
	RecordsTotal     prometheus.CounterVec
	SkipReasonsTotal prometheus.CounterVec

	// Stage-level accounting
	StageDuration prometheus.HistogramVec
	StagesTotal   prometheus.CounterVec

	// Document store traffic
	StoreOpsTotal prometheus.CounterVec

	// Remote source fetches
	FetchesTotal prometheus.CounterVec

	// Admin server traffic
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all
// metrics registered on the default registry
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		RecordsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gazetteer_seed_records_total",
				Help: "Record-level outcomes per stage (created, updated, skipped, errored)",
			},
			[]string{"stage", "outcome"},
		),
		SkipReasonsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gazetteer_seed_skip_reasons_total",
				Help: "Skip and error reasons per stage",
			},
			[]string{"stage", "reason"},
		),
		StageDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gazetteer_seed_stage_duration_seconds",
				Help:    "Wall-clock duration of each pipeline stage",
				Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
			},
			[]string{"stage"},
		),
		StagesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gazetteer_seed_stages_total",
				Help: "Terminal stage statuses per run",
			},
			[]string{"stage", "status"},
		),
		StoreOpsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gazetteer_store_ops_total",
				Help: "Document store operations issued by the pipeline",
			},
			[]string{"op", "collection"},
		),
		FetchesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gazetteer_fetches_total",
				Help: "Remote source fetches by result",
			},
			[]string{"result"},
		),
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gazetteer_http_requests_total",
				Help: "Admin server requests by endpoint, method and status",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gazetteer_http_request_duration_seconds",
				Help:    "Admin server request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gazetteer_http_requests_in_flight",
				Help: "Admin server requests currently being served",
			},
			[]string{"endpoint"},
		),
	}
}
