package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dashboard service.
type Metrics struct {
	// Dataset lifecycle metrics.
	DatasetLoads        *prometheus.CounterVec // labels: outcome={success,decode_error,schema_error,data_error}
	DatasetLoadDuration prometheus.Histogram
	DatasetCache        *prometheus.CounterVec // labels: result={hit,miss}
	DatasetRows         prometheus.Gauge

	// Municipality registry metrics.
	RegistryRequests *prometheus.CounterVec // labels: outcome={success,error,empty}
	RegistryDuration prometheus.Histogram
	RegistryEnabled  prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DatasetLoads,
		m.DatasetLoadDuration,
		m.DatasetCache,
		m.DatasetRows,
		m.RegistryRequests,
		m.RegistryDuration,
		m.RegistryEnabled,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "piggdekk",
			Name:      "dataset_loads_total",
			Help:      "Dataset build attempts by outcome.",
		}, []string{"outcome"}),
		DatasetLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "piggdekk",
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of a complete read-validate-merge cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		DatasetCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "piggdekk",
			Name:      "dataset_cache_total",
			Help:      "Dataset cache lookups by result.",
		}, []string{"result"}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "piggdekk",
			Name:      "dataset_rows",
			Help:      "Rows in the most recently built merged dataset.",
		}),
		RegistryRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "piggdekk",
			Name:      "registry_requests_total",
			Help:      "Municipality registry requests by outcome.",
		}, []string{"outcome"}),
		RegistryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "piggdekk",
			Name:      "registry_request_duration_seconds",
			Help:      "Kommuneinfo API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RegistryEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "piggdekk",
			Name:      "registry_enabled",
			Help:      "1 when the registry fetch is enabled, 0 otherwise.",
		}),
	}
}
