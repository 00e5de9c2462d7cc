package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the crawler.
type Metrics struct {
	FetchesTotal  *prometheus.CounterVec   // labels: region, outcome={success,network,timeout,upstream_unavailable,parse_failure,schema_violation}
	FetchDuration *prometheus.HistogramVec // labels: region

	RunsTotal        prometheus.Counter
	RunDuration      prometheus.Histogram
	RegionsFailed    prometheus.Gauge
	CollectorRunning prometheus.Gauge
}

// NewMetrics creates and registers all crawler metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchesTotal,
		m.FetchDuration,
		m.RunsTotal,
		m.RunDuration,
		m.RegionsFailed,
		m.CollectorRunning,
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
		FetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "elecwarn",
			Name:      "fetches_total",
			Help:      "Region fetches by region and outcome.",
		}, []string{"region", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "elecwarn",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a single region fetch and parse.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"region"}),
		RunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "elecwarn",
			Name:      "runs_total",
			Help:      "Total completed crawl runs.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "elecwarn",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete crawl across all regions.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 30},
		}),
		RegionsFailed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "elecwarn",
			Name:      "regions_failed",
			Help:      "Number of regions that failed in the most recent run.",
		}),
		CollectorRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "elecwarn",
			Name:      "collector_running",
			Help:      "1 while a crawl run is in progress, 0 otherwise.",
		}),
	}
}
