// Package metrics exposes Prometheus instrumentation for the analysis service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	Registry *prometheus.Registry

	FetchesTotal    *prometheus.CounterVec // labels: source, outcome
	FetchDuration   prometheus.Histogram
	AnalysesTotal   *prometheus.CounterVec // labels: period
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	ScanEventsTotal *prometheus.CounterVec // labels: kind
	StreamClients   prometheus.Gauge
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		FetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketlens_fetches_total",
			Help: "Upstream market data fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "marketlens_fetch_duration_seconds",
			Help:    "Duration of upstream fetch plus indicator computation.",
			Buckets: prometheus.DefBuckets,
		}),
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketlens_analyses_total",
			Help: "Completed analyses by period.",
		}, []string{"period"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "marketlens_cache_hits_total",
			Help: "Report cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "marketlens_cache_misses_total",
			Help: "Report cache misses.",
		}),
		ScanEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketlens_scan_events_total",
			Help: "Signal transitions detected by watchlist scans, by kind.",
		}, []string{"kind"}),
		StreamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "marketlens_stream_clients",
			Help: "Currently connected websocket stream clients.",
		}),
	}

	reg.MustRegister(
		m.FetchesTotal,
		m.FetchDuration,
		m.AnalysesTotal,
		m.CacheHits,
		m.CacheMisses,
		m.ScanEventsTotal,
		m.StreamClients,
	)
	return m
}
