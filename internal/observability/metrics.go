package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the heat map service.
type Metrics struct {
	// Dataset loading.
	DatasetFetches       *prometheus.CounterVec // labels: source={http,file,cache}, outcome={success,error}
	DatasetFetchDuration prometheus.Histogram
	Observations         prometheus.Gauge
	ChartReady           prometheus.Gauge

	// Rendering.
	CellsRendered prometheus.Gauge
	CellsSkipped  prometheus.Gauge
	Renders       *prometheus.CounterVec // labels: format={svg,html,json}
	RenderCache   *prometheus.CounterVec // labels: result={hit,miss}

	// Interaction.
	InteractionEvents *prometheus.CounterVec // labels: kind={pointerenter,pointerleave,resize}
	ActiveSurfaces    prometheus.Gauge
	EventsPublished   *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := NewUnregisteredMetrics()

	prometheus.MustRegister(
		m.DatasetFetches,
		m.DatasetFetchDuration,
		m.Observations,
		m.ChartReady,
		m.CellsRendered,
		m.CellsSkipped,
		m.Renders,
		m.RenderCache,
		m.InteractionEvents,
		m.ActiveSurfaces,
		m.EventsPublished,
	)

	return m
}

// NewMetricsForTesting creates Metrics with no registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewUnregisteredMetrics()
}

// NewUnregisteredMetrics creates Metrics that are never exported, for
// one-shot tools that reuse the service packages.
func NewUnregisteredMetrics() *Metrics {
	return &Metrics{
		DatasetFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "dataset_fetches_total",
			Help:      "Dataset fetch attempts by source and outcome.",
		}, []string{"source", "outcome"}),
		DatasetFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "heatmap",
			Name:      "dataset_fetch_duration_seconds",
			Help:      "Duration of the dataset fetch and parse.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		Observations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heatmap",
			Name:      "observations",
			Help:      "Monthly observations in the loaded dataset.",
		}),
		ChartReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heatmap",
			Name:      "chart_ready",
			Help:      "1 once the chart has been built, 0 before.",
		}),
		CellsRendered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heatmap",
			Name:      "cells_rendered",
			Help:      "Cells in the built grid.",
		}),
		CellsSkipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heatmap",
			Name:      "cells_skipped",
			Help:      "Observations that fell outside the year or month bands.",
		}),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "renders_total",
			Help:      "Chart responses served by format.",
		}, []string{"format"}),
		RenderCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "render_cache_total",
			Help:      "Render cache lookups by result.",
		}, []string{"result"}),
		InteractionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "interaction_events_total",
			Help:      "Interaction events handled by kind.",
		}, []string{"kind"}),
		ActiveSurfaces: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heatmap",
			Name:      "active_surfaces",
			Help:      "Connected interactive surfaces.",
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "events_published_total",
			Help:      "Interaction events written to Kafka by outcome.",
		}, []string{"outcome"}),
	}
}
