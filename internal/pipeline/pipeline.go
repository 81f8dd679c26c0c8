// Package pipeline loads the dataset once and publishes the built chart.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/chart"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
)

// Pipeline runs the load-build sequence: fetch the payload, parse it, derive
// the scales and lay out the chart. The result is published atomically and
// never replaced.
type Pipeline struct {
	source  domain.DatasetSource
	layout  chart.Layout
	palette chart.Palette
	logger  *slog.Logger
	metrics *observability.Metrics

	chart atomic.Pointer[chart.Chart]
}

// New creates a Pipeline that reads from source and builds with layout and palette.
func New(source domain.DatasetSource, layout chart.Layout, palette chart.Palette, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:  source,
		layout:  layout,
		palette: palette,
		logger:  logger,
		metrics: metrics,
	}
}

// Chart returns the built chart, or nil before Run has succeeded.
func (p *Pipeline) Chart() *chart.Chart {
	return p.chart.Load()
}

// CheckReadiness returns nil once the chart has been built, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.chart.Load() == nil {
		return errors.New("chart has not been built yet")
	}
	return nil
}

// Run fetches and builds the chart exactly once. A failed fetch or parse is
// returned as domain.ErrDataUnavailable and nothing is published; there is
// no retry.
func (p *Pipeline) Run(ctx context.Context) error {
	if p.chart.Load() != nil {
		return errors.New("pipeline already ran")
	}
	source := p.source.Name()
	p.logger.Info("loading dataset", "source", source)

	start := time.Now()
	payload, err := p.source.Fetch(ctx)
	if err == nil {
		var ds domain.Dataset
		ds, err = domain.ParseDataset(payload)
		if err == nil {
			p.metrics.DatasetFetchDuration.Observe(time.Since(start).Seconds())
			p.metrics.DatasetFetches.WithLabelValues(source, "success").Inc()
			return p.publish(ds)
		}
	}

	p.metrics.DatasetFetches.WithLabelValues(source, "error").Inc()
	p.logger.Error("dataset unavailable", "source", source, "error", err)
	return fmt.Errorf("load dataset: %w", err)
}

func (p *Pipeline) publish(ds domain.Dataset) error {
	if dups := ds.Duplicates(); dups > 0 {
		p.logger.Warn("dataset has duplicate year/month records; later records are drawn on top", "duplicates", dups)
	}

	c, err := chart.Build(ds, p.layout, p.palette)
	if err != nil {
		return fmt.Errorf("build chart: %w", err)
	}

	if c.Grid.Skipped > 0 {
		p.logger.Debug("observations outside the grid", "skipped", c.Grid.Skipped)
	}
	if c.Scales.Degenerate {
		p.logger.Warn("all observations share one temperature; using a single colour bucket",
			"temperature", c.Scales.MinTemp)
	}

	p.metrics.Observations.Set(float64(ds.Len()))
	p.metrics.CellsRendered.Set(float64(len(c.Grid.Cells)))
	p.metrics.CellsSkipped.Set(float64(c.Grid.Skipped))

	p.chart.Store(c)
	p.metrics.ChartReady.Set(1)

	first, last := ds.YearSpan()
	p.logger.Info("chart built",
		"observations", ds.Len(),
		"cells", len(c.Grid.Cells),
		"first_year", first,
		"last_year", last,
		"min_temp", c.Scales.MinTemp,
		"max_temp", c.Scales.MaxTemp,
	)
	return nil
}
