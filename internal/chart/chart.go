// Package chart turns a loaded temperature dataset into a positioned,
// coloured heat map and serializes it as SVG or as an HTML page.
package chart

import (
	"fmt"
	"strconv"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// Title is the heading drawn above the grid.
const Title = "Monthly Global Land-Surface Temperature"

// Chart is the fully laid out heat map. It is immutable once built and safe
// to share between goroutines.
type Chart struct {
	Layout      Layout
	Title       string
	Description string

	BaseTemperature float64
	LoadedAt        time.Time

	Scales Scales
	Grid   Grid
	Legend Legend
	XAxis  Axis
	YAxis  Axis
}

// Build derives the scales for ds and lays out every visual element.
func Build(ds domain.Dataset, layout Layout, palette Palette) (*Chart, error) {
	s, err := BuildScales(ds, layout, palette)
	if err != nil {
		return nil, err
	}

	return &Chart{
		Layout:          layout,
		Title:           Title,
		Description:     Describe(ds),
		BaseTemperature: ds.BaseTemperature,
		LoadedAt:        ds.LoadedAt,
		Scales:          s,
		Grid:            BuildGrid(ds, s),
		Legend:          BuildLegend(s, layout),
		XAxis:           BuildXAxis(s, layout),
		YAxis:           BuildYAxis(s, layout),
	}, nil
}

// Describe summarizes the year span and base temperature, e.g.
// "1753 - 2015 (Base Temperature: 8.66°C)".
func Describe(ds domain.Dataset) string {
	first, last := ds.YearSpan()
	return fmt.Sprintf("%d - %d (Base Temperature: %s°C)", first, last, formatNumber(ds.BaseTemperature))
}

// formatNumber renders f with the fewest digits that round-trip.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
