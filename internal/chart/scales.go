package chart

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/scale"
)

var months = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

// Scales holds every mapping derived from the dataset. It is built once after
// load and never mutated.
type Scales struct {
	X      scale.Band      // year -> horizontal band
	Y      scale.Band      // month -> vertical band
	Color  scale.Threshold // temperature -> bucket colour
	Legend scale.Linear    // temperature -> legend offset

	MinTemp float64
	MaxTemp float64

	// Degenerate is set when every observation has the same temperature and
	// the colour scale collapsed to a single bucket.
	Degenerate bool
}

// BuildScales derives the band, threshold and legend scales for ds.
func BuildScales(ds domain.Dataset, layout Layout, palette Palette) (Scales, error) {
	if ds.Len() == 0 {
		return Scales{}, errors.New("build scales: empty dataset")
	}
	if len(palette) != layout.Buckets {
		return Scales{}, fmt.Errorf("build scales: palette has %d colours, layout wants %d", len(palette), layout.Buckets)
	}

	minTemp, maxTemp := ds.TemperatureRange()

	colors := palette.Hex()
	cuts := scale.EqualWidthBoundaries(minTemp, maxTemp, layout.Buckets)
	degenerate := cuts == nil
	if degenerate {
		colors = []string{palette.Middle().Hex()}
	}
	color, err := scale.NewThreshold(cuts, colors)
	if err != nil {
		return Scales{}, fmt.Errorf("build scales: %w", err)
	}

	return Scales{
		X:          scale.NewBand(ds.Years(), layout.GridLeft(), layout.GridRight()),
		Y:          scale.NewBand(months, layout.GridTop(), layout.GridBottom()),
		Color:      color,
		Legend:     scale.NewLinear(minTemp, maxTemp, 0, layout.LegendWidth),
		MinTemp:    minTemp,
		MaxTemp:    maxTemp,
		Degenerate: degenerate,
	}, nil
}

// BucketEdges returns min, every interior boundary, then max: bucket i spans
// [edges[i], edges[i+1]).
func (s Scales) BucketEdges() []float64 {
	b := s.Color.Boundaries()
	edges := make([]float64, 0, len(b)+2)
	edges = append(edges, s.MinTemp)
	edges = append(edges, b...)
	return append(edges, s.MaxTemp)
}
