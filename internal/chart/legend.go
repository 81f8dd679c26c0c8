package chart

import "github.com/couchcryptid/temperature-heatmap/internal/scale"

// LegendSegment is one coloured bucket in the legend.
type LegendSegment struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	X     float64 `json:"x"`
	Width float64 `json:"width"`
	Fill  string  `json:"fill"`
}

// Tick is a labelled position on an axis.
type Tick struct {
	Value    float64 `json:"value"`
	Position float64 `json:"position"`
	Label    string  `json:"label"`
}

// Legend is the colour key drawn under the grid.
type Legend struct {
	X, Y          float64
	Width, Height float64
	Segments      []LegendSegment
	Ticks         []Tick
}

// BuildLegend lays out one segment per colour bucket. Segment edges go through
// the legend scale, except the last segment which always reaches the legend's
// right edge so float error in the cut points never leaves a gap.
func BuildLegend(s Scales, layout Layout) Legend {
	edges := s.BucketEdges()
	colors := s.Color.Outputs()

	segs := make([]LegendSegment, len(colors))
	for i, fill := range colors {
		x := s.Legend.Scale(edges[i])
		width := s.Legend.Scale(edges[i+1]) - x
		if i == len(colors)-1 {
			width = layout.LegendWidth - x
		}
		if s.Degenerate {
			x, width = 0, layout.LegendWidth
		}
		segs[i] = LegendSegment{
			From:  edges[i],
			To:    edges[i+1],
			X:     x,
			Width: width,
			Fill:  fill,
		}
	}

	values := s.Legend.Ticks(layout.LegendTicks)
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{
			Value:    v,
			Position: s.Legend.Scale(v),
			Label:    scale.FormatFixed(v, 1),
		}
	}

	return Legend{
		X:        layout.Padding.Left,
		Y:        layout.LegendTop,
		Width:    layout.LegendWidth,
		Height:   layout.LegendHeight,
		Segments: segs,
		Ticks:    ticks,
	}
}

// Colors returns the fill of every segment, coldest first.
func (l Legend) Colors() []string {
	out := make([]string, len(l.Segments))
	for i, s := range l.Segments {
		out[i] = s.Fill
	}
	return out
}
