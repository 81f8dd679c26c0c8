package chart

import "github.com/couchcryptid/temperature-heatmap/internal/domain"

// Cell is one rectangle of the heat map.
type Cell struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Temperature float64 `json:"temperature"`
	Variance    float64 `json:"variance"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   string  `json:"fill"`
	Bucket int     `json:"bucket"`
}

type cellKey struct{ year, month int }

// Grid is the ordered set of cells. Draw order equals dataset order, so for a
// duplicated (year, month) the later cell is on top.
type Grid struct {
	Cells   []Cell
	Skipped int // observations that fell outside the band domains

	index map[cellKey]int
}

// BuildGrid positions and colours one cell per observation.
func BuildGrid(ds domain.Dataset, s Scales) Grid {
	g := Grid{
		Cells: make([]Cell, 0, ds.Len()),
		index: make(map[cellKey]int, ds.Len()),
	}
	for _, o := range ds.Observations {
		x, okX := s.X.Position(o.Year)
		y, okY := s.Y.Position(o.Month)
		if !okX || !okY {
			g.Skipped++
			continue
		}
		bucket := s.Color.Index(o.Temperature)
		g.index[cellKey{o.Year, o.Month}] = len(g.Cells)
		g.Cells = append(g.Cells, Cell{
			Year:        o.Year,
			Month:       o.Month,
			Temperature: o.Temperature,
			Variance:    o.Variance,
			X:           x,
			Y:           y,
			Width:       s.X.Bandwidth(),
			Height:      s.Y.Bandwidth(),
			Fill:        s.Color.Output(o.Temperature),
			Bucket:      bucket,
		})
	}
	return g
}

// Lookup returns the top-most cell drawn for (year, month).
func (g Grid) Lookup(year, month int) (Cell, bool) {
	i, ok := g.index[cellKey{year, month}]
	if !ok {
		return Cell{}, false
	}
	return g.Cells[i], true
}
