package chart

import (
	"strconv"
	"time"
)

// Axis is a tick line along one edge of the grid.
type Axis struct {
	ID         string
	TranslateX float64
	TranslateY float64
	From, To   float64 // extent of the domain line
	Ticks      []Tick
}

// BuildXAxis labels every year divisible by layout.XTickEvery, centred in its band.
func BuildXAxis(s Scales, layout Layout) Axis {
	half := s.X.Bandwidth() / 2
	var ticks []Tick
	for _, year := range s.X.Domain() {
		if layout.XTickEvery > 0 && year%layout.XTickEvery != 0 {
			continue
		}
		x, _ := s.X.Position(year)
		ticks = append(ticks, Tick{
			Value:    float64(year),
			Position: x + half,
			Label:    strconv.Itoa(year),
		})
	}
	r0, r1 := s.X.Range()
	return Axis{
		ID:         "x-axis",
		TranslateY: layout.GridBottom(),
		From:       r0,
		To:         r1,
		Ticks:      ticks,
	}
}

// BuildYAxis labels every month band with the full month name.
func BuildYAxis(s Scales, layout Layout) Axis {
	half := s.Y.Bandwidth() / 2
	ticks := make([]Tick, 0, s.Y.Len())
	for _, m := range s.Y.Domain() {
		y, _ := s.Y.Position(m)
		ticks = append(ticks, Tick{
			Value:    float64(m),
			Position: y + half,
			Label:    MonthName(m),
		})
	}
	r0, r1 := s.Y.Range()
	return Axis{
		ID:         "y-axis",
		TranslateX: layout.GridLeft(),
		From:       r0,
		To:         r1,
		Ticks:      ticks,
	}
}

// MonthName returns the English name of a 0-based month index.
func MonthName(month int) string {
	if month < 0 || month > 11 {
		return "Month " + strconv.Itoa(month+1)
	}
	return time.Month(month + 1).String()
}
