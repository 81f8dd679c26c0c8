package domain

import "time"

// Observation is one monthly record after normalization.
type Observation struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"` // 0-based, 0 = January
	Variance    float64 `json:"variance"`
	Temperature float64 `json:"temperature"` // BaseTemperature + Variance
}

// Dataset is the loaded series plus the base temperature it is relative to.
type Dataset struct {
	BaseTemperature float64       `json:"baseTemperature"`
	Observations    []Observation `json:"observations"`
	LoadedAt        time.Time     `json:"loadedAt"`
}

// Len returns the number of observations.
func (d Dataset) Len() int { return len(d.Observations) }

// TemperatureRange returns the minimum and maximum absolute temperature over
// all observations. It returns zeros for an empty dataset.
func (d Dataset) TemperatureRange() (float64, float64) {
	if len(d.Observations) == 0 {
		return 0, 0
	}
	lo := d.Observations[0].Temperature
	hi := lo
	for _, o := range d.Observations[1:] {
		if o.Temperature < lo {
			lo = o.Temperature
		}
		if o.Temperature > hi {
			hi = o.Temperature
		}
	}
	return lo, hi
}

// Years returns the distinct years present, in first-seen order.
func (d Dataset) Years() []int {
	seen := make(map[int]struct{}, len(d.Observations)/12+1)
	years := make([]int, 0, len(d.Observations)/12+1)
	for _, o := range d.Observations {
		if _, ok := seen[o.Year]; ok {
			continue
		}
		seen[o.Year] = struct{}{}
		years = append(years, o.Year)
	}
	return years
}

// YearSpan returns the year of the first and last observation in dataset
// order, which is how the chart description labels the series.
func (d Dataset) YearSpan() (int, int) {
	if len(d.Observations) == 0 {
		return 0, 0
	}
	return d.Observations[0].Year, d.Observations[len(d.Observations)-1].Year
}

// Duplicates counts observations whose (year, month) pair already appeared
// earlier in the series.
func (d Dataset) Duplicates() int {
	type key struct{ year, month int }
	seen := make(map[key]struct{}, len(d.Observations))
	n := 0
	for _, o := range d.Observations {
		k := key{o.Year, o.Month}
		if _, ok := seen[k]; ok {
			n++
			continue
		}
		seen[k] = struct{}{}
	}
	return n
}
