package chart

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

func obs(year, month int, base, variance float64) domain.Observation {
	return domain.Observation{Year: year, Month: month, Variance: variance, Temperature: base + variance}
}

func twoRecordDataset() domain.Dataset {
	return domain.Dataset{
		BaseTemperature: 8.0,
		Observations: []domain.Observation{
			obs(2000, 0, 8.0, -0.5),
			obs(2000, 1, 8.0, 0.3),
		},
		LoadedAt: time.Date(2024, time.April, 27, 6, 0, 0, 0, time.UTC),
	}
}

// syntheticDataset covers years [from, to] with a deterministic pseudo-random
// variance per month.
func syntheticDataset(from, to int) domain.Dataset {
	r := rand.New(rand.NewPCG(1, 2))
	ds := domain.Dataset{BaseTemperature: 8.66}
	for y := from; y <= to; y++ {
		for m := range 12 {
			ds.Observations = append(ds.Observations, obs(y, m, ds.BaseTemperature, r.Float64()*10-5))
		}
	}
	return ds
}

func buildChart(t *testing.T, ds domain.Dataset) *Chart {
	t.Helper()
	c, err := Build(ds, DefaultLayout(), DefaultPalette())
	require.NoError(t, err)
	return c
}

func TestBuild_TwoRecordScenario(t *testing.T) {
	ds := twoRecordDataset()
	c := buildChart(t, ds)
	l := DefaultLayout()

	monthHeight := (l.GridBottom() - l.GridTop()) / 12
	want := []Cell{
		{
			Year: 2000, Month: 0, Temperature: 7.5, Variance: -0.5,
			X: l.GridLeft(), Y: l.GridTop(),
			Width: l.GridRight() - l.GridLeft(), Height: monthHeight,
			Fill: "#313695", Bucket: 0,
		},
		{
			Year: 2000, Month: 1, Temperature: ds.Observations[1].Temperature, Variance: 0.3,
			X: l.GridLeft(), Y: l.GridTop() + monthHeight,
			Width: l.GridRight() - l.GridLeft(), Height: monthHeight,
			Fill: "#a50026", Bucket: 10,
		},
	}
	if diff := cmp.Diff(want, c.Grid.Cells, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
	assert.Zero(t, c.Grid.Skipped)
	assert.Equal(t, "2000 - 2000 (Base Temperature: 8°C)", c.Description)
	assert.Equal(t, Title, c.Title)
	assert.Equal(t, ds.LoadedAt, c.LoadedAt)
	assert.False(t, c.Scales.Degenerate)
	assert.Equal(t, 7.5, c.Scales.MinTemp)
}

func TestBuildScales_Bands(t *testing.T) {
	ds := syntheticDataset(1753, 2015)
	l := DefaultLayout()
	s, err := BuildScales(ds, l, DefaultPalette())
	require.NoError(t, err)

	t.Run("years are contiguous equal-width bands", func(t *testing.T) {
		years := s.X.Domain()
		require.Len(t, years, 2015-1753+1)
		bw := s.X.Bandwidth()
		prevEnd := l.GridLeft()
		for _, y := range years {
			x, ok := s.X.Position(y)
			require.True(t, ok)
			assert.InDelta(t, prevEnd, x, 1e-9, "year %d", y)
			prevEnd = x + bw
		}
		assert.InDelta(t, l.GridRight(), prevEnd, 1e-9)
	})

	t.Run("months ascend from the top", func(t *testing.T) {
		require.Equal(t, months, s.Y.Domain())
		prev := -1.0
		for m := range 12 {
			y, ok := s.Y.Position(m)
			require.True(t, ok)
			assert.Greater(t, y, prev)
			prev = y
		}
		first, _ := s.Y.Position(0)
		last, _ := s.Y.Position(11)
		assert.Equal(t, l.GridTop(), first)
		assert.InDelta(t, l.GridBottom(), last+s.Y.Bandwidth(), 1e-9)
	})

	t.Run("eleven buckets", func(t *testing.T) {
		assert.Equal(t, 11, s.Color.Buckets())
		assert.Len(t, s.BucketEdges(), 12)
		assert.Equal(t, DefaultPalette().Hex(), s.Color.Outputs())
	})
}

func TestBuildScales_Errors(t *testing.T) {
	_, err := BuildScales(domain.Dataset{}, DefaultLayout(), DefaultPalette())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty dataset")

	_, err = BuildScales(twoRecordDataset(), DefaultLayout(), DefaultPalette()[:5])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "palette has 5 colours")
}

func TestBuildGrid_FillMatchesColorScale(t *testing.T) {
	ds := syntheticDataset(1900, 1950)
	c := buildChart(t, ds)

	require.Len(t, c.Grid.Cells, ds.Len())
	for i, cell := range c.Grid.Cells {
		o := ds.Observations[i]
		assert.Equal(t, o.Temperature, cell.Temperature)
		assert.Equal(t, c.Scales.Color.Output(o.Temperature), cell.Fill)
	}
}

func TestColorScale_Monotonic(t *testing.T) {
	ds := syntheticDataset(1900, 1920)
	c := buildChart(t, ds)

	lo, hi := c.Scales.MinTemp, c.Scales.MaxTemp
	prev := -1
	for i := 0; i <= 1000; i++ {
		v := lo + (hi-lo)*float64(i)/1000
		idx := c.Scales.Color.Index(v)
		assert.GreaterOrEqual(t, idx, prev, "value %v", v)
		prev = idx
	}
	assert.Equal(t, 0, c.Scales.Color.Index(lo))
	assert.Equal(t, 10, c.Scales.Color.Index(hi))
}

func TestBuildGrid_MalformedAndDuplicate(t *testing.T) {
	ds := twoRecordDataset()
	ds.Observations = append(ds.Observations,
		obs(2000, -1, 8.0, 0), // missing month
		obs(2000, 0, 8.0, 0.1),
	)
	c := buildChart(t, ds)

	assert.Equal(t, 1, c.Grid.Skipped)
	assert.Len(t, c.Grid.Cells, 3)

	cell, ok := c.Grid.Lookup(2000, 0)
	require.True(t, ok)
	assert.Equal(t, 0.1, cell.Variance, "later duplicate is drawn on top")

	_, ok = c.Grid.Lookup(1999, 0)
	assert.False(t, ok)
}

func TestBuild_Degenerate(t *testing.T) {
	ds := domain.Dataset{
		BaseTemperature: 8.66,
		Observations:    []domain.Observation{obs(1900, 5, 8.66, 0.25)},
	}
	c := buildChart(t, ds)

	assert.True(t, c.Scales.Degenerate)
	assert.Equal(t, 1, c.Scales.Color.Buckets())
	require.Len(t, c.Grid.Cells, 1)
	assert.Equal(t, "#ffffbf", c.Grid.Cells[0].Fill)

	require.Len(t, c.Legend.Segments, 1)
	assert.Equal(t, 0.0, c.Legend.Segments[0].X)
	assert.Equal(t, DefaultLayout().LegendWidth, c.Legend.Segments[0].Width)
}

func TestBuildLegend(t *testing.T) {
	c := buildChart(t, twoRecordDataset())
	lg := c.Legend
	l := DefaultLayout()

	require.Len(t, lg.Segments, 11)
	assert.Equal(t, DefaultPalette().Hex(), lg.Colors())
	assert.Equal(t, 0.0, lg.Segments[0].X)
	for i := 1; i < len(lg.Segments); i++ {
		prev := lg.Segments[i-1]
		assert.InDelta(t, prev.X+prev.Width, lg.Segments[i].X, 1e-9, "segment %d", i)
	}
	last := lg.Segments[len(lg.Segments)-1]
	assert.Equal(t, l.LegendWidth, last.X+last.Width)

	require.Len(t, lg.Ticks, 9)
	assert.Equal(t, "7.5", lg.Ticks[0].Label)
	assert.Equal(t, "8.3", lg.Ticks[len(lg.Ticks)-1].Label)
	assert.Equal(t, l.Padding.Left, lg.X)
	assert.Equal(t, l.LegendTop, lg.Y)
}

func TestAxes(t *testing.T) {
	c := buildChart(t, syntheticDataset(1753, 2015))

	var labels []string
	for _, tick := range c.XAxis.Ticks {
		labels = append(labels, tick.Label)
	}
	assert.Equal(t, "1760", labels[0])
	assert.Equal(t, "2010", labels[len(labels)-1])
	assert.Len(t, labels, 26)
	assert.Equal(t, DefaultLayout().GridBottom(), c.XAxis.TranslateY)

	require.Len(t, c.YAxis.Ticks, 12)
	assert.Equal(t, "January", c.YAxis.Ticks[0].Label)
	assert.Equal(t, "December", c.YAxis.Ticks[11].Label)
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "January", MonthName(0))
	assert.Equal(t, "December", MonthName(11))
	assert.Equal(t, "Month 13", MonthName(12))
}

func TestDescribe(t *testing.T) {
	ds := domain.Dataset{
		BaseTemperature: 8.66,
		Observations: []domain.Observation{
			obs(1753, 0, 8.66, -1.366),
			obs(2015, 8, 8.66, 1.163),
		},
	}
	assert.Equal(t, "1753 - 2015 (Base Temperature: 8.66°C)", Describe(ds))
}
