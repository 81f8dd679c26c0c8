package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSVG(t *testing.T) {
	c := buildChart(t, twoRecordDataset())

	var buf bytes.Buffer
	require.NoError(t, c.WriteSVG(&buf, 0))
	out := buf.String()

	for _, id := range []string{`id="chart"`, `id="title"`, `id="description"`, `id="x-axis"`, `id="y-axis"`, `id="legend"`} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, `width="1200" height="600" viewBox="0 0 1200 600"`)
	assert.Contains(t, out, `>Monthly Global Land-Surface Temperature</text>`)
	assert.Contains(t, out, `>2000 - 2000 (Base Temperature: 8°C)</text>`)

	assert.Equal(t, 2, strings.Count(out, `class="cell"`))
	assert.Contains(t, out, `data-year="2000" data-month="0" data-temp="7.5" x="80" y="80"`)
	assert.Contains(t, out, `data-year="2000" data-month="1" data-temp="8.3"`)
	assert.Contains(t, out, `fill="#313695"/>`)

	assert.Equal(t, 11, strings.Count(out, `class="legend-cell"`))
	assert.Contains(t, out, `data-color="#a50026"`)
	assert.Contains(t, out, `>January</text>`)
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
}

func TestWriteSVG_WidthOnlyChangesWidth(t *testing.T) {
	c := buildChart(t, syntheticDataset(1990, 2000))

	var full, narrow bytes.Buffer
	require.NoError(t, c.WriteSVG(&full, 0))
	require.NoError(t, c.WriteSVG(&narrow, 600))

	fullLines := strings.Split(full.String(), "\n")
	narrowLines := strings.Split(narrow.String(), "\n")
	require.Len(t, narrowLines, len(fullLines))

	assert.Contains(t, narrowLines[0], `width="600"`)
	assert.Contains(t, narrowLines[0], `viewBox="0 0 1200 600"`)
	assert.Equal(t, fullLines[1:], narrowLines[1:])
}

func TestWritePage(t *testing.T) {
	c := buildChart(t, twoRecordDataset())

	var buf bytes.Buffer
	require.NoError(t, c.WritePage(&buf, "/ws"))
	out := buf.String()

	assert.Contains(t, out, "<title>Monthly Global Land-Surface Temperature</title>")
	assert.Contains(t, out, `<div id="container" data-socket="/ws">`)
	assert.Contains(t, out, `<svg xmlns="http://www.w3.org/2000/svg" id="chart"`)
	assert.Contains(t, out, `<div id="tooltip" style="opacity:0"></div>`)

	// The server clamps against the viewport, so the script reports client
	// coordinates and the tooltip is positioned against the viewport too.
	assert.Contains(t, out, "#tooltip{position:fixed;")
	assert.Contains(t, out, "x: e.clientX, y: e.clientY")
	assert.NotContains(t, out, "pageX")
	assert.Contains(t, out, "tw: measured ? tip.offsetWidth : 0", "an empty tooltip reports no size")
	assert.Contains(t, out, "tip.style.color = m.textColor")
}

func TestWritePage_Static(t *testing.T) {
	c := buildChart(t, twoRecordDataset())

	var buf bytes.Buffer
	require.NoError(t, c.WritePage(&buf, ""))
	out := buf.String()

	assert.Contains(t, out, `<div id="container">`)
	assert.Contains(t, out, `id="chart"`)
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "WebSocket")
	assert.NotContains(t, out, "data-socket")
}

func TestPalette(t *testing.T) {
	p := DefaultPalette()
	require.Len(t, p, 11)
	hexes := p.Hex()
	assert.Equal(t, "#313695", hexes[0])
	assert.Equal(t, "#a50026", hexes[10])
	assert.Equal(t, "#ffffbf", p.Middle().Hex())

	_, err := ParsePalette([]string{"#000000", "teal"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "palette colour 1")
}

func TestTextColor(t *testing.T) {
	assert.Equal(t, "#ffffff", TextColor("#313695"))
	assert.Equal(t, "#ffffff", TextColor("#a50026"))
	assert.Equal(t, "#000000", TextColor("#ffffbf"))
	assert.Equal(t, "#000000", TextColor("not a colour"))
}
