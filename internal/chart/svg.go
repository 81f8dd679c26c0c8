package chart

import (
	"bufio"
	"fmt"
	"html"
	"io"
)

// WriteSVG writes the chart as a standalone SVG document. width sets the
// element's width attribute; zero or less keeps the layout width. The viewBox
// always spans the layout, so a narrower width scales the drawing instead of
// re-laying it out.
func (c *Chart) WriteSVG(w io.Writer, width float64) error {
	if width <= 0 {
		width = c.Layout.Width
	}
	bw := bufio.NewWriter(w)
	l := c.Layout

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" id="chart" width="%s" height="%s" viewBox="0 0 %s %s" preserveAspectRatio="xMinYMin meet">`+"\n",
		formatNumber(width), formatNumber(l.Height), formatNumber(l.Width), formatNumber(l.Height))
	fmt.Fprintf(bw, `  <style>.cell:hover{stroke:#000;stroke-width:1}.tick text{font-family:sans-serif;font-size:10px}.domain,.tick line{stroke:#000}</style>`+"\n")

	fmt.Fprintf(bw, `  <text id="title" x="%s" y="%s" text-anchor="middle" style="font-size:20px">%s</text>`+"\n",
		formatNumber(l.Width/2), formatNumber(l.TitleY), html.EscapeString(c.Title))
	fmt.Fprintf(bw, `  <text id="description" x="%s" y="%s" text-anchor="middle" style="font-size:16px">%s</text>`+"\n",
		formatNumber(l.Width/2), formatNumber(l.DescriptionY), html.EscapeString(c.Description))

	writeXAxis(bw, c.XAxis)
	writeYAxis(bw, c.YAxis)

	bw.WriteString(`  <g id="cells">` + "\n")
	for _, cell := range c.Grid.Cells {
		fmt.Fprintf(bw, `    <rect class="cell" data-year="%d" data-month="%d" data-temp="%s" x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			cell.Year, cell.Month, formatNumber(cell.Temperature),
			formatNumber(cell.X), formatNumber(cell.Y),
			formatNumber(cell.Width), formatNumber(cell.Height), cell.Fill)
	}
	bw.WriteString("  </g>\n")

	writeLegend(bw, c.Legend)

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

func writeXAxis(bw *bufio.Writer, a Axis) {
	fmt.Fprintf(bw, `  <g id="%s" transform="translate(0,%s)">`+"\n", a.ID, formatNumber(a.TranslateY))
	fmt.Fprintf(bw, `    <path class="domain" fill="none" d="M%s,6V0H%sV6"/>`+"\n", formatNumber(a.From), formatNumber(a.To))
	for _, t := range a.Ticks {
		fmt.Fprintf(bw, `    <g class="tick" transform="translate(%s,0)"><line y2="6"/><text y="9" dy="0.71em" text-anchor="middle">%s</text></g>`+"\n",
			formatNumber(t.Position), html.EscapeString(t.Label))
	}
	bw.WriteString("  </g>\n")
}

func writeYAxis(bw *bufio.Writer, a Axis) {
	fmt.Fprintf(bw, `  <g id="%s" transform="translate(%s,0)">`+"\n", a.ID, formatNumber(a.TranslateX))
	fmt.Fprintf(bw, `    <path class="domain" fill="none" d="M-6,%sH0V%sH-6"/>`+"\n", formatNumber(a.From), formatNumber(a.To))
	for _, t := range a.Ticks {
		fmt.Fprintf(bw, `    <g class="tick" transform="translate(0,%s)"><line x2="-6"/><text x="-9" dy="0.32em" text-anchor="end">%s</text></g>`+"\n",
			formatNumber(t.Position), html.EscapeString(t.Label))
	}
	bw.WriteString("  </g>\n")
}

func writeLegend(bw *bufio.Writer, lg Legend) {
	fmt.Fprintf(bw, `  <g id="legend" transform="translate(%s,%s)">`+"\n", formatNumber(lg.X), formatNumber(lg.Y))
	bw.WriteString(`    <g class="legend-cells">` + "\n")
	for _, s := range lg.Segments {
		fmt.Fprintf(bw, `      <rect class="legend-cell" data-color="%s" x="%s" y="0" width="%s" height="%s" fill="%s"/>`+"\n",
			s.Fill, formatNumber(s.X), formatNumber(s.Width), formatNumber(lg.Height), s.Fill)
	}
	bw.WriteString("    </g>\n")
	fmt.Fprintf(bw, `    <g class="legend-axis" transform="translate(0,%s)">`+"\n", formatNumber(lg.Height))
	fmt.Fprintf(bw, `      <path class="domain" fill="none" d="M0,6V0H%sV6"/>`+"\n", formatNumber(lg.Width))
	for _, t := range lg.Ticks {
		fmt.Fprintf(bw, `      <g class="tick" transform="translate(%s,0)"><line y2="6"/><text y="9" dy="0.71em" text-anchor="middle">%s</text></g>`+"\n",
			formatNumber(t.Position), html.EscapeString(t.Label))
	}
	bw.WriteString("    </g>\n")
	bw.WriteString("  </g>\n")
}
