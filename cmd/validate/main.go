// Command validate checks a rendered heat map SVG against the dataset it was
// drawn from: document structure, one cell per observation with exact
// temperature attributes, fills that match the threshold scale, contiguous
// equal-width bands, and a legend in palette order.
//
// Usage:
//
//	go run ./cmd/render -file data/global-temperature.json -out chart.svg
//	go run ./cmd/validate -svg chart.svg -dataset data/global-temperature.json
package main

import (
	"encoding/xml"
	"flag"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/couchcryptid/temperature-heatmap/internal/chart"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// epsilon tolerates float formatting in pixel attributes.
const epsilon = 1e-6

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	svgPath := flag.String("svg", "", "path to the rendered SVG")
	datasetPath := flag.String("dataset", "", "path to the dataset JSON it was rendered from")
	flag.Parse()

	if *svgPath == "" || *datasetPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*svgPath, *datasetPath); code != 0 {
		os.Exit(code)
	}
}

func run(svgPath, datasetPath string) int {
	fmt.Println("=== Heat Map Validation ===")
	fmt.Println()

	payload, err := os.ReadFile(datasetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read dataset: %v\n", err)
		return 1
	}
	ds, err := domain.ParseDataset(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse dataset: %v\n", err)
		return 1
	}
	want, err := chart.Build(ds, chart.DefaultLayout(), chart.DefaultPalette())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: build chart: %v\n", err)
		return 1
	}

	doc, err := loadSVG(svgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load SVG: %v\n", err)
		return 1
	}

	cells := doc.findClass("rect", "cell")
	phases := []*phase{
		validateStructure(doc, want),
		validateCells(cells, want),
		validateBands(cells, want),
		validateColorOrder(cells, want),
		validateLegend(doc.findClass("rect", "legend-cell"), want),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d observations, %d cells rendered, %d expected\n",
		ds.Len(), len(cells), len(want.Grid.Cells))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── SVG loading ──

// node is a generic SVG element.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []node     `xml:",any"`
	Text     string     `xml:",chardata"`
}

func (n node) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (n node) float(name string) (float64, error) {
	v := n.attr(name)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", name, v, err)
	}
	return f, nil
}

func (n node) hasClass(class string) bool {
	return slices.Contains(strings.Fields(n.attr("class")), class)
}

// walk visits n and its descendants in document order.
func (n node) walk(fn func(node)) {
	fn(n)
	for _, c := range n.Children {
		c.walk(fn)
	}
}

func (n node) findID(id string) (node, bool) {
	var found node
	ok := false
	n.walk(func(c node) {
		if !ok && c.attr("id") == id {
			found, ok = c, true
		}
	})
	return found, ok
}

func (n node) findClass(tag, class string) []node {
	var out []node
	n.walk(func(c node) {
		if c.XMLName.Local == tag && c.hasClass(class) {
			out = append(out, c)
		}
	})
	return out
}

func loadSVG(path string) (node, error) {
	f, err := os.Open(path)
	if err != nil {
		return node{}, err
	}
	defer f.Close()

	var root node
	if err := xml.NewDecoder(f).Decode(&root); err != nil {
		return node{}, fmt.Errorf("decode: %w", err)
	}
	if root.XMLName.Local != "svg" {
		return node{}, fmt.Errorf("root element is <%s>, want <svg>", root.XMLName.Local)
	}
	return root, nil
}

// ── Validation phases ──

func validateStructure(doc node, want *chart.Chart) *phase {
	p := &phase{name: "Document structure"}

	if doc.attr("id") != "chart" {
		p.errorf("root svg id=%q, want \"chart\"", doc.attr("id"))
	}
	if vb := doc.attr("viewBox"); vb != fmt.Sprintf("0 0 %g %g", want.Layout.Width, want.Layout.Height) {
		p.errorf("viewBox=%q does not span the layout", vb)
	}
	for _, id := range []string{"title", "description", "x-axis", "y-axis", "legend"} {
		if _, ok := doc.findID(id); !ok {
			p.errorf("missing element id=%q", id)
		}
	}
	if n, ok := doc.findID("title"); ok && strings.TrimSpace(n.Text) != want.Title {
		p.errorf("title %q, want %q", n.Text, want.Title)
	}
	if n, ok := doc.findID("description"); ok && strings.TrimSpace(n.Text) != want.Description {
		p.errorf("description %q, want %q", n.Text, want.Description)
	}
	return p
}

func validateCells(cells []node, want *chart.Chart) *phase {
	p := &phase{name: "Cells match observations"}

	if len(cells) != len(want.Grid.Cells) {
		p.errorf("%d cells rendered, want %d", len(cells), len(want.Grid.Cells))
	}
	for i := range min(len(cells), len(want.Grid.Cells)) {
		got, exp := cells[i], want.Grid.Cells[i]
		if got.attr("data-year") != strconv.Itoa(exp.Year) || got.attr("data-month") != strconv.Itoa(exp.Month) {
			p.errorf("cell %d: year/month %s/%s, want %d/%d", i,
				got.attr("data-year"), got.attr("data-month"), exp.Year, exp.Month)
			continue
		}
		temp, err := got.float("data-temp")
		if err != nil {
			p.errorf("cell %d: %v", i, err)
			continue
		}
		if temp != exp.Temperature {
			p.errorf("cell %d (%d-%02d): data-temp %v, want %v", i, exp.Year, exp.Month+1, temp, exp.Temperature)
		}
		if fill := got.attr("fill"); fill != want.Scales.Color.Output(temp) {
			p.errorf("cell %d (%d-%02d): fill %s, want %s", i, exp.Year, exp.Month+1, fill, want.Scales.Color.Output(temp))
		}
	}
	return p
}

func validateBands(cells []node, want *chart.Chart) *phase {
	p := &phase{name: "Bands contiguous and equal width"}
	l := want.Layout

	xs := map[string]float64{}
	ys := map[string]float64{}
	var cellW, cellH float64
	for i, c := range cells {
		x, errX := c.float("x")
		y, errY := c.float("y")
		w, errW := c.float("width")
		h, errH := c.float("height")
		if err := firstErr(errX, errY, errW, errH); err != nil {
			p.errorf("cell %d: %v", i, err)
			continue
		}
		if i == 0 {
			cellW, cellH = w, h
		}
		if math.Abs(w-cellW) > epsilon || math.Abs(h-cellH) > epsilon {
			p.errorf("cell %d: size %gx%g differs from %gx%g", i, w, h, cellW, cellH)
		}
		if prev, ok := xs[c.attr("data-year")]; ok && math.Abs(prev-x) > epsilon {
			p.errorf("year %s drawn at x=%g and x=%g", c.attr("data-year"), prev, x)
		}
		if prev, ok := ys[c.attr("data-month")]; ok && math.Abs(prev-y) > epsilon {
			p.errorf("month %s drawn at y=%g and y=%g", c.attr("data-month"), prev, y)
		}
		xs[c.attr("data-year")] = x
		ys[c.attr("data-month")] = y
	}

	checkContiguous(p, "year", xs, cellW, l.GridLeft(), l.GridRight())
	if len(ys) == 12 {
		checkContiguous(p, "month", ys, cellH, l.GridTop(), l.GridBottom())
	}
	return p
}

// checkContiguous verifies that the band starts, sorted, tile [lo, hi] with
// no gaps or overlaps.
func checkContiguous(p *phase, label string, starts map[string]float64, size, lo, hi float64) {
	if len(starts) == 0 {
		return
	}
	pos := make([]float64, 0, len(starts))
	for _, v := range starts {
		pos = append(pos, v)
	}
	slices.Sort(pos)

	if math.Abs(pos[0]-lo) > epsilon {
		p.errorf("first %s band starts at %g, want %g", label, pos[0], lo)
	}
	for i := 1; i < len(pos); i++ {
		if math.Abs(pos[i]-pos[i-1]-size) > epsilon {
			p.errorf("%s bands at %g and %g are not adjacent", label, pos[i-1], pos[i])
		}
	}
	if end := pos[len(pos)-1] + size; math.Abs(end-hi) > 1e-3 {
		p.errorf("last %s band ends at %g, want %g", label, end, hi)
	}
}

func validateColorOrder(cells []node, want *chart.Chart) *phase {
	p := &phase{name: "Colour buckets monotonic"}

	bucket := map[string]int{}
	for i, c := range want.Scales.Color.Outputs() {
		bucket[c] = i
	}

	type sample struct {
		temp   float64
		bucket int
	}
	samples := make([]sample, 0, len(cells))
	for i, c := range cells {
		temp, err := c.float("data-temp")
		if err != nil {
			continue
		}
		b, ok := bucket[c.attr("fill")]
		if !ok {
			p.errorf("cell %d: fill %s is not a palette colour", i, c.attr("fill"))
			continue
		}
		samples = append(samples, sample{temp, b})
	}
	slices.SortFunc(samples, func(a, b sample) int {
		switch {
		case a.temp < b.temp:
			return -1
		case a.temp > b.temp:
			return 1
		}
		return a.bucket - b.bucket
	})
	for i := 1; i < len(samples); i++ {
		if samples[i].bucket < samples[i-1].bucket {
			p.errorf("%.3f°C is in bucket %d but colder %.3f°C is in bucket %d",
				samples[i].temp, samples[i].bucket, samples[i-1].temp, samples[i-1].bucket)
		}
	}
	return p
}

func validateLegend(segs []node, want *chart.Chart) *phase {
	p := &phase{name: "Legend matches palette"}

	colors := want.Legend.Colors()
	if len(segs) != len(colors) {
		p.errorf("%d legend cells, want %d", len(segs), len(colors))
		return p
	}
	end := 0.0
	for i, s := range segs {
		if s.attr("fill") != colors[i] || s.attr("data-color") != colors[i] {
			p.errorf("legend cell %d: fill %s data-color %s, want %s", i, s.attr("fill"), s.attr("data-color"), colors[i])
		}
		x, errX := s.float("x")
		w, errW := s.float("width")
		if err := firstErr(errX, errW); err != nil {
			p.errorf("legend cell %d: %v", i, err)
			continue
		}
		if math.Abs(x-end) > epsilon {
			p.errorf("legend cell %d starts at %g, previous ended at %g", i, x, end)
		}
		end = x + w
	}
	if math.Abs(end-want.Layout.LegendWidth) > epsilon {
		p.errorf("legend ends at %g, want %g", end, want.Layout.LegendWidth)
	}
	return p
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
