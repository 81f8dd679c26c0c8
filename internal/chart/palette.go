package chart

import (
	"fmt"
	"slices"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// rdYlBu11 is the ColorBrewer RdYlBu diverging scheme in its published
// warm-to-cold order.
var rdYlBu11 = []string{
	"#a50026",
	"#d73027",
	"#f46d43",
	"#fdae61",
	"#fee090",
	"#ffffbf",
	"#e0f3f8",
	"#abd9e9",
	"#74add1",
	"#4575b4",
	"#313695",
}

// Palette is an ordered list of bucket colours, coldest first.
type Palette []colorful.Color

// ParsePalette parses hex colours in order.
func ParsePalette(hexes []string) (Palette, error) {
	p := make(Palette, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette colour %d: %w", i, err)
		}
		p[i] = c
	}
	return p, nil
}

// DefaultPalette returns RdYlBu-11 reversed so index 0 is the coldest bucket.
func DefaultPalette() Palette {
	hexes := slices.Clone(rdYlBu11)
	slices.Reverse(hexes)
	p, err := ParsePalette(hexes)
	if err != nil {
		panic("default palette: " + err.Error())
	}
	return p
}

// Hex returns the colours as lower-case #rrggbb strings.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}

// Middle returns the neutral colour in the centre of the palette.
func (p Palette) Middle() colorful.Color {
	return p[len(p)/2]
}

// TextColor picks black or white text for legibility on top of the hex
// background. Unparseable input falls back to black.
func TextColor(background string) string {
	c, err := colorful.Hex(background)
	if err != nil {
		return "#000000"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}
