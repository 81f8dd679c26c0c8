package interaction

import "github.com/couchcryptid/temperature-heatmap/internal/chart"

// Place positions a tooltip of the given size near p so that it stays inside
// bounds. The box starts at the pointer plus the layout offset. On each edge
// it overflows it is first flipped to the other side of the pointer and, if
// that still overflows, pinned at the layout inset from the edge. A box larger
// than bounds is pinned to the top-left corner.
func Place(p Point, size Size, bounds Rect, tl chart.TooltipLayout) Point {
	x := p.X + tl.OffsetX
	y := p.Y + tl.OffsetY

	if x+size.Width > bounds.MaxX {
		x = p.X - size.Width - tl.OffsetX
		if x < bounds.MinX {
			x = bounds.MaxX - size.Width - tl.Inset
		}
	}
	if x < bounds.MinX {
		x = p.X + tl.OffsetX
		if x+size.Width > bounds.MaxX {
			x = bounds.MinX + tl.Inset
		}
	}

	if y < bounds.MinY {
		y = p.Y + tl.FlipOffset
		if y+size.Height > bounds.MaxY {
			y = bounds.MinY + tl.Inset
		}
	}
	if y+size.Height > bounds.MaxY {
		y = p.Y - size.Height - tl.FlipOffset
		if y < bounds.MinY {
			y = bounds.MaxY - size.Height - tl.Inset
		}
	}

	return Point{
		X: clamp(x, bounds.MinX, bounds.MaxX-size.Width),
		Y: clamp(y, bounds.MinY, bounds.MaxY-size.Height),
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
