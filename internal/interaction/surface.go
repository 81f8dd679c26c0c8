// Package interaction implements the hover tooltip and resize behaviour of
// the heat map against an abstract drawing surface. Nothing here depends on a
// browser: the HTTP adapter supplies a WebSocket-backed Surface and tests
// supply an in-memory one.
package interaction

// Point is a pointer position in surface coordinates.
type Point struct {
	X, Y float64
}

// Size is a measured width and height.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned box. Max is exclusive for placement purposes: a
// box of width w fits when MinX <= x and x+w <= MaxX.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns MaxY - MinY.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Tooltip is what a surface draws while a cell is hovered.
type Tooltip struct {
	Year      int      `json:"year"`
	Month     int      `json:"month"`
	Lines     []string `json:"lines"`
	Left      float64  `json:"left"`
	Top       float64  `json:"top"`
	Color     string   `json:"color"`
	TextColor string   `json:"textColor"`
}

// Surface is the capability set the controller needs from whatever displays
// the chart.
type Surface interface {
	// Bounds is the visible area tooltips must stay inside.
	Bounds() Rect
	// TooltipSize is the measured size of the tooltip box. A zero size means
	// the surface cannot measure and the layout estimate is used.
	TooltipSize() Size
	ShowTooltip(Tooltip)
	HideTooltip()
	// SetWidth sets the drawing surface's width attribute.
	SetWidth(width float64)
}
