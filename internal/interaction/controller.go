package interaction

import (
	"fmt"

	"github.com/couchcryptid/temperature-heatmap/internal/chart"
)

// State is the tooltip state of a controller.
type State int

const (
	Hidden State = iota
	Shown
)

func (s State) String() string {
	if s == Shown {
		return "shown"
	}
	return "hidden"
}

// EventKind names an interaction handled by a controller.
type EventKind string

const (
	EventPointerEnter EventKind = "pointerenter"
	EventPointerLeave EventKind = "pointerleave"
	EventResize       EventKind = "resize"
)

// Event describes one handled interaction. Year, Month and Temperature are
// set for pointer-enter, Width for resize.
type Event struct {
	Kind        EventKind `json:"kind"`
	Year        int       `json:"year,omitempty"`
	Month       int       `json:"month"`
	Temperature float64   `json:"temperature"`
	Width       float64   `json:"width,omitempty"`
}

// Observer is notified after the controller has applied an event.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

// Option configures a Controller.
type Option func(*Controller)

// WithObserver registers an observer. Observers run synchronously in the
// caller's goroutine, in registration order.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observers = append(c.observers, o) }
}

// Controller wires hover and resize handling to one surface. Events are
// applied synchronously, each one superseding the state left by the previous
// one. A Controller is not safe for concurrent use; drive it from the
// goroutine that owns the surface.
type Controller struct {
	surface   Surface
	layout    chart.TooltipLayout
	width     float64
	state     State
	current   Tooltip
	observers []Observer
}

// NewController attaches handlers to s. The surface starts at the layout
// width with the tooltip hidden.
func NewController(s Surface, layout chart.Layout, opts ...Option) *Controller {
	c := &Controller{
		surface: s,
		layout:  layout.Tooltip,
		width:   layout.Width,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current tooltip state.
func (c *Controller) State() State { return c.state }

// Tooltip returns the tooltip currently shown. ok is false while hidden.
func (c *Controller) Tooltip() (Tooltip, bool) {
	return c.current, c.state == Shown
}

// Width returns the drawing surface width last applied.
func (c *Controller) Width() float64 { return c.width }

// PointerEnter shows the tooltip for cell next to the pointer at p.
func (c *Controller) PointerEnter(cell chart.Cell, p Point) {
	size := c.surface.TooltipSize()
	if size.Width <= 0 || size.Height <= 0 {
		size = Size{Width: c.layout.Width, Height: c.layout.Height}
	}
	pos := Place(p, size, c.surface.Bounds(), c.layout)

	tt := Tooltip{
		Year:      cell.Year,
		Month:     cell.Month,
		Lines:     TooltipLines(cell),
		Left:      pos.X,
		Top:       pos.Y,
		Color:     cell.Fill,
		TextColor: chart.TextColor(cell.Fill),
	}
	c.current = tt
	c.state = Shown
	c.surface.ShowTooltip(tt)
	c.notify(Event{Kind: EventPointerEnter, Year: cell.Year, Month: cell.Month, Temperature: cell.Temperature})
}

// PointerLeave hides the tooltip.
func (c *Controller) PointerLeave() {
	c.current = Tooltip{}
	c.state = Hidden
	c.surface.HideTooltip()
	c.notify(Event{Kind: EventPointerLeave})
}

// Resize re-fits the drawing surface to a container measured at
// containerWidth. Only the surface width changes; the chart is not rebuilt.
func (c *Controller) Resize(containerWidth float64) {
	c.width = FitWidth(containerWidth, c.width)
	c.surface.SetWidth(c.width)
	c.notify(Event{Kind: EventResize, Width: c.width})
}

func (c *Controller) notify(e Event) {
	for _, o := range c.observers {
		o.Observe(e)
	}
}

// TooltipLines formats the tooltip text for cell, e.g.
// "2000 - January", "Temperature: 7.50°C", "Variance: -0.50°C".
func TooltipLines(cell chart.Cell) []string {
	return []string{
		fmt.Sprintf("%d - %s", cell.Year, chart.MonthName(cell.Month)),
		fmt.Sprintf("Temperature: %.2f°C", cell.Temperature),
		fmt.Sprintf("Variance: %.2f°C", cell.Variance),
	}
}
