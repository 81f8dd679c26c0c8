package chart

// Padding is the margin between the drawing surface edge and the grid.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// TooltipLayout holds the fixed pixel constants of the hover tooltip.
type TooltipLayout struct {
	OffsetX    float64 // horizontal distance from the pointer
	OffsetY    float64 // vertical distance from the pointer, negative is above
	FlipOffset float64 // distance used when the tooltip is flipped below the pointer
	Inset      float64 // distance kept from an edge when flipping is not enough
	Width      float64 // estimated box size, used until a surface measures it
	Height     float64
}

// Layout is the immutable set of pixel constants the chart is drawn with.
// It is passed by value into every builder; nothing reads it from globals.
type Layout struct {
	Width, Height float64
	Padding       Padding

	Buckets      int
	LegendWidth  float64
	LegendHeight float64
	LegendTop    float64 // y of the legend group
	LegendTicks  int

	XTickEvery   int // label every n-th year
	TitleY       float64
	DescriptionY float64

	Tooltip TooltipLayout
}

// DefaultLayout returns the layout of the published chart.
func DefaultLayout() Layout {
	return Layout{
		Width:  1200,
		Height: 600,
		Padding: Padding{
			Top:    80,
			Right:  40,
			Bottom: 80,
			Left:   80,
		},
		Buckets:      11,
		LegendWidth:  400,
		LegendHeight: 30,
		LegendTop:    550,
		LegendTicks:  10,
		XTickEvery:   10,
		TitleY:       40,
		DescriptionY: 70,
		Tooltip: TooltipLayout{
			OffsetX:    10,
			OffsetY:    -40,
			FlipOffset: 10,
			Inset:      10,
			Width:      180,
			Height:     64,
		},
	}
}

// GridLeft returns the x where the first year band starts.
func (l Layout) GridLeft() float64 { return l.Padding.Left }

// GridRight returns the x where the last year band ends.
func (l Layout) GridRight() float64 { return l.Width - l.Padding.Right }

// GridTop returns the y where the January band starts.
func (l Layout) GridTop() float64 { return l.Padding.Top }

// GridBottom returns the y where the December band ends.
func (l Layout) GridBottom() float64 { return l.Height - l.Padding.Bottom }
