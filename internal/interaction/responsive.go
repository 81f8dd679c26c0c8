package interaction

import "math"

// FitWidth returns the drawing surface width for a container measured at
// containerWidth. Measurements that are not positive finite numbers keep the
// current width.
func FitWidth(containerWidth, current float64) float64 {
	if math.IsNaN(containerWidth) || math.IsInf(containerWidth, 0) || containerWidth <= 0 {
		return current
	}
	return math.Floor(containerWidth)
}
