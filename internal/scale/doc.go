// Package scale maps data values onto pixel positions and discrete colours.
//
// Every scale is an immutable value: build it once from the loaded dataset and
// share it freely. Nothing here knows about SVG, HTTP or the temperature
// dataset.
package scale
