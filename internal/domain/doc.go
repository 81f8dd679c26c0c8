// Package domain models the global land-surface temperature dataset rendered
// by the heat map.
//
// # Data Source
//
// The dataset is a single JSON document published alongside the freeCodeCamp
// project reference data:
//
//	https://raw.githubusercontent.com/FreeCodeCamp/ProjectReferenceData/master/global-temperature.json
//
// Shape:
//
//	{
//	  "baseTemperature": 8.66,
//	  "monthlyVariance": [
//	    {"year": 1753, "month": 1, "variance": -1.366},
//	    ...
//	  ]
//	}
//
// # Conventions
//
// Months arrive 1-based (1 = January) and are shifted to 0-based on load so they
// index the vertical band scale directly.
//
// Temperatures are anomalies: the absolute monthly temperature is
// baseTemperature + variance, in degrees Celsius. It is derived once in
// [ParseDataset] and never recomputed.
//
// Records are not individually validated. A record missing its month decodes
// as month 0, shifts to -1 and falls outside the month band, so it simply has
// no cell. Duplicate (year, month) pairs are kept in dataset order.
//
// Any failure to obtain or decode the document is reported as
// [ErrDataUnavailable]; the chart is never drawn from a partial dataset.
package domain
