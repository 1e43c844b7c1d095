package model

import "math"

// Round rounds v to two decimal places, halves away from zero.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}
