// ABOUTME: Rounding helpers shared by the calculators
// ABOUTME: Half-to-even rounding for role splits, decimal rounding for reports

package services

import "math"

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

func round1(x float64) float64 { return roundTo(x, 1) }

func round2(x float64) float64 { return roundTo(x, 2) }

// roundHalfEven rounds to the nearest integer, ties to even.
func roundHalfEven(x float64) int {
	return int(math.RoundToEven(x))
}
