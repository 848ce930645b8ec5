package service

import "math"

// Round1 rounds to one decimal place (API representation of accuracy and
// average rating).
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Round3 rounds to three decimal places (latency seconds).
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
