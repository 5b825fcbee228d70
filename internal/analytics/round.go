package analytics

import (
	"math"
	"strconv"
)

// roundHalfUp rounds to the nearest integer, halves toward +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Round1 rounds v to one decimal place, halves rounded up.
func Round1(v float64) float64 {
	return roundHalfUp(v*10) / 10
}

// FormatOneDecimal renders v with exactly one decimal ("8.75" -> "8.8").
// strconv alone rounds exact halves to even, so the value is rounded first.
func FormatOneDecimal(v float64) string {
	return strconv.FormatFloat(Round1(v), 'f', 1, 64)
}

func percentage(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}
