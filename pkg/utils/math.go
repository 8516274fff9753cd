package utils

import "math"

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi int) int {
	return Min(Max(v, lo), hi)
}

// RoundHalfUp rounds to the nearest integer, halves away from zero.
// Crew averages and quality grades round this way.
func RoundHalfUp(v float64) int {
	return int(math.Round(v))
}
