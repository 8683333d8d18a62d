// Package utils contains small numeric helpers shared across the module.
package utils

import "math"

// Float64AlmostEqual determines if two float64s are equal within a given epsilon.
func Float64AlmostEqual(v1, v2, epsilon float64) bool {
	return math.Abs(v1-v2) <= epsilon
}

// Clamp returns a number clamped to the inclusive range set by min and max.
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func MaxInt(a, b int) int {
	if a < b {
		return b
	}
	return a
}
