// Package utils contains shared math helpers for angle handling and
// numeric bookkeeping used across the linkage solvers.
package utils

import (
	"math"
	"sort"
)

func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// AngleDiffRad returns the closest difference from the two given
// angles in radians. The arguments are commutative.
func AngleDiffRad(a1, a2 float64) float64 {
	diff := math.Mod(math.Abs(a1-a2), 2*math.Pi)
	return math.Pi - math.Abs(diff-math.Pi)
}

// ModAngDeg normalizes a degree angle into [0, 360).
func ModAngDeg(ang float64) float64 {
	return math.Mod(math.Mod(ang, 360)+360, 360)
}

// Clamp bounds a value between min and max inclusive.
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func Median(values ...float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sort.Float64s(values)

	return values[int(math.Floor(float64(len(values))/2))]
}

// Math.pow( x, 2 ) is slow, this is faster
func Square(n float64) float64 {
	return n * n
}
