// Package util holds small generic helpers shared across the document
// model: clamping and bounds comparisons over ordered numeric types.
package util

import (
	"golang.org/x/exp/constraints"
)

// Min returns the smaller of a and b.
func Min[A constraints.Ordered](a, b A) A {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[A constraints.Ordered](a, b A) A {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts v to the closed interval [lo, hi].
func Clamp[A constraints.Ordered](v, lo, hi A) A {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

