package easing

import (
	"fmt"
)

// Step quantizes t into steps equal intervals over [0,1] and returns the left
// boundary of the interval containing t. Values below 0 snap to 0 and values at
// or beyond 1 snap to 1.
func Step(steps int, t float64) (float64, error) {
	bounds, err := stepBounds(steps)
	if err != nil {
		return 0, err
	}
	return bounds[intervalIndex(t, bounds)], nil
}

// stepBounds returns the steps+1 interval boundaries 0, 1/steps, ..., 1.
func stepBounds(steps int) ([]float64, error) {
	if steps < 2 {
		return nil, fmt.Errorf("easing: steps must be >= 2, got %d: %w", steps, ErrInvalidArgument)
	}
	n := float64(steps)
	bounds := make([]float64, steps+1)
	for i := range bounds {
		bounds[i] = float64(i) / n
	}
	return bounds, nil
}

// intervalIndex bisects bounds for the interval containing point and returns the
// index of its left border. Points outside the range return the first or last index.
func intervalIndex(point float64, bounds []float64) int {
	last := len(bounds) - 1
	if point < bounds[0] {
		return 0
	}
	if point >= bounds[last] {
		return last
	}
	left, right := 0, last
	for right-left != 1 {
		mid := left + (right-left)/2
		if point >= bounds[mid] {
			left = mid
		} else {
			right = mid
		}
	}
	return left
}
