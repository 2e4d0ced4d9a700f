package keyframe

import (
	"errors"
	"fmt"
	"math"

	"gecko-animutils/internal/easing"
)

var ErrNotANumber = errors.New("interpolation produced NaN")

// Interpolator computes a value between two keyframes on one axis.
// t is the normalized time between start (0) and other (1).
type Interpolator interface {
	Lerp(start, other *Keyframe, axis Axis, t float64) (float64, error)
}

// Lerp linearly interpolates between start and stop.
func Lerp(start, stop, amt float64) float64 {
	return amt*(stop-start) + start
}

// Plain is the editor's stock behavior: linear interpolation and vector-only serialization.
type Plain struct{}

var _ Interpolator = Plain{}

func (Plain) Lerp(start, other *Keyframe, axis Axis, t float64) (float64, error) {
	return Lerp(start.Calc(axis), other.Calc(axis), t), nil
}

// Eased interpolates with the easing stored on the destination keyframe and
// serializes easing metadata alongside the vector.
// It is called once per axis per frame and neither logs nor allocates on success.
type Eased struct{}

var _ Interpolator = Eased{}

func (Eased) Lerp(start, other *Keyframe, axis Axis, t float64) (float64, error) {
	name := other.EasingName()
	arg, _ := other.EasingArg()
	eased, err := easing.Evaluate(name, t, arg)
	if err != nil {
		return 0, err
	}
	result := Lerp(start.Calc(axis), other.Calc(axis), eased)
	if math.IsNaN(result) {
		return 0, fmt.Errorf("keyframe: %s %s at %g: %w", other.Channel, name, t, ErrNotANumber)
	}
	return result, nil
}
