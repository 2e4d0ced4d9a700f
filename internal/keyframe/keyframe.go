// Package keyframe holds the keyframe entity of bone animations together with the
// pluggable strategies used to interpolate and serialize it.
package keyframe

import (
	"gecko-animutils/internal/easing"
	"gecko-animutils/internal/mathutil"
)

// Channel is the transform property a keyframe animates.
type Channel string

const (
	Rotation Channel = "rotation"
	Position Channel = "position"
	Scale    Channel = "scale"
)

// Channels lists the animatable channels in file order.
var Channels = []Channel{Rotation, Position, Scale}

// Axis selects one component of a keyframe value.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// Keyframe is a single animation key on one channel of a bone.
type Keyframe struct {
	Channel Channel
	Time    float64 // seconds
	Value   mathutil.Vec3

	// Easing is the easing name used when interpolating towards this keyframe.
	// Empty means linear.
	Easing string

	// EasingArgs carries at most one argument. It is only meaningful when
	// easing.HasArgs(Easing) is true.
	EasingArgs []float64
}

// Calc returns the keyframe value on axis.
func (k *Keyframe) Calc(axis Axis) float64 {
	return k.Value[axis]
}

// EasingName returns the easing name, falling back to linear.
func (k *Keyframe) EasingName() string {
	if k.Easing == "" {
		return easing.DefaultEasingName
	}
	return k.Easing
}

// EasingArg returns the first easing argument or the default for the easing.
// ok is false when the easing takes no argument.
func (k *Keyframe) EasingArg() (arg float64, ok bool) {
	name := k.EasingName()
	if !easing.HasArgs(name) {
		return 0, false
	}
	if len(k.EasingArgs) > 0 {
		return k.EasingArgs[0], true
	}
	return easing.DefaultArg(name)
}

// Clone returns a deep copy of k.
func (k *Keyframe) Clone() *Keyframe {
	c := *k
	if k.EasingArgs != nil {
		c.EasingArgs = append([]float64(nil), k.EasingArgs...)
	}
	return &c
}
