// Package easing implements the easing functions used to shape keyframe interpolation.
//
// A Func maps normalized progress t (nominally 0..1) to an eased value. Overshooting
// families (back, elastic, bounce) may leave the 0..1 range.
package easing

import "math"

// Func is an easing function.
type Func func(t float64) float64

// Linear is f(t) = t.
func Linear(t float64) float64 {
	return t
}

// Quad is f(t) = t².
func Quad(t float64) float64 {
	return t * t
}

// Cubic is f(t) = t³.
func Cubic(t float64) float64 {
	return t * t * t
}

// Poly returns f(t) = tⁿ.
func Poly(n float64) Func {
	return func(t float64) float64 {
		return math.Pow(t, n)
	}
}

// Sine is a sinusoidal ease.
func Sine(t float64) float64 {
	return 1 - math.Cos((t*math.Pi)/2)
}

// Circle is a circular ease.
func Circle(t float64) float64 {
	return 1 - math.Sqrt(1-t*t)
}

// Expo is an exponential ease. Note Expo(0) is 2^-10, not 0.
func Expo(t float64) float64 {
	return math.Pow(2, 10*(t-1))
}

// DefaultOvershoot is the back overshoot for an argument of 1.
const DefaultOvershoot = 1.70158

// Back returns an ease that first pulls back by overshoot s before moving forward.
func Back(s float64) Func {
	return func(t float64) float64 {
		return t * t * ((s+1)*t - s)
	}
}

// Elastic returns a spring-like ease. Bounciness 0 does not overshoot,
// bounciness N overshoots about N times.
func Elastic(bounciness float64) Func {
	p := bounciness * math.Pi
	return func(t float64) float64 {
		return 1 - math.Pow(math.Cos((t*math.Pi)/2), 3)*math.Cos(t*p)
	}
}

// Bounce returns a bouncing ease built from the minimum of four quadratic arcs.
// k controls how much height each bounce keeps.
func Bounce(k float64) Func {
	q := func(x float64) float64 {
		return (121.0 / 16) * x * x
	}
	w := func(x float64) float64 {
		return (121.0/4)*k*math.Pow(x-6.0/11, 2) + 1 - k
	}
	r := func(x float64) float64 {
		return 121*k*k*math.Pow(x-9.0/11, 2) + 1 - k*k
	}
	s := func(x float64) float64 {
		return 484*k*k*k*math.Pow(x-10.5/11, 2) + 1 - k*k*k
	}
	return func(x float64) float64 {
		return min(q(x), w(x), r(x), s(x))
	}
}

// In runs an easing function forwards.
func In(f Func) Func {
	return f
}

// Out runs an easing function backwards.
func Out(f Func) Func {
	return func(t float64) float64 {
		return 1 - f(1-t)
	}
}

// InOut makes an easing function symmetrical: forwards for the first half,
// backwards for the second.
func InOut(f Func) Func {
	return func(t float64) float64 {
		if t < 0.5 {
			return f(t*2) / 2
		}
		return 1 - f((1-t)*2)/2
	}
}
