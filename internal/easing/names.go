package easing

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownEasing   = errors.New("unknown easing")
	ErrInvalidArgument = errors.New("invalid easing argument")
)

// Easing names as stored on keyframes.
const (
	NameLinear        = "linear"
	NameStep          = "step"
	EaseInQuad        = "easeInQuad"
	EaseOutQuad       = "easeOutQuad"
	EaseInOutQuad     = "easeInOutQuad"
	EaseInCubic       = "easeInCubic"
	EaseOutCubic      = "easeOutCubic"
	EaseInOutCubic    = "easeInOutCubic"
	EaseInQuart       = "easeInQuart"
	EaseOutQuart      = "easeOutQuart"
	EaseInOutQuart    = "easeInOutQuart"
	EaseInQuint       = "easeInQuint"
	EaseOutQuint      = "easeOutQuint"
	EaseInOutQuint    = "easeInOutQuint"
	EaseInSine        = "easeInSine"
	EaseOutSine       = "easeOutSine"
	EaseInOutSine     = "easeInOutSine"
	EaseInExpo        = "easeInExpo"
	EaseOutExpo       = "easeOutExpo"
	EaseInOutExpo     = "easeInOutExpo"
	EaseInCirc        = "easeInCirc"
	EaseOutCirc       = "easeOutCirc"
	EaseInOutCirc     = "easeInOutCirc"
	EaseInBack        = "easeInBack"
	EaseOutBack       = "easeOutBack"
	EaseInOutBack     = "easeInOutBack"
	EaseInElastic     = "easeInElastic"
	EaseOutElastic    = "easeOutElastic"
	EaseInOutElastic  = "easeInOutElastic"
	EaseInBounce      = "easeInBounce"
	EaseOutBounce     = "easeOutBounce"
	EaseInOutBounce   = "easeInOutBounce"
	DefaultEasingName = NameLinear
)

type family uint8

const (
	familyFixed family = iota
	familyBack
	familyElastic
	familyBounce
	familyStep
)

type entry struct {
	family family
	dir    func(Func) Func
	shape  Func
}

// Names lists every easing in display order.
var Names = []string{
	NameLinear, NameStep,
	EaseInQuad, EaseOutQuad, EaseInOutQuad,
	EaseInCubic, EaseOutCubic, EaseInOutCubic,
	EaseInQuart, EaseOutQuart, EaseInOutQuart,
	EaseInQuint, EaseOutQuint, EaseInOutQuint,
	EaseInSine, EaseOutSine, EaseInOutSine,
	EaseInExpo, EaseOutExpo, EaseInOutExpo,
	EaseInCirc, EaseOutCirc, EaseInOutCirc,
	EaseInBack, EaseOutBack, EaseInOutBack,
	EaseInElastic, EaseOutElastic, EaseInOutElastic,
	EaseInBounce, EaseOutBounce, EaseInOutBounce,
}

var registry = func() map[string]entry {
	quart := Poly(4)
	quint := Poly(5)
	m := map[string]entry{
		NameLinear: {family: familyFixed, dir: In, shape: Linear},
		NameStep:   {family: familyStep},
	}
	fixed := []struct {
		in, out, inOut string
		shape          Func
	}{
		{EaseInQuad, EaseOutQuad, EaseInOutQuad, Quad},
		{EaseInCubic, EaseOutCubic, EaseInOutCubic, Cubic},
		{EaseInQuart, EaseOutQuart, EaseInOutQuart, quart},
		{EaseInQuint, EaseOutQuint, EaseInOutQuint, quint},
		{EaseInSine, EaseOutSine, EaseInOutSine, Sine},
		{EaseInExpo, EaseOutExpo, EaseInOutExpo, Expo},
		{EaseInCirc, EaseOutCirc, EaseInOutCirc, Circle},
	}
	for _, f := range fixed {
		m[f.in] = entry{family: familyFixed, dir: In, shape: In(f.shape)}
		m[f.out] = entry{family: familyFixed, dir: Out, shape: Out(f.shape)}
		m[f.inOut] = entry{family: familyFixed, dir: InOut, shape: InOut(f.shape)}
	}
	params := []struct {
		in, out, inOut string
		family         family
	}{
		{EaseInBack, EaseOutBack, EaseInOutBack, familyBack},
		{EaseInElastic, EaseOutElastic, EaseInOutElastic, familyElastic},
		{EaseInBounce, EaseOutBounce, EaseInOutBounce, familyBounce},
	}
	for _, p := range params {
		m[p.in] = entry{family: p.family, dir: In}
		m[p.out] = entry{family: p.family, dir: Out}
		m[p.inOut] = entry{family: p.family, dir: InOut}
	}
	return m
}()

// IsValid reports whether name is a known easing.
func IsValid(name string) bool {
	_, ok := registry[name]
	return ok
}

// Evaluate applies the named easing to t. arg is only read by the argument-taking
// kinds (see HasArgs): back scales the default overshoot, elastic is the bounciness,
// bounce is the bounce decay and step is the number of steps.
func Evaluate(name string, t, arg float64) (float64, error) {
	e, ok := registry[name]
	if !ok {
		return 0, fmt.Errorf("easing: %q: %w", name, ErrUnknownEasing)
	}
	switch e.family {
	case familyBack:
		return e.dir(Back(DefaultOvershoot * arg))(t), nil
	case familyElastic:
		return e.dir(Elastic(arg))(t), nil
	case familyBounce:
		return e.dir(Bounce(arg))(t), nil
	case familyStep:
		return Step(int(arg), t)
	}
	return e.shape(t), nil
}
