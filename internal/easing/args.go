package easing

import (
	"strconv"
	"strings"
)

// HasArgs reports whether the easing takes an argument.
func HasArgs(name string) bool {
	return strings.Contains(name, "Back") ||
		strings.Contains(name, "Elastic") ||
		strings.Contains(name, "Bounce") ||
		name == NameStep
}

// DefaultArg returns the argument used when a keyframe does not carry one.
// ok is false for easings that take no argument.
func DefaultArg(name string) (arg float64, ok bool) {
	switch name {
	case EaseInBack, EaseOutBack, EaseInOutBack,
		EaseInElastic, EaseOutElastic, EaseInOutElastic:
		return 1, true
	case EaseInBounce, EaseOutBounce, EaseInOutBounce:
		return 0.5, true
	case NameStep:
		return 5, true
	}
	return 0, false
}

// ParseArg converts user input into an easing argument. Back, elastic and bounce
// arguments are floats; step arguments are integers clamped to at least 2.
// ok is false when the easing takes no argument or the input is not a number.
func ParseArg(name, value string) (arg float64, ok bool) {
	value = strings.TrimSpace(value)
	switch name {
	case EaseInBack, EaseOutBack, EaseInOutBack,
		EaseInElastic, EaseOutElastic, EaseInOutElastic,
		EaseInBounce, EaseOutBounce, EaseInOutBounce:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	case NameStep:
		n, ok := leadingInt(value)
		if !ok {
			return 0, false
		}
		return float64(max(n, 2)), true
	}
	return 0, false
}

// ArgLabel is the caption shown next to the argument input.
func ArgLabel(name string) string {
	switch name {
	case EaseInBack, EaseOutBack, EaseInOutBack:
		return "Overshoot"
	case EaseInElastic, EaseOutElastic, EaseInOutElastic:
		return "Bounciness"
	case NameStep:
		return "Steps"
	}
	return "N/A"
}

// leadingInt parses an optionally signed run of digits at the start of s,
// ignoring anything after it ("3.7" is 3).
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
