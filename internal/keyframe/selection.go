package keyframe

import (
	"gecko-animutils/internal/easing"
)

// noSelection is the marker value the editor uses for "leave unchanged".
const noSelection = "-"

// SharedEasing returns the easing common to all keyframes.
// ok is false when the selection is empty or mixes easings.
func SharedEasing(kfs []*Keyframe) (name string, ok bool) {
	if len(kfs) == 0 {
		return "", false
	}
	name = kfs[0].EasingName()
	for _, k := range kfs[1:] {
		if k.EasingName() != name {
			return "", false
		}
	}
	return name, true
}

// SharedEasingArg returns the easing argument common to all keyframes,
// using each keyframe's default when it carries none.
// ok is false when any keyframe takes no argument or the values differ.
func SharedEasingArg(kfs []*Keyframe) (arg float64, ok bool) {
	if len(kfs) == 0 {
		return 0, false
	}
	arg, ok = kfs[0].EasingArg()
	if !ok {
		return 0, false
	}
	for _, k := range kfs[1:] {
		v, ok := k.EasingArg()
		if !ok || v != arg {
			return 0, false
		}
	}
	return arg, true
}

// ApplyEasing sets the easing on all keyframes. The "-" marker and unknown names
// are ignored and reported as false.
func ApplyEasing(kfs []*Keyframe, name string) bool {
	if name == noSelection || !easing.IsValid(name) {
		return false
	}
	for _, k := range kfs {
		k.Easing = name
	}
	return true
}

// ApplyEasingArg parses input for each keyframe's easing and stores it as the
// single easing argument. Keyframes whose easing rejects the input are left unchanged.
// It returns the number of keyframes updated.
func ApplyEasingArg(kfs []*Keyframe, input string) int {
	if input == noSelection {
		return 0
	}
	n := 0
	for _, k := range kfs {
		v, ok := easing.ParseArg(k.EasingName(), input)
		if !ok {
			continue
		}
		k.EasingArgs = []float64{v}
		n++
	}
	return n
}
