// Package animation holds bone animations and samples them into poses.
package animation

import (
	"math"
	"slices"

	"gecko-animutils/internal/keyframe"
)

// Animation is a named clip of per-bone keyframes.
type Animation struct {
	Name   string
	Length float64 // seconds
	Loop   bool

	animators map[string]*Animator
	order     []string
}

// New returns an empty animation.
func New(name string, length float64, loop bool) *Animation {
	return &Animation{Name: name, Length: length, Loop: loop, animators: map[string]*Animator{}}
}

// Animator returns the animator for bone, creating it on first use.
func (a *Animation) Animator(bone string) *Animator {
	if a.animators == nil {
		a.animators = map[string]*Animator{}
	}
	if an, ok := a.animators[bone]; ok {
		return an
	}
	an := &Animator{Bone: bone}
	a.animators[bone] = an
	a.order = append(a.order, bone)
	return an
}

// Lookup returns the animator for bone if it exists.
func (a *Animation) Lookup(bone string) (*Animator, bool) {
	an, ok := a.animators[bone]
	return an, ok
}

// Animators returns all animators in creation order.
func (a *Animation) Animators() []*Animator {
	out := make([]*Animator, 0, len(a.order))
	for _, b := range a.order {
		out = append(out, a.animators[b])
	}
	return out
}

// Duration returns Length, or the time of the last keyframe when Length is unset.
func (a *Animation) Duration() float64 {
	if a.Length > 0 {
		return a.Length
	}
	var d float64
	for _, an := range a.animators {
		for _, k := range an.Keyframes {
			d = max(d, k.Time)
		}
	}
	return d
}

// Wrap maps playback time t into the clip. Looping animations repeat,
// others hold their last frame.
func (a *Animation) Wrap(t float64) float64 {
	d := a.Duration()
	if d <= 0 {
		return 0
	}
	if a.Loop {
		t = math.Mod(t, d)
		if t < 0 {
			t += d
		}
		return t
	}
	return min(max(t, 0), d)
}

// Animator holds the keyframes of one bone across all channels.
type Animator struct {
	Bone      string
	Keyframes []*keyframe.Keyframe

	// channels indexes the first indexed entries of Keyframes by channel,
	// each sorted by time.
	channels map[keyframe.Channel][]*keyframe.Keyframe
	indexed  int
}

// Add appends keyframes. Their channel and time must not change afterwards.
func (an *Animator) Add(kfs ...*keyframe.Keyframe) {
	if an.indexed != len(an.Keyframes) {
		an.reindex()
	}
	an.Keyframes = append(an.Keyframes, kfs...)
	for _, k := range kfs {
		an.insert(k)
	}
	an.indexed = len(an.Keyframes)
}

// Channel returns the keyframes of ch sorted by time. Keyframes with equal times
// keep their insertion order. The result is shared and must not be modified.
func (an *Animator) Channel(ch keyframe.Channel) []*keyframe.Keyframe {
	if an.indexed == len(an.Keyframes) {
		return an.channels[ch]
	}
	var out []*keyframe.Keyframe
	for _, k := range an.Keyframes {
		if k.Channel == ch {
			out = insertByTime(out, k)
		}
	}
	return out
}

func (an *Animator) reindex() {
	an.channels = nil
	for _, k := range an.Keyframes {
		an.insert(k)
	}
	an.indexed = len(an.Keyframes)
}

func (an *Animator) insert(k *keyframe.Keyframe) {
	if an.channels == nil {
		an.channels = make(map[keyframe.Channel][]*keyframe.Keyframe)
	}
	an.channels[k.Channel] = insertByTime(an.channels[k.Channel], k)
}

func insertByTime(kfs []*keyframe.Keyframe, k *keyframe.Keyframe) []*keyframe.Keyframe {
	i := len(kfs)
	for i > 0 && kfs[i-1].Time > k.Time {
		i--
	}
	return slices.Insert(kfs, i, k)
}

// IsFirstInChannel reports whether k is the earliest keyframe of its channel.
// The first keyframe has nothing to ease from, so its easing is never shown.
func (an *Animator) IsFirstInChannel(k *keyframe.Keyframe) bool {
	return slices.Index(an.Channel(k.Channel), k) < 1
}
