package keyframe

import (
	"gecko-animutils/internal/easing"
)

// Array is the object form of a keyframe written to animation files when easing
// metadata is present.
type Array struct {
	Vector     [3]float64 `json:"vector"`
	Easing     string     `json:"easing,omitempty"`
	EasingArgs []float64  `json:"easingArgs,omitempty"`
}

// Snapshot is the undo copy of a keyframe.
type Snapshot struct {
	Channel    Channel    `json:"channel"`
	Time       float64    `json:"time"`
	Vector     [3]float64 `json:"vector"`
	Easing     string     `json:"easing,omitempty"`
	EasingArgs []float64  `json:"easingArgs,omitempty"`
}

// Update is partial keyframe data merged by Extend. Nil fields are left unchanged.
type Update struct {
	Channel Channel
	Time    *float64
	Vector  []float64

	// Values is the object form read from animation files. When set it takes
	// precedence over Vector, Easing and EasingArgs.
	Values *Array

	Easing     *string
	EasingArgs []float64
}

// Update returns the data that restores s through Extend.
func (s Snapshot) Update() Update {
	u := Update{
		Channel:    s.Channel,
		Time:       &s.Time,
		Vector:     s.Vector[:],
		EasingArgs: s.EasingArgs,
	}
	if s.Easing != "" {
		u.Easing = &s.Easing
	}
	return u
}

// Serializer converts keyframes to and from their transferable forms.
type Serializer interface {
	// Array returns the value written to animation files:
	// either a [3]float64 vector or an Array.
	Array(k *Keyframe) any
	UndoCopy(k *Keyframe) Snapshot
	Extend(k *Keyframe, u Update)
}

var (
	_ Serializer = Plain{}
	_ Serializer = Eased{}
)

func (Plain) Array(k *Keyframe) any {
	return [3]float64(k.Value)
}

func (Plain) UndoCopy(k *Keyframe) Snapshot {
	return Snapshot{Channel: k.Channel, Time: k.Time, Vector: k.Value}
}

func (Plain) Extend(k *Keyframe, u Update) {
	if u.Channel != "" {
		k.Channel = u.Channel
	}
	if u.Time != nil {
		k.Time = *u.Time
	}
	vector := u.Vector
	if u.Values != nil {
		vector = u.Values.Vector[:]
	}
	for i := 0; i < len(vector) && i < 3; i++ {
		k.Value[i] = vector[i]
	}
}

func (Eased) Array(k *Keyframe) any {
	a := Array{Vector: k.Value, Easing: k.EasingName()}
	if easing.HasArgs(a.Easing) {
		a.EasingArgs = k.EasingArgs
	}
	return a
}

func (Eased) UndoCopy(k *Keyframe) Snapshot {
	s := Plain{}.UndoCopy(k)
	s.Easing = k.EasingName()
	if easing.HasArgs(s.Easing) {
		s.EasingArgs = k.EasingArgs
	}
	return s
}

func (Eased) Extend(k *Keyframe, u Update) {
	if u.Values != nil {
		if u.Values.Easing != "" {
			k.Easing = u.Values.Easing
		}
		if u.Values.EasingArgs != nil {
			k.EasingArgs = u.Values.EasingArgs
		}
	} else {
		if u.Easing != nil {
			k.Easing = *u.Easing
		}
		if u.EasingArgs != nil {
			k.EasingArgs = u.EasingArgs
		}
	}
	Plain{}.Extend(k, u)
}
