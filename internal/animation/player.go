package animation

import (
	"fmt"

	"gecko-animutils/internal/keyframe"
	"gecko-animutils/internal/mathutil"
)

// Transform is the animated offset of one bone.
// Rotation is in degrees, Position in model units and Scale is a factor.
type Transform struct {
	Rotation mathutil.Vec3
	Position mathutil.Vec3
	Scale    mathutil.Vec3
}

// Identity is the transform of an unanimated bone.
var Identity = Transform{Scale: mathutil.Vec3{1, 1, 1}}

// Pose maps bone names to transforms. Bones without an entry are at rest.
type Pose map[string]Transform

// Of returns the transform of bone or Identity.
func (p Pose) Of(bone string) Transform {
	if t, ok := p[bone]; ok {
		return t
	}
	return Identity
}

// Lerp blends two poses. Bones missing from either side blend from Identity.
func (p Pose) Lerp(o Pose, t float64) Pose {
	out := make(Pose, len(p))
	blend := func(bone string) {
		a, b := p.Of(bone), o.Of(bone)
		var r Transform
		for i := range 3 {
			r.Rotation[i] = keyframe.Lerp(a.Rotation[i], b.Rotation[i], t)
			r.Position[i] = keyframe.Lerp(a.Position[i], b.Position[i], t)
			r.Scale[i] = keyframe.Lerp(a.Scale[i], b.Scale[i], t)
		}
		out[bone] = r
	}
	for bone := range p {
		blend(bone)
	}
	for bone := range o {
		if _, ok := p[bone]; !ok {
			blend(bone)
		}
	}
	return out
}

// Player samples animations with an injected interpolation strategy.
type Player struct {
	interp keyframe.Interpolator
}

// NewPlayer returns a player. A nil interpolator means keyframe.Plain.
func NewPlayer(interp keyframe.Interpolator) *Player {
	if interp == nil {
		interp = keyframe.Plain{}
	}
	return &Player{interp: interp}
}

// Sample returns the value of channel ch at time t.
// ok is false when the channel has no keyframes.
func (p *Player) Sample(an *Animator, ch keyframe.Channel, t float64) (v mathutil.Vec3, ok bool, err error) {
	kfs := an.Channel(ch)
	if len(kfs) == 0 {
		return v, false, nil
	}
	if t <= kfs[0].Time {
		return kfs[0].Value, true, nil
	}
	last := kfs[len(kfs)-1]
	if t >= last.Time {
		return last.Value, true, nil
	}
	i := 1
	for kfs[i].Time < t {
		i++
	}
	before, after := kfs[i-1], kfs[i]
	span := after.Time - before.Time
	if span <= 0 {
		return after.Value, true, nil
	}
	alpha := (t - before.Time) / span
	for axis := keyframe.X; axis <= keyframe.Z; axis++ {
		v[axis], err = p.interp.Lerp(before, after, axis, alpha)
		if err != nil {
			return v, false, fmt.Errorf("animation: sample %s %s: %w", an.Bone, ch, err)
		}
	}
	return v, true, nil
}

// Pose samples every animator of a at time t.
func (p *Player) Pose(a *Animation, t float64) (Pose, error) {
	pose := make(Pose, len(a.order))
	for _, an := range a.Animators() {
		tr := Identity
		for _, ch := range keyframe.Channels {
			v, ok, err := p.Sample(an, ch, t)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			switch ch {
			case keyframe.Rotation:
				tr.Rotation = v
			case keyframe.Position:
				tr.Position = v
			case keyframe.Scale:
				tr.Scale = v
			}
		}
		pose[an.Bone] = tr
	}
	return pose, nil
}
