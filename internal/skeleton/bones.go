package skeleton

import (
	"gecko-animutils/internal/animation"
	"gecko-animutils/internal/mathutil"
	"gecko-animutils/internal/model"
)

// Worlds maps each bone to its model-space transform.
type Worlds map[*model.Bone]mathutil.Mat4

// BuildWorldMatrices computes the world transform for every bone of p under pose.
// A nil pose gives the rest pose.
//
// Each bone pivots about its absolute origin: the rest rotation and the animated
// rotation are summed, the animated scale is applied about the pivot and the
// animated position offsets the pivot.
func BuildWorldMatrices(p *model.Project, pose animation.Pose) Worlds {
	worlds := make(Worlds)
	for _, root := range p.Roots {
		root.Walk(func(b *model.Bone) {
			local := Local(b, pose.Of(b.Name))
			if b.Parent != nil {
				worlds[b] = mathutil.Mat4Mul(worlds[b.Parent], local)
			} else {
				worlds[b] = local
			}
		})
	}
	return worlds
}

// Local returns the transform of b relative to its parent's world space.
func Local(b *model.Bone, t animation.Transform) mathutil.Mat4 {
	rot := mathutil.EulerZYX(b.Rotation.Add(t.Rotation))
	rs := mathutil.Mat3Mul(rot, mathutil.Mat3Diag(t.Scale[0], t.Scale[1], t.Scale[2]))
	pivot := b.Origin.Add(t.Position)
	return mathutil.Mat4Mul(mathutil.FromMat3Translation(rs, pivot), mathutil.Translation(b.Origin.Scale(-1)))
}

// Corners returns the 8 corners of c grown by its inflate amount.
// Corner i has bit 0 set for max X, bit 1 for max Y and bit 2 for max Z.
func Corners(c *model.Cube) [8]mathutil.Vec3 {
	lo := c.From.Sub(mathutil.Vec3{c.Inflate, c.Inflate, c.Inflate})
	hi := c.To.Add(mathutil.Vec3{c.Inflate, c.Inflate, c.Inflate})
	var out [8]mathutil.Vec3
	for i := range out {
		for axis := range 3 {
			if i&(1<<axis) != 0 {
				out[i][axis] = hi[axis]
			} else {
				out[i][axis] = lo[axis]
			}
		}
	}
	return out
}

// PoseCube returns the corners of c transformed by its bone's world matrix.
// Cubes without a bone stay in model space.
func PoseCube(c *model.Cube, worlds Worlds) [8]mathutil.Vec3 {
	corners := Corners(c)
	w, ok := worlds[c.Parent]
	if !ok || c.Parent == nil || w.IsIdentity() {
		return corners
	}
	for i, v := range corners {
		corners[i] = w.MulPoint(v)
	}
	return corners
}
