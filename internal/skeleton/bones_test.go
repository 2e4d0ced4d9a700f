package skeleton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gecko-animutils/internal/animation"
	"gecko-animutils/internal/mathutil"
	"gecko-animutils/internal/model"
	"gecko-animutils/internal/skeleton"
)

func assertVec(t *testing.T, want, got mathutil.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], 1e-9, "axis %d", i)
	}
}

func rig() (*model.Project, *model.Bone, *model.Bone, *model.Cube) {
	p := model.New("rig")
	body := model.NewBone("body", mathutil.Vec3{0, 0, 0})
	arm := model.NewBone("arm", mathutil.Vec3{2, 0, 0})
	c := model.NewCube("hand", mathutil.Vec3{2, 0, 0}, mathutil.Vec3{3, 1, 1})
	p.AddRoot(body)
	p.Attach(arm, body)
	arm.AddCube(c)
	return p, body, arm, c
}

func TestBuildWorldMatrices(t *testing.T) {
	t.Run("should be identity at rest", func(t *testing.T) {
		p, body, arm, _ := rig()
		w := skeleton.BuildWorldMatrices(p, nil)
		assert.True(t, w[body].IsIdentity())
		assert.True(t, w[arm].IsIdentity())
	})
	t.Run("should rotate about the bone origin", func(t *testing.T) {
		p, _, arm, _ := rig()
		w := skeleton.BuildWorldMatrices(p, animation.Pose{
			"arm": {Rotation: mathutil.Vec3{0, 0, 90}, Scale: mathutil.Vec3{1, 1, 1}},
		})
		assertVec(t, mathutil.Vec3{2, 1, 0}, w[arm].MulPoint(mathutil.Vec3{3, 0, 0}))
	})
	t.Run("should inherit the parent offset", func(t *testing.T) {
		p, _, arm, _ := rig()
		w := skeleton.BuildWorldMatrices(p, animation.Pose{
			"body": {Position: mathutil.Vec3{0, 5, 0}, Scale: mathutil.Vec3{1, 1, 1}},
		})
		assertVec(t, mathutil.Vec3{3, 5, 0}, w[arm].MulPoint(mathutil.Vec3{3, 0, 0}))
	})
	t.Run("should scale about the bone origin", func(t *testing.T) {
		p, _, arm, _ := rig()
		w := skeleton.BuildWorldMatrices(p, animation.Pose{
			"arm": {Scale: mathutil.Vec3{2, 2, 2}},
		})
		assertVec(t, mathutil.Vec3{4, 0, 0}, w[arm].MulPoint(mathutil.Vec3{3, 0, 0}))
	})
}

func TestCorners(t *testing.T) {
	c := model.NewCube("c", mathutil.Vec3{0, 0, 0}, mathutil.Vec3{1, 2, 3})
	c.Inflate = 0.5
	got := skeleton.Corners(c)
	assertVec(t, mathutil.Vec3{-0.5, -0.5, -0.5}, got[0])
	assertVec(t, mathutil.Vec3{1.5, -0.5, -0.5}, got[1])
	assertVec(t, mathutil.Vec3{-0.5, 2.5, -0.5}, got[2])
	assertVec(t, mathutil.Vec3{1.5, 2.5, 3.5}, got[7])
}

func TestPoseCube(t *testing.T) {
	p, _, _, c := rig()
	w := skeleton.BuildWorldMatrices(p, animation.Pose{
		"body": {Position: mathutil.Vec3{1, 0, 0}, Scale: mathutil.Vec3{1, 1, 1}},
	})
	got := skeleton.PoseCube(c, w)
	assertVec(t, mathutil.Vec3{3, 0, 0}, got[0])
	assertVec(t, mathutil.Vec3{4, 1, 1}, got[7])

	loose := model.NewCube("loose", mathutil.Vec3{0, 0, 0}, mathutil.Vec3{1, 1, 1})
	assertVec(t, mathutil.Vec3{1, 1, 1}, skeleton.PoseCube(loose, w)[7])
}
