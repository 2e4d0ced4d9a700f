package viewmatrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gecko-animutils/internal/mathutil"
	"gecko-animutils/internal/viewmatrix"
)

func TestCamera(t *testing.T) {
	t.Run("should be identity when level and facing front", func(t *testing.T) {
		m := viewmatrix.Camera{}.Matrix()
		assert.Equal(t, mathutil.Mat3Identity(), m)
	})
	t.Run("should bring the top closer when pitched down", func(t *testing.T) {
		m := viewmatrix.Camera{Pitch: 30}.Matrix()
		top := m.MulVec3(mathutil.Vec3{0, 1, 0})
		assert.Greater(t, top[2], 0.0)
	})
}

func TestFitAndProject(t *testing.T) {
	verts := []mathutil.Vec3{{-1, -1, 0}, {1, 1, 0}}
	R := mathutil.Mat3Identity()
	f := viewmatrix.Fit(verts, R, 100, 10)
	assert.InDelta(t, 40.0, f.Scale, 1e-9)

	px, py, pz := viewmatrix.ProjectVertices(verts, R, f)
	assert.InDelta(t, 10.0, px[0], 1e-9)
	assert.InDelta(t, 90.0, py[0], 1e-9)
	assert.InDelta(t, 90.0, px[1], 1e-9)
	assert.InDelta(t, 10.0, py[1], 1e-9)
	assert.Equal(t, []float64{0, 0}, pz)
}

func TestFitEmpty(t *testing.T) {
	f := viewmatrix.Fit(nil, mathutil.Mat3Identity(), 64, 4)
	assert.Equal(t, 1.0, f.Scale)
	assert.Equal(t, 64, f.Size)
}
