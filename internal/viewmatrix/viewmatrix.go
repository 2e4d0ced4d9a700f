package viewmatrix

import (
	"math"

	"gecko-animutils/internal/mathutil"
)

// Camera is an orbiting preview camera. Angles are in degrees.
type Camera struct {
	Yaw   float64
	Pitch float64
}

// DefaultCamera returns the three-quarter view used for previews.
func DefaultCamera() Camera {
	return Camera{Yaw: mathutil.DefaultYaw, Pitch: mathutil.DefaultPitch}
}

// Matrix returns the view rotation: yaw about Y, then pitch about X.
// After the rotation the viewer looks down -Z, so larger Z is closer.
func (c Camera) Matrix() mathutil.Mat3 {
	return mathutil.Mat3Mul(mathutil.RotX(mathutil.Deg2Rad(c.Pitch)), mathutil.RotY(mathutil.Deg2Rad(c.Yaw)))
}

// Frame is the screen mapping that fits a set of points into a square target.
type Frame struct {
	Center mathutil.Vec3
	Scale  float64
	Size   int
}

// Fit centers the rotated bounds of verts in a size×size target, leaving margin pixels
// on every side.
func Fit(verts []mathutil.Vec3, R mathutil.Mat3, size, margin int) Frame {
	lo := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range verts {
		t := R.MulVec3(v)
		for k := range 3 {
			lo[k] = math.Min(lo[k], t[k])
			hi[k] = math.Max(hi[k], t[k])
		}
	}
	if len(verts) == 0 {
		return Frame{Scale: 1, Size: size}
	}

	span := math.Max(hi[0]-lo[0], hi[1]-lo[1])
	if span < 0.001 {
		span = 0.001
	}
	usable := float64(size - 2*margin)
	if usable < 1 {
		usable = 1
	}
	return Frame{
		Center: lo.Add(hi).Scale(0.5),
		Scale:  usable / span,
		Size:   size,
	}
}

// ProjectVertices transforms 3D vertices to 2D screen coordinates with an
// orthographic projection. Returns screen X, screen Y and depth.
func ProjectVertices(verts []mathutil.Vec3, R mathutil.Mat3, f Frame) ([]float64, []float64, []float64) {
	n := len(verts)
	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)

	half := float64(f.Size) / 2
	for i, v := range verts {
		t := R.MulVec3(v)
		px[i] = (t[0]-f.Center[0])*f.Scale + half
		py[i] = -(t[1]-f.Center[1])*f.Scale + half
		pz[i] = t[2]
	}
	return px, py, pz
}
