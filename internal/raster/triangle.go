package raster

import (
	"image"
	"image/color"
	"math"
)

// Vertex is a projected corner: screen position, depth and normalized texture coordinate.
type Vertex struct {
	X, Y, Z float64
	U, V    float64
}

// RasterizeTriangle draws one triangle with texture mapping, z-buffer,
// sRGB color space, lighting and ACES tone mapping.
// A nil tex fills the triangle with fill instead.
//
// Hot path: no allocation in the pixel loop. Lighting is flat (per face).
func RasterizeTriangle(fb *FrameBuffer, tri [3]Vertex, tex *image.NRGBA, fill color.NRGBA, lc *LightConfig) {
	a, b, c := tri[0], tri[1], tri[2]

	// Face normal for flat shading
	e1 := [3]float64{b.X - a.X, b.Y - a.Y, b.Z - a.Z}
	e2 := [3]float64{c.X - a.X, c.Y - a.Y, c.Z - a.Z}
	nx := e1[1]*e2[2] - e1[2]*e2[1]
	ny := e1[2]*e2[0] - e1[0]*e2[2]
	nz := e1[0]*e2[1] - e1[1]*e2[0]
	nl := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if nl < 1e-8 {
		return
	}
	shade := lc.shadeXYZ(nx/nl, ny/nl, nz/nl)

	minX := max(int(math.Min(math.Min(a.X, b.X), c.X)), 0)
	maxX := min(int(math.Max(math.Max(a.X, b.X), c.X))+1, fb.Width-1)
	minY := max(int(math.Min(math.Min(a.Y, b.Y), c.Y)), 0)
	maxY := min(int(math.Max(math.Max(a.Y, b.Y), c.Y))+1, fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det
	dy12 := b.Y - c.Y
	dx21 := c.X - b.X
	dy20 := c.Y - a.Y
	dx02 := a.X - c.X

	for sy := minY; sy <= maxY; sy++ {
		// sample at pixel centers
		dsy := float64(sy) + 0.5 - c.Y
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - c.X
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*a.Z + w1*b.Z + w2*c.Z
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			cr, cg, cb, ca := fill.R, fill.G, fill.B, fill.A
			if tex != nil {
				cr, cg, cb, ca = SampleTexture(tex, w0*a.U+w1*b.U+w2*c.U, w0*a.V+w1*b.V+w2*c.V)
			}
			// cutout: transparent skin pixels leave holes
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = lc.tone(cr, shade)
			fb.Color[pxIdx+1] = lc.tone(cg, shade)
			fb.Color[pxIdx+2] = lc.tone(cb, shade)
			fb.Color[pxIdx+3] = 255
		}
	}
}

// Quad draws the quad a-b-c-d as two triangles sharing the a-c diagonal.
func Quad(fb *FrameBuffer, q [4]Vertex, tex *image.NRGBA, fill color.NRGBA, lc *LightConfig) {
	RasterizeTriangle(fb, [3]Vertex{q[0], q[1], q[2]}, tex, fill, lc)
	RasterizeTriangle(fb, [3]Vertex{q[0], q[2], q[3]}, tex, fill, lc)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
