package raster

import (
	"image"
	"image/color"

	"gecko-animutils/internal/animation"
	"gecko-animutils/internal/mathutil"
	"gecko-animutils/internal/model"
	"gecko-animutils/internal/skeleton"
	"gecko-animutils/internal/viewmatrix"
)

// Options control a preview render.
type Options struct {
	Size        int // output edge in pixels, before supersampling
	Supersample int
	Camera      viewmatrix.Camera
	Texture     *image.NRGBA // project skin; nil renders flat colors
}

// face lists corner indices (see skeleton.Corners) as top-left, top-right,
// bottom-right, bottom-left seen from outside the cube.
type face struct {
	corners [4]int
	uv      func(u, v, w, h, d float64) [4]float64
}

// Box-UV layout of the editor: the top strip holds up and down, the bottom strip
// holds east, north, west and south.
var faces = [6]face{
	// north
	{[4]int{3, 2, 0, 1}, func(u, v, w, h, d float64) [4]float64 { return [4]float64{u + d, v + d, u + d + w, v + d + h} }},
	// east
	{[4]int{7, 3, 1, 5}, func(u, v, w, h, d float64) [4]float64 { return [4]float64{u, v + d, u + d, v + d + h} }},
	// south
	{[4]int{6, 7, 5, 4}, func(u, v, w, h, d float64) [4]float64 { return [4]float64{u + 2*d + w, v + d, u + 2*d + 2*w, v + d + h} }},
	// west
	{[4]int{2, 6, 4, 0}, func(u, v, w, h, d float64) [4]float64 { return [4]float64{u + d + w, v + d, u + 2*d + w, v + d + h} }},
	// up
	{[4]int{2, 3, 7, 6}, func(u, v, w, h, d float64) [4]float64 { return [4]float64{u + d, v, u + d + w, v + d} }},
	// down
	{[4]int{4, 5, 1, 0}, func(u, v, w, h, d float64) [4]float64 { return [4]float64{u + d + w, v, u + d + 2*w, v + d} }},
}

// FaceColors are used per face when no skin is available.
var FaceColors = [6]color.NRGBA{
	{200, 170, 140, 255},
	{180, 150, 120, 255},
	{200, 170, 140, 255},
	{180, 150, 120, 255},
	{225, 195, 165, 255},
	{150, 125, 100, 255},
}

// RenderProject renders every cube of p under pose and returns an image of
// Size*Supersample pixels per edge. The caller downsamples.
func RenderProject(p *model.Project, pose animation.Pose, opts Options) *image.NRGBA {
	ss := max(opts.Supersample, 1)
	renderSize := max(opts.Size, 1) * ss

	worlds := skeleton.BuildWorldMatrices(p, pose)
	cubes := p.AllCubes()
	posed := make([][8]mathutil.Vec3, len(cubes))
	verts := make([]mathutil.Vec3, 0, len(cubes)*8)
	for i, c := range cubes {
		posed[i] = skeleton.PoseCube(c, worlds)
		verts = append(verts, posed[i][:]...)
	}

	fb := NewFrameBuffer(renderSize, renderSize)
	if len(cubes) == 0 {
		return fb.Image()
	}

	R := opts.Camera.Matrix()
	frame := viewmatrix.Fit(verts, R, renderSize, 8*ss)
	px, py, pz := viewmatrix.ProjectVertices(verts, R, frame)
	lc := DefaultLightConfig()

	texW, texH := float64(max(p.TextureWidth, 1)), float64(max(p.TextureHeight, 1))
	for i, c := range cubes {
		size := c.Size()
		for fi, f := range faces {
			r := f.uv(c.UVOffset[0], c.UVOffset[1], size[0], size[1], size[2])
			if c.Mirror {
				r[0], r[2] = r[2], r[0]
			}
			u0, v0, u1, v1 := r[0]/texW, r[1]/texH, r[2]/texW, r[3]/texH
			uvs := [4][2]float64{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}

			var q [4]Vertex
			for k, corner := range f.corners {
				vi := i*8 + corner
				q[k] = Vertex{X: px[vi], Y: py[vi], Z: pz[vi], U: uvs[k][0], V: uvs[k][1]}
			}
			Quad(fb, q, opts.Texture, FaceColors[fi], &lc)
		}
	}

	return fb.Image()
}
