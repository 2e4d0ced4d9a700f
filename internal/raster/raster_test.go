package raster_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gecko-animutils/internal/animation"
	"gecko-animutils/internal/mathutil"
	"gecko-animutils/internal/model"
	"gecko-animutils/internal/raster"
	"gecko-animutils/internal/viewmatrix"
)

func cubeProject() *model.Project {
	p := model.New("cube")
	b := model.NewBone("body", mathutil.Vec3{0, 0, 0})
	p.AddRoot(b)
	b.AddCube(model.NewCube("box", mathutil.Vec3{-4, 0, -4}, mathutil.Vec3{4, 8, 4}))
	return p
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestRenderProject(t *testing.T) {
	t.Run("should return a transparent image for an empty project", func(t *testing.T) {
		img := raster.RenderProject(model.New("empty"), nil, raster.Options{Size: 16, Supersample: 2})
		assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())
		for i := 3; i < len(img.Pix); i += 4 {
			require.Zero(t, img.Pix[i])
		}
	})
	t.Run("should cover the center with an opaque cube", func(t *testing.T) {
		img := raster.RenderProject(cubeProject(), nil, raster.Options{Size: 64, Camera: viewmatrix.DefaultCamera()})
		assert.Equal(t, uint8(255), img.NRGBAAt(32, 32).A)
		assert.Zero(t, img.NRGBAAt(0, 0).A)
	})
	t.Run("should sample the skin", func(t *testing.T) {
		tex := solid(64, 32, color.NRGBA{255, 0, 0, 255})
		img := raster.RenderProject(cubeProject(), nil, raster.Options{Size: 64, Texture: tex})
		c := img.NRGBAAt(32, 32)
		assert.Greater(t, c.R, c.G)
		assert.Equal(t, c.G, c.B)
	})
	t.Run("should leave holes where the skin is transparent", func(t *testing.T) {
		tex := solid(64, 32, color.NRGBA{})
		img := raster.RenderProject(cubeProject(), nil, raster.Options{Size: 64, Texture: tex})
		assert.Zero(t, img.NRGBAAt(32, 32).A)
	})
	t.Run("should follow the pose", func(t *testing.T) {
		p := cubeProject()
		p.AddLooseCube(model.NewCube("anchor", mathutil.Vec3{-4, 0, -4}, mathutil.Vec3{4, 8, 4}))
		rest := raster.RenderProject(p, nil, raster.Options{Size: 64})
		moved := raster.RenderProject(p, animation.Pose{
			"body": {Position: mathutil.Vec3{16, 0, 0}, Scale: mathutil.Vec3{1, 1, 1}},
		}, raster.Options{Size: 64})
		assert.NotEqual(t, rest.Pix, moved.Pix)
	})
}

func TestFrameBuffer(t *testing.T) {
	fb := raster.NewFrameBuffer(8, 8)
	assert.Zero(t, fb.Covered())
	lc := raster.DefaultLightConfig()
	raster.Quad(fb, [4]raster.Vertex{
		{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 8}, {X: 0, Y: 8},
	}, nil, color.NRGBA{128, 128, 128, 255}, &lc)
	assert.Equal(t, 64, fb.Covered())
	assert.Equal(t, uint8(255), fb.Image().NRGBAAt(4, 4).A)
}

func TestSampleTexture(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	tex.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	tex.SetNRGBA(1, 0, color.NRGBA{0, 0, 255, 255})
	r, _, b, _ := raster.SampleTexture(tex, 0.25, 0.5)
	assert.Equal(t, [2]uint8{255, 0}, [2]uint8{r, b})
	r, _, b, _ = raster.SampleTexture(tex, 1.75, 0.5)
	assert.Equal(t, [2]uint8{0, 255}, [2]uint8{r, b})
}

func TestACESTonemap(t *testing.T) {
	assert.Zero(t, raster.ACESTonemap(0))
	assert.Less(t, raster.ACESTonemap(100), 1.1)
}
