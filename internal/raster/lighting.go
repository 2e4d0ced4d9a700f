package raster

import (
	"math"

	"gecko-animutils/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters.
type LightConfig struct {
	LightDir mathutil.Vec3
	RimDir   mathutil.Vec3
	HalfMain mathutil.Vec3 // half-vector for Blinn-Phong
	Ambient  float64
	Hemi     float64
	Direct   float64
	Rim      float64
	SpecInt  float64
	SpecPow  float64
	Exposure float64
	InvGamma float64
}

// DefaultLightConfig returns a soft key light from the upper left plus a cool rim.
// Cube rigs are matte, so the specular term is weak.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Vec3{-0.4, -0.8, 0.45}.Normalize()
	rimDir := mathutil.Vec3{0.6, 0.3, -0.75}.Normalize()
	viewDir := mathutil.Vec3{0, 0, -1}

	return LightConfig{
		LightDir: lightDir,
		RimDir:   rimDir,
		HalfMain: lightDir.Sub(viewDir).Normalize(),
		Ambient:  0.60,
		Hemi:     0.35,
		Direct:   0.90,
		Rim:      0.25,
		SpecInt:  0.10,
		SpecPow:  8.0,
		Exposure: 1.0,
		InvGamma: 1.0 / 2.2,
	}
}

// ComputeShade returns the combined lighting scalar for a unit face normal in
// screen space (Y down).
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	return lc.shadeXYZ(normal[0], normal[1], normal[2])
}

func (lc *LightConfig) shadeXYZ(nx, ny, nz float64) float64 {
	// Lambertian, abs for double-sided faces
	ndlMain := math.Abs(nx*lc.LightDir[0] + ny*lc.LightDir[1] + nz*lc.LightDir[2])
	ndlRim := math.Abs(nx*lc.RimDir[0] + ny*lc.RimDir[1] + nz*lc.RimDir[2])

	// Hemisphere fill
	hemi := (1.0-math.Abs(ny))*0.5 + 0.5

	ndh := math.Max(nx*lc.HalfMain[0]+ny*lc.HalfMain[1]+nz*lc.HalfMain[2], 0)
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemi*lc.Hemi + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// tone shades one sRGB channel: decode to linear, light, tone map, encode.
func (lc *LightConfig) tone(c uint8, shade float64) uint8 {
	t := ACESTonemap(srgbToLinear[c] * shade * lc.Exposure)
	return clamp255(math.Pow(t, lc.InvGamma) * 255)
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := range 256 {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}
