package raster

import "image"

// SampleTexture returns the texel under (u, v) with nearest filtering.
// UVs are normalized and wrap. Box-UV skins are pixel art, so texels are not blended.
func SampleTexture(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, 0, 0, 0
	}

	u = u - float64(int(u))
	if u < 0 {
		u += 1.0
	}
	v = v - float64(int(v))
	if v < 0 {
		v += 1.0
	}

	x := int(u * float64(w))
	y := int(v * float64(h))
	if x >= w {
		x = w - 1
	}
	if y >= h {
		y = h - 1
	}

	i := y*tex.Stride + x*4
	pix := tex.Pix
	return pix[i], pix[i+1], pix[i+2], pix[i+3]
}
