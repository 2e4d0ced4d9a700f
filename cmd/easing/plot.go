package main

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"gecko-animutils/internal/easing"
)

var (
	background = color.NRGBA{24, 26, 32, 255}
	gridColor  = color.NRGBA{60, 64, 76, 255}
	palette    = []color.NRGBA{
		{239, 83, 80, 255},
		{102, 187, 106, 255},
		{66, 165, 245, 255},
		{255, 202, 40, 255},
		{171, 71, 188, 255},
		{38, 198, 218, 255},
	}
)

// plotCurves draws each easing over t in [0, 1]. The value axis spans [-0.5, 1.5]
// so back and elastic overshoot stays visible.
func plotCurves(names []string, input string, size int) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	toY := func(v float64) int {
		return int(math.Round(float64(size-1) * (1.5 - v) / 2))
	}
	for x := range size {
		img.SetNRGBA(x, toY(0), gridColor)
		img.SetNRGBA(x, toY(1), gridColor)
	}

	for i, name := range names {
		arg, _ := resolveArg(name, input)
		c := palette[i%len(palette)]
		var prev int
		for x := range size {
			v, err := easing.Evaluate(name, float64(x)/float64(size-1), arg)
			if err != nil {
				return nil, err
			}
			y := toY(v)
			if x == 0 {
				prev = y
			}
			// vertical run joins steep segments
			lo, hi := min(prev, y), max(prev, y)
			for yy := max(lo, 0); yy <= min(hi, size-1); yy++ {
				img.SetNRGBA(x, yy, c)
			}
			prev = y
		}
	}
	return img, nil
}
