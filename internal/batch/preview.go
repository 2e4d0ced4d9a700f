package batch

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/HugoSmits86/nativewebp"

	"gecko-animutils/internal/animation"
	"gecko-animutils/internal/model"
	"gecko-animutils/internal/postprocess"
	"gecko-animutils/internal/raster"
	"gecko-animutils/internal/viewmatrix"
)

// PreviewOptions control Preview.
type PreviewOptions struct {
	Size        int
	Supersample int
	Camera      viewmatrix.Camera
	Texture     *image.NRGBA
}

// Preview renders p under pose at Size×Size pixels.
func Preview(p *model.Project, pose animation.Pose, opts PreviewOptions) *image.NRGBA {
	img := raster.RenderProject(p, pose, raster.Options{
		Size:        opts.Size,
		Supersample: opts.Supersample,
		Camera:      opts.Camera,
		Texture:     opts.Texture,
	})
	if opts.Supersample > 1 {
		img = postprocess.Downsample(img, opts.Size)
	}
	return img
}

// EncodeWebP writes img as a lossless WebP.
func EncodeWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("batch: encode webp: %w", err)
	}
	return nil
}

// WriteWebP saves img to path as a lossless WebP.
func WriteWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("batch: create %s: %w", path, err)
	}
	if err := EncodeWebP(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
