package renderer

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/Akaiko1/digit-viewer/internal/dataset"
)

// SampleRenderer turns a normalized sample into the image shown on screen.
type SampleRenderer interface {
	Render(sample *image.Gray) *image.Gray
	Blank() *image.Gray
}

// StandardSampleRenderer upscales samples to Size×Size with a cubic filter and inverts them,
// so dark ink on a light background is shown light on dark.
type StandardSampleRenderer struct {
	Size int
}

// NewSampleRenderer creates a StandardSampleRenderer for size×size output.
func NewSampleRenderer(size int) *StandardSampleRenderer {
	return &StandardSampleRenderer{Size: size}
}

// Render upscales and inverts sample. The sample itself is not modified.
func (r *StandardSampleRenderer) Render(sample *image.Gray) *image.Gray {
	return Invert(Upscale(sample, r.Size))
}

// Blank returns an all-white Size×Size placeholder.
func (r *StandardSampleRenderer) Blank() *image.Gray {
	return dataset.ToGray(imaging.New(r.Size, r.Size, color.White))
}

// Upscale resizes img to size×size using Catmull-Rom interpolation.
func Upscale(img *image.Gray, size int) *image.Gray {
	return dataset.ToGray(imaging.Resize(img, size, size, imaging.CatmullRom))
}

// Invert maps every intensity v to 255-v. Invert(Invert(img)) equals img.
func Invert(img *image.Gray) *image.Gray {
	return dataset.ToGray(imaging.Invert(img))
}
