package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// CanonicalSize is the side every visualization is resized to.
const CanonicalSize = 224

// Resize scales img to size x size with Catmull-Rom interpolation.
func Resize(img image.Image, size int) *image.RGBA {
	if size <= 0 {
		size = CanonicalSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Rect, img, img.Bounds(), draw.Src, nil)
	return dst
}
