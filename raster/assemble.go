package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/neurlang/tokenvision/tokens"
)

// Background fills cells no token is written to.
var Background = color.RGBA{A: 255}

// Options select how a sequence is drawn.
type Options struct {
	Layout Layout

	// Range normalizes codes. Nil derives it from the sequence.
	Range *Range
}

// Encode draws seq into a dim x dim raster, dim = ceil(sqrt(len(seq))).
func Encode(seq tokens.Sequence, opts Options) (*image.RGBA, error) {
	dim, err := Dim(len(seq))
	if err != nil {
		return nil, err
	}
	r := DeriveRange(seq)
	if opts.Range != nil {
		r = *opts.Range
	}

	img := image.NewRGBA(image.Rect(0, 0, dim, dim))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			i := opts.Layout.Index(x, y, dim)
			if i >= len(seq) {
				continue
			}
			img.SetRGBA(x, y, Colorize(seq[i], r))
		}
	}
	return img, nil
}
