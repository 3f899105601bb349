package raster

import (
	"image/color"
	"math"

	"github.com/neurlang/tokenvision/tokens"
)

// Upscale is the 16 bit product space codes are scaled into before the
// high and low bytes are split into channels.
const Upscale = 255 * 255

// Neutral is written for every cell when the range has zero width.
var Neutral = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// Range bounds the codes that are normalized into colours.
type Range struct {
	Min, Max int
}

// Width is Max - Min.
func (r Range) Width() int {
	return r.Max - r.Min
}

// DeriveRange returns the smallest and largest code of seq.
func DeriveRange(seq tokens.Sequence) Range {
	if len(seq) == 0 {
		return Range{}
	}
	r := Range{Min: seq[0], Max: seq[0]}
	for _, v := range seq[1:] {
		if v < r.Min {
			r.Min = v
		}
		if v > r.Max {
			r.Max = v
		}
	}
	return r
}

// FixedRange covers every code the grammar produces.
func FixedRange() Range {
	return Range{Min: tokens.MinCode, Max: tokens.MaxCode}
}

// Colorize maps code v to a colour. The scaled code's high byte is red, the
// low byte is green and blue is 255*|sin(red*green)|.
func Colorize(v int, r Range) color.RGBA {
	if r.Width() == 0 {
		return Neutral
	}
	scaled := int(float64(v-r.Min) * (float64(Upscale) / float64(r.Width())))
	red := clamp(scaled >> 8)
	green := clamp(scaled & 0xff)
	blue := clamp(int(255 * math.Abs(math.Sin(float64(red*green)))))
	return color.RGBA{R: uint8(red), G: uint8(green), B: uint8(blue), A: 255}
}

func clamp(c int) int {
	if c < 0 {
		return 0
	}
	if c > 255 {
		return 255
	}
	return c
}
