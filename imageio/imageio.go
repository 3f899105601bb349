// Package imageio loads images as model input.
package imageio

import (
	"image"
	_ "image/gif"  // registers gif
	_ "image/jpeg" // registers jpeg
	_ "image/png"  // registers png
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// ErrMissingFile is returned when the image does not exist.
var ErrMissingFile = errors.New("image file does not exist")

var extensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// IsImage reports whether name has an image extension Load can decode.
func IsImage(name string) bool {
	return extensions[strings.ToLower(filepath.Ext(name))]
}

// Decode opens and decodes the image at path.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrMissingFile, "%s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return img, nil
}

// Gray scales img to width x height and returns its row-major grayscale
// bytes.
func Gray(img image.Image, width, height int) []byte {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Rect, img, img.Bounds(), draw.Over, nil)

	out := make([]byte, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := dst.RGBAAt(x, y)
			gray := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
			out = append(out, byte(gray+0.5))
		}
	}
	return out
}

// Load decodes the image at path as width x height grayscale model input.
func Load(path string, width, height int) ([]byte, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return Gray(img, width, height), nil
}

// List returns the image files of dir in directory order. A path to a
// single image is returned as is.
func List(path string) ([]string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrMissingFile, "%s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "inspecting %s", path)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", path)
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && IsImage(e.Name()) {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	return files, nil
}
