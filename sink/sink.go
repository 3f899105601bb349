// Package sink persists finished visualizations.
package sink

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"github.com/pkg/errors"
)

// Ext is the extension appended to every output name.
const Ext = ".png"

// Sink stores an image under a name.
type Sink interface {
	Save(ctx context.Context, name string, img image.Image) error
}

// Name derives the output name of a source file, "main.go" -> "main.go.png".
func Name(source string) string {
	return source + Ext
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "encoding png")
	}
	return buf.Bytes(), nil
}
