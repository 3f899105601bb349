package visualize

import (
	"image"

	"github.com/neurlang/tokenvision/sink"
	"github.com/neurlang/tokenvision/tokens"
)

// Container is the unit of work for one source file. It is filled by
// Render, persisted once, and then dropped.
type Container struct {
	// Name is the output name, the source name with the image extension.
	Name string

	// RawData is the token sequence of the source.
	RawData tokens.Sequence

	// Image is nil until assembled, then holds the resized raster.
	Image *image.RGBA
}

// NewContainer starts the container of the source file called source.
func NewContainer(source string) *Container {
	return &Container{Name: sink.Name(source)}
}
