// Package raster encodes a token-kind sequence into a square RGB bitmap.
//
// The raster side is ceil(sqrt(N)). Every cell (x, y) reads the sequence
// index given by the layout. Cells whose index falls past the end of the
// sequence keep the background colour.
package raster

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

var (
	// ErrEmptySequence is returned for a sequence without tokens.
	ErrEmptySequence = errors.New("empty token sequence")

	// ErrInconsistentGeometry is returned when a raster cannot hold the sequence.
	ErrInconsistentGeometry = errors.New("raster too small for sequence")
)

// Layout maps a raster cell to a sequence index.
type Layout int

const (
	// LegacyLayout reads index y*x + x. It is neither injective nor
	// surjective: some indexes land on several cells, some on none.
	LegacyLayout Layout = iota

	// RowMajorLayout reads index y*dim + x and visits every index.
	RowMajorLayout
)

// Index returns the sequence index read by cell (x, y) of a dim x dim raster.
func (l Layout) Index(x, y, dim int) int {
	if l == RowMajorLayout {
		return y*dim + x
	}
	return y*x + x
}

func (l Layout) String() string {
	switch l {
	case LegacyLayout:
		return "legacy"
	case RowMajorLayout:
		return "rowmajor"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// ParseLayout parses the String form of a layout.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "legacy", "":
		return LegacyLayout, nil
	case "rowmajor":
		return RowMajorLayout, nil
	}
	return 0, errors.Errorf("unknown layout %q", s)
}

// Dim returns the side of the square raster for n tokens, ceil(sqrt(n)).
func Dim(n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmptySequence
	}
	dim := int(math.Ceil(math.Sqrt(float64(n))))
	// float rounding can overshoot by one for large n
	if dim > 1 && (dim-1)*(dim-1) >= n {
		dim--
	}
	if err := checkGeometry(n, dim); err != nil {
		return 0, err
	}
	return dim, nil
}

// checkGeometry verifies a dim x dim raster holds n tokens.
func checkGeometry(n, dim int) error {
	if dim*dim < n {
		return errors.Wrapf(ErrInconsistentGeometry, "dim %d for %d tokens", dim, n)
	}
	return nil
}

// Coverage returns the sequence indexes below n that no cell of a dim x dim
// raster reads, in ascending order.
func Coverage(n, dim int, l Layout) (unreached []int) {
	var seen = make([]bool, n)
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			if i := l.Index(x, y, dim); i < n {
				seen[i] = true
			}
		}
	}
	for i, ok := range seen {
		if !ok {
			unreached = append(unreached, i)
		}
	}
	return unreached
}
