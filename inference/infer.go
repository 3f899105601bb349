// Package inference implements the model evaluator used by image classification.
package inference

import "context"
import "sync"

import "github.com/pkg/errors"
import "github.com/neurlang/tokenvision/hash"
import "github.com/neurlang/tokenvision/parallel"

// Evaluator is the narrow contract image classification relies on.
type Evaluator interface {
	// InputDims reports the expected input width and height.
	InputDims() (width, height int)

	// OutputDims reports the length of the output vector.
	OutputDims() int

	// Evaluate runs the model on a row-major grayscale input.
	Evaluate(ctx context.Context, input []byte) ([]float32, error)
}

var _ Evaluator = (*Model)(nil)

// InputDims reports the expected input width and height.
func (m *Model) InputDims() (width, height int) {
	return m.Width, m.Height
}

// OutputDims reports the number of classes.
func (m *Model) OutputDims() int {
	return len(m.Classes)
}

// CheckInput returns ErrDimensionMismatch unless the model takes a size x size input.
func (m *Model) CheckInput(size int) error {
	if m.Width != size || m.Height != size {
		return errors.Wrapf(ErrDimensionMismatch, "model input is %dx%d, expected %dx%d",
			m.Width, m.Height, size, size)
	}
	return nil
}

// Features returns the number of 2x2 window features of an input.
func (m *Model) Features() int {
	return (m.Width - 1) * (m.Height - 1)
}

// feature packs the n-th 2x2 pixel window into one uint32.
func (m *Model) feature(input []byte, n int) uint32 {
	x := n % (m.Width - 1)
	y := n / (m.Width - 1)
	p := y*m.Width + x
	return uint32(input[p]) | uint32(input[p+1])<<8 | uint32(input[p+m.Width])<<16 | uint32(input[p+1+m.Width])<<24
}

// Evaluate returns, for each class, the fraction of features on which the
// class hashtrons fire.
func (m *Model) Evaluate(ctx context.Context, input []byte) ([]float32, error) {
	if len(input) != m.Width*m.Height {
		return nil, errors.Wrapf(ErrDimensionMismatch, "input has %d pixels, model takes %dx%d",
			len(input), m.Width, m.Height)
	}
	var features = m.Features()
	var out = make([]float32, len(m.Classes))
	var mu sync.Mutex
	var failed error

	err := parallel.ForEachContext(ctx, len(m.Classes), m.limit(), func(c int) {
		defer func() {
			if r := recover(); r != nil {
				mu.Lock()
				failed = errors.Errorf("class %d: %v", c, r)
				mu.Unlock()
			}
		}()
		var trons = m.Classes[c]
		var votes int
		for n := 0; n < features; n++ {
			feat := hash.Premodulo(m.feature(input, n), n, m.Premodulo)
			if trons[n%len(trons)].Forward(feat, false)&1 != 0 {
				votes++
			}
		}
		out[c] = float32(votes) / float32(features)
	})
	if err != nil {
		return nil, errors.Wrap(err, "evaluation interrupted")
	}
	if failed != nil {
		return nil, errors.Wrap(failed, "evaluation failed")
	}
	return out, nil
}
