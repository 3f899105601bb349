// Package ranking turns a model output vector into labelled top-K predictions.
package ranking

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrMissingFile is returned when the label file does not exist.
	ErrMissingFile = errors.New("label file does not exist")

	// ErrTooFewLabels is returned when there are fewer labels than outputs.
	ErrTooFewLabels = errors.New("fewer labels than model outputs")
)

// Prediction is one ranked output.
type Prediction struct {
	Value float32
	Index int
	Label string
}

func (p Prediction) String() string {
	return fmt.Sprintf("%s (%d): %.4f", p.Label, p.Index, p.Value)
}

// ReadLabels reads one label per line.
func ReadLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrMissingFile, "%s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	var labels []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		labels = append(labels, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return labels, nil
}

// TopK returns the k largest values with their index and label, largest
// first. Equal values keep index order and NaN sorts last. k is capped at
// len(values).
func TopK(values []float32, labels []string, k int) ([]Prediction, error) {
	if len(labels) < len(values) {
		return nil, errors.Wrapf(ErrTooFewLabels, "%d labels for %d outputs", len(labels), len(values))
	}
	if k > len(values) {
		k = len(values)
	}
	if k <= 0 {
		return nil, nil
	}
	out := make([]Prediction, len(values))
	for i, v := range values {
		out[i] = Prediction{Value: v, Index: i, Label: labels[i]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := float64(out[i].Value), float64(out[j].Value)
		if math.IsNaN(a) || math.IsNaN(b) {
			return !math.IsNaN(a) && math.IsNaN(b)
		}
		return a > b
	})
	return out[:k], nil
}
