package inference

import "compress/lzw"
import "encoding/json"
import "io"
import "os"

import "github.com/pkg/errors"
import "github.com/neurlang/tokenvision/hashtron"

var (
	// ErrMissingFile is returned when the model file does not exist.
	ErrMissingFile = errors.New("model file does not exist")

	// ErrDimensionMismatch is returned when the model input size differs from
	// the size the caller expects, or the input buffer has the wrong size.
	ErrDimensionMismatch = errors.New("model dimension mismatch")

	// ErrInvalidModel is returned when a decoded model is not usable.
	ErrInvalidModel = errors.New("invalid model")
)

// Model is a hashtron classifier over grayscale images. Each class owns a
// slice of hashtrons voting on the 2x2 pixel window features of the input.
type Model struct {
	Width     int                   `json:"width"`
	Height    int                   `json:"height"`
	Premodulo uint32                `json:"premodulo,omitempty"`
	Classes   [][]hashtron.Hashtron `json:"classes"`

	workers int
}

// Validate checks the model shape.
func (m *Model) Validate() error {
	if m.Width < 2 || m.Height < 2 {
		return errors.Wrapf(ErrInvalidModel, "input %dx%d is smaller than 2x2", m.Width, m.Height)
	}
	if len(m.Classes) == 0 {
		return errors.Wrap(ErrInvalidModel, "no output classes")
	}
	for c, trons := range m.Classes {
		if len(trons) == 0 {
			return errors.Wrapf(ErrInvalidModel, "class %d has no hashtrons", c)
		}
	}
	return nil
}

// Load reads a model from a lzw compressed json file
func Load(name string) (*Model, error) {
	if _, err := os.Stat(name); os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrMissingFile, "%s", name)
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "opening model %s", name)
	}
	defer file.Close()

	m, err := Read(file)
	if err != nil {
		return nil, errors.Wrapf(err, "reading model %s", name)
	}
	return m, nil
}

// Read reads a model from a lzw compressed json stream
func Read(r io.Reader) (*Model, error) {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()

	var m Model
	if err := json.NewDecoder(lr).Decode(&m); err != nil {
		return nil, errors.Wrap(err, "decoding model")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Save writes the model to a lzw compressed json file
func (m *Model) Save(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "creating model %s", name)
	}
	err = m.Write(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// Write writes the model to a writer
func (m *Model) Write(w io.Writer) error {
	lw := lzw.NewWriter(w, lzw.LSB, 8)
	if err := json.NewEncoder(lw).Encode(m); err != nil {
		lw.Close()
		return errors.Wrap(err, "encoding model")
	}
	return lw.Close()
}
