package sink

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Dir writes PNG files into a directory, creating it when absent.
type Dir struct {
	root string
}

// NewDir returns a sink writing into root.
func NewDir(root string) (*Dir, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("output directory is required")
	}
	return &Dir{root: root}, nil
}

// Save writes img as root/name. The file appears atomically.
func (d *Dir) Save(ctx context.Context, name string, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" || filepath.Base(name) != name {
		return errors.Errorf("invalid output name %q", name)
	}
	data, err := encode(img)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return errors.Wrapf(err, "creating output directory %s", d.root)
	}
	tmp, err := os.CreateTemp(d.root, "."+name+".*")
	if err != nil {
		return errors.Wrapf(err, "creating temp file for %s", name)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "writing %s", name)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", name)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(d.root, name)); err != nil {
		return errors.Wrapf(err, "renaming %s", name)
	}
	return nil
}
