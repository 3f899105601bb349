// Package visualize drives the source-to-image pipeline over a directory.
package visualize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/neurlang/tokenvision/parallel"
	"github.com/neurlang/tokenvision/raster"
	"github.com/neurlang/tokenvision/sink"
	"github.com/neurlang/tokenvision/tokens"
)

// ErrMissingDir is returned when the input directory does not exist.
var ErrMissingDir = errors.New("input directory does not exist")

// Options configure a Visualizer.
type Options struct {
	Encode raster.Options

	// Size is the side of the persisted image, raster.CanonicalSize if zero.
	Size int

	// Ext keeps only files with this extension when set, e.g. ".go".
	Ext string

	// Workers processes that many files at once. Below 2 files are
	// processed one after another in directory order.
	Workers int

	// CacheSize is the number of rendered images kept for identical
	// sources. Zero disables the cache.
	CacheSize int
}

// Report summarizes a Run.
type Report struct {
	Written int
	Failed  map[string]error
	Elapsed time.Duration
}

// Err returns an error naming the failed files, or nil.
func (r Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	var names []string
	for name := range r.Failed {
		names = append(names, name)
	}
	sort.Strings(names)
	return errors.Errorf("%d files failed: %s", len(names), strings.Join(names, ", "))
}

// Visualizer renders source files and hands the images to a sink.
type Visualizer struct {
	sink  sink.Sink
	opts  Options
	cache *lru.Cache[string, *image.RGBA]
	log   logrus.FieldLogger
}

// New creates a Visualizer writing to s.
func New(s sink.Sink, opts Options, log logrus.FieldLogger) (*Visualizer, error) {
	if s == nil {
		return nil, errors.New("sink is required")
	}
	if opts.Size <= 0 {
		opts.Size = raster.CanonicalSize
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	v := &Visualizer{sink: s, opts: opts, log: log}
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, *image.RGBA](opts.CacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "creating render cache")
		}
		v.cache = cache
	}
	return v, nil
}

func (v *Visualizer) cacheKey(src []byte) string {
	sum := sha256.Sum256(src)
	var r = "derived"
	if v.opts.Encode.Range != nil {
		r = fmt.Sprintf("%d:%d", v.opts.Encode.Range.Min, v.opts.Encode.Range.Max)
	}
	return fmt.Sprintf("%s/%s/%s/%d", hex.EncodeToString(sum[:]), v.opts.Encode.Layout, r, v.opts.Size)
}

// Render tokenizes src and fills a container with the resized image.
func (v *Visualizer) Render(source string, src []byte) (*Container, error) {
	c := NewContainer(source)

	seq, err := tokens.Extract(source, src)
	if err != nil {
		return nil, err
	}
	c.RawData = seq

	var key string
	if v.cache != nil {
		key = v.cacheKey(src)
		if img, ok := v.cache.Get(key); ok {
			c.Image = cloneRGBA(img)
			return c, nil
		}
	}

	img, err := raster.Encode(c.RawData, v.opts.Encode)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", source)
	}
	c.Image = img
	c.Image = raster.Resize(c.Image, v.opts.Size)

	if v.cache != nil {
		v.cache.Add(key, cloneRGBA(c.Image))
	}
	return c, nil
}

// cloneRGBA copies img so cached rasters are never owned by a container.
func cloneRGBA(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Rect)
	copy(out.Pix, img.Pix)
	return out
}

// Process renders the file at path and saves it.
func (v *Visualizer) Process(ctx context.Context, sw *Stopwatch, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	c, err := v.Render(filepath.Base(path), src)
	if err != nil {
		return err
	}
	if err := v.sink.Save(ctx, c.Name, c.Image); err != nil {
		return errors.Wrapf(err, "saving %s", c.Name)
	}
	v.log.WithFields(logrus.Fields{
		"file":    path,
		"tokens":  len(c.RawData),
		"output":  c.Name,
		"elapsed": sw.Lap(),
	}).Debug("visualized")
	return nil
}

// Files lists the regular files of dir in directory order.
func (v *Visualizer) Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrMissingDir, "%s", dir)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", dir)
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if v.opts.Ext != "" && filepath.Ext(e.Name()) != v.opts.Ext {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// Run visualizes every file of dir. A file that fails is logged and
// recorded in the report, and the remaining files are still processed.
func (v *Visualizer) Run(ctx context.Context, dir string) (Report, error) {
	sw := StartStopwatch()
	report := Report{Failed: map[string]error{}}

	files, err := v.Files(dir)
	if err != nil {
		return report, err
	}

	var mu sync.Mutex
	err = parallel.ForEachContext(ctx, len(files), v.opts.Workers, func(i int) {
		err := v.Process(ctx, sw, files[i])

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			v.log.WithField("file", files[i]).WithError(err).Warn("skipping file")
			report.Failed[files[i]] = err
			return
		}
		report.Written++
	})
	report.Elapsed = sw.Elapsed()
	if err != nil {
		return report, errors.Wrap(err, "visualization interrupted")
	}
	v.log.WithFields(logrus.Fields{
		"dir":     dir,
		"written": report.Written,
		"failed":  len(report.Failed),
		"elapsed": report.Elapsed,
	}).Info("visualization finished")
	return report, nil
}
