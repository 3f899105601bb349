package visualize

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/tokenvision/raster"
	"github.com/neurlang/tokenvision/sink"
	"github.com/neurlang/tokenvision/tokens"
)

type memorySink struct {
	mu     sync.Mutex
	images map[string]image.Image
}

func (m *memorySink) Save(_ context.Context, name string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.images == nil {
		m.images = map[string]image.Image{}
	}
	m.images[name] = img
	return nil
}

const source = "package p\n\nfunc f(a, b int) int {\n\treturn a*b + 1\n}\n"

func writeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a.go":      source,
		"b.go":      source,
		"bad.go":    "x := 'never closed",
		"empty.go":  "// only a comment\n",
		"notes.txt": "plain words here",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.go"), 0o755))
	return dir
}

func TestRun(t *testing.T) {
	for _, workers := range []int{1, 3} {
		dir := writeTree(t)
		out := &memorySink{}
		logger, hook := logtest.NewNullLogger()
		v, err := New(out, Options{Ext: ".go", Workers: workers, CacheSize: 8}, logger)
		require.NoError(t, err)

		report, err := v.Run(context.Background(), dir)
		require.NoError(t, err)

		assert.Equal(t, 2, report.Written)
		require.Len(t, report.Failed, 2)
		assert.True(t, errors.Is(report.Failed[filepath.Join(dir, "bad.go")], tokens.ErrParse))
		assert.True(t, errors.Is(report.Failed[filepath.Join(dir, "empty.go")], raster.ErrEmptySequence))
		assert.Error(t, report.Err())

		require.Len(t, out.images, 2)
		for _, name := range []string{"a.go.png", "b.go.png"} {
			img := out.images[name]
			require.NotNil(t, img, name)
			assert.Equal(t, image.Rect(0, 0, raster.CanonicalSize, raster.CanonicalSize), img.Bounds())
		}
		assert.Equal(t, out.images["a.go.png"], out.images["b.go.png"])

		var warnings int
		for _, e := range hook.AllEntries() {
			if e.Level == logrus.WarnLevel {
				warnings++
			}
		}
		assert.Equal(t, 2, warnings)
	}
}

func TestRunAllFiles(t *testing.T) {
	dir := writeTree(t)
	out := &memorySink{}
	logger, _ := logtest.NewNullLogger()
	v, err := New(out, Options{Size: 32}, logger)
	require.NoError(t, err)

	report, err := v.Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Written)
	assert.Contains(t, out.images, "notes.txt.png")
	assert.Equal(t, 32, out.images["notes.txt.png"].Bounds().Dx())
}

func TestRunWritesFiles(t *testing.T) {
	dir := writeTree(t)
	outDir := filepath.Join(t.TempDir(), "images")
	d, err := sink.NewDir(outDir)
	require.NoError(t, err)
	logger, _ := logtest.NewNullLogger()
	v, err := New(d, Options{Ext: ".go"}, logger)
	require.NoError(t, err)

	report, err := v.Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Written)
	assert.FileExists(t, filepath.Join(outDir, "a.go.png"))
	assert.FileExists(t, filepath.Join(outDir, "b.go.png"))
	assert.NoFileExists(t, filepath.Join(outDir, "bad.go.png"))
}

func TestRunMissingDir(t *testing.T) {
	v, err := New(&memorySink{}, Options{}, nil)
	require.NoError(t, err)
	_, err = v.Run(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.True(t, errors.Is(err, ErrMissingDir))
}

func TestRenderDeterministic(t *testing.T) {
	v, err := New(&memorySink{}, Options{}, nil)
	require.NoError(t, err)
	first, err := v.Render("a.go", []byte(source))
	require.NoError(t, err)
	second, err := v.Render("a.go", []byte(source))
	require.NoError(t, err)

	assert.Equal(t, "a.go.png", first.Name)
	assert.Equal(t, first.RawData, second.RawData)
	assert.Equal(t, first.Image.Pix, second.Image.Pix)
	assert.NotSame(t, first.Image, second.Image)
}

func TestRenderCacheKeyedByOptions(t *testing.T) {
	fixed := raster.FixedRange()
	a, err := New(&memorySink{}, Options{CacheSize: 4}, nil)
	require.NoError(t, err)
	b, err := New(&memorySink{}, Options{CacheSize: 4, Encode: raster.Options{Range: &fixed}}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.cacheKey([]byte(source)), b.cacheKey([]byte(source)))

	first, err := a.Render("a.go", []byte(source))
	require.NoError(t, err)
	cached, err := a.Render("copy.go", []byte(source))
	require.NoError(t, err)
	assert.Equal(t, first.Image.Pix, cached.Image.Pix)
	assert.NotSame(t, first.Image, cached.Image)
	assert.Equal(t, "copy.go.png", cached.Name)

	// a container mutating its image must not leak into later renders
	want := append([]byte(nil), first.Image.Pix...)
	for i := range cached.Image.Pix {
		cached.Image.Pix[i] = 0
	}
	again, err := a.Render("third.go", []byte(source))
	require.NoError(t, err)
	assert.Equal(t, want, again.Image.Pix)
	assert.Equal(t, want, first.Image.Pix)
}

func TestRunCancelled(t *testing.T) {
	dir := writeTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	v, err := New(&memorySink{}, Options{}, nil)
	require.NoError(t, err)
	_, err = v.Run(ctx, dir)
	assert.Error(t, err)
}

func TestStopwatch(t *testing.T) {
	sw := StartStopwatch()
	assert.True(t, sw.Lap() >= 0)
	assert.True(t, sw.Elapsed() >= 0)
}
