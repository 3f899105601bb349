package inference

import "bytes"
import "context"
import "path/filepath"
import "testing"

import "github.com/pkg/errors"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/neurlang/tokenvision/hashtron"

func testModel(t *testing.T, size, classes int) *Model {
	t.Helper()
	m := &Model{Width: size, Height: size, Premodulo: 1 << 12}
	for c := 0; c < classes; c++ {
		var trons []hashtron.Hashtron
		for k := 0; k < 3; k++ {
			h, err := hashtron.New([][2]uint32{{uint32(c*31 + k), 1 << 16}}, 1)
			require.NoError(t, err)
			trons = append(trons, *h)
		}
		m.Classes = append(m.Classes, trons)
	}
	return m
}

func testInput(size int) []byte {
	in := make([]byte, size*size)
	for i := range in {
		in[i] = byte(i * 7)
	}
	return in
}

func TestModelSaveLoad(t *testing.T) {
	m := testModel(t, 8, 3)
	name := filepath.Join(t.TempDir(), "model.json.lzw")
	require.NoError(t, m.Save(name))

	loaded, err := Load(name)
	require.NoError(t, err)

	w, h := loaded.InputDims()
	assert.Equal(t, 8, w)
	assert.Equal(t, 8, h)
	assert.Equal(t, 3, loaded.OutputDims())

	want, err := m.Evaluate(context.Background(), testInput(8))
	require.NoError(t, err)
	got, err := loaded.Evaluate(context.Background(), testInput(8))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json.lzw"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingFile))
	assert.Contains(t, err.Error(), "absent.json.lzw")
}

func TestReadInvalidModel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Model{Width: 4, Height: 4}).Write(&buf))
	_, err := Read(&buf)
	assert.True(t, errors.Is(err, ErrInvalidModel))
}

func TestEvaluate(t *testing.T) {
	m := testModel(t, 6, 4)
	m.SetWorkers(2)
	out, err := m.Evaluate(context.Background(), testInput(6))
	require.NoError(t, err)
	require.Len(t, out, 4)
	for c, v := range out {
		assert.True(t, v >= 0 && v <= 1, "class %d value %f out of range", c, v)
	}

	again, err := m.Evaluate(context.Background(), testInput(6))
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestDimensionMismatch(t *testing.T) {
	m := testModel(t, 6, 2)
	assert.NoError(t, m.CheckInput(6))
	assert.True(t, errors.Is(m.CheckInput(224), ErrDimensionMismatch))

	_, err := m.Evaluate(context.Background(), testInput(5))
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestEvaluateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testModel(t, 6, 2).Evaluate(ctx, testInput(6))
	assert.Error(t, err)
}

func TestWorkers(t *testing.T) {
	assert.True(t, Workers() >= 1)
	assert.Contains(t, CPUFields(), "threads")
}
