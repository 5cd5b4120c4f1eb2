package recordsource

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	names := []string{"b.stack", "a.stack", "c.tif", "d.stack.gz", "notes.txt"}

	t.Run("ExtFilterAndSort", func(t *testing.T) {
		got := Select(names, NewOptions(WithExt("stack")))
		assert.Equal(t, []string{"a.stack", "b.stack", "d.stack.gz"}, got)
	})

	t.Run("ExtWithDot", func(t *testing.T) {
		got := Select(names, NewOptions(WithExt(".tif")))
		assert.Equal(t, []string{"c.tif"}, got)
	})

	t.Run("Range", func(t *testing.T) {
		got := Select(names, NewOptions(WithExt("stack"), WithRange(1, 2)))
		assert.Equal(t, []string{"b.stack"}, got)
	})

	t.Run("OpenEndedRange", func(t *testing.T) {
		got := Select(names, NewOptions(WithExt("stack"), WithRange(1, -1)))
		assert.Equal(t, []string{"b.stack", "d.stack.gz"}, got)
	})

	t.Run("ClampedRange", func(t *testing.T) {
		got := Select(names, NewOptions(WithExt("stack"), WithRange(0, 100)))
		assert.Len(t, got, 3)

		got = Select(names, NewOptions(WithExt("stack"), WithRange(5, 6)))
		assert.Empty(t, got)
	})

	t.Run("NoFilter", func(t *testing.T) {
		got := Select(names, NewOptions())
		assert.Len(t, got, 5)
	})
}

func TestLocal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.stack"), []byte("bbb"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.stack"), []byte("aaa"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "c.stack"), []byte("ccc"), 0o644))

	ctx := context.Background()

	t.Run("Flat", func(t *testing.T) {
		set, err := NewLocal(dir, WithExt("stack")).Open(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, set.Len())

		rec, err := set.Record(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, rec.Position)
		assert.Equal(t, "a.stack", rec.Name)
		assert.Equal(t, []byte("aaa"), rec.Buffer)

		rec, err = set.Record(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []byte("bbb"), rec.Buffer)
	})

	t.Run("Recursive", func(t *testing.T) {
		set, err := NewLocal(dir, WithExt("stack"), WithRecursive()).Open(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, set.Len())

		rec, err := set.Record(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "sub/c.stack", rec.Name)
		assert.Equal(t, []byte("ccc"), rec.Buffer)
	})

	t.Run("Sliced", func(t *testing.T) {
		set, err := NewLocal(dir, WithExt("stack"), WithRange(1, 2)).Open(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, set.Len())

		// Positions are reassigned densely after slicing.
		rec, err := set.Record(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, rec.Position)
		assert.Equal(t, "b.stack", rec.Name)
	})
}

func TestLocal_Decompression(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte("stackdata"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.stack.gz"), buf.Bytes(), 0o644))

	set, err := NewLocal(dir, WithExt("stack")).Open(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())

	rec, err := set.Record(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "a.stack", rec.Name)
	assert.Equal(t, []byte("stackdata"), rec.Buffer)
}

func TestMemory(t *testing.T) {
	src := NewMemory(WithExt("stack"))
	src.Put("b.stack", []byte{2})
	src.Put("a.stack", []byte{1})
	src.Put("readme.md", []byte{0})

	set, err := src.Open(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	rec, err := set.Record(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "a.stack", rec.Name)
	assert.Equal(t, []byte{1}, rec.Buffer)

	// Records must not alias the stored buffer.
	rec.Buffer[0] = 99
	again, err := set.Record(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, again.Buffer)
}
