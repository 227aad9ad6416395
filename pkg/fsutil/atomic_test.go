package fsutil_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/md2docx/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.docx")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("hello world"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(got))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, info.Mode().Perm())
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.docx")
		require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new content"), 0644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new content", string(got))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.docx")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.Error(t, fsutil.WriteAtomic(ctx, path, []byte("content"), 0644))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err), "file should not have been created")
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "docs", "out.docx")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("content"), 0))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "content", string(data))
	})

	t.Run("fails when a parent is a file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		err := fsutil.WriteAtomic(context.Background(), filepath.Join(blocker, "out.docx"), []byte("content"), 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create directory")
	})
}

// failingWriterTo writes a little and then fails.
type failingWriterTo struct{}

var errSourceFailed = errors.New("source failed")

func (failingWriterTo) WriteTo(w io.Writer) (int64, error) {
	n, _ := w.Write([]byte("partial"))
	return int64(n), errSourceFailed
}

func TestWriteAtomicFrom(t *testing.T) {
	t.Parallel()

	t.Run("streams writer content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.docx")
		require.NoError(t, fsutil.WriteAtomicFrom(context.Background(), path, strings.NewReader("streamed"), 0644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "streamed", string(got))
	})

	t.Run("leaves original untouched on failure", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.docx")
		require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

		err := fsutil.WriteAtomicFrom(context.Background(), path, failingWriterTo{}, 0644)
		require.ErrorIs(t, err, errSourceFailed)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "original", string(got))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp file should be removed")
	})
}
