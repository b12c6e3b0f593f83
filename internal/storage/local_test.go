package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocal(t *testing.T) {
	t.Run("creates missing root", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "nested", "root")
		_, err := NewLocal(root)
		require.NoError(t, err)

		info, err := os.Stat(root)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("empty root rejected", func(t *testing.T) {
		_, err := NewLocal("")
		assert.Error(t, err)
	})
}

func TestLocalStorage_PutOpenRoundTrip(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root)
	require.NoError(t, err)

	ctx := context.Background()
	content := []byte("%PDF-1.4 fake body")

	n, err := store.Put(ctx, "companies/42/documents/abc.pdf", bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), n)

	rc, err := store.Open(ctx, "companies/42/documents/abc.pdf")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestLocalStorage_PutLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root)
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "companies/1/documents/x.png", bytes.NewReader([]byte("png")))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(root, "companies", "1", "documents"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "x.png", entries[0].Name())
}

func TestLocalStorage_KeyValidation(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	bad := []string{
		"",
		"/etc/passwd",
		"companies/../../etc/passwd",
		"..",
		`companies\1\doc.pdf`,
	}
	for _, key := range bad {
		_, err := store.Put(ctx, key, bytes.NewReader([]byte("x")))
		assert.Error(t, err, "key %q should be rejected", key)

		_, err = store.Open(ctx, key)
		assert.Error(t, err, "key %q should be rejected", key)
	}
}

func TestLocalStorage_OpenMissing(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "companies/9/documents/gone.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLocalStorage_Remove(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Put(ctx, "companies/3/documents/y.jpg", bytes.NewReader([]byte("jpg")))
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, "companies/3/documents/y.jpg"))
	_, err = os.Stat(filepath.Join(root, "companies", "3", "documents", "y.jpg"))
	assert.True(t, os.IsNotExist(err))

	// absent key is not an error
	assert.NoError(t, store.Remove(ctx, "companies/3/documents/y.jpg"))
}
