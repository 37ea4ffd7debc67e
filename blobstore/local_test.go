package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_OpenRead(t *testing.T) {
	dir := t.TempDir()
	content := []byte("raw matrix bytes")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "emb.npy"), content, 0o644))

	store := NewLocalStore(dir)
	blob, err := store.Open(context.Background(), "emb.npy")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(len(content)), blob.Size())

	buf := make([]byte, 3)
	n, err := blob.ReadAt(buf, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "mat", string(buf))

	// Local blobs support zero-copy access.
	m, ok := blob.(Mappable)
	require.True(t, ok)
	data, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestLocalStore_OpenMissing(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	_, err := store.Open(context.Background(), "nope.npy")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestContents(t *testing.T) {
	store := NewMemoryStore()
	store.Put("a", []byte{1, 2, 3, 4})

	blob, err := store.Open(context.Background(), "a")
	require.NoError(t, err)
	defer blob.Close()

	data, err := Contents(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, data)
}

func TestLocalBlob_ReadAtBounds(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.bin"), []byte{9, 8, 7}, 0o644))

	store := NewLocalStore(dir)
	blob, err := store.Open(context.Background(), "b.bin")
	require.NoError(t, err)
	defer blob.Close()

	buf := make([]byte, 8)
	n, err := blob.ReadAt(buf, 1)
	assert.Equal(t, 2, n)
	assert.Equal(t, io.EOF, err)

	n, err = blob.ReadAt(buf, 99)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}
