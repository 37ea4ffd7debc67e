package minio

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/embedq/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-embedq"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	_, err = client.ListBuckets(ctx)
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	// Ensure bucket exists
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
		require.NoError(t, err)
	}

	store := NewStore(client, bucket, "test-prefix/")

	// The store is read-only; seed the object through the raw client.
	data := []byte("hello minio world")
	_, err = client.PutObject(ctx, bucket, "test-prefix/emb.npy",
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	require.NoError(t, err)
	defer func() {
		_ = client.RemoveObject(ctx, bucket, "test-prefix/emb.npy", minio.RemoveObjectOptions{})
	}()

	// Open reports the object size
	blob, err := store.Open(ctx, "emb.npy")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	// Full read
	buf := make([]byte, len(data))
	n, err := blob.ReadAt(buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, buf)

	// Tail read past the end clamps and reports EOF with the short count
	tail := make([]byte, 10)
	n, err = blob.ReadAt(tail, int64(len(data)-5))
	assert.Equal(t, 5, n)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, data[len(data)-5:], tail[:n])
	require.NoError(t, blob.Close())

	// DownloadTo fetches the full object for local mmap use
	dest := filepath.Join(t.TempDir(), "emb.npy")
	require.NoError(t, store.DownloadTo(ctx, "emb.npy", dest))
	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// Missing objects map to the store sentinel
	_, err = store.Open(ctx, "missing.npy")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
