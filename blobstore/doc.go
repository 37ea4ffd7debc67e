// Package blobstore provides read-only storage abstraction for embedding inputs.
//
// Raw embedding tables are produced elsewhere (training jobs, model dumps)
// and commonly land either on the local filesystem or in object storage.
// BlobStore abstracts both so the loader does not care where the matrix
// came from.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap support (zero-copy)
//   - MemoryStore: In-memory store for tests
//   - s3.Store: Amazon S3 with range reads
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error) // Open for reading
//	}
//
// Local blobs additionally implement Mappable for zero-copy access.
package blobstore
