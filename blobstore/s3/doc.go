// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", s3.WithPrefix("embeddings/"))
//	if err != nil { ... }
//
//	report, err := embedq.Run(ctx, cfg, embedq.WithStore(store))
//
// # Features
//
//   - Range reads for partial fetches (NPY header probing)
//   - Parallel multipart download to a local file for the full matrix
//   - Configurable prefix for multi-tenant isolation
package s3
