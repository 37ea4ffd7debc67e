// Package embedq converts float32 embedding matrices into compact
// quantized tables: PCA down to a fixed target dimensionality, per-row
// symmetric 8-bit quantization, and a minimal little-endian file format
// that runtimes can load with a single mmap.
//
// # Pipeline
//
// One call runs the whole batch conversion:
//
//	cfg := embedq.Config{
//	    Input:     "embeddings.npy",
//	    Output:    "embeddings_64d_q8.bin",
//	    TargetDim: 64,
//	}
//	report, err := embedq.Run(ctx, cfg)
//
// The three stages are exposed as separate packages for direct use:
//
//   - npy: zero-copy loader for NPY float32 matrices
//   - pca: whole-matrix PCA fit and projection
//   - quantization: per-row symmetric int8 quantization
//   - persistence: the output file format (writer and reader)
//
// # Failure model
//
// The pipeline is single-shot: every error aborts the run and nothing is
// retried. The output is written atomically, so a failed run never leaves
// a partial file at the destination path.
package embedq
