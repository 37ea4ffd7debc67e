// Package persistence implements the quantized embedding file format.
//
// The format is deliberately minimal so runtimes can load it with three
// reads (or one mmap) and no decoding:
//
//	offset 0     header: vocab_size, target_dim, format_version (3 x uint32 LE)
//	offset 12    scales: vocab_size x float32 LE, row order
//	offset 12+4N codes:  vocab_size x target_dim x int8, row-major
//
// Total size is exactly 12 + 4*N + N*K bytes.
//
// Writes go through a temp file and an atomic rename, so a crash mid-write
// never leaves a partial file at the destination path.
package persistence
