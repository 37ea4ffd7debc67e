// Package mmap provides read-only memory-mapped file access.
//
// Embedding tables are routinely multiple gigabytes; mapping the input
// matrix lets the PCA fit and the quantizer stream rows straight out of
// the page cache without an up-front copy into the Go heap.
//
// # Usage
//
//	m, err := mmap.Open("embeddings.npy")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//	m.Advise(mmap.AccessSequential)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) access hints
//   - Windows: CreateFileMapping/MapViewOfFile (advise is a no-op)
//
// # Safety
//
// Bytes() aliases the mapped region; every slice derived from it becomes
// invalid once Close() is called. Close() is idempotent.
package mmap
