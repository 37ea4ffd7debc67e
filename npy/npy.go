// Package npy provides zero-copy access to NumPy array files holding
// float32 embedding matrices.
//
// Only the subset of the NPY container format produced by embedding dumps
// is supported: 2-D, little-endian float32, C-order. The payload is
// accessed through row views into the underlying blob (memory-mapped for
// local files), so the full matrix is never copied into the Go heap.
package npy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"unsafe"

	"github.com/hupe1980/embedq/blobstore"
	"github.com/sbinet/npyio"
)

var (
	// ErrNotMatrix is returned when the array is not two-dimensional.
	ErrNotMatrix = errors.New("npy: array is not a 2-D matrix")
	// ErrUnsupportedDtype is returned for any dtype other than little-endian float32.
	ErrUnsupportedDtype = errors.New("npy: unsupported dtype (want <f4)")
	// ErrFortranOrder is returned for column-major arrays.
	ErrFortranOrder = errors.New("npy: fortran-order arrays are not supported")
	// ErrTruncated is returned when the payload is shorter than the header shape implies.
	ErrTruncated = errors.New("npy: truncated payload")
	// ErrUnaligned is returned when the payload cannot be reinterpreted as float32 in place.
	ErrUnaligned = errors.New("npy: payload is not 4-byte aligned")
)

// Matrix is a read-only float32 matrix backed by an open blob.
// Row views alias the blob contents and become invalid after Close.
type Matrix struct {
	blob blobstore.Blob
	data []byte // full container contents
	off  int    // payload offset past the NPY header
	rows int
	cols int
}

// Open memory-maps the NPY file at path.
func Open(path string) (*Matrix, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	store := blobstore.NewLocalStore(dir)
	blob, err := store.Open(context.Background(), base)
	if err != nil {
		return nil, err
	}
	return OpenBlob(blob)
}

// OpenBlob parses the NPY container held by blob.
// The Matrix takes ownership of the blob and closes it on Close.
func OpenBlob(blob blobstore.Blob) (*Matrix, error) {
	data, err := blobstore.Contents(blob)
	if err != nil {
		_ = blob.Close()
		return nil, err
	}

	br := bytes.NewReader(data)
	r, err := npyio.NewReader(br)
	if err != nil {
		_ = blob.Close()
		return nil, fmt.Errorf("npy: parse header: %w", err)
	}
	off := int(br.Size()) - br.Len()

	descr := r.Header.Descr
	if descr.Type != "<f4" && descr.Type != "f4" {
		_ = blob.Close()
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedDtype, descr.Type)
	}
	if descr.Fortran {
		_ = blob.Close()
		return nil, ErrFortranOrder
	}
	if len(descr.Shape) != 2 {
		_ = blob.Close()
		return nil, fmt.Errorf("%w: shape %v", ErrNotMatrix, descr.Shape)
	}

	rows, cols := descr.Shape[0], descr.Shape[1]
	if rows < 1 || cols < 1 {
		_ = blob.Close()
		return nil, fmt.Errorf("%w: shape %v", ErrNotMatrix, descr.Shape)
	}

	// rows*cols*4 can overflow for absurd claimed shapes, so bound the row
	// count against the payload instead of computing the product.
	avail := len(data) - off
	if rows > avail/4/cols {
		_ = blob.Close()
		return nil, fmt.Errorf("%w: %d payload bytes for shape (%d, %d)", ErrTruncated, avail, rows, cols)
	}

	// Row views reinterpret the payload in place; the NPY header pads the
	// data offset to a 64-byte boundary, so this only trips on exotic blobs.
	if uintptr(unsafe.Pointer(&data[off]))%4 != 0 {
		_ = blob.Close()
		return nil, ErrUnaligned
	}

	return &Matrix{
		blob: blob,
		data: data,
		off:  off,
		rows: rows,
		cols: cols,
	}, nil
}

// Rows returns the number of rows (vocabulary size).
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns (embedding dimension).
func (m *Matrix) Cols() int { return m.cols }

// Row returns a zero-copy view of row i.
// The slice is valid until Close is called and must not be mutated.
func (m *Matrix) Row(i int) []float32 {
	if i < 0 || i >= m.rows {
		panic(fmt.Sprintf("npy: row index %d out of range [0,%d)", i, m.rows))
	}
	start := m.off + i*m.cols*4
	return unsafe.Slice((*float32)(unsafe.Pointer(&m.data[start])), m.cols)
}

// Floats returns a zero-copy view of the full payload in row-major order.
func (m *Matrix) Floats() []float32 {
	return unsafe.Slice((*float32)(unsafe.Pointer(&m.data[m.off])), m.rows*m.cols)
}

// Close releases the underlying blob. Row views become invalid.
func (m *Matrix) Close() error {
	return m.blob.Close()
}
