package persistence

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/hupe1980/embedq/internal/mmap"
)

// SliceReader provides bounds-checked reads from a byte slice.
// It is used by the mmap loader to avoid intermediate allocations.
type SliceReader struct {
	b   []byte
	off int
}

// NewSliceReader creates a reader over b starting at offset 0.
func NewSliceReader(b []byte) *SliceReader {
	return &SliceReader{b: b}
}

// Offset returns the current read offset.
func (r *SliceReader) Offset() int {
	return r.off
}

// ReadBytes returns the next n bytes as a view into the underlying slice.
func (r *SliceReader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.b) {
		return nil, fmt.Errorf("%w: %d bytes at offset %d, len=%d", ErrTruncated, n, r.off, len(r.b))
	}
	out := r.b[r.off : r.off+n]
	r.off += n
	return out, nil
}

// ReadUint32 reads a little-endian uint32.
func (r *SliceReader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadFileHeader reads and validates the file header.
func (r *SliceReader) ReadFileHeader() (*FileHeader, error) {
	var h FileHeader
	var err error
	if h.VocabSize, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if h.TargetDim, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if h.Version, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return &h, nil
}

// ReadFloat32SliceView returns n float32 values as a zero-copy view.
func (r *SliceReader) ReadFloat32SliceView(n int) ([]float32, error) {
	if n == 0 {
		return nil, nil
	}
	bb, err := r.ReadBytes(n * 4)
	if err != nil {
		return nil, err
	}
	if uintptr(unsafe.Pointer(&bb[0]))%4 != 0 {
		return nil, ErrUnalignedAccess
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&bb[0])), n), nil
}

// File is an open quantized embedding file. Scales and codes are
// zero-copy views into the mapping and become invalid after Close.
//
// This is the reader side of the format, used by Go consumers and by the
// pipeline's own verification.
type File struct {
	Header FileHeader

	scales []float32
	codes  []byte
	m      *mmap.Mapping
}

// Open memory-maps the quantized embedding file at path.
func Open(path string) (*File, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	f, err := parse(m.Bytes())
	if err != nil {
		_ = m.Close()
		return nil, err
	}
	f.m = m
	return f, nil
}

func parse(data []byte) (*File, error) {
	r := NewSliceReader(data)

	h, err := r.ReadFileHeader()
	if err != nil {
		return nil, err
	}

	n := int(h.VocabSize)
	k := int(h.TargetDim)

	scales, err := r.ReadFloat32SliceView(n)
	if err != nil {
		return nil, err
	}
	codes, err := r.ReadBytes(n * k)
	if err != nil {
		return nil, err
	}
	if r.Offset() != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidHeader, len(data)-r.Offset())
	}

	return &File{
		Header: *h,
		scales: scales,
		codes:  codes,
	}, nil
}

// Scale returns the quantization scale of row i.
func (f *File) Scale(i int) float32 {
	return f.scales[i]
}

// Row returns the raw int8 code bytes of row i.
func (f *File) Row(i int) []byte {
	k := int(f.Header.TargetDim)
	return f.codes[i*k : (i+1)*k]
}

// Dequantize reconstructs row i into dst (len must be TargetDim).
func (f *File) Dequantize(i int, dst []float32) {
	scale := f.scales[i]
	for j, c := range f.Row(i) {
		dst[j] = float32(int8(c)) * scale
	}
}

// Close unmaps the file. All views become invalid.
func (f *File) Close() error {
	if f.m != nil {
		return f.m.Close()
	}
	return nil
}
