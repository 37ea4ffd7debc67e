package persistence

import (
	"errors"
	"fmt"
)

const (
	// FormatVersion is the current file format version.
	FormatVersion = 1
	// HeaderSize is the fixed header length in bytes.
	HeaderSize = 12
)

var (
	// ErrInvalidVersion is returned for an unsupported format version.
	ErrInvalidVersion = errors.New("unsupported format version")
	// ErrInvalidHeader is returned for a header with impossible dimensions.
	ErrInvalidHeader = errors.New("invalid header")
	// ErrTruncated is returned when the file is shorter than the header implies.
	ErrTruncated = errors.New("truncated file")
)

// FileHeader is the 12-byte header at the start of every quantized
// embedding file. All fields are little-endian.
type FileHeader struct {
	VocabSize uint32 // row count N
	TargetDim uint32 // reduced dimension K
	Version   uint32 // format version, always 1
}

// Validate checks the header for a supported version and sane dimensions.
func (h *FileHeader) Validate() error {
	if h.Version != FormatVersion {
		return fmt.Errorf("%w: got %d", ErrInvalidVersion, h.Version)
	}
	if h.VocabSize < 1 || h.TargetDim < 1 {
		return fmt.Errorf("%w: vocab_size=%d target_dim=%d", ErrInvalidHeader, h.VocabSize, h.TargetDim)
	}
	return nil
}

// FileSize returns the exact size in bytes of a file holding n rows of
// k quantized dimensions.
func FileSize(n, k int) int64 {
	return int64(HeaderSize) + int64(n)*4 + int64(n)*int64(k)
}
