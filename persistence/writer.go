package persistence

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unsafe"
)

// Writer serializes quantized embeddings in the binary file format.
type Writer struct {
	w         io.Writer
	byteOrder binary.ByteOrder
}

// NewWriter creates a new format writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:         w,
		byteOrder: binary.LittleEndian, // Native on x86/ARM
	}
}

// WriteHeader writes the 12-byte file header. The version field is forced
// to the current FormatVersion.
func (w *Writer) WriteHeader(header *FileHeader) error {
	header.Version = FormatVersion
	return binary.Write(w.w, w.byteOrder, header)
}

// WriteFloat32Slice writes a float32 slice as raw little-endian bytes.
// Safety: validates alignment before the unsafe conversion.
func (w *Writer) WriteFloat32Slice(vec []float32) error {
	if len(vec) == 0 {
		return nil
	}
	if err := validateFloat32SliceAlignment(vec); err != nil {
		return err
	}
	// Direct memory conversion (no allocation)
	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&vec[0])), len(vec)*4)
	_, err := w.w.Write(byteSlice)
	return err
}

// WriteBytes writes raw quantized code bytes.
func (w *Writer) WriteBytes(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	_, err := w.w.Write(b)
	return err
}

// WriteFile serializes a complete quantized embedding file to path:
// header, then all scales in row order, then all code bytes row-major.
// The write is atomic: a crash leaves either the old file or no file.
func WriteFile(path string, scales []float32, codes []byte, vocabSize, targetDim int) error {
	if len(scales) != vocabSize {
		return fmt.Errorf("persistence: %d scales for %d rows", len(scales), vocabSize)
	}
	if len(codes) != vocabSize*targetDim {
		return fmt.Errorf("persistence: %d code bytes for %dx%d matrix", len(codes), vocabSize, targetDim)
	}

	header := FileHeader{
		VocabSize: uint32(vocabSize),
		TargetDim: uint32(targetDim),
	}

	return SaveToFile(path, func(w io.Writer) error {
		bw := NewWriter(w)
		if err := bw.WriteHeader(&header); err != nil {
			return err
		}
		if err := bw.WriteFloat32Slice(scales); err != nil {
			return err
		}
		return bw.WriteBytes(codes)
	})
}

// SaveToFile writes data to filename through a temp file in the same
// directory, fsyncs, and renames into place.
func SaveToFile(filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	// The temp file must live in the target directory for the rename to
	// be atomic.
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	// Match typical file permissions (best-effort).
	_ = tmp.Chmod(0644)

	// Buffered writer to batch the many small row writes.
	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// Atomically replace target.
	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	// Success: prevent deferred cleanup from removing the final file.
	tmpName = ""
	return nil
}
