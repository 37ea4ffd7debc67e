package persistence

// The writer reinterprets float32 slices as raw bytes in place; this file
// holds the runtime checks guarding that.

import (
	"errors"
	"fmt"
	"unsafe"
)

var (
	// ErrBigEndian is returned when running on big-endian systems.
	// The file format is little-endian and the raw slice writes assume
	// native byte order matches.
	ErrBigEndian = errors.New("big-endian systems are not supported")

	// ErrUnalignedAccess is returned when attempting unaligned memory access.
	ErrUnalignedAccess = errors.New("unaligned memory access detected")
)

func init() {
	if !isLittleEndian() {
		panic(fmt.Sprintf("embedq/persistence: %v", ErrBigEndian))
	}
}

func isLittleEndian() bool {
	var test uint16 = 0x0001
	firstByte := *(*byte)(unsafe.Pointer(&test))
	return firstByte == 1
}

// validateFloat32SliceAlignment checks that a float32 slice is 4-byte
// aligned before it is reinterpreted as raw bytes.
func validateFloat32SliceAlignment(vec []float32) error {
	if len(vec) == 0 {
		return nil
	}
	ptr := uintptr(unsafe.Pointer(&vec[0]))
	if ptr%4 != 0 {
		return fmt.Errorf("%w: float32 slice at address 0x%x", ErrUnalignedAccess, ptr)
	}
	return nil
}
