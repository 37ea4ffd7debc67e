package testutil

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// FillUniform fills vec with uniform values in [0, 1).
func (r *RNG) FillUniform(vec []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range vec {
		vec[i] = r.rand.Float32()
	}
}

// FillGaussian fills vec with standard normal values.
func (r *RNG) FillGaussian(vec []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range vec {
		vec[i] = float32(r.rand.NormFloat64())
	}
}

// RandomMatrix returns a rows x cols row-major matrix of standard normal
// values.
func (r *RNG) RandomMatrix(rows, cols int) []float32 {
	data := make([]float32, rows*cols)
	r.FillGaussian(data)
	return data
}

// EncodeNPY builds an NPY v1.0 container holding a 2-D little-endian
// float32 C-order array. The header is constructed by hand so fixtures do
// not depend on the library under test.
func EncodeNPY(rows, cols int, data []float32) []byte {
	if len(data) != rows*cols {
		panic(fmt.Sprintf("testutil: %d values for %dx%d matrix", len(data), rows, cols))
	}

	dict := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%d, %d), }", rows, cols)
	hlen := len(dict) + 1 // trailing newline
	if pad := (10 + hlen) % 64; pad != 0 {
		hlen += 64 - pad
	}
	header := make([]byte, hlen)
	for i := range header {
		header[i] = ' '
	}
	copy(header, dict)
	header[hlen-1] = '\n'

	out := make([]byte, 0, 10+hlen+4*len(data))
	out = append(out, '\x93', 'N', 'U', 'M', 'P', 'Y', 1, 0)
	out = binary.LittleEndian.AppendUint16(out, uint16(hlen))
	out = append(out, header...)
	for _, v := range data {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}

// WriteNPY writes an NPY fixture into a temp directory and returns its path.
func WriteNPY(t *testing.T, rows, cols int, data []float32) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "emb.npy")
	if err := os.WriteFile(path, EncodeNPY(rows, cols, data), 0o644); err != nil {
		t.Fatalf("write npy fixture: %v", err)
	}
	return path
}
