package quantization

import (
	"math"
	"math/rand"
	"testing"
)

func TestScale_ZeroRow(t *testing.T) {
	row := make([]float32, 64)
	if s := Scale(row); s != 1.0 {
		t.Errorf("Expected scale 1.0 for zero row, got %f", s)
	}
}

func TestScale_AbsMax(t *testing.T) {
	row := []float32{0.5, -2.54, 1.0}
	want := float32(2.54) / 127.0
	if s := Scale(row); s != want {
		t.Errorf("Expected scale %f, got %f", want, s)
	}
}

func TestEncodeRow_ZeroRow(t *testing.T) {
	q := NewSymmetricQuantizer()
	row := make([]float32, 64)
	codes := make([]byte, 64)

	scale, err := q.EncodeRow(codes, row)
	if err != nil {
		t.Fatalf("EncodeRow failed: %v", err)
	}
	if scale != 1.0 {
		t.Errorf("Expected scale 1.0, got %f", scale)
	}
	for i, c := range codes {
		if c != 0 {
			t.Errorf("Expected code 0 at %d, got %d", i, int8(c))
		}
	}
}

func TestEncodeRow_SingleSpike(t *testing.T) {
	q := NewSymmetricQuantizer()
	row := make([]float32, 64)
	row[17] = 2.54
	codes := make([]byte, 64)

	scale, err := q.EncodeRow(codes, row)
	if err != nil {
		t.Fatalf("EncodeRow failed: %v", err)
	}
	if math.Abs(float64(scale)-0.02) > 1e-7 {
		t.Errorf("Expected scale ~0.02, got %f", scale)
	}
	for i, c := range codes {
		want := int8(0)
		if i == 17 {
			want = 127
		}
		if int8(c) != want {
			t.Errorf("code[%d] = %d, want %d", i, int8(c), want)
		}
	}
}

func TestEncodeRow_SymmetricRange(t *testing.T) {
	q := NewSymmetricQuantizer()
	row := []float32{-1.0, 1.0, 0.0}
	codes := make([]byte, 3)

	if _, err := q.EncodeRow(codes, row); err != nil {
		t.Fatalf("EncodeRow failed: %v", err)
	}
	if int8(codes[0]) != -127 {
		t.Errorf("Expected -127 for the negative extreme, got %d", int8(codes[0]))
	}
	if int8(codes[1]) != 127 {
		t.Errorf("Expected 127 for the positive extreme, got %d", int8(codes[1]))
	}
	if codes[2] != 0 {
		t.Errorf("Expected 0, got %d", int8(codes[2]))
	}
}

// Rounding is pinned to half-to-even (np.round semantics): a change here
// breaks byte-compatibility with previously written files.
func TestEncodeRow_HalfToEven(t *testing.T) {
	q := NewSymmetricQuantizer()
	// abs max 127 gives scale exactly 1.0, so values are rounded directly.
	row := []float32{127, 2.5, 3.5, -2.5, -3.5, 0.5, 1.5}
	codes := make([]byte, len(row))

	scale, err := q.EncodeRow(codes, row)
	if err != nil {
		t.Fatalf("EncodeRow failed: %v", err)
	}
	if scale != 1.0 {
		t.Fatalf("Expected scale 1.0, got %f", scale)
	}

	want := []int8{127, 2, 4, -2, -4, 0, 2}
	for i, w := range want {
		if int8(codes[i]) != w {
			t.Errorf("code[%d] = %d, want %d", i, int8(codes[i]), w)
		}
	}
}

func TestEncodeRow_NeverMinus128(t *testing.T) {
	q := NewSymmetricQuantizer()
	rng := rand.New(rand.NewSource(42))

	row := make([]float32, 256)
	codes := make([]byte, 256)
	for trial := 0; trial < 100; trial++ {
		for i := range row {
			row[i] = (rng.Float32() - 0.5) * 20
		}
		if _, err := q.EncodeRow(codes, row); err != nil {
			t.Fatalf("EncodeRow failed: %v", err)
		}
		for i, c := range codes {
			if int8(c) == -128 {
				t.Fatalf("trial %d: code[%d] = -128", trial, i)
			}
		}
	}
}

func TestEncodeRow_SubnormalRow(t *testing.T) {
	q := NewSymmetricQuantizer()
	// absMax/127 underflows float32 for a subnormal abs max; the scale
	// must still come out positive and the codes finite.
	tiny := float32(math.SmallestNonzeroFloat32)
	row := []float32{tiny, 0, -tiny, 0}
	codes := make([]byte, len(row))

	scale, err := q.EncodeRow(codes, row)
	if err != nil {
		t.Fatalf("EncodeRow failed: %v", err)
	}
	if !(scale > 0) {
		t.Fatalf("Expected positive scale for non-zero row, got %g", scale)
	}
	if int8(codes[0]) != 1 || int8(codes[2]) != -1 {
		t.Errorf("codes = [%d %d %d %d], want [1 0 -1 0]",
			int8(codes[0]), int8(codes[1]), int8(codes[2]), int8(codes[3]))
	}

	decoded := make([]float32, len(row))
	q.DecodeRow(decoded, codes, scale)
	bound := float64(q.QuantizationError(scale))
	for i := range row {
		if diff := math.Abs(float64(row[i] - decoded[i])); diff > bound {
			t.Errorf("element %d: error %g exceeds %g", i, diff, bound)
		}
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	q := NewSymmetricQuantizer()
	rng := rand.New(rand.NewSource(7))

	row := make([]float32, 64)
	for i := range row {
		row[i] = (rng.Float32() - 0.5) * 8
	}

	codes := make([]byte, 64)
	scale, err := q.EncodeRow(codes, row)
	if err != nil {
		t.Fatalf("EncodeRow failed: %v", err)
	}

	decoded := make([]float32, 64)
	q.DecodeRow(decoded, codes, scale)

	// Reconstruction error is bounded by half a quantization step.
	bound := float64(q.QuantizationError(scale)) * (1 + 1e-5)
	for i := range row {
		if diff := math.Abs(float64(row[i] - decoded[i])); diff > bound {
			t.Errorf("element %d: error %f exceeds %f", i, diff, bound)
		}
	}
}

func TestEncodeRow_NonFinite(t *testing.T) {
	q := NewSymmetricQuantizer()
	codes := make([]byte, 3)

	for _, bad := range []float32{float32(math.NaN()), float32(math.Inf(1)), float32(math.Inf(-1))} {
		row := []float32{1.0, bad, -1.0}
		if _, err := q.EncodeRow(codes, row); err == nil {
			t.Errorf("Expected error for row containing %f", bad)
		}
	}
}

func TestEncodeRow_LengthMismatch(t *testing.T) {
	q := NewSymmetricQuantizer()
	if _, err := q.EncodeRow(make([]byte, 3), make([]float32, 4)); err == nil {
		t.Error("Expected error for mismatched dst length")
	}
}

func BenchmarkEncodeRow(b *testing.B) {
	q := NewSymmetricQuantizer()
	row := make([]float32, 64)
	for i := range row {
		row[i] = float32(i%256)/128.0 - 1.0
	}
	codes := make([]byte, 64)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = q.EncodeRow(codes, row)
	}
}
