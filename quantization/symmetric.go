package quantization

import (
	"errors"
	"fmt"
	"math"
)

// MaxMagnitude is the symmetric code limit. The full int8 range is not
// used: codes stay in [-127, 127] so that negation is always lossless.
const MaxMagnitude = 127

// ErrNonFinite is returned when a row contains NaN or infinity.
// Quantizing such a row would silently corrupt the output file.
var ErrNonFinite = errors.New("quantization: non-finite value")

// SymmetricQuantizer implements per-row symmetric 8-bit quantization.
// It is stateless: the scale is derived from each row independently, so
// no training pass over the data is required.
type SymmetricQuantizer struct{}

// NewSymmetricQuantizer creates a new per-row symmetric quantizer.
func NewSymmetricQuantizer() *SymmetricQuantizer {
	return &SymmetricQuantizer{}
}

// Scale returns the quantization scale for row: max(|row|)/127, or
// exactly 1.0 for an all-zero row (the row quantizes to all-zero codes
// regardless, and 1.0 avoids a divide by zero on the decode side).
func Scale(row []float32) float32 {
	var absMax float32
	for _, v := range row {
		if v < 0 {
			v = -v
		}
		if v > absMax {
			absMax = v
		}
	}
	if absMax > 0 {
		scale := absMax / MaxMagnitude
		if scale == 0 {
			// A subnormal absMax underflows the divide. Floor at the
			// smallest positive float32 so a non-zero row never gets a
			// zero scale and the divide below never produces NaN.
			scale = math.SmallestNonzeroFloat32
		}
		return scale
	}
	return 1.0
}

// EncodeRow quantizes row into dst and returns the per-row scale.
// dst must have the same length as row. Each byte holds the
// two's-complement bit pattern of the int8 code.
func (q *SymmetricQuantizer) EncodeRow(dst []byte, row []float32) (float32, error) {
	if len(dst) != len(row) {
		return 0, fmt.Errorf("quantization: dst length %d != row length %d", len(dst), len(row))
	}

	for i, v := range row {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w at index %d", ErrNonFinite, i)
		}
	}

	scale := Scale(row)
	for i, v := range row {
		// Half-to-even, matching np.round.
		c := math.RoundToEven(float64(v) / float64(scale))
		if c > MaxMagnitude {
			c = MaxMagnitude
		} else if c < -MaxMagnitude {
			c = -MaxMagnitude
		}
		dst[i] = byte(int8(c))
	}

	return scale, nil
}

// DecodeRow reconstructs a row from its codes and scale: v = code * scale.
// dst must have the same length as codes.
func (q *SymmetricQuantizer) DecodeRow(dst []float32, codes []byte, scale float32) {
	for i, c := range codes {
		dst[i] = float32(int8(c)) * scale
	}
}

// BytesPerDimension returns 1 (int8 storage).
func (q *SymmetricQuantizer) BytesPerDimension() int {
	return 1
}

// CompressionRatio returns the memory compression ratio (always 4.0 for
// 8-bit quantization of float32).
func (q *SymmetricQuantizer) CompressionRatio() float64 {
	return 4.0
}

// QuantizationError returns the worst-case reconstruction error per
// element for a row quantized with the given scale.
func (q *SymmetricQuantizer) QuantizationError(scale float32) float32 {
	return scale / 2
}
