// Package quantization provides per-row symmetric 8-bit quantization for
// reduced embedding matrices.
//
// Each row is quantized independently with a single scale factor and no
// zero-point offset:
//
//	scale = max(|row|) / 127        (1.0 for all-zero rows)
//	code  = clamp(round(v / scale), -127, 127)
//
// Zero always maps to code zero, so sparse rows stay exactly sparse, and
// the code range is symmetric: -128 is never emitted. Codes are stored as
// raw bytes carrying the two's-complement bit pattern of the int8 value.
//
// # Rounding
//
// Rounding is half-to-even (math.RoundToEven), matching NumPy's np.round.
// This keeps output files byte-identical to the reference conversion
// pipeline for the same reduced matrix.
//
// # Usage
//
//	q := quantization.NewSymmetricQuantizer()
//	codes := make([]byte, len(row))
//	scale, err := q.EncodeRow(codes, row)
//
// Dequantization (v = code * scale) reconstructs each element to within
// scale/2.
package quantization
