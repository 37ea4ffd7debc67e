package pca

import "fmt"

// ErrInvalidTargetDim indicates a target dimension the fit cannot satisfy.
//
// A PCA fit over an n-by-d matrix yields at most min(n, d) principal
// directions, so k must lie in [1, min(n, d)].
type ErrInvalidTargetDim struct {
	TargetDim int
	Rows      int
	Cols      int
}

func (e *ErrInvalidTargetDim) Error() string {
	return fmt.Sprintf("pca: invalid target dimension %d for %dx%d matrix", e.TargetDim, e.Rows, e.Cols)
}

// ErrNonFinite indicates a NaN or infinity in the input matrix.
//
// Non-finite values poison the covariance structure and would silently
// corrupt every quantized row downstream, so the fit refuses them outright.
type ErrNonFinite struct {
	Row int
	Col int
}

func (e *ErrNonFinite) Error() string {
	return fmt.Sprintf("pca: non-finite value at row %d, col %d", e.Row, e.Col)
}
