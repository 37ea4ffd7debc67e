package embedq

import (
	"errors"
	"fmt"

	"github.com/hupe1980/embedq/pca"
	"github.com/hupe1980/embedq/quantization"
)

var (
	// ErrDimension classifies failures caused by an incompatible target
	// dimension or matrix shape. These abort before any computation.
	ErrDimension = errors.New("incompatible dimensions")

	// ErrNumeric classifies degenerate numeric input (NaN, infinity).
	// Propagated rather than silently producing corrupt output.
	ErrNumeric = errors.New("degenerate numeric input")
)

// translateError maps stage-level errors onto the pipeline's error
// classes so callers can branch with errors.Is.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var td *pca.ErrInvalidTargetDim
	if errors.As(err, &td) {
		return fmt.Errorf("%w: %w", ErrDimension, err)
	}

	var nf *pca.ErrNonFinite
	if errors.As(err, &nf) {
		return fmt.Errorf("%w: %w", ErrNumeric, err)
	}
	if errors.Is(err, quantization.ErrNonFinite) {
		return fmt.Errorf("%w: %w", ErrNumeric, err)
	}

	// I/O errors pass through untouched; they already satisfy the
	// os.IsNotExist / errors.Is checks callers expect.
	return err
}
