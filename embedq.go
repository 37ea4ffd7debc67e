package embedq

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/embedq/npy"
	"github.com/hupe1980/embedq/pca"
	"github.com/hupe1980/embedq/persistence"
	"github.com/hupe1980/embedq/quantization"
)

// DefaultTargetDim is the reduced dimensionality used when Config leaves
// TargetDim unset.
const DefaultTargetDim = 64

// Config holds the three recognized pipeline options. There is no
// process-wide configuration state; a Config is passed explicitly into Run.
type Config struct {
	// Input is the path of the NPY float32 matrix (or the blob name when
	// a store is configured via WithStore).
	Input string

	// Output is the destination path of the quantized binary file.
	Output string

	// TargetDim is the reduced dimensionality K. Zero means DefaultTargetDim.
	TargetDim int
}

// Validate checks the configuration before any work starts.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("embedq: config: empty input path")
	}
	if c.Output == "" {
		return errors.New("embedq: config: empty output path")
	}
	if c.TargetDim < 1 {
		return fmt.Errorf("%w: target dimension %d", ErrDimension, c.TargetDim)
	}
	return nil
}

// Report summarizes a completed conversion run. Informational only; it is
// not part of the output file contract.
type Report struct {
	VocabSize         int
	OriginalDim       int
	TargetDim         int
	ExplainedVariance float64
	OutputBytes       int64
}

// Run executes the full conversion pipeline: load, reduce, quantize,
// serialize. It is single-threaded and single-shot; any error aborts the
// run with nothing retried. The output file appears atomically on success.
func Run(ctx context.Context, cfg Config, optFns ...Option) (*Report, error) {
	o := applyOptions(optFns)

	if cfg.TargetDim == 0 {
		cfg.TargetDim = DefaultTargetDim
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	matrix, err := openInput(ctx, &o, cfg.Input)
	o.logger.LogLoad(ctx, cfg.Input, rows(matrix), cols(matrix), err)
	if err != nil {
		return nil, err
	}
	defer matrix.Close()

	model, reduced, err := pca.FitTransform(matrix, cfg.TargetDim)
	if err != nil {
		err = translateError(err)
		o.logger.LogReduce(ctx, matrix.Cols(), cfg.TargetDim, 0, err)
		return nil, err
	}
	o.logger.LogReduce(ctx, matrix.Cols(), cfg.TargetDim, model.ExplainedVariance, nil)

	scales, codes, err := quantize(reduced)
	o.logger.LogQuantize(ctx, reduced.Rows(), err)
	if err != nil {
		return nil, translateError(err)
	}

	err = persistence.WriteFile(cfg.Output, scales, codes, reduced.Rows(), reduced.Cols())
	size := persistence.FileSize(reduced.Rows(), reduced.Cols())
	o.logger.LogWrite(ctx, cfg.Output, size, err)
	if err != nil {
		return nil, err
	}

	return &Report{
		VocabSize:         matrix.Rows(),
		OriginalDim:       matrix.Cols(),
		TargetDim:         reduced.Cols(),
		ExplainedVariance: model.ExplainedVariance,
		OutputBytes:       size,
	}, nil
}

func openInput(ctx context.Context, o *options, input string) (*npy.Matrix, error) {
	if o.store == nil {
		return npy.Open(input)
	}
	blob, err := o.store.Open(ctx, input)
	if err != nil {
		return nil, err
	}
	return npy.OpenBlob(blob)
}

func quantize(reduced *pca.Reduced) ([]float32, []byte, error) {
	q := quantization.NewSymmetricQuantizer()
	n, k := reduced.Rows(), reduced.Cols()

	scales := make([]float32, n)
	codes := make([]byte, n*k)
	for i := 0; i < n; i++ {
		scale, err := q.EncodeRow(codes[i*k:(i+1)*k], reduced.Row(i))
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i, err)
		}
		scales[i] = scale
	}
	return scales, codes, nil
}

func rows(m *npy.Matrix) int {
	if m == nil {
		return 0
	}
	return m.Rows()
}

func cols(m *npy.Matrix) int {
	if m == nil {
		return 0
	}
	return m.Cols()
}
