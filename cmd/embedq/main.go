// Command embedq converts a float32 embedding matrix into a compact
// PCA-reduced int8 file. It is a single-shot batch tool: paths and the
// target dimensionality are fixed constants, edited here and recompiled.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/hupe1980/embedq"
)

const (
	inputPath  = "embeddings.npy"
	outputPath = "embeddings_64d_int8.bin"
	targetDim  = embedq.DefaultTargetDim
)

func main() {
	logger := embedq.NewTextLogger(slog.LevelInfo)

	report, err := embedq.Run(context.Background(), embedq.Config{
		Input:     inputPath,
		Output:    outputPath,
		TargetDim: targetDim,
	}, embedq.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "embedq: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s: %d vectors, %d -> %d dims, %.1f%% variance retained, %d bytes\n",
		outputPath, report.VocabSize, report.OriginalDim, report.TargetDim,
		report.ExplainedVariance*100, report.OutputBytes)
}
