// Package testutil provides testing utilities for embedq.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random embedding matrices and for
// encoding NPY fixtures without going through the production loader.
//
// # Random Matrix Generation
//
//	rng := testutil.NewRNG(seed)
//	vec := make([]float32, 128)
//	rng.FillUniform(vec)      // uniform [0, 1)
//	rng.FillGaussian(vec)     // standard normal
//
// # NPY Fixtures
//
//	raw := testutil.EncodeNPY(rows, cols, data)
//	path := testutil.WriteNPY(t, rows, cols, data)
package testutil
