// Package pca fits principal component models over embedding matrices and
// projects them to a lower target dimensionality.
//
// The fit is whole-matrix: rows are copied once into a float64 working
// matrix for the SVD. Vocabularies up to a few million rows fit
// comfortably, and the exact (non-streaming) decomposition keeps results
// reproducible.
//
// Principal directions are unique only up to sign. To make runs
// byte-reproducible the basis is canonicalized: the largest-magnitude
// coefficient of every component is forced positive.
package pca

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Source is a read-only row-indexed float32 matrix.
// npy.Matrix satisfies this.
type Source interface {
	Rows() int
	Cols() int
	Row(i int) []float32
}

// Model is a fitted linear projection from Cols dimensions down to k.
type Model struct {
	mean  []float64  // column means, length d
	basis *mat.Dense // d x k, sign-canonicalized principal directions

	// ExplainedVariance is the fraction of total variance captured by the
	// k retained directions. Diagnostic only.
	ExplainedVariance float64
}

// Reduced is the projected matrix: Rows x k, row-major float32.
type Reduced struct {
	rows int
	cols int
	data []float32
}

// Rows returns the number of rows.
func (r *Reduced) Rows() int { return r.rows }

// Cols returns the reduced dimensionality k.
func (r *Reduced) Cols() int { return r.cols }

// Row returns a view of row i. Valid for the lifetime of the Reduced matrix.
func (r *Reduced) Row(i int) []float32 {
	return r.data[i*r.cols : (i+1)*r.cols]
}

// Data returns the full row-major payload.
func (r *Reduced) Data() []float32 { return r.data }

// FitTransform fits a PCA model on src and projects every row to k
// dimensions in a single pass over the data.
func FitTransform(src Source, k int) (*Model, *Reduced, error) {
	n, d := src.Rows(), src.Cols()

	maxK := min(n, d)
	if k < 1 || k > maxK {
		return nil, nil, &ErrInvalidTargetDim{TargetDim: k, Rows: n, Cols: d}
	}

	dense, err := toDense(src)
	if err != nil {
		return nil, nil, err
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(dense, nil); !ok {
		return nil, nil, errors.New("pca: decomposition failed")
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	vars := pc.VarsTo(nil)

	canonicalizeSigns(&vecs, k)
	basis := vecs.Slice(0, d, 0, k).(*mat.Dense)

	mean := columnMeans(dense)
	center(dense, mean)

	var proj mat.Dense
	proj.Mul(dense, basis)

	model := &Model{
		mean:              mean,
		basis:             mat.DenseCopyOf(basis),
		ExplainedVariance: explainedRatio(vars, k),
	}

	reduced := &Reduced{
		rows: n,
		cols: k,
		data: make([]float32, n*k),
	}
	for i := 0; i < n; i++ {
		row := reduced.data[i*k : (i+1)*k]
		for j := 0; j < k; j++ {
			row[j] = float32(proj.At(i, j))
		}
	}

	return model, reduced, nil
}

// Mean returns the column means used for centering.
func (m *Model) Mean() []float64 { return m.mean }

// Components returns the d x k projection basis.
func (m *Model) Components() mat.Matrix { return m.basis }

// Project maps a single d-dimensional row through the fitted model.
func (m *Model) Project(row []float32) []float32 {
	d, k := m.basis.Dims()
	centered := make([]float64, d)
	for j := 0; j < d; j++ {
		centered[j] = float64(row[j]) - m.mean[j]
	}
	out := make([]float32, k)
	for j := 0; j < k; j++ {
		var sum float64
		for i := 0; i < d; i++ {
			sum += centered[i] * m.basis.At(i, j)
		}
		out[j] = float32(sum)
	}
	return out
}

func toDense(src Source) (*mat.Dense, error) {
	n, d := src.Rows(), src.Cols()
	dense := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		row := src.Row(i)
		for j, v := range row {
			f := float64(v)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, &ErrNonFinite{Row: i, Col: j}
			}
			dense.Set(i, j, f)
		}
	}
	return dense, nil
}

func columnMeans(m *mat.Dense) []float64 {
	n, d := m.Dims()
	mean := make([]float64, d)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			mean[j] += m.At(i, j)
		}
	}
	for j := range mean {
		mean[j] /= float64(n)
	}
	return mean
}

func center(m *mat.Dense, mean []float64) {
	n, d := m.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			m.Set(i, j, m.At(i, j)-mean[j])
		}
	}
}

// canonicalizeSigns flips every component whose largest-magnitude
// coefficient is negative. SVD signs are otherwise arbitrary and vary
// across library versions.
func canonicalizeSigns(vecs *mat.Dense, k int) {
	d, _ := vecs.Dims()
	for j := 0; j < k; j++ {
		extreme := 0.0
		for i := 0; i < d; i++ {
			if v := vecs.At(i, j); math.Abs(v) > math.Abs(extreme) {
				extreme = v
			}
		}
		if extreme < 0 {
			for i := 0; i < d; i++ {
				vecs.Set(i, j, -vecs.At(i, j))
			}
		}
	}
}

func explainedRatio(vars []float64, k int) float64 {
	var total, kept float64
	for i, v := range vars {
		total += v
		if i < k {
			kept += v
		}
	}
	if total <= 0 {
		return 0
	}
	return kept / total
}
