// Package spatial provides the small amount of linear algebra needed to work with camera poses and projection
// matrices of recorded capture sessions.
package spatial

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/eluv-io/errors-go"
)

// Matrix4 is a 4x4 matrix stored in row-major order. The zero value is the zero matrix; use Identity() for the
// identity transform and Invalid() for the "no pose available" sentinel.
type Matrix4 [16]float64

// Identity returns the 4x4 identity matrix.
func Identity() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Invalid returns the invalid-matrix sentinel: a matrix with all elements set to NaN. It is returned by accessors
// when no pose or projection is available.
func Invalid() Matrix4 {
	var m Matrix4
	for i := range m {
		m[i] = math.NaN()
	}
	return m
}

// FromSlice creates a Matrix4 from a row-major slice of exactly 16 values.
func FromSlice(vals []float64) (Matrix4, error) {
	var m Matrix4
	if len(vals) != 16 {
		return Invalid(), errors.E("spatial.FromSlice", errors.K.Invalid,
			"reason", "expected 16 values",
			"len", len(vals))
	}
	copy(m[:], vals)
	return m, nil
}

// FromDense creates a Matrix4 from a 4x4 gonum matrix.
func FromDense(d mat.Matrix) (Matrix4, error) {
	var m Matrix4
	r, c := d.Dims()
	if r != 4 || c != 4 {
		return Invalid(), errors.E("spatial.FromDense", errors.K.Invalid,
			"reason", "expected 4x4 matrix",
			"rows", r,
			"cols", c)
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m[i*4+j] = d.At(i, j)
		}
	}
	return m, nil
}

// IsValid returns true if all elements of the matrix are finite.
func (m Matrix4) IsValid() bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// At returns the element at row r, column c.
func (m Matrix4) At(r, c int) float64 {
	return m[r*4+c]
}

// Dense returns the matrix as a gonum dense matrix.
func (m Matrix4) Dense() *mat.Dense {
	return mat.NewDense(4, 4, m[:])
}

// Mul returns the matrix product m * o.
func (m Matrix4) Mul(o Matrix4) Matrix4 {
	var p mat.Dense
	p.Mul(m.Dense(), o.Dense())
	res, _ := FromDense(&p)
	return res
}

// Inverted returns the inverse of the matrix. Returns the invalid-matrix sentinel and false if the matrix is
// singular or contains non-finite elements.
func (m Matrix4) Inverted() (Matrix4, bool) {
	if !m.IsValid() {
		return Invalid(), false
	}
	var inv mat.Dense
	if err := inv.Inverse(m.Dense()); err != nil {
		return Invalid(), false
	}
	res, _ := FromDense(&inv)
	return res, true
}

// Translation returns the translation component of a rigid transform (the first three elements of the last
// column).
func (m Matrix4) Translation() (x, y, z float64) {
	return m.At(0, 3), m.At(1, 3), m.At(2, 3)
}
