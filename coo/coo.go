// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coo provides a sparse matrix stored in coordinate format, that is,
// as an unordered list of (row, column, value) triplets.
//
// Entries with the same coordinates are allowed. They are kept as separate
// triplets and their values are summed whenever the matrix is read through
// At, Diagonal, MulVec, MulTransVec or SumDuplicates.
package coo

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/vladimir-ch/linsys/internal/dok"
)

type triplet struct {
	i, j int
	v    float64
}

// Matrix is a sparse matrix in coordinate format.
type Matrix struct {
	r, c int
	data []triplet
}

var _ mat.Matrix = (*Matrix)(nil)

// New returns an empty r×c matrix.
func New(r, c int) *Matrix {
	if r < 0 || c < 0 {
		panic("coo: negative dimension")
	}
	return &Matrix{
		r: r,
		c: c,
	}
}

// NewFromTriplets returns a matrix holding the triplets (rows[k], cols[k], vals[k])
// in the given order. The dimensions are inferred as max(rows)+1 by max(cols)+1,
// so a matrix built from zero triplets is 0×0 and an index of math.MaxInt is
// an error.
func NewFromTriplets(rows, cols []int, vals []float64) (*Matrix, error) {
	if len(rows) != len(cols) || len(rows) != len(vals) {
		return nil, errors.Errorf("coo: mismatched triplet lengths %d, %d, %d", len(rows), len(cols), len(vals))
	}
	m := &Matrix{data: make([]triplet, len(rows))}
	for k := range rows {
		i, j := rows[k], cols[k]
		if i < 0 || j < 0 {
			return nil, errors.Errorf("coo: negative index (%d, %d) in triplet %d", i, j, k)
		}
		if i == math.MaxInt || j == math.MaxInt {
			return nil, errors.Errorf("coo: index (%d, %d) in triplet %d exceeds the largest dimension", i, j, k)
		}
		if m.r <= i {
			m.r = i + 1
		}
		if m.c <= j {
			m.c = j + 1
		}
		m.data[k] = triplet{i, j, vals[k]}
	}
	return m, nil
}

// Dims returns the number of rows and columns of the matrix.
func (m *Matrix) Dims() (r, c int) {
	return m.r, m.c
}

// NNZ returns the number of stored triplets, counting duplicates.
func (m *Matrix) NNZ() int {
	return len(m.data)
}

// Append adds the triplet (i, j, v) to the matrix.
func (m *Matrix) Append(i, j int, v float64) {
	if i < 0 || m.r <= i {
		panic("coo: row index out of range")
	}
	if j < 0 || m.c <= j {
		panic("coo: column index out of range")
	}
	m.data = append(m.data, triplet{i, j, v})
}

// RowIndices returns the row indices of the stored triplets.
func (m *Matrix) RowIndices() []int {
	idx := make([]int, len(m.data))
	for k, t := range m.data {
		idx[k] = t.i
	}
	return idx
}

// ColIndices returns the column indices of the stored triplets.
func (m *Matrix) ColIndices() []int {
	idx := make([]int, len(m.data))
	for k, t := range m.data {
		idx[k] = t.j
	}
	return idx
}

// Values returns the values of the stored triplets.
func (m *Matrix) Values() []float64 {
	v := make([]float64, len(m.data))
	for k, t := range m.data {
		v[k] = t.v
	}
	return v
}

// Do calls fn for each stored triplet in storage order.
func (m *Matrix) Do(fn func(i, j int, v float64)) {
	for _, t := range m.data {
		fn(t.i, t.j, t.v)
	}
}

// At returns the sum of all stored values at (i, j). It runs in time
// proportional to NNZ; use SumDuplicates first when reading many entries.
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || m.r <= i {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || m.c <= j {
		panic(mat.ErrColAccess)
	}
	var v float64
	for _, t := range m.data {
		if t.i == i && t.j == j {
			v += t.v
		}
	}
	return v
}

// T returns the implicit transpose of the matrix.
func (m *Matrix) T() mat.Matrix {
	return mat.Transpose{Matrix: m}
}

// Diagonal returns the diagonal of the matrix. Its length is min(r, c).
func (m *Matrix) Diagonal() []float64 {
	d := make([]float64, min(m.r, m.c))
	for _, t := range m.data {
		if t.i == t.j {
			d[t.i] += t.v
		}
	}
	return d
}

// SumDuplicates returns a new matrix with the same dimensions and one triplet
// per distinct coordinate, ordered by row and then by column.
func (m *Matrix) SumDuplicates() *Matrix {
	acc := dok.New(m.r, m.c)
	for _, t := range m.data {
		acc.AddAt(t.i, t.j, t.v)
	}
	s := &Matrix{
		r:    m.r,
		c:    m.c,
		data: make([]triplet, 0, acc.Len()),
	}
	acc.Do(func(i, j int, v float64) {
		s.data = append(s.data, triplet{i, j, v})
	})
	return s
}

// ErrShape is returned by Resize when the new shape does not hold every
// stored triplet.
var ErrShape = errors.New("coo: shape too small for stored entries")

// Resize returns a matrix sharing m's triplets with dimensions r×c. The new
// dimensions must be large enough to hold every stored triplet.
func (m *Matrix) Resize(r, c int) (*Matrix, error) {
	for _, t := range m.data {
		if r <= t.i || c <= t.j {
			return nil, ErrShape
		}
	}
	return &Matrix{r: r, c: c, data: m.data[:len(m.data):len(m.data)]}, nil
}

// MulVec computes A*x and stores the result into dst.
func (m *Matrix) MulVec(dst, x []float64) {
	if m.c != len(x) {
		panic("coo: dimension mismatch")
	}
	if m.r != len(dst) {
		panic("coo: dimension mismatch")
	}
	for i := range dst {
		dst[i] = 0
	}
	for _, aij := range m.data {
		dst[aij.i] += aij.v * x[aij.j]
	}
}

// MulTransVec computes A^T*x and stores the result into dst.
func (m *Matrix) MulTransVec(dst, x []float64) {
	if m.c != len(dst) {
		panic("coo: dimension mismatch")
	}
	if m.r != len(x) {
		panic("coo: dimension mismatch")
	}
	for i := range dst {
		dst[i] = 0
	}
	for _, aij := range m.data {
		dst[aij.j] += aij.v * x[aij.i]
	}
}
