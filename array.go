// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Array is a one- or two-dimensional array of float64 values stored in
// row-major order.
type Array struct {
	data  []float64
	shape []int
}

// newArray returns the array holding rows lines of cols values each,
// squeezing a single column or a single line to one dimension.
func newArray(data []float64, rows, cols int) *Array {
	switch {
	case rows == 0:
		return &Array{shape: []int{0}}
	case cols == 1, rows == 1:
		return &Array{data: data, shape: []int{len(data)}}
	default:
		return &Array{data: data, shape: []int{rows, cols}}
	}
}

// NewVector returns a one-dimensional array holding a copy of v.
func NewVector(v []float64) *Array {
	data := make([]float64, len(v))
	copy(data, v)
	return &Array{data: data, shape: []int{len(v)}}
}

// NDim returns the number of dimensions, 1 or 2.
func (a *Array) NDim() int { return len(a.shape) }

// Shape returns the length of each dimension.
func (a *Array) Shape() []int {
	return append([]int(nil), a.shape...)
}

// Len returns the length of the first dimension.
func (a *Array) Len() int { return a.shape[0] }

// Data returns a copy of the values in row-major order.
func (a *Array) Data() []float64 {
	return append([]float64(nil), a.data...)
}

// Vector returns a copy of the values of a one-dimensional array.
func (a *Array) Vector() ([]float64, error) {
	if a.NDim() != 1 {
		return nil, errors.Wrapf(ErrNotVector, "shape %v", a.shape)
	}
	return a.Data(), nil
}

// At returns the value at (i, j). A one-dimensional array is treated as a
// single column.
func (a *Array) At(i, j int) float64 {
	r, c := a.dims()
	if i < 0 || r <= i {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || c <= j {
		panic(mat.ErrColAccess)
	}
	return a.data[i*c+j]
}

// Row returns a copy of the i-th row.
func (a *Array) Row(i int) []float64 {
	r, c := a.dims()
	if i < 0 || r <= i {
		panic(mat.ErrRowAccess)
	}
	return append([]float64(nil), a.data[i*c:(i+1)*c]...)
}

// Dense returns the array as a matrix, a one-dimensional array as a
// single column. It returns nil for an empty array.
func (a *Array) Dense() *mat.Dense {
	r, c := a.dims()
	if r == 0 {
		return nil
	}
	return mat.NewDense(r, c, a.Data())
}

func (a *Array) dims() (r, c int) {
	if len(a.shape) == 1 {
		return a.shape[0], 1
	}
	return a.shape[0], a.shape[1]
}
