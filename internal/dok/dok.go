// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dok implements a dictionary-of-keys sparse matrix used to
// accumulate entries by coordinate.
package dok

import "sort"

type DOK struct {
	Rows, Cols int

	data map[index]float64
}

type index struct {
	row, col int
}

func New(r, c int) *DOK {
	return &DOK{
		Rows: r,
		Cols: c,
		data: make(map[index]float64),
	}
}

// Len returns the number of distinct coordinates that have been set.
func (m *DOK) Len() int {
	return len(m.data)
}

func (m *DOK) At(i, j int) float64 {
	m.check(i, j)
	return m.data[index{i, j}]
}

func (m *DOK) SetAt(i, j int, v float64) {
	m.check(i, j)
	m.data[index{i, j}] = v
}

// AddAt adds v to the entry at (i, j).
func (m *DOK) AddAt(i, j int, v float64) {
	m.check(i, j)
	m.data[index{i, j}] += v
}

// Do calls fn for every stored entry in row-major order.
func (m *DOK) Do(fn func(i, j int, v float64)) {
	keys := make([]index, 0, len(m.data))
	for ij := range m.data {
		keys = append(keys, ij)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].row != keys[b].row {
			return keys[a].row < keys[b].row
		}
		return keys[a].col < keys[b].col
	})
	for _, ij := range keys {
		fn(ij.row, ij.col, m.data[ij])
	}
}

func (m *DOK) MulVec(dst, x []float64) {
	if m.Cols != len(x) {
		panic("dok: dimension mismatch")
	}
	if m.Rows != len(dst) {
		panic("dok: dimension mismatch")
	}
	for i := range dst {
		dst[i] = 0
	}
	for ij, aij := range m.data {
		dst[ij.row] += aij * x[ij.col]
	}
}

func (m *DOK) MulTransVec(dst, x []float64) {
	if m.Cols != len(dst) {
		panic("dok: dimension mismatch")
	}
	if m.Rows != len(x) {
		panic("dok: dimension mismatch")
	}
	for i := range dst {
		dst[i] = 0
	}
	for ij, aij := range m.data {
		dst[ij.col] += aij * x[ij.row]
	}
}

func (m *DOK) check(i, j int) {
	if i < 0 || m.Rows <= i {
		panic("dok: row index out of range")
	}
	if j < 0 || m.Cols <= j {
		panic("dok: column index out of range")
	}
}
