// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestArrayTable(t *testing.T) {
	t.Parallel()
	a, err := ReadVec(strings.NewReader("1 2\n3 4\n5 6\n"))
	require.NoError(t, err)
	require.Equal(t, 2, a.NDim())
	require.Equal(t, 3, a.Len())
	require.Equal(t, 6.0, a.At(2, 1))
	require.Equal(t, []float64{3, 4}, a.Row(1))

	_, err = a.Vector()
	require.ErrorIs(t, err, ErrNotVector)

	d := a.Dense()
	r, c := d.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 2, c)
	require.True(t, mat.Equal(d, a.Dense()))
	d.Set(0, 0, 100)
	require.Equal(t, 1.0, a.At(0, 0), "Dense must not alias the array")

	require.Panics(t, func() { a.At(3, 0) })
	require.Panics(t, func() { a.At(0, 2) })
}

func TestArrayVector(t *testing.T) {
	t.Parallel()
	a := NewVector([]float64{1, 2, 3})
	require.Equal(t, 1, a.NDim())
	require.Equal(t, 2.0, a.At(1, 0))
	require.Equal(t, []float64{3}, a.Row(2))

	d := a.Dense()
	r, c := d.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 1, c)

	v, err := a.Vector()
	require.NoError(t, err)
	v[0] = 100
	require.Equal(t, 1.0, a.At(0, 0), "Vector must return a copy")
}

func TestArrayEmpty(t *testing.T) {
	t.Parallel()
	a, err := ReadVec(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, 0, a.Len())
	require.Nil(t, a.Dense())
	v, err := a.Vector()
	require.NoError(t, err)
	require.Empty(t, v)
}
