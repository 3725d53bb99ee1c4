// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// ErrZeroDiagonal is returned by Jacobi when the diagonal has a zero entry.
var ErrZeroDiagonal = errors.New("iterative: zero on the diagonal")

// Jacobi returns the preconditioner solve for M = diag(d). Since M is
// diagonal the same function serves as Settings.PSolve and
// Settings.PSolveTrans.
func Jacobi(d []float64) (func(dst, rhs []float64) error, error) {
	inv := make([]float64, len(d))
	for i, v := range d {
		if v == 0 {
			return nil, errors.Wrapf(ErrZeroDiagonal, "row %d", i)
		}
		inv[i] = 1 / v
	}
	return func(dst, rhs []float64) error {
		floats.MulTo(dst, inv, rhs)
		return nil
	}, nil
}
