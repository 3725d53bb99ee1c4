// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/vladimir-ch/linsys/coo"
	"github.com/vladimir-ch/linsys/iterative"
)

// System is the linear system A x = b.
type System struct {
	// A is the n×n system matrix.
	A *coo.Matrix
	// B is the right-hand side of length n.
	B []float64
}

// NewSystem returns the system with matrix a and right-hand side b. The
// dimension of the system is len(b). A matrix with fewer rows or columns
// than len(b) is padded with zeros, which happens when the trailing rows
// or columns of the dumped matrix were empty.
func NewSystem(a *coo.Matrix, b []float64) (*System, error) {
	n := len(b)
	r, c := a.Dims()
	if n < r || n < c {
		return nil, errors.Wrapf(ErrDimensionMismatch, "matrix is %d×%d, right-hand side has length %d", r, c, n)
	}
	if r != n || c != n {
		var err error
		a, err = a.Resize(n, n)
		if err != nil {
			return nil, errors.Wrap(err, "linsys")
		}
	}
	return &System{A: a, B: b}, nil
}

// LoadSystem reads the matrix file matrixPath and the vector file rhsPath
// concurrently and returns the system they describe.
func LoadSystem(ctx context.Context, matrixPath, rhsPath string) (*System, error) {
	var (
		a   *coo.Matrix
		rhs *Array
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		a, err = LoadCoo(matrixPath)
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		rhs, err = LoadVec(rhsPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b, err := rhs.Vector()
	if err != nil {
		return nil, errors.Wrapf(err, "linsys: right-hand side %s", rhsPath)
	}
	return NewSystem(a, b)
}

// Dim returns the dimension of the system.
func (s *System) Dim() int { return len(s.B) }

// Ops returns the matrix-vector products of A.
func (s *System) Ops() iterative.MatrixOps {
	return iterative.MatrixOps{
		MatVec:      s.A.MulVec,
		MatTransVec: s.A.MulTransVec,
	}
}

// Jacobi sets the diagonal of A as the preconditioner in settings.
func (s *System) Jacobi(settings *iterative.Settings) error {
	psolve, err := iterative.Jacobi(s.A.Diagonal())
	if err != nil {
		return err
	}
	settings.PSolve = psolve
	settings.PSolveTrans = psolve
	return nil
}

// Solve solves the system with the given method.
func (s *System) Solve(method iterative.Method, settings iterative.Settings) (iterative.Result, error) {
	return iterative.LinearSolve(s.Ops(), s.B, method, settings)
}

// Residual returns b - A*x.
func (s *System) Residual(x []float64) []float64 {
	r := make([]float64, s.Dim())
	s.A.MulVec(r, x)
	for i, bi := range s.B {
		r[i] = bi - r[i]
	}
	return r
}
