// Copyright ©2016 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package iterative provides Krylov subspace methods for solving the sparse
// linear systems loaded by package linsys.
package iterative

// Operation is a request made by a Method to its caller.
type Operation uint64

// Operations that Method.Iterate may request.
const (
	NoOperation Operation = 0

	// MatVec asks for Dst = A*Src.
	MatVec Operation = 1 << (iota - 1)

	// MatTransVec asks for Dst = A^T*Src.
	MatTransVec

	// PSolve asks for the solution of M*Dst = Src.
	PSolve

	// PSolveTrans asks for the solution of M^T*Dst = Src.
	PSolveTrans

	// ComputeResidual asks for Residual = b - A*X.
	ComputeResidual

	// CheckResidualNorm asks the caller to compare ResidualNorm with
	// the stopping criterion and set Converged accordingly.
	CheckResidualNorm

	// EndIteration marks the end of one iteration of the Method. When
	// Converged is true the caller stops, and Init must be called
	// before Iterate is used again.
	EndIteration
)

// Method is an iterative method for the n×n system
//  A x = b.
//
// A Method never touches A or the preconditioner M directly. It returns an
// Operation from Iterate, the caller carries it out on the vectors held in
// Context, and calls Iterate again. This keeps the methods independent of
// how A is stored.
type Method interface {
	// Init prepares the method for a system of dimension dim.
	Init(dim int)

	// Iterate advances the method and returns the next Operation that
	// the caller must perform.
	Iterate(*Context) (Operation, error)
}

// Context holds the vectors exchanged between a Method and its caller.
type Context struct {
	// X is the current approximation of the solution. It holds the
	// initial guess on the first call to Iterate.
	X []float64

	// Residual is b - A*X. It holds the initial residual on the first
	// call to Iterate.
	Residual []float64

	// ResidualNorm is the norm of the current residual, or an estimate
	// of it. GMRES, for example, tracks it without forming Residual.
	ResidualNorm float64

	// Converged is set by the caller in response to CheckResidualNorm.
	Converged bool

	// Src and Dst are the operands of MatVec, MatTransVec, PSolve and
	// PSolveTrans.
	Src, Dst []float64
}
