// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrIterationLimit is returned by LinearSolve when the stopping
	// criterion was not met within Settings.MaxIterations.
	ErrIterationLimit = errors.New("iterative: iteration limit reached")

	// ErrBreakdown is returned when a method divides by a quantity that
	// has become numerically zero.
	ErrBreakdown = errors.New("iterative: breakdown")
)

// MatrixOps represents the matrix A through its products with vectors.
type MatrixOps struct {
	// MatVec stores A*x into dst. It must not be nil.
	MatVec func(dst, x []float64)

	// MatTransVec stores A^T*x into dst. Only BiCG needs it.
	MatTransVec func(dst, x []float64)
}

// Settings adjusts the iterative process. The zero value of each field
// selects its default.
type Settings struct {
	// X0 is the initial guess. A nil X0 means the zero vector, otherwise
	// its length must equal the dimension of the system.
	X0 []float64

	// Tolerance is the relative tolerance of the stopping criterion
	//  |r_i| < Tolerance * (NormA*|x_i| + |b|).
	// It must be in (eps, 1). Default 1e-8.
	Tolerance float64

	// NormA is an estimate of |A|. Zero drops the NormA*|x_i| term.
	NormA float64

	// MaxIterations limits the number of iterations. Default is twice
	// the dimension of the system.
	MaxIterations int

	// PSolve stores into dst the solution of M z = rhs. Nil means no
	// preconditioning.
	PSolve func(dst, rhs []float64) error

	// PSolveTrans stores into dst the solution of M^T z = rhs. Nil
	// means no preconditioning.
	PSolveTrans func(dst, rhs []float64) error
}

// DefaultSettings returns the settings used for zero-valued fields.
func DefaultSettings() Settings {
	return Settings{
		Tolerance: 1e-8,
	}
}

func defaultSettings(s *Settings, dim int) {
	if s.Tolerance == 0 {
		s.Tolerance = DefaultSettings().Tolerance
	}
	if s.MaxIterations == 0 {
		s.MaxIterations = 2 * dim
	}
}

// Result is the outcome of LinearSolve.
type Result struct {
	// X is the approximate solution.
	X []float64

	Stats Stats
}

// Stats describes the work done by LinearSolve.
type Stats struct {
	Iterations int
	// MatVec counts both MatVec and MatTransVec.
	MatVec int
	// PSolve counts both PSolve and PSolveTrans.
	PSolve       int
	ResidualNorm float64
	StartTime    time.Time
	Runtime      time.Duration
}

// LinearSolve approximates the solution of
//  A*x = b,
// where the n×n matrix A is given by its products in a and n is len(b).
// The method must not be nil and a must provide the products it requests.
//
// On ErrIterationLimit the returned Result still holds the last iterate.
func LinearSolve(a MatrixOps, b []float64, method Method, settings Settings) (Result, error) {
	stats := Stats{StartTime: time.Now()}

	dim := len(b)
	if a.MatVec == nil {
		panic("iterative: nil matrix-vector multiplication")
	}
	if settings.X0 != nil && len(settings.X0) != dim {
		panic("iterative: mismatched length of initial guess")
	}
	if dim == 0 {
		return Result{Stats: stats}, nil
	}

	defaultSettings(&settings, dim)
	if settings.Tolerance < dlamchE || 1 <= settings.Tolerance {
		panic("iterative: invalid tolerance")
	}

	ctx := &Context{
		X:        make([]float64, dim),
		Residual: make([]float64, dim),
	}
	if settings.X0 != nil {
		copy(ctx.X, settings.X0)
		a.MatVec(ctx.Residual, ctx.X)
		stats.MatVec++
		floats.AddScaledTo(ctx.Residual, b, -1, ctx.Residual) // r = b - Ax
	} else {
		copy(ctx.Residual, b)
	}
	ctx.ResidualNorm = floats.Norm(ctx.Residual, 2)
	stats.ResidualNorm = ctx.ResidualNorm

	var err error
	if !converged(ctx, floats.Norm(b, 2), settings) {
		err = iterate(a, b, ctx, settings, method, &stats)
	}

	stats.Runtime = time.Since(stats.StartTime)
	return Result{
		X:     ctx.X,
		Stats: stats,
	}, err
}

func iterate(a MatrixOps, b []float64, ctx *Context, settings Settings, method Method, stats *Stats) error {
	bnorm := floats.Norm(b, 2)

	method.Init(len(ctx.X))
	for {
		op, err := method.Iterate(ctx)
		if err != nil {
			return err
		}

		switch op {
		case NoOperation:

		case ComputeResidual:
			a.MatVec(ctx.Residual, ctx.X)
			stats.MatVec++
			floats.AddScaledTo(ctx.Residual, b, -1, ctx.Residual)

		case MatVec:
			a.MatVec(ctx.Dst, ctx.Src)
			stats.MatVec++

		case MatTransVec:
			if a.MatTransVec == nil {
				panic("iterative: nil transposed matrix-vector multiplication")
			}
			a.MatTransVec(ctx.Dst, ctx.Src)
			stats.MatVec++

		case PSolve, PSolveTrans:
			psolve := settings.PSolve
			if op == PSolveTrans {
				psolve = settings.PSolveTrans
			}
			if psolve == nil {
				copy(ctx.Dst, ctx.Src)
				continue
			}
			if err := psolve(ctx.Dst, ctx.Src); err != nil {
				return err
			}
			stats.PSolve++

		case CheckResidualNorm:
			ctx.Converged = converged(ctx, bnorm, settings)

		case EndIteration:
			stats.Iterations++
			stats.ResidualNorm = ctx.ResidualNorm
			if ctx.Converged {
				return nil
			}
			if stats.Iterations == settings.MaxIterations {
				return ErrIterationLimit
			}

		default:
			panic("iterative: invalid operation")
		}
	}
}

func converged(ctx *Context, bnorm float64, settings Settings) bool {
	scale := bnorm
	if settings.NormA != 0 {
		scale += settings.NormA * floats.Norm(ctx.X, 2)
	}
	if scale == 0 {
		scale = 1
	}
	return ctx.ResidualNorm < settings.Tolerance*scale
}

func reuse(v []float64, n int) []float64 {
	if cap(v) < n {
		return make([]float64, n)
	}
	return v[:n]
}

const dlamchE = 1.0 / (1 << 53)

// breakdown returns ErrBreakdown annotated with name when the divisor v
// is too small for the iteration to continue.
func breakdown(name string, v float64) error {
	if math.Abs(v) < dlamchE*dlamchE {
		return errors.Wrap(ErrBreakdown, name)
	}
	return nil
}

// checkResidual records the norm of ctx.Residual and returns the request
// that lets the caller decide on convergence.
func checkResidual(ctx *Context) Operation {
	ctx.Src = nil
	ctx.Dst = nil
	ctx.ResidualNorm = floats.Norm(ctx.Residual, 2)
	ctx.Converged = false
	return CheckResidualNorm
}
