// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import "gonum.org/v1/gonum/floats"

// BiCGSTAB solves a non-symmetric system
//  A x = b
// by the preconditioned stabilized biconjugate gradient method. A step
// has two halves: a BiCG-like update along p̂ = M^{-1} p giving the
// intermediate residual s, and a one-dimensional minimal residual update
// along ŝ = M^{-1} s. The residual norm is checked after each half, so the
// method may stop in the middle of a step.
//
// BiCGSTAB requests MatVec and PSolve. Unlike BiCG it never needs A^T. It
// fails with ErrBreakdown when ρ = r̃·r, r̃·v or ω vanishes.
type BiCGSTAB struct {
	step  bicgstabStep
	first bool

	rho, rhoPrev float64
	alpha, omega float64

	shadow []float64 // r̃, fixed at r_0
	p, v   []float64 // direction and A p̂
	phat   []float64 // M^{-1} p
	shat   []float64 // M^{-1} s
	t      []float64 // A ŝ
}

// bicgstabStep is the point at which BiCGSTAB.Iterate resumes.
type bicgstabStep int

const (
	bicgstabStopped bicgstabStep = iota
	bicgstabDirection
	bicgstabProduct
	bicgstabHalf
	bicgstabHalfEnd
	bicgstabStabProduct
	bicgstabStab
	bicgstabEnd
)

// Init implements the Method interface.
func (b *BiCGSTAB) Init(dim int) {
	if dim <= 0 {
		panic("iterative: dimension not positive")
	}
	for _, v := range []*[]float64{&b.shadow, &b.p, &b.v, &b.phat, &b.shat, &b.t} {
		*v = reuse(*v, dim)
	}
	b.first = true
	b.step = bicgstabDirection
}

// Iterate implements the Method interface.
func (b *BiCGSTAB) Iterate(ctx *Context) (Operation, error) {
	switch b.step {
	case bicgstabDirection:
		if b.first {
			copy(b.shadow, ctx.Residual)
		}
		b.rho = floats.Dot(b.shadow, ctx.Residual)
		if err := b.stop(breakdown("rho", b.rho)); err != nil {
			return NoOperation, err
		}
		if b.first {
			copy(b.p, ctx.Residual)
		} else {
			if err := b.stop(breakdown("omega", b.omega)); err != nil {
				return NoOperation, err
			}
			// p = r + β (p - ω v)
			beta := (b.rho / b.rhoPrev) * (b.alpha / b.omega)
			floats.AddScaled(b.p, -b.omega, b.v)
			floats.AddScaledTo(b.p, ctx.Residual, beta, b.p)
		}
		ctx.Src, ctx.Dst = b.p, b.phat
		b.step = bicgstabProduct
		return PSolve, nil

	case bicgstabProduct:
		ctx.Src, ctx.Dst = b.phat, b.v
		b.step = bicgstabHalf
		return MatVec, nil

	case bicgstabHalf:
		rv := floats.Dot(b.shadow, b.v)
		if err := b.stop(breakdown("alpha", rv)); err != nil {
			return NoOperation, err
		}
		b.alpha = b.rho / rv
		floats.AddScaled(ctx.X, b.alpha, b.phat)
		floats.AddScaled(ctx.Residual, -b.alpha, b.v) // s
		b.step = bicgstabHalfEnd
		return checkResidual(ctx), nil

	case bicgstabHalfEnd:
		if ctx.Converged {
			b.step = bicgstabStopped
			return EndIteration, nil
		}
		ctx.Src, ctx.Dst = ctx.Residual, b.shat
		b.step = bicgstabStabProduct
		return PSolve, nil

	case bicgstabStabProduct:
		ctx.Src, ctx.Dst = b.shat, b.t
		b.step = bicgstabStab
		return MatVec, nil

	case bicgstabStab:
		// ω minimizes |s - ω t|.
		b.omega = floats.Dot(b.t, ctx.Residual) / floats.Dot(b.t, b.t)
		floats.AddScaled(ctx.X, b.omega, b.shat)
		floats.AddScaled(ctx.Residual, -b.omega, b.t)
		b.step = bicgstabEnd
		return checkResidual(ctx), nil

	case bicgstabEnd:
		if ctx.Converged {
			b.step = bicgstabStopped
			return EndIteration, nil
		}
		b.rhoPrev = b.rho
		b.first = false
		b.step = bicgstabDirection
		return EndIteration, nil

	default:
		panic("iterative: BiCGSTAB.Init not called")
	}
}

// stop ends the iteration when err is not nil.
func (b *BiCGSTAB) stop(err error) error {
	if err != nil {
		b.step = bicgstabStopped
	}
	return err
}
