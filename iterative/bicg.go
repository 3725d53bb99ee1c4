// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import "gonum.org/v1/gonum/floats"

// BiCG solves a non-symmetric system
//  A x = b
// by the preconditioned biconjugate gradient method. Next to the residual r
// it carries a shadow residual r̃, started from r_0 and driven by A^T and
// M^T, and keeps the two residual sequences mutually orthogonal. Each step
// costs one product with A and one with A^T.
//
// BiCG requests MatVec, MatTransVec, PSolve and PSolveTrans. It fails with
// ErrBreakdown when ρ = z·r̃ or p̃·Ap vanishes.
type BiCG struct {
	step  bicgStep
	first bool

	rho, rhoPrev float64

	shadow []float64 // r̃
	z, zt  []float64 // M^{-1} r, M^{-T} r̃
	p, pt  []float64 // search directions for r and r̃
	q, qt  []float64 // A p, A^T p̃
}

// bicgStep is the point at which BiCG.Iterate resumes.
type bicgStep int

const (
	bicgStopped bicgStep = iota
	bicgPrecond
	bicgPrecondShadow
	bicgDirections
	bicgShadowProduct
	bicgUpdate
	bicgEnd
)

// Init implements the Method interface.
func (b *BiCG) Init(dim int) {
	if dim <= 0 {
		panic("iterative: dimension not positive")
	}
	for _, v := range []*[]float64{&b.shadow, &b.z, &b.zt, &b.p, &b.pt, &b.q, &b.qt} {
		*v = reuse(*v, dim)
	}
	b.first = true
	b.step = bicgPrecond
}

// Iterate implements the Method interface.
func (b *BiCG) Iterate(ctx *Context) (Operation, error) {
	switch b.step {
	case bicgPrecond:
		if b.first {
			copy(b.shadow, ctx.Residual)
		}
		ctx.Src, ctx.Dst = ctx.Residual, b.z
		b.step = bicgPrecondShadow
		return PSolve, nil

	case bicgPrecondShadow:
		ctx.Src, ctx.Dst = b.shadow, b.zt
		b.step = bicgDirections
		return PSolveTrans, nil

	case bicgDirections:
		b.rho = floats.Dot(b.z, b.shadow)
		if err := breakdown("rho", b.rho); err != nil {
			b.step = bicgStopped
			return NoOperation, err
		}
		if b.first {
			copy(b.p, b.z)
			copy(b.pt, b.zt)
		} else {
			beta := b.rho / b.rhoPrev
			floats.AddScaledTo(b.p, b.z, beta, b.p)
			floats.AddScaledTo(b.pt, b.zt, beta, b.pt)
		}
		ctx.Src, ctx.Dst = b.p, b.q
		b.step = bicgShadowProduct
		return MatVec, nil

	case bicgShadowProduct:
		ctx.Src, ctx.Dst = b.pt, b.qt
		b.step = bicgUpdate
		return MatTransVec, nil

	case bicgUpdate:
		pq := floats.Dot(b.pt, b.q)
		if err := breakdown("alpha", pq); err != nil {
			b.step = bicgStopped
			return NoOperation, err
		}
		alpha := b.rho / pq
		floats.AddScaled(ctx.X, alpha, b.p)
		floats.AddScaled(ctx.Residual, -alpha, b.q)
		floats.AddScaled(b.shadow, -alpha, b.qt)
		b.step = bicgEnd
		return checkResidual(ctx), nil

	case bicgEnd:
		if ctx.Converged {
			b.step = bicgStopped
			return EndIteration, nil
		}
		b.rhoPrev = b.rho
		b.first = false
		b.step = bicgPrecond
		return EndIteration, nil

	default:
		panic("iterative: BiCG.Init not called")
	}
}
