// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
)

// GMRES implements the restarted Generalized Minimal RESidual method with
// left preconditioning for non-symmetric systems
//  A x = b.
//
// GMRES needs MatVec and PSolve.
type GMRES struct {
	// Restart is the number of inner iterations between restarts.
	// It must be 0 <= Restart <= dim. Zero means dim.
	Restart int

	restart int
	resume  int
	i       int // inner iteration

	s  []float64
	w  []float64
	y  []float64
	av []float64

	// v holds the Krylov basis, one vector of stride ldv per column.
	v   []float64
	ldv int
	// h is the (restart+1)×restart upper Hessenberg matrix in
	// column-major order.
	h    []float64
	ldh  int
	givs []givens
}

type givens struct {
	c, s float64
}

// Init implements the Method interface.
func (g *GMRES) Init(dim int) {
	if dim <= 0 {
		panic("iterative: dimension not positive")
	}

	g.restart = g.Restart
	if g.restart == 0 {
		g.restart = dim
	}
	if g.restart <= 0 || dim < g.restart {
		panic("iterative: invalid GMRES.Restart")
	}

	g.s = reuse(g.s, g.restart+1)
	g.w = reuse(g.w, dim)
	g.y = reuse(g.y, g.restart+1)
	g.av = reuse(g.av, dim)

	k := g.restart
	g.ldv = dim
	g.v = reuse(g.v, g.ldv*(k+1))
	g.ldh = k + 1
	g.h = reuse(g.h, g.ldh*k)
	if cap(g.givs) < k {
		g.givs = make([]givens, k)
	} else {
		g.givs = g.givs[:k]
	}

	g.resume = 1
}

// Iterate implements the Method interface.
func (g *GMRES) Iterate(ctx *Context) (Operation, error) {
	n := len(ctx.X)
	ldv := g.ldv
	switch g.resume {
	case 1:
		ctx.Src = ctx.Residual
		ctx.Dst = g.v[:n]
		g.resume = 2
		return PSolve, nil
		// V[:,0] = M^{-1} r
	case 2:
		rnorm := floats.Norm(g.v[:n], 2)
		if rnorm == 0 {
			// The preconditioned residual vanished, x is exact.
			ctx.ResidualNorm = 0
			ctx.Converged = true
			g.resume = 0
			return EndIteration, nil
		}
		floats.Scale(1/rnorm, g.v[:n])
		for i := range g.s {
			g.s[i] = 0
		}
		g.s[0] = rnorm
		g.i = 0
		fallthrough
	case 3:
		i := g.i
		if i == g.restart {
			g.resume = 7
			ctx.Src = nil
			ctx.Dst = nil
			return NoOperation, nil
		}
		ctx.Src = g.v[i*ldv : i*ldv+n]
		ctx.Dst = g.av
		g.resume = 4
		return MatVec, nil
		// av = A V[:,i]
	case 4:
		ctx.Src = g.av
		ctx.Dst = g.w
		g.resume = 5
		return PSolve, nil
		// w = M^{-1} av
	case 5:
		i := g.i
		hi := g.h[i*g.ldh : i*g.ldh+i+2]

		// Modified Gram-Schmidt against the previous basis vectors.
		for k := 0; k <= i; k++ {
			vk := g.v[k*ldv : k*ldv+n]
			hi[k] = floats.Dot(vk, g.w)
			floats.AddScaled(g.w, -hi[k], vk)
		}
		wnorm := floats.Norm(g.w, 2)
		hi[i+1] = wnorm
		vip1 := g.v[(i+1)*ldv : (i+1)*ldv+n]
		copy(vip1, g.w)
		if wnorm != 0 {
			floats.Scale(1/wnorm, vip1)
		}

		// Reduce the new column of H to upper triangular form.
		for j := 0; j < i; j++ {
			hi[j], hi[j+1] = rotvec(hi[j], hi[j+1], g.givs[j])
		}
		g.givs[i] = drotg(hi[i], hi[i+1])
		hi[i], hi[i+1] = rotvec(hi[i], hi[i+1], g.givs[i])
		g.s[i], g.s[i+1] = rotvec(g.s[i], g.s[i+1], g.givs[i])

		ctx.ResidualNorm = math.Abs(g.s[i+1])
		ctx.Src = nil
		ctx.Dst = nil
		ctx.Converged = false
		g.resume = 6
		return CheckResidualNorm, nil
	case 6:
		if ctx.Converged {
			g.update(ctx.X, g.i+1)
			g.resume = 0
			return EndIteration, nil
		}
		g.i++
		g.resume = 3
		return NoOperation, nil
	case 7:
		// End of a cycle without convergence.
		g.update(ctx.X, g.restart)
		g.resume = 8
		return ComputeResidual, nil
	case 8:
		ctx.ResidualNorm = floats.Norm(ctx.Residual, 2)
		ctx.Converged = false
		g.resume = 9
		return CheckResidualNorm, nil
	case 9:
		if ctx.Converged {
			g.resume = 0
			return EndIteration, nil
		}
		g.resume = 1
		return EndIteration, nil

	default:
		panic("iterative: GMRES.Init not called")
	}
}

// update adds V[:,:k]*y to x where y solves H[:k,:k]*y = s[:k].
func (g *GMRES) update(x []float64, k int) {
	y := g.y[:k]
	copy(y, g.s[:k])
	// H is column-major, so as a row-major matrix it is the lower
	// triangular H^T.
	bi := blas64.Implementation()
	bi.Dtrsv(blas.Lower, blas.Trans, blas.NonUnit, k, g.h, g.ldh, y, 1)
	n := len(x)
	for j := 0; j < k; j++ {
		floats.AddScaled(x, y[j], g.v[j*g.ldv:j*g.ldv+n])
	}
}

func drotg(a, b float64) givens {
	if b == 0 {
		return givens{c: 1, s: 0}
	}
	if math.Abs(b) > math.Abs(a) {
		tmp := -a / b
		s := 1 / math.Sqrt(1+tmp*tmp)
		return givens{c: tmp * s, s: s}
	}
	tmp := -b / a
	c := 1 / math.Sqrt(1+tmp*tmp)
	return givens{c: c, s: tmp * c}
}

func rotvec(x, y float64, g givens) (rx, ry float64) {
	rx = g.c*x - g.s*y
	ry = g.s*x + g.c*y
	return
}
