// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"

	"github.com/vladimir-ch/linsys/internal/dok"
)

type testCase struct {
	name  string
	n     int
	iters int     // iteration limit
	tol   float64 // tolerance on |x - x*|_inf
	a     MatrixOps
	diag  []float64
}

// randomSPD returns a dense, strictly diagonally dominant symmetric
// positive definite matrix.
func randomSPD(n int, rnd *rand.Rand) testCase {
	a := make([]float64, n*n)
	lda := n
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			a[i*lda+j] = rnd.Float64()
		}
	}
	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		a[i*lda+i] += float64(n)
		diag[i] = a[i*lda+i]
	}
	bi := blas64.Implementation()
	matvec := func(dst, x []float64) {
		bi.Dsymv(blas.Upper, n, 1, a, lda, x, 1, 0, dst, 1)
	}
	return testCase{
		name:  fmt.Sprintf("randomSPD%d", n),
		n:     n,
		iters: 2 * n,
		tol:   1e-8,
		a:     MatrixOps{MatVec: matvec, MatTransVec: matvec},
		diag:  diag,
	}
}

// randomNonsym returns a sparse non-symmetric matrix with about nnzRow
// off-diagonal entries per row and a dominant diagonal.
func randomNonsym(n, nnzRow int, rnd *rand.Rand) testCase {
	m := dok.New(n, n)
	for i := 0; i < n; i++ {
		for k := 0; k < nnzRow; k++ {
			m.AddAt(i, rnd.Intn(n), 2*rnd.Float64()-1)
		}
	}
	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		m.AddAt(i, i, float64(2*nnzRow)+rnd.Float64())
		diag[i] = m.At(i, i)
	}
	return testCase{
		name:  fmt.Sprintf("randomNonsym%d", n),
		n:     n,
		iters: 4 * n,
		tol:   1e-8,
		a:     MatrixOps{MatVec: m.MulVec, MatTransVec: m.MulTransVec},
		diag:  diag,
	}
}

// laplacian returns the tridiagonal matrix tridiag(-1, 2, -1).
func laplacian(n int) testCase {
	m := dok.New(n, n)
	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		m.SetAt(i, i, 2)
		diag[i] = 2
		if i > 0 {
			m.SetAt(i, i-1, -1)
		}
		if i < n-1 {
			m.SetAt(i, i+1, -1)
		}
	}
	return testCase{
		name:  fmt.Sprintf("laplacian%d", n),
		n:     n,
		iters: 4 * n,
		tol:   1e-6,
		a:     MatrixOps{MatVec: m.MulVec, MatTransVec: m.MulTransVec},
		diag:  diag,
	}
}

// testMethod solves A x = A*[1,...,1] for every case and checks the
// distance of the computed solution from the vector of ones.
func testMethod(t *testing.T, newMethod func(n int) Method, cases []testCase, precond bool) {
	t.Helper()
	for _, tc := range cases {
		n := tc.n
		want := make([]float64, n)
		for i := range want {
			want[i] = 1
		}
		b := make([]float64, n)
		tc.a.MatVec(b, want)

		settings := Settings{
			MaxIterations: tc.iters,
			Tolerance:     1e-12,
		}
		if precond {
			psolve, err := Jacobi(tc.diag)
			if err != nil {
				t.Fatalf("Case %v: unexpected Jacobi error %v", tc.name, err)
			}
			settings.PSolve = psolve
			settings.PSolveTrans = psolve
		}
		r, err := LinearSolve(tc.a, b, newMethod(n), settings)
		if err != nil {
			t.Errorf("Case %v (n=%v): unexpected error %v", tc.name, n, err)
			continue
		}
		dist := floats.Distance(r.X, want, math.Inf(1))
		if dist > tc.tol {
			t.Errorf("Case %v (n=%v): unexpected solution, |want-got|=%v", tc.name, n, dist)
		}
		if r.Stats.Iterations == 0 || r.Stats.Iterations > tc.iters {
			t.Errorf("Case %v (n=%v): unexpected iteration count %v", tc.name, n, r.Stats.Iterations)
		}
	}
}

func spdCases(rnd *rand.Rand) []testCase {
	var cases []testCase
	for _, n := range []int{1, 2, 3, 4, 5, 10, 20, 50, 100, 200} {
		cases = append(cases, randomSPD(n, rnd))
	}
	return append(cases, laplacian(10), laplacian(50))
}

func nonsymCases(rnd *rand.Rand) []testCase {
	var cases []testCase
	for _, n := range []int{1, 2, 5, 10, 50, 100, 300} {
		cases = append(cases, randomNonsym(n, 3, rnd))
	}
	return cases
}
