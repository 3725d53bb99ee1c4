// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import (
	"math/rand"
	"testing"
)

func TestGMRES(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	newGMRES := func(int) Method { return &GMRES{} }
	testMethod(t, newGMRES, spdCases(rnd), false)
	testMethod(t, newGMRES, nonsymCases(rnd), false)
	testMethod(t, newGMRES, nonsymCases(rnd), true)
	testMethod(t, newGMRES, []testCase{laplacian(20)}, true)
}

func TestGMRESRestart(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	newGMRES := func(n int) Method {
		return &GMRES{Restart: max(1, n/4)}
	}
	// MaxIterations counts restart cycles. A short cycle converges in
	// many more of them than the full method.
	cases := nonsymCases(rnd)
	for i := range cases {
		cases[i].iters *= 8
	}
	testMethod(t, newGMRES, cases, false)
}

func TestGMRESReinit(t *testing.T) {
	// Restart defaults to the dimension of each system separately.
	g := &GMRES{}
	g.Init(10)
	g.Init(3)
	if g.Restart != 0 {
		t.Errorf("Restart modified by Init: %v", g.Restart)
	}
	if g.restart != 3 {
		t.Errorf("unexpected restart %v, want 3", g.restart)
	}
}
