// Copyright ©2016 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import (
	"math/rand"
	"testing"
)

func TestCG(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	newCG := func(int) Method { return &CG{} }
	testMethod(t, newCG, spdCases(rnd), false)
	testMethod(t, newCG, spdCases(rnd), true)
}
