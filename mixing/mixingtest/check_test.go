// Copyright ©2024 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixingtest

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// TestGradientCheck is spec.md's Law 7: finite differences of a scalar
// loss w.r.t. z_in and S match Backward's dz, dS within 1e-2 relative
// error when prox_lam = 0 and inputs are away from {0, 1}.
func TestGradientCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n, m, k := 6, 6, 4
	batch, perm := RandomInstance(n, m, k, rng)

	res, err := CheckGradient(batch, perm, 60, 1e-5, 0, 1e-4)
	if err != nil {
		t.Fatal(err)
	}
	const tol = 1e-2
	if !floats.EqualWithinAbs(res.MaxRelErrDz, 0, tol) {
		t.Errorf("MaxRelErrDz = %v, want <= %v", res.MaxRelErrDz, tol)
	}
	if !floats.EqualWithinAbs(res.MaxRelErrDS, 0, tol) {
		t.Errorf("MaxRelErrDS = %v, want <= %v", res.MaxRelErrDS, tol)
	}
}
