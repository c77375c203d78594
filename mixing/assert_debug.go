// Copyright ©2024 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build mixingdebug

package mixing

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/Sichao-Yang/SATNet/internal/asm/f64"
)

// debugAssertUnitNorm checks invariant 1 of spec.md §8: every output
// row of V has unit L2 norm after each coordinate update. Built only
// under the mixingdebug tag, since the hot path performs no allocation
// or correctness bookkeeping beyond what the algorithm itself needs.
func debugAssertUnitNorm(vo []float64, o int) {
	nrm := f64.Nrm2(vo, len(vo))
	if !floats.EqualWithinAbs(nrm, 1, 1e-5) {
		panic(fmt.Sprintf("mixing: invariant violated: ||V[%d]|| = %v, want 1", o, nrm))
	}
}

// debugAssertWInvariant checks invariant 2 of spec.md §8: prod stays
// equal to rowsᵀ·s after every rank-1 refresh, by recomputing it from
// scratch from the current rows/s and comparing column by column. This
// is the from-scratch recomputation the incremental refresh in sweep
// exists to avoid, so it only ever runs under the mixingdebug tag.
func debugAssertWInvariant(buf *sweepBuffers) {
	k := buf.rows.Cols
	m := buf.s.Cols
	n := buf.rows.Rows
	want := make([]float64, m)
	for c := 0; c < k; c++ {
		f64.Zero(want, m)
		for i := 0; i < n; i++ {
			f64.Axpy(want, row(buf.rows, i)[c], row(buf.s, i), m)
		}
		got := row(buf.prod, c)
		if !floats.EqualApprox(got, want, 1e-6) {
			panic(fmt.Sprintf("mixing: invariant violated: prod[%d,:] = %v, want %v (rowsᵀ·s refresh)", c, got, want))
		}
	}
}
