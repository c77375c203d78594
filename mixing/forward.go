// Copyright ©2024 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixing

import (
	"math"

	"github.com/Sichao-Yang/SATNet/internal/asm/f64"
)

// Forward repeats the inner coordinate-descent sweep over every
// instance's output variables until the sweep's decrease falls below
// eps times the first sweep's decrease, or max_iter sweeps have run,
// then converts the resulting unit vectors back into output
// probabilities. It writes Z (for outputs), V, W, Gnrm and NIter.
//
// Forward never reports non-convergence: if the ratio test never
// triggers, the loop simply runs to max_iter and NIter == max_iter.
func Forward(b *Batch, maxIter int, eps float64) error {
	if maxIter < 1 {
		return ErrMaxIter
	}
	if !(eps > 0 && eps < 1) {
		return ErrEps
	}
	if err := b.validateShape(); err != nil {
		return err
	}
	runParallel(len(b.Instances), func(i int) {
		forwardInstance(&b.Instances[i], &b.Problem, maxIter, eps)
	})
	return nil
}

func forwardInstance(inst *Instance, p *Problem, maxIter int, eps float64) {
	// Establish W = Vᵀ S from the current V; the sweeps below keep it
	// current with rank-1 refreshes.
	k, m := inst.V.Cols, p.M
	for c := 0; c < k; c++ {
		wc := row(inst.W, c)
		f64.Zero(wc, m)
		for i := 0; i < inst.V.Rows; i++ {
			f64.Axpy(wc, row(inst.V, i)[c], row(p.S, i), m)
		}
	}

	buf := sweepBuffers{
		s:     p.S,
		snrms: p.Snrms,
		index: inst.Index,
		rows:  inst.V,
		prod:  inst.W,
		gnrm:  inst.Gnrm,
		cache: inst.cache,
		mode:  modeForward,
	}

	var niter int
	var threshold float64
	for t := 0; t < maxIter; t++ {
		delta := sweep(&buf)
		if t == 0 {
			threshold = eps * delta
			niter = 1
			if delta <= 0 {
				// No output variables (or an already-exact
				// fixed point): nothing more to iterate on.
				break
			}
			continue
		}
		niter = t + 1
		if delta < threshold {
			break
		}
	}
	inst.NIter = niter

	for _, o := range inst.Index {
		if o == 0 {
			break
		}
		z := row(inst.V, o)[0]
		z = f64.Saturate((z+1)/2)*2 - 1
		inst.Z[o] = f64.Saturate(1 - math.Acos(z)/math.Pi)
	}
}
