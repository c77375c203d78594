// Copyright ©2024 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixing

import (
	"math"

	"github.com/Sichao-Yang/SATNet/internal/asm/f64"
)

// MEPS is the floor below which a recorded gnrm is treated as a
// collapsed forward iterate during Backward.
const MEPS = 1e-24

// Backward treats the fixed point of the last Forward call as a linear
// system and computes the gradient of a caller-supplied loss with
// respect to the clause matrix (DS) and the input probabilities (Dz).
//
// Backward requires V, W, Gnrm and NIter from a prior Forward call on
// the same Batch, and Dz filled in with the incoming gradient ∂ℓ/∂z. On
// return, Dz for output variables is zero and Dz for input variables
// holds the outgoing gradient; DS accumulates ∂ℓ/∂S.
//
// If an instance is numerically degenerate — some output's z is at or
// past the [0, 1] boundary (sin(π·z) ≈ 0), its forward iterate collapsed
// (gnrm < MEPS), or the adjoint sweeps produced a non-finite U — Backward
// zeros that instance's Dz, leaves its DS untouched, and returns
// normally rather than reporting an error; see ErrShape etc. for the
// usage errors that are reported.
func Backward(b *Batch, proxLam float64) error {
	if proxLam < 0 {
		return ErrProxLam
	}
	if err := b.validateShape(); err != nil {
		return err
	}
	for i := range b.Instances {
		inst := &b.Instances[i]
		if inst.Index[0] != 0 && inst.NIter == 0 {
			return ErrNoForward
		}
	}
	runParallel(len(b.Instances), func(i int) {
		backwardInstance(&b.Instances[i], &b.Problem, proxLam)
	})
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func backwardInstance(inst *Instance, p *Problem, proxLam float64) {
	n, k, m := len(inst.Z), inst.V.Cols, p.M

	// Step 1: transform dz in place for outputs; detect degeneracy.
	for _, o := range inst.Index {
		if o == 0 {
			break
		}
		s := math.Sin(math.Pi * inst.Z[o])
		val := inst.Dz[o] / (math.Pi * s)
		if !isFinite(val) || inst.Gnrm[o] < MEPS {
			f64.Zero(inst.Dz, n)
			return
		}
		inst.Dz[o] = val
	}

	// Step 2: adjoint sweeps, same iteration count as forward used.
	for i := 0; i < n; i++ {
		f64.Zero(row(inst.U, i), k)
	}
	for c := 0; c < k; c++ {
		f64.Zero(row(inst.Phi, c), m)
	}
	buf := sweepBuffers{
		s:       p.S,
		snrms:   p.Snrms,
		index:   inst.Index,
		rows:    inst.U,
		prod:    inst.Phi,
		vproj:   inst.V,
		gnrm:    inst.Gnrm,
		dz:      inst.Dz,
		proxLam: proxLam,
		cache:   inst.cache,
		mode:    modeBackward,
	}
	for t := 0; t < inst.NIter; t++ {
		sweep(&buf)
	}

	// Step 3: sanity check.
	for i := 0; i < n; i++ {
		for _, v := range row(inst.U, i) {
			if !isFinite(v) {
				f64.Zero(inst.Dz, n)
				return
			}
		}
	}

	// Step 4: dS assembly, two rank-1 contractions per row.
	for i := 0; i < n; i++ {
		ui := row(inst.U, i)
		vi := row(inst.V, i)
		dsi := row(inst.DS, i)
		for c := 0; c < k; c++ {
			f64.Axpy(dsi, ui[c], row(inst.W, c), m)
			f64.Axpy(dsi, vi[c], row(inst.Phi, c), m)
		}
	}

	// Step 5: dz assembly for inputs; outputs (and the reserved truth
	// variable) carry no outgoing gradient.
	phi0 := row(inst.Phi, 0)
	phi1 := row(inst.Phi, 1)
	for i := 1; i < n; i++ {
		if !inst.IsInput[i] {
			inst.Dz[i] = 0
			continue
		}
		si := row(p.S, i)
		val1 := f64.Dot(si, phi0, m)
		val2 := f64.Dot(si, phi1, m)
		z := inst.Z[i]
		sinPiZ := math.Sin(math.Pi * z)
		cosPiZ := math.Cos(math.Pi * z)
		sign := 1.0
		if row(inst.V, i)[1] < 0 {
			sign = -1.0
		}
		inst.Dz[i] = (inst.Dz[i]+val1)*sinPiZ*math.Pi + val2*sign*cosPiZ*math.Pi*math.Pi
	}
	inst.Dz[0] = 0
}
