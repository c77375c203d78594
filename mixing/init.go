// Copyright ©2024 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixing

import (
	"math"

	"github.com/Sichao-Yang/SATNet/internal/asm/f64"
)

// Init normalizes every instance's output rows of V, writes input rows
// of V from z, and builds the zero-terminated index of output variables
// that Forward and Backward sweep over.
//
// perm is a flat, length b·(n-1) array of per-instance permutations of
// {0, ..., n-2}; Init shifts each entry by +1 to skip the reserved truth
// variable at index 0. Variable 0 is expected to be marked an input with
// z[0] == 1, so that the general input-row formula below reduces to the
// truth direction (1, 0, ..., 0) exactly.
func Init(b *Batch, perm []int) error {
	if err := b.validateShape(); err != nil {
		return err
	}
	n := b.N
	if len(perm) != len(b.Instances)*(n-1) {
		return ErrPerm
	}
	for i := range b.Instances {
		p := perm[i*(n-1) : (i+1)*(n-1)]
		for j, v := range p {
			if v < 0 || v >= n-1 {
				return ErrPerm
			}
			for _, w := range p[:j] {
				if w == v {
					return ErrPerm
				}
			}
		}
	}
	runParallel(len(b.Instances), func(i int) {
		initInstance(&b.Instances[i], perm[i*(n-1):(i+1)*(n-1)])
	})
	return nil
}

func initInstance(inst *Instance, perm []int) {
	n, k := len(inst.Z), inst.V.Cols
	for i := 0; i < n; i++ {
		vi := row(inst.V, i)
		if inst.IsInput[i] {
			sign := 1.0
			if vi[1] < 0 {
				sign = -1.0
			}
			f64.Zero(vi, k)
			vi[0] = -math.Cos(math.Pi * inst.Z[i])
			vi[1] = sign * math.Sin(math.Pi*inst.Z[i])
		} else {
			nrm := f64.Nrm2(vi, k)
			f64.Scal(vi, 1/nrm, k)
		}
	}

	idx := 0
	for _, p := range perm {
		v := p + 1
		if !inst.IsInput[v] {
			inst.Index[idx] = v
			idx++
		}
	}
	for ; idx < len(inst.Index); idx++ {
		inst.Index[idx] = 0
	}
}
