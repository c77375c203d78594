// Copyright ©2024 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixing

import "gonum.org/v1/gonum/blas64"

// Problem is the shared, batch-wide shape and clause structure described
// in the data model: n variables (including the reserved truth variable
// at index 0), an m-column low-rank clause matrix S, and a k-dimensional
// unit-sphere embedding.
type Problem struct {
	N, M, K int

	// S is the n×m clause matrix, shared read-only across every
	// instance in the batch.
	S blas64.General

	// Snrms holds the per-row squared norm of S, length n, shared.
	Snrms []float64
}

// Instance holds every per-instance buffer used by Init, Forward and
// Backward for a single problem in the batch. Rows of V (other than row
// 0) are unit vectors at all times; W is maintained as the live product
// Vᵀ S.
type Instance struct {
	IsInput []bool         // length n
	Z       []float64      // length n; reads for inputs, writes for outputs
	V       blas64.General // n×k, unit-sphere relaxation
	W       blas64.General // k×m, running Vᵀ S
	Gnrm    []float64      // length n, recorded during the last forward sweep
	NIter   int            // sweep count used by the last Forward call
	Index   []int          // length n, permutation of output indices, zero-terminated

	// U, Phi and DS are written only by Backward. Dz is filled in by the
	// caller before Backward and overwritten by it; cache is scratch for
	// both Forward and Backward.
	Dz    []float64      // length n; ∂ℓ/∂z in, then ∂ℓ/∂z out
	U     blas64.General // n×k, adjoint dual to V
	Phi   blas64.General // k×m, adjoint dual to W
	DS    blas64.General // n×m, ∂ℓ/∂S accumulator
	cache []float64      // length k, scratch
}

// Batch is a Problem together with one Instance per batch entry. Every
// exported entry point in this package — Init, Forward, Backward —
// operates on a *Batch.
type Batch struct {
	Problem
	Instances []Instance
}

// rowStride rounds cols up to a multiple of 4, the alignment/padding
// contract the dense primitives are written against.
func rowStride(cols int) int {
	return (cols + 3) &^ 3
}

func newGeneral(rows, cols int) blas64.General {
	stride := rowStride(cols)
	return blas64.General{
		Rows:   rows,
		Cols:   cols,
		Stride: stride,
		Data:   make([]float64, rows*stride),
	}
}

// NewBatch allocates a Batch of b instances sharing an n×m clause matrix
// S and a k-dimensional embedding, with every buffer shaped, strided and
// padded per the alignment invariant of the data model. S and Snrms must
// be filled in by the caller (and Snrms derived from S, e.g. with
// SetSnrms) before Init is called; NewBatch does not own the clause
// structure, only its storage.
//
// NewBatch does not decide which variables are inputs or outputs: every
// instance's IsInput defaults to false and must be set by the caller.
func NewBatch(b, n, m, k int) (*Batch, error) {
	if b <= 0 || n <= 1 || m <= 0 || k <= 0 {
		return nil, ErrShape
	}
	batch := &Batch{
		Problem: Problem{
			N:     n,
			M:     m,
			K:     k,
			S:     newGeneral(n, m),
			Snrms: make([]float64, n),
		},
		Instances: make([]Instance, b),
	}
	for i := range batch.Instances {
		batch.Instances[i] = Instance{
			IsInput: make([]bool, n),
			Z:       make([]float64, n),
			V:       newGeneral(n, k),
			W:       newGeneral(k, m),
			Gnrm:    make([]float64, n),
			Index:   make([]int, n),
			Dz:      make([]float64, n),
			U:       newGeneral(n, k),
			Phi:     newGeneral(k, m),
			DS:      newGeneral(n, m),
			cache:   make([]float64, k),
		}
	}
	return batch, nil
}

// SetSnrms recomputes Snrms from the current contents of S. Callers that
// mutate S between batches (the usual case — S is the learned clause
// matrix an enclosing optimizer updates) should call this once per batch
// before Init.
func (p *Problem) SetSnrms() {
	for i := 0; i < p.N; i++ {
		row := p.S.Data[i*p.S.Stride : i*p.S.Stride+p.M]
		var s float64
		for _, v := range row {
			s += v * v
		}
		p.Snrms[i] = s
	}
}

func (b *Batch) validateShape() error {
	n, m, k := b.N, b.M, b.K
	if b.S.Rows != n || b.S.Cols != m || len(b.Snrms) != n {
		return ErrShape
	}
	for i := range b.Instances {
		inst := &b.Instances[i]
		if len(inst.IsInput) != n || len(inst.Z) != n || len(inst.Gnrm) != n || len(inst.Index) != n {
			return ErrShape
		}
		if inst.V.Rows != n || inst.V.Cols != k {
			return ErrShape
		}
		if inst.W.Rows != k || inst.W.Cols != m {
			return ErrShape
		}
		if len(inst.Dz) != n || len(inst.cache) != k {
			return ErrShape
		}
		if inst.U.Rows != n || inst.U.Cols != k || inst.Phi.Rows != k || inst.Phi.Cols != m {
			return ErrShape
		}
		if inst.DS.Rows != n || inst.DS.Cols != m {
			return ErrShape
		}
	}
	return nil
}

func row(g blas64.General, i int) []float64 {
	return g.Data[i*g.Stride : i*g.Stride+g.Cols]
}
