// Copyright ©2024 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mixingtest is a small property-based test harness for the
// mixing package: it builds random small instances and checks the
// analytic gradients Backward produces against finite differences, in
// the spirit of the teacher's diff/fd Jacobian-by-finite-difference
// idiom, generalized to mixing's batched Forward/Backward pair.
package mixingtest

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Sichao-Yang/SATNet/mixing"
)

// RandomInstance builds a batch of one random instance with n variables
// (n >= 3), rank-m clause matrix and k-dimensional embedding. Variable 0
// is the reserved truth input fixed at z=1; among the remaining n-1
// variables at least one is an input and at least one is an output.
// Input z values are drawn from [0.05, 0.95], away from the {0,1}
// boundary. Output z values are left to Forward, so this does not by
// itself keep a subsequent Backward call off its degeneracy path.
func RandomInstance(n, m, k int, rng *rand.Rand) (*mixing.Batch, []int) {
	batch, err := mixing.NewBatch(1, n, m, k)
	if err != nil {
		panic(err)
	}
	entries := distuv.Normal{Mu: 0, Sigma: 0.3, Src: rng}
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			batch.S.Data[i*batch.S.Stride+j] = entries.Rand()
		}
	}
	batch.SetSnrms()

	inst := &batch.Instances[0]
	inst.IsInput[0] = true
	inst.Z[0] = 1

	zDist := distuv.Uniform{Min: 0.05, Max: 0.95, Src: rng}
	nInput, nOutput := 0, 0
	for i := 1; i < n; i++ {
		isInput := rng.Intn(2) == 0
		last := i == n-1
		switch {
		case last && nOutput == 0:
			isInput = false // guarantee at least one output
		case last && nInput == 0:
			isInput = true // guarantee at least one input
		}
		inst.IsInput[i] = isInput
		if isInput {
			nInput++
			inst.Z[i] = zDist.Rand()
		} else {
			nOutput++
		}
	}

	vDist := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	for i := 0; i < n; i++ {
		row := inst.V.Data[i*inst.V.Stride : i*inst.V.Stride+k]
		for c := range row {
			row[c] = vDist.Rand()
		}
	}

	perm := rng.Perm(n - 1)
	return batch, perm
}
