// Copyright ©2024 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixingtest

import (
	"math"

	"github.com/Sichao-Yang/SATNet/mixing"
)

// Result reports the largest absolute and relative discrepancy between
// Backward's analytic gradient and a central finite difference, over a
// single random instance.
type Result struct {
	MaxAbsErrDz, MaxRelErrDz float64
	MaxAbsErrDS, MaxRelErrDS float64
}

// CheckGradient runs Init/Forward/Backward on batch for the scalar loss
// ℓ(z) = Σ_output z[o], then perturbs each input z and each entry of S by
// ±h and compares the resulting central finite difference of ℓ against
// the Dz/DS Backward produced. proxLam should be 0 and every input z
// should be away from {0, 1} for the comparison to be meaningful (see
// spec Law 7).
func CheckGradient(batch *mixing.Batch, perm []int, maxIter int, eps, proxLam, h float64) (Result, error) {
	n, m := batch.N, batch.M
	inst := &batch.Instances[0]

	if err := mixing.Init(batch, perm); err != nil {
		return Result{}, err
	}
	v0 := make([]float64, len(inst.V.Data))
	copy(v0, inst.V.Data)

	eval := func() (float64, error) {
		copy(inst.V.Data, v0)
		if err := mixing.Init(batch, perm); err != nil {
			return 0, err
		}
		if err := mixing.Forward(batch, maxIter, eps); err != nil {
			return 0, err
		}
		var loss float64
		for _, o := range inst.Index {
			if o == 0 {
				break
			}
			loss += inst.Z[o]
		}
		return loss, nil
	}

	base, err := eval()
	if err != nil {
		return Result{}, err
	}

	for _, o := range inst.Index {
		if o == 0 {
			break
		}
		inst.Dz[o] = 1
	}
	if err := mixing.Backward(batch, proxLam); err != nil {
		return Result{}, err
	}
	analyticDz := make([]float64, n)
	copy(analyticDz, inst.Dz)
	analyticDS := make([]float64, len(inst.DS.Data))
	copy(analyticDS, inst.DS.Data)

	var res Result
	for i := 1; i < n; i++ {
		if !inst.IsInput[i] {
			continue
		}
		z0 := inst.Z[i]
		inst.Z[i] = z0 + h
		plus, err := eval()
		if err != nil {
			return Result{}, err
		}
		inst.Z[i] = z0 - h
		minus, err := eval()
		if err != nil {
			return Result{}, err
		}
		inst.Z[i] = z0
		numeric := (plus - minus) / (2 * h)
		updateError(&res.MaxAbsErrDz, &res.MaxRelErrDz, analyticDz[i], numeric)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			s0 := batch.S.Data[i*batch.S.Stride+j]
			batch.S.Data[i*batch.S.Stride+j] = s0 + h
			batch.SetSnrms()
			plus, err := eval()
			if err != nil {
				return Result{}, err
			}
			batch.S.Data[i*batch.S.Stride+j] = s0 - h
			batch.SetSnrms()
			minus, err := eval()
			if err != nil {
				return Result{}, err
			}
			batch.S.Data[i*batch.S.Stride+j] = s0
			batch.SetSnrms()
			numeric := (plus - minus) / (2 * h)
			updateError(&res.MaxAbsErrDS, &res.MaxRelErrDS, analyticDS[i*inst.DS.Stride+j], numeric)
		}
	}

	return res, nil
}

func updateError(maxAbs, maxRel *float64, analytic, numeric float64) {
	abs := math.Abs(analytic - numeric)
	if abs > *maxAbs {
		*maxAbs = abs
	}
	denom := math.Max(math.Abs(analytic), math.Abs(numeric))
	if denom < 1e-8 {
		denom = 1e-8
	}
	rel := abs / denom
	if rel > *maxRel {
		*maxRel = rel
	}
}
