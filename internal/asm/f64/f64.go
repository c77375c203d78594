// Copyright ©2024 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package f64 provides the dense float64 kernels that the mixing-method
// solver is built from: axpy, dot, scal, nrm2, copy, zero and saturate.
//
// These are contracts, not blessed implementations. Callers are
// responsible for the alignment/padding discipline a vectorized backend
// would need — every slice passed here is assumed to have a length that
// is a multiple of 4 along the contracted dimension — but correctness
// does not depend on it; the implementations below are plain Go and do
// not themselves require alignment or padding.
package f64

import "math"

// Axpy computes y ← a·x + y over the first l elements of x and y.
//
//	for i := 0; i < l; i++ {
//		y[i] += a * x[i]
//	}
func Axpy(y []float64, a float64, x []float64, l int) {
	y = y[:l]
	x = x[:l]
	for i, v := range x {
		y[i] += a * v
	}
}

// Dot returns the inner product of the first l elements of x and y.
func Dot(x, y []float64, l int) (sum float64) {
	x = x[:l]
	y = y[:l]
	for i, v := range x {
		sum += v * y[i]
	}
	return sum
}

// Scal computes x ← a·x over the first l elements of x.
func Scal(x []float64, a float64, l int) {
	x = x[:l]
	for i, v := range x {
		x[i] = a * v
	}
}

// Nrm2 returns the Euclidean norm of the first l elements of x,
//
//	Nrm2(x, l) == math.Sqrt(Dot(x, x, l))
//
// computed with scaling to avoid spurious overflow/underflow, in the
// style of the teacher's L2NormUnitary.
func Nrm2(x []float64, l int) float64 {
	x = x[:l]
	var scale float64
	sumSquares := 1.0
	for _, v := range x {
		if v == 0 {
			continue
		}
		absxi := math.Abs(v)
		if math.IsNaN(absxi) {
			return math.NaN()
		}
		if scale < absxi {
			s := scale / absxi
			sumSquares = 1 + sumSquares*s*s
			scale = absxi
		} else {
			s := absxi / scale
			sumSquares += s * s
		}
	}
	if math.IsInf(scale, 1) {
		return math.Inf(1)
	}
	return scale * math.Sqrt(sumSquares)
}

// Copy copies the first l elements of src into dst. No aliasing is
// assumed between src and dst.
func Copy(dst, src []float64, l int) {
	copy(dst[:l], src[:l])
}

// Zero sets the first l elements of x to 0.
func Zero(x []float64, l int) {
	x = x[:l]
	for i := range x {
		x[i] = 0
	}
}

// Saturate clamps x into [0, 1].
func Saturate(x float64) float64 {
	lo := 0.0
	if x < lo {
		x = lo
	}
	hi := 1.0
	if x > hi {
		x = hi
	}
	return x
}
