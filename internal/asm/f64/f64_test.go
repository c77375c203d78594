// Copyright ©2024 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package f64

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

const tol = 1e-12

func TestAxpy(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{1, 1, 1, 1}
	Axpy(y, 2, x, 4)
	want := []float64{3, 5, 7, 9}
	if !floats.EqualApprox(y, want, tol) {
		t.Errorf("y = %v, want %v", y, want)
	}
}

func TestAxpyPartial(t *testing.T) {
	x := []float64{1, 2, 3, 4, 100, 100}
	y := []float64{0, 0, 0, 0, 100, 100}
	Axpy(y, 1, x, 4)
	if y[4] != 100 || y[5] != 100 {
		t.Errorf("Axpy touched elements beyond l: y = %v", y)
	}
}

func TestDot(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{4, 3, 2, 1}
	got := Dot(x, y, 4)
	want := 1*4 + 2*3 + 3*2 + 4*1
	if !floats.EqualWithinAbs(got, float64(want), tol) {
		t.Errorf("Dot = %v, want %v", got, want)
	}
}

func TestScal(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	Scal(x, 2, 4)
	want := []float64{2, 4, 6, 8}
	if !floats.EqualApprox(x, want, tol) {
		t.Errorf("x = %v, want %v", x, want)
	}
}

func TestNrm2(t *testing.T) {
	x := []float64{3, 4, 0, 0}
	got := Nrm2(x, 4)
	if !floats.EqualWithinAbs(got, 5, tol) {
		t.Errorf("Nrm2 = %v, want 5", got)
	}
}

func TestNrm2Empty(t *testing.T) {
	if got := Nrm2(nil, 0); got != 0 {
		t.Errorf("Nrm2(nil) = %v, want 0", got)
	}
}

func TestCopyZero(t *testing.T) {
	src := []float64{1, 2, 3, 4}
	dst := make([]float64, 4)
	Copy(dst, src, 4)
	for i, v := range src {
		if dst[i] != v {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], v)
		}
	}
	Zero(dst, 4)
	for i, v := range dst {
		if v != 0 {
			t.Errorf("dst[%d] = %v after Zero, want 0", i, v)
		}
	}
}

func TestSaturate(t *testing.T) {
	cases := []struct{ x, want float64 }{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{2, 1},
		{math.NaN(), math.NaN()},
	}
	for _, c := range cases {
		got := Saturate(c.x)
		if math.IsNaN(c.want) {
			if !math.IsNaN(got) {
				t.Errorf("Saturate(%v) = %v, want NaN", c.x, got)
			}
			continue
		}
		if got != c.want {
			t.Errorf("Saturate(%v) = %v, want %v", c.x, got, c.want)
		}
	}
}
