// Copyright ©2024 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mixingstat summarizes a mixing.Batch after Forward/Backward
// for logging by an enclosing training loop. It holds no clause
// structure or solver state of its own — it only reads what Forward and
// Backward already wrote.
package mixingstat

import (
	"context"
	"log/slog"

	"github.com/Sichao-Yang/SATNet/mixing"
)

// Summary reports batch-level convergence and degeneracy counts.
type Summary struct {
	N int // number of instances summarized

	MeanNIter  float64 // mean sweep count across instances
	MaxNIter   int     // slowest instance
	HitMaxIter int     // instances whose NIter == maxIter
	Degenerate int     // instances whose backward Dz came back all-zero
}

// Summarize reports Summary statistics for b after Forward has run, and,
// if backwardRan is true, counts how many instances' Dz is all-zero —
// the observable signature of the degeneracy path in Backward.
func Summarize(b *mixing.Batch, maxIter int, backwardRan bool) Summary {
	s := Summary{N: len(b.Instances)}
	var total int
	for i := range b.Instances {
		inst := &b.Instances[i]
		total += inst.NIter
		if inst.NIter > s.MaxNIter {
			s.MaxNIter = inst.NIter
		}
		if inst.NIter >= maxIter {
			s.HitMaxIter++
		}
		if backwardRan && allZero(inst.Dz) {
			s.Degenerate++
		}
	}
	if s.N > 0 {
		s.MeanNIter = float64(total) / float64(s.N)
	}
	return s
}

func allZero(xs []float64) bool {
	for _, x := range xs {
		if x != 0 {
			return false
		}
	}
	return true
}

// Log emits s as a structured record, for an enclosing training loop to
// wire into its own logger.
func Log(ctx context.Context, logger *slog.Logger, s Summary) {
	logger.LogAttrs(ctx, slog.LevelInfo, "mixing batch summary",
		slog.Int("n", s.N),
		slog.Float64("mean_niter", s.MeanNIter),
		slog.Int("max_niter", s.MaxNIter),
		slog.Int("hit_max_iter", s.HitMaxIter),
		slog.Int("degenerate", s.Degenerate),
	)
}
