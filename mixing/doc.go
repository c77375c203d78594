// Copyright ©2024 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mixing implements a batched coordinate-descent "mixing method"
// solver for a low-rank SDP relaxation of MAXSAT, and the linearized
// adjoint of that solver.
//
// Given a batch of partially-specified Boolean problems — some variables
// fixed as inputs, the rest to be predicted as outputs — under a shared
// low-rank clause matrix S, Forward produces continuous relaxed
// assignments in [0, 1] that approximately maximize satisfaction, and
// Backward computes the analytic gradient of those outputs with respect
// to S and to the input probabilities, so the solver can sit inside a
// larger gradient-based training loop.
//
// The package does not decide which variables are inputs and which are
// outputs, does not hold or update S between training steps, does not run
// an optimizer, and does not convert probabilities to discrete truth
// values; those are the responsibility of the caller. All buffers are
// caller-owned: NewBatch allocates a shape-correct Batch, but Init,
// Forward and Backward themselves allocate none of its buffers.
package mixing
