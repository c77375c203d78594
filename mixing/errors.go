// Copyright ©2024 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixing

import "errors"

// ErrShape signifies that a Batch's buffers do not agree with its
// declared N, M and K, or that a buffer was not allocated by NewBatch.
var ErrShape = errors.New("mixing: buffer shape mismatch")

// ErrMaxIter signifies that Forward was called with max_iter < 1.
var ErrMaxIter = errors.New("mixing: max_iter must be >= 1")

// ErrEps signifies that Forward was called with eps outside (0, 1).
var ErrEps = errors.New("mixing: eps must satisfy 0 < eps < 1")

// ErrProxLam signifies that Backward was called with a negative prox_lam.
var ErrProxLam = errors.New("mixing: prox_lam must be >= 0")

// ErrPerm signifies that the permutation slice passed to Init has the
// wrong length, or does not permute {0, ..., n-2} for some instance.
var ErrPerm = errors.New("mixing: perm has wrong length or is not a permutation")

// ErrNoForward signifies that Backward was called on an instance that
// Forward has not yet populated (NIter == 0 with outputs present).
var ErrNoForward = errors.New("mixing: backward called before forward")
