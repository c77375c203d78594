// Copyright ©2024 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !mixingdebug

package mixing

// debugAssertUnitNorm is a no-op in release builds; see assert_debug.go.
func debugAssertUnitNorm(vo []float64, o int) {}

// debugAssertWInvariant is a no-op in release builds; see assert_debug.go.
func debugAssertWInvariant(buf *sweepBuffers) {}
