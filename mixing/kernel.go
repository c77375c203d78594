// Copyright ©2024 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixing

import (
	"gonum.org/v1/gonum/blas64"

	"github.com/Sichao-Yang/SATNet/internal/asm/f64"
)

// sweepMode selects which of the two linearly-related coordinate updates
// the shared kernel below performs. Forward and backward share the same
// skeleton — compute a coordinate gradient against the live product,
// turn it into a new row, refresh the product by a rank-1 correction —
// and differ only in how the gradient becomes the new row, and in
// whether a decrease is accumulated.
type sweepMode int

const (
	modeForward sweepMode = iota
	modeBackward
)

// sweepBuffers names the operands of one inner-kernel sweep generically:
// rows/prod play the role of (V, W) in forward mode and (U, Phi) in
// backward mode. vproj is only read in backward mode, where it is the
// completed forward-pass V.
type sweepBuffers struct {
	s     blas64.General // n×m clause matrix, shared, read-only
	snrms []float64      // length n, shared, read-only
	index []int          // length n, zero-terminated

	rows blas64.General // V (forward) or U (backward), n×k
	prod blas64.General // W (forward) or Phi (backward), k×m

	vproj blas64.General // forward's V; read-only, backward mode only

	gnrm []float64 // length n; written in forward, read (+proxLam) in backward
	dz   []float64 // length n; backward mode only

	proxLam float64
	cache   []float64 // length k, scratch

	mode sweepMode
}

// sweep performs one pass over the output variables named by index,
// maintaining the invariant prod = rowsᵀ·s across every coordinate
// update. It returns the forward-mode sweep decrease; the return value
// is meaningless in backward mode.
func sweep(buf *sweepBuffers) float64 {
	k := buf.rows.Cols
	m := buf.s.Cols
	g := buf.cache[:k]

	var delta float64
	for _, o := range buf.index {
		if o == 0 {
			break
		}

		so := row(buf.s, o)
		s2 := buf.snrms[o]
		vo := row(buf.rows, o)

		// g = prod · soᵀ  (a k-vector; one dot product per row of prod)
		for c := 0; c < k; c++ {
			g[c] = f64.Dot(row(buf.prod, c), so, m)
		}
		// g -= s2 * vo, projecting out o's own contribution.
		f64.Axpy(g, -s2, vo, k)

		switch buf.mode {
		case modeForward:
			gn := f64.Nrm2(g, k)
			buf.gnrm[o] = gn
			for i := 0; i < k; i++ {
				newVal := -g[i] / gn
				g[i] = newVal - vo[i] // g now holds Δ = v_new - v_old
			}
			delta += gn * f64.Dot(g, g, k)

		case modeBackward:
			gnrmi := buf.gnrm[o] + buf.proxLam
			vp := row(buf.vproj, o)
			c := f64.Dot(vp, g, k) + buf.dz[o]*vp[0]
			for i := 0; i < k; i++ {
				g[i] = c*vp[i] - g[i]
			}
			g[0] -= buf.dz[o]
			f64.Scal(g, 1/gnrmi, k)
			for i := 0; i < k; i++ {
				g[i] -= vo[i] // g now holds Δ = u_new - u_old
			}
		}

		f64.Axpy(vo, 1, g, k) // vo += Δ, i.e. vo := new row
		for c := 0; c < k; c++ {
			f64.Axpy(row(buf.prod, c), g[c], so, m) // prod[c,:] += Δ[c]·so
		}
		if buf.mode == modeForward {
			debugAssertUnitNorm(vo, o)
		}
		debugAssertWInvariant(buf)
	}
	return delta
}
