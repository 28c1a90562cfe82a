// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postproc

import (
	"math/cmplx"

	"github.com/DeFrogxX/a-dda/kernel"
)

// IncidentForce is the force each dipole feels from the incident beam
// alone (spec.md §4.5): F_inc,j = (k/2) Im(p_j . E_inc,j*) prop, the
// photon-momentum transfer of the absorbed/scattered incident photons,
// generalized from crosssec.c's Frp_mat (which hard-codes prop = z) to
// an arbitrary propagation direction.
func IncidentForce(localP, localEinc []complex128, k float64, prop [3]float64) [][3]float64 {
	n := len(localP) / 3
	out := make([][3]float64, n)
	for j := 0; j < n; j++ {
		var im float64
		for c := 0; c < 3; c++ {
			im += imag(localP[3*j+c] * cmplx.Conj(localEinc[3*j+c]))
		}
		scale := k * im / 2
		out[j] = [3]float64{scale * prop[0], scale * prop[1], scale * prop[2]}
	}
	return out
}

// gradStep is the relative finite-difference step used to differentiate
// the interaction tensor for the pairwise scattering force below: small
// enough to resolve the tensor's curvature at typical sub-wavelength
// dipole spacing, large enough to avoid cancellation error in Green's
// phase terms.
const gradStep = 1e-4

// scatteringForcePair returns the force dipole l's field exerts on
// dipole j, (1/2) Re[p_j* . grad(G(r_j-r_l)) . p_l], the gradient taken
// by central differences of kernel.Green (spec.md §4.5's O(N^2) pairwise
// scattering force, simplified to a numerical rather than closed-form
// gradient of the interaction tensor).
func scatteringForcePair(rj, rl [3]float64, pj, pl [3]complex128, k float64) [3]float64 {
	r := [3]float64{rj[0] - rl[0], rj[1] - rl[1], rj[2] - rl[2]}
	h := gradStep * (cmplx.Abs(complex(r[0], 0)) + cmplx.Abs(complex(r[1], 0)) + cmplx.Abs(complex(r[2], 0)) + 1)
	var f [3]float64
	for axis := 0; axis < 3; axis++ {
		plus := r
		minus := r
		plus[axis] += h
		minus[axis] -= h
		gPlus := kernel.Green(plus, k).Apply(pl)
		gMinus := kernel.Green(minus, k).Apply(pl)
		var deriv [3]complex128
		for c := 0; c < 3; c++ {
			deriv[c] = (gPlus[c] - gMinus[c]) / complex(2*h, 0)
		}
		var acc complex128
		for c := 0; c < 3; c++ {
			acc += cmplx.Conj(pj[c]) * deriv[c]
		}
		f[axis] = 0.5 * real(acc)
	}
	return f
}

// ScatteringForce computes the O(N^2) pairwise scattering force on every
// dipole this rank owns, given the full all-gathered set of positions
// and polarizations (spec.md §4.5: "each process owns its slab of
// targets, but needs every other dipole's position").
func ScatteringForce(localCoord [][3]float64, localP []complex128, global Gathered, k float64, offset int) [][3]float64 {
	out := make([][3]float64, len(localCoord))
	for j, rj := range localCoord {
		pj := [3]complex128{localP[3*j], localP[3*j+1], localP[3*j+2]}
		var acc [3]float64
		for l, rl := range global.Coord {
			if l == offset+j {
				continue
			}
			pl := [3]complex128{global.P[3*l], global.P[3*l+1], global.P[3*l+2]}
			f := scatteringForcePair(rj, rl, pj, pl, k)
			acc[0] += f[0]
			acc[1] += f[1]
			acc[2] += f[2]
		}
		out[j] = acc
	}
	return out
}
