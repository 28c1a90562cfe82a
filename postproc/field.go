// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package postproc implements the cross-section, asymmetry-vector, and
// radiation-force calculations of spec.md §2.6 / §4.5, consuming the
// converged polarization vector from krylov and the angular grids from
// integrate.
package postproc

import "math/cmplx"

func dot(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// Far evaluates the far-field scattering amplitude f(n) in direction n
// (a unit vector) from the global (already all-gathered) set of dipole
// positions and converged polarizations (spec.md §4.5, grounded on the
// "scattering amplitude" construction behind every cross-section and
// angular quantity):
//
//	f(n) = -i k^3 * (I - n n^T) * sum_j p_j exp(-i k r_j . n)
func Far(coord [][3]float64, p []complex128, k float64) func(n [3]float64) [3]complex128 {
	return func(n [3]float64) [3]complex128 {
		var sum [3]complex128
		for j, r := range coord {
			kr := k * dot(r, n)
			a := cmplx.Exp(complex(0, -kr))
			for c := 0; c < 3; c++ {
				sum[c] += p[3*j+c] * a
			}
		}
		// (I - n n^T) . sum = sum - n*(n.sum)
		var ndotsum complex128
		for c := 0; c < 3; c++ {
			ndotsum += complex(n[c], 0) * sum[c]
		}
		var transverse [3]complex128
		for c := 0; c < 3; c++ {
			transverse[c] = sum[c] - complex(n[c], 0)*ndotsum
		}
		k3 := complex(0, -k*k*k)
		var out [3]complex128
		for c := 0; c < 3; c++ {
			out[c] = k3 * transverse[c]
		}
		return out
	}
}

// Gathered holds every rank's local coordinates/polarization, replicated
// into a global array by GatherAll, the prerequisite for Far/ScatteringForce
// (spec.md §4.5: "needs every other dipole's position, polarization, and
// material -- hence an all-gather before the sum").
type Gathered struct {
	Coord [][3]float64
	P     []complex128
	Mat   []int
}
