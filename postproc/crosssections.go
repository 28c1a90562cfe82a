// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postproc

import (
	"math"
	"math/cmplx"

	"github.com/DeFrogxX/a-dda/decomp"
	"github.com/DeFrogxX/a-dda/polarize"
)

const fourPi = 4 * math.Pi

// CextPlane computes the extinction cross-section of a plane-wave
// incidence from the optical theorem on the forward-scattering amplitude
// (spec.md §4.5): incPol is real, so no conjugate is needed in the dot
// product.
func CextPlane(forward [3]complex128, incPol [3]float64, k float64) float64 {
	var dotRe float64
	for c := 0; c < 3; c++ {
		dotRe += real(forward[c]) * incPol[c]
	}
	return fourPi / (k * k) * dotRe
}

// CextGeneral computes the extinction cross-section of a general (e.g.
// Gaussian) beam from the local-field sum, which needs no far-field
// evaluation (spec.md §4.5).
func CextGeneral(comm decomp.Collectives, localP, localEinc []complex128, k float64) float64 {
	var sum float64
	for i := range localP {
		sum += imag(localP[i] * cmplx.Conj(localEinc[i]))
	}
	return fourPi * k * sumReduce(comm, sum)
}

// CabsDraine computes the absorption cross-section with the Draine
// radiative-reaction-corrected formula (spec.md §4.5).
func CabsDraine(comm decomp.Collectives, localMat []int, localP []complex128, k float64, alphaByMat []polarize.Tensor) float64 {
	dummy := 2.0 / 3.0 * k * k * k
	var sum float64
	for j, mat := range localMat {
		inv := alphaByMat[mat].Inverse()
		for c := 0; c < 3; c++ {
			im := -imag(inv[c])
			a := cmplx.Abs(localP[3*j+c])
			sum += (im - dummy) * a * a
		}
	}
	return fourPi * k * sumReduce(comm, sum)
}

// CabsSO computes the absorption cross-section under the second-order
// interaction prescription, which requires a per-material multiplier
// instead of the per-axis inverse polarizability (spec.md §4.5).
func CabsSO(comm decomp.Collectives, localMat []int, localP []complex128, k, d, kd float64, m []complex128) float64 {
	temp1 := kd * kd / 6
	temp2 := fourPi / (d * d * d)
	mult := make([]float64, len(m))
	for i, mi := range m {
		m2 := mi*mi - 1
		mult[i] = temp2 * imag(m2) * (1 + temp1*imag(mi)*imag(mi)) / (cmplx.Abs(m2) * cmplx.Abs(m2))
	}
	var sum float64
	for j, mat := range localMat {
		var norm2 float64
		for c := 0; c < 3; c++ {
			a := cmplx.Abs(localP[3*j+c])
			norm2 += a * a
		}
		sum += mult[mat] * norm2
	}
	return fourPi * k * sumReduce(comm, sum)
}

// sumReduce all-reduces a partial sum computed on local data, since each
// rank only sees its own slab.
func sumReduce(comm decomp.Collectives, local float64) float64 {
	buf := []complex128{complex(local, 0)}
	comm.AllReduceSumComplex(buf)
	return real(buf[0])
}
