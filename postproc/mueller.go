// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postproc

import (
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// AmplitudeMatrix holds the 2x2 complex scattering-amplitude matrix S for
// one scattering direction, in the (parallel, perpendicular) basis spanned
// by a direction's own EX/EY frame (spec.md §6's "mueller" file).
type AmplitudeMatrix struct {
	S11, S12, S21, S22 complex128
}

// Amplitude projects the far-field vectors farX and farY (one per incident
// polarization) onto the scattered direction's own transverse basis
// (eperp, epar), producing the 2x2 amplitude matrix
// ADDA's mueller.c builds per scattering angle.
func Amplitude(farX, farY [3]complex128, eperp, epar [3]float64) AmplitudeMatrix {
	proj := func(f [3]complex128, e [3]float64) complex128 {
		return f[0]*complex(e[0], 0) + f[1]*complex(e[1], 0) + f[2]*complex(e[2], 0)
	}
	return AmplitudeMatrix{
		S11: proj(farY, epar),
		S12: proj(farX, epar),
		S21: proj(farY, eperp),
		S22: proj(farX, eperp),
	}
}

// Mueller converts one direction's amplitude matrix into its 4x4 real
// Mueller matrix, using a gonum Dense so the per-angle accumulation in
// AccumulateMueller can lean on mat.Dense's arithmetic instead of sixteen
// hand-written field additions (spec.md §6's "mueller" / "mueller_scatgrid"
// files, one such matrix per sampled scattering direction).
func Mueller(s AmplitudeMatrix) *mat.Dense {
	s11, s12 := s.S11, s.S12
	s21, s22 := s.S21, s.S22

	a := func(x, y complex128) float64 { return real(x*cmplx.Conj(x) + y*cmplx.Conj(y)) }
	b := func(x, y complex128) float64 { return real(x*cmplx.Conj(x) - y*cmplx.Conj(y)) }

	m := mat.NewDense(4, 4, nil)
	m.Set(0, 0, 0.5*(a(s11, s12)+a(s21, s22)))
	m.Set(0, 1, 0.5*(b(s11, s12)+b(s21, s22)))
	m.Set(0, 2, real(s11*cmplx.Conj(s12)+s22*cmplx.Conj(s21)))
	m.Set(0, 3, imag(s11*cmplx.Conj(s12)-s22*cmplx.Conj(s21)))

	m.Set(1, 0, 0.5*(a(s11, s12)-a(s21, s22)))
	m.Set(1, 1, 0.5*(b(s11, s12)-b(s21, s22)))
	m.Set(1, 2, real(s11*cmplx.Conj(s12)-s22*cmplx.Conj(s21)))
	m.Set(1, 3, imag(s11*cmplx.Conj(s12)+s22*cmplx.Conj(s21)))

	m.Set(2, 0, real(s11*cmplx.Conj(s21)+s22*cmplx.Conj(s12)))
	m.Set(2, 1, real(s11*cmplx.Conj(s21)-s22*cmplx.Conj(s12)))
	m.Set(2, 2, real(s11*cmplx.Conj(s22)+s12*cmplx.Conj(s21)))
	m.Set(2, 3, imag(s11*cmplx.Conj(s22)+s21*cmplx.Conj(s12)))

	m.Set(3, 0, imag(cmplx.Conj(s11)*s21+cmplx.Conj(s22)*s12))
	m.Set(3, 1, imag(cmplx.Conj(s11)*s21-cmplx.Conj(s22)*s12))
	m.Set(3, 2, imag(s22*cmplx.Conj(s11)-s12*cmplx.Conj(s21)))
	m.Set(3, 3, real(s11*cmplx.Conj(s22)-s12*cmplx.Conj(s21)))
	return m
}

// AccumulateMueller adds weight*next into acc in place, the running sum
// an orientation-averaging driver keeps per scattering angle (spec.md
// §4.7's "emits ... Mueller elements into the integrator's accumulators").
func AccumulateMueller(acc *mat.Dense, next *mat.Dense, weight float64) {
	acc.Add(acc, scaled(next, weight))
}

func scaled(m *mat.Dense, w float64) *mat.Dense {
	out := mat.NewDense(4, 4, nil)
	out.Scale(w, m)
	return out
}
