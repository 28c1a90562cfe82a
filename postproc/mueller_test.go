// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postproc

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestMuellerM11MatchesIntensitySum(t *testing.T) {
	s := AmplitudeMatrix{S11: complex(2, 1), S12: complex(0.5, -0.3), S21: complex(-0.2, 0.1), S22: complex(1.5, 0)}
	m := Mueller(s)
	want := 0.5 * (real(s.S11*conjc(s.S11)) + real(s.S12*conjc(s.S12)) + real(s.S21*conjc(s.S21)) + real(s.S22*conjc(s.S22)))
	if !floats.EqualWithinAbsOrRel(m.At(0, 0), want, 1e-9, 1e-9) {
		t.Errorf("M11 = %v, want %v", m.At(0, 0), want)
	}
}

func TestMuellerIdentityAmplitudeIsDiagonal(t *testing.T) {
	s := AmplitudeMatrix{S11: 1, S12: 0, S21: 0, S22: 1}
	m := Mueller(s)
	if math.Abs(m.At(0, 0)-1) > 1e-9 {
		t.Errorf("M11 = %v, want 1", m.At(0, 0))
	}
	if math.Abs(m.At(1, 1)-1) > 1e-9 {
		t.Errorf("M22 = %v, want 1", m.At(1, 1))
	}
	if math.Abs(m.At(0, 1)) > 1e-9 || math.Abs(m.At(1, 0)) > 1e-9 {
		t.Errorf("expected off-diagonal 12/21 block to vanish for the identity amplitude matrix")
	}
}

func TestAccumulateMuellerSumsWeightedSamples(t *testing.T) {
	s := AmplitudeMatrix{S11: 1, S12: 0, S21: 0, S22: 1}
	m := Mueller(s)
	acc := Mueller(AmplitudeMatrix{})
	AccumulateMueller(acc, m, 0.25)
	AccumulateMueller(acc, m, 0.75)
	if !floats.EqualWithinAbsOrRel(acc.At(0, 0), 1.0, 1e-9, 1e-9) {
		t.Errorf("accumulated M11 = %v, want 1", acc.At(0, 0))
	}
}

func conjc(x complex128) complex128 { return complex(real(x), -imag(x)) }
