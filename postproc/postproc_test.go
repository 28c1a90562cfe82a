// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postproc

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/DeFrogxX/a-dda/config"
	"github.com/DeFrogxX/a-dda/decomp"
	"github.com/DeFrogxX/a-dda/polarize"
)

func TestFarIsTransverse(t *testing.T) {
	coord := [][3]float64{{0, 0, 0}, {0.1, 0, 0}, {0, 0.1, 0.2}}
	p := []complex128{
		1, 0.5, 0.2,
		0.3, -0.4, 0.1,
		-0.2, 0.2, 0.3,
	}
	k := 1.3
	far := Far(coord, p, k)
	n := [3]float64{0, 0, 1}
	f := far(n)
	dot := complex(n[0], 0)*f[0] + complex(n[1], 0)*f[1] + complex(n[2], 0)*f[2]
	if cmplx.Abs(dot) > 1e-9 {
		t.Fatalf("f(n) not transverse to n: n.f = %v", dot)
	}
}

func TestCextPlanePositiveForAbsorbingDipole(t *testing.T) {
	m := complex(1.5, 0.1) // absorbing
	d := 0.05
	k := 1.0
	params := polarize.Params{M: m, D: d, Kd: k * d}
	alloc, err := polarize.Get("cm")
	if err != nil {
		t.Fatal(err)
	}
	alpha, err := alloc(params)
	if err != nil {
		t.Fatal(err)
	}

	coord := [][3]float64{{0, 0, 0}}
	incPol := [3]float64{1, 0, 0}
	einc := complex(1, 0) // plane wave, k.r = 0 at the dipole
	p := []complex128{alpha[0] * einc, 0, 0}

	prop := [3]float64{0, 0, 1}
	far := Far(coord, p, k)
	forward := far(prop)
	cext := CextPlane(forward, incPol, k)
	if cext <= 0 {
		t.Fatalf("expected positive extinction cross-section for absorbing dipole, got %v", cext)
	}
}

func TestCscaConstantIntensityOverSphere(t *testing.T) {
	thetaSet := config.AngleSet{Min: 0, Max: math.Pi, Jmin: 4, Jmax: 8, Eps: 1e-8}
	phiSet := config.AngleSet{Min: 0, Max: 2 * math.Pi, Jmin: 4, Jmax: 8, Eps: 1e-8, Equiv: true, Periodic: true}
	intensity := func(theta, phi float64) float64 { return 1 }
	k := 1.0
	got, err := Csca(thetaSet, phiSet, intensity, k)
	if err != nil {
		t.Fatal(err)
	}
	want := fourPi / (k * k) * fourPi
	if math.Abs(got-want) > 1e-4*want {
		t.Fatalf("Csca = %v, want %v", got, want)
	}
}

func TestIncidentForceSignMatchesAbsorption(t *testing.T) {
	prop := [3]float64{0, 0, 1}
	p := []complex128{0, 0, 0, complex(1, 0.5), 0, 0}
	einc := []complex128{0, 0, 0, complex(1, 0), 0, 0}
	k := 1.0
	f := IncidentForce(p, einc, k, prop)
	if len(f) != 2 {
		t.Fatalf("expected 2 dipoles, got %d", len(f))
	}
	if f[0] != ([3]float64{0, 0, 0}) {
		t.Fatalf("expected zero force for zero polarization, got %v", f[0])
	}
	if f[1][2] <= 0 {
		t.Fatalf("expected forward-pointing force along prop, got %v", f[1])
	}
}

func TestScatteringForceVanishesAtLargeSeparation(t *testing.T) {
	coord := [][3]float64{{0, 0, 0}, {50, 0, 0}}
	p := []complex128{1, 0, 0, 1, 0, 0}
	global := GatherAll(decomp.Serial{}, coord, p, []int{0, 0})
	k := 1.0
	near := ScatteringForce(coord[:1], p[:3], global, k, 0)
	far := ScatteringForce([][3]float64{{0, 0, 0}}, []complex128{1, 0, 0}, Gathered{
		Coord: [][3]float64{{0, 0, 0}, {1000, 0, 0}},
		P:     []complex128{1, 0, 0, 1, 0, 0},
		Mat:   []int{0, 0},
	}, k, 0)
	nearMag := math.Hypot(math.Hypot(near[0][0], near[0][1]), near[0][2])
	farMag := math.Hypot(math.Hypot(far[0][0], far[0][1]), far[0][2])
	if farMag >= nearMag {
		t.Fatalf("expected scattering force to decay with separation: near=%v far=%v", nearMag, farMag)
	}
}
