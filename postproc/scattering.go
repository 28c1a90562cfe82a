// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postproc

import (
	"math"
	"math/cmplx"

	"github.com/DeFrogxX/a-dda/config"
	"github.com/DeFrogxX/a-dda/integrate"
)

// direction reconstructs the observation unit vector from (theta, phi) in
// the incidence frame (prop, ex, ey), matching crosssec.c's
// robserver = cos(theta)*prop + sin(theta)*(cos(phi)*ex + sin(phi)*ey).
func direction(theta, phi float64, prop, ex, ey [3]float64) [3]float64 {
	ct, st := math.Cos(theta), math.Sin(theta)
	cp, sp := math.Cos(phi), math.Sin(phi)
	var out [3]float64
	for c := 0; c < 3; c++ {
		out[c] = ct*prop[c] + st*(cp*ex[c]+sp*ey[c])
	}
	return out
}

func abs2Vec3(v [3]complex128) float64 {
	return cmplx.Abs(v[0])*cmplx.Abs(v[0]) + cmplx.Abs(v[1])*cmplx.Abs(v[1]) + cmplx.Abs(v[2])*cmplx.Abs(v[2])
}

// ScatteredIntensity returns |E_sca(theta, phi)|^2 in the incidence
// frame, the single quantity both Csca and the asymmetry vector
// integrate over the sphere (spec.md §4.5).
func ScatteredIntensity(far func(n [3]float64) [3]complex128, prop, ex, ey [3]float64) func(theta, phi float64) float64 {
	return func(theta, phi float64) float64 {
		n := direction(theta, phi, prop, ex, ey)
		return abs2Vec3(far(n))
	}
}

// Csca integrates the scattered intensity over the full sphere (spec.md
// §4.6's theta in [0,pi], phi in [0,2pi)), weighting each sample by the
// solid-angle factor sin(theta).
func Csca(thetaSet, phiSet config.AngleSet, intensity func(theta, phi float64) float64, k float64) (float64, error) {
	f := func(theta, phi float64) []float64 { return []float64{intensity(theta, phi) * math.Sin(theta)} }
	res, err := integrate.Romberg2D(thetaSet, phiSet, f, 1)
	if err != nil {
		return 0, err
	}
	return fourPi / (k * k) * res.Value[0], nil
}

// AsymmetryVector integrates the (sin(theta)cos(phi), sin(theta)sin(phi),
// cos(theta))-weighted scattered intensity over the sphere; the result
// is g*Csca, un-normalized by Csca (spec.md §4.5).
func AsymmetryVector(thetaSet, phiSet config.AngleSet, intensity func(theta, phi float64) float64, k float64) ([3]float64, error) {
	f := func(theta, phi float64) []float64 {
		e2 := intensity(theta, phi) * math.Sin(theta)
		return []float64{
			e2 * math.Sin(theta) * math.Cos(phi),
			e2 * math.Sin(theta) * math.Sin(phi),
			e2 * math.Cos(theta),
		}
	}
	res, err := integrate.Romberg2D(thetaSet, phiSet, f, 3)
	if err != nil {
		return [3]float64{}, err
	}
	c := fourPi / (k * k)
	return [3]float64{c * res.Value[0], c * res.Value[1], c * res.Value[2]}, nil
}
