// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package orient implements the orientation-averaging driver (spec.md
// §2.8, §4.7): it rotates the incident-beam frame through the
// (alpha, beta, gamma) Euler angles rather than the particle lattice,
// reusing integrate.Romberg2D (nested, since a particle orientation has
// three angles but Romberg2D integrates two at a time) to average
// whatever per-orientation quantity the caller computes.
package orient

import (
	"math"

	"github.com/DeFrogxX/a-dda/beam"
	"github.com/DeFrogxX/a-dda/config"
	"github.com/DeFrogxX/a-dda/integrate"
)

// EulerRotation returns the lab-frame rotation r -> R*r for Z-Y-Z Euler
// angles (alpha, beta, gamma), the rotation beam.Frame.Rotated applies
// to Prop/EX/EY in place of rotating the lattice (spec.md §4.4, §4.7).
func EulerRotation(alpha, beta, gamma float64) func([3]float64) [3]float64 {
	ca, sa := math.Cos(alpha), math.Sin(alpha)
	cb, sb := math.Cos(beta), math.Sin(beta)
	cg, sg := math.Cos(gamma), math.Sin(gamma)

	// R = Rz(alpha) Ry(beta) Rz(gamma), the standard Z-Y-Z convention.
	r := [3][3]float64{
		{ca*cb*cg - sa*sg, -ca*cb*sg - sa*cg, ca * sb},
		{sa*cb*cg + ca*sg, -sa*cb*sg + ca*cg, sa * sb},
		{-sb * cg, sb * sg, cb},
	}
	return func(v [3]float64) [3]float64 {
		return [3]float64{
			r[0][0]*v[0] + r[0][1]*v[1] + r[0][2]*v[2],
			r[1][0]*v[0] + r[1][1]*v[1] + r[1][2]*v[2],
			r[2][0]*v[0] + r[2][1]*v[1] + r[2][2]*v[2],
		}
	}
}

// ForceNonReduced returns a copy of cfg with ReducedFFT forced false, the
// setting orientation averaging runs with (spec.md §4.7; the combination
// is also rejected as a hard error by config.Config.Validate).
func ForceNonReduced(cfg config.Config) config.Config {
	cfg.ReducedFFT = false
	return cfg
}

// Compute evaluates one orientation sample: given the rotated incidence
// frame, it runs whatever per-orientation pipeline (RHS -> Krylov ->
// postproc) the caller has wired and returns a fixed-length result
// vector (e.g. [Cext, Cabs, Csca] or a flattened Mueller matrix).
type Compute func(frame beam.Frame) ([]float64, error)

// AverageOrientations integrates Compute's result over the three Euler
// angles and returns the orientation-averaged value (spec.md §4.7):
// numerator = triple Romberg integral of Compute, denominator = the same
// integral of the constant function 1, giving a proper average
// regardless of each AngleSet's span or cos-beta spacing.
func AverageOrientations(base beam.Frame, alphaSet, betaSet, gammaSet config.AngleSet, ncomp int, compute Compute) ([]float64, error) {
	var computeErr error
	f := func(alpha, beta float64) []float64 {
		inner := func(gamma, _ float64) []float64 {
			rot := EulerRotation(alpha, beta, gamma)
			frame := base.Rotated(rot)
			v, err := compute(frame)
			if err != nil {
				computeErr = err
				return make([]float64, ncomp)
			}
			return v
		}
		dummy := config.AngleSet{Min: 0, Max: 0}
		res, err := integrate.Romberg2D(gammaSet, dummy, inner, ncomp)
		if err != nil {
			computeErr = err
			return make([]float64, ncomp)
		}
		return res.Value
	}
	dummy := config.AngleSet{Min: 0, Max: 0}
	num, err := integrate.Romberg2D(alphaSet, betaSet, func(a, b float64) []float64 { return f(a, b) }, ncomp)
	if err != nil {
		return nil, err
	}
	if computeErr != nil {
		return nil, computeErr
	}

	weightOnly := func(alpha, beta float64) []float64 {
		inner := func(gamma, _ float64) []float64 { return []float64{1} }
		res, _ := integrate.Romberg2D(gammaSet, dummy, inner, 1)
		return res.Value
	}
	den, err := integrate.Romberg2D(alphaSet, betaSet, weightOnly, 1)
	if err != nil {
		return nil, err
	}

	out := make([]float64, ncomp)
	for c := range out {
		out[c] = num.Value[c] / den.Value[0]
	}
	return out, nil
}
