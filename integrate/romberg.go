// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package integrate implements the 2-D adaptive Romberg integrator of
// spec.md §2.7 / §4.6, used for the scattering cross-section and
// asymmetry-vector double integral over (theta, phi) and, with a single
// fixed angle, for the 1-D orientation-averaging integrals of §4.7.
package integrate

import (
	"math"

	"github.com/DeFrogxX/a-dda/config"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// VectorFunc evaluates every component of the integrand at one (theta,
// phi) point; a vector integrand lets callers (Csca and the asymmetry
// vector, which share the same |E_sca|^2 evaluation) integrate several
// quantities in one pass over the grid.
type VectorFunc func(theta, phi float64) []float64

// Result carries the Romberg-extrapolated integral and the refinement
// level at which it converged.
type Result struct {
	Value   []float64
	Level   int
	Reached bool // false if Jmax was hit without meeting Eps
}

// points1D returns the sample points and matching composite-trapezoidal
// weights (already including the step size h) for one AngleSet axis at
// refinement level J. A Single axis (Min == Max) degenerates to its one
// fixed value with unit weight rather than the 2^J+1 coincident points
// AngleSet.Values would otherwise produce.
func points1D(a config.AngleSet, J int) (pts, w []float64) {
	if a.Single() {
		return []float64{a.Min}, []float64{1}
	}
	pts = a.Values(J)
	n := len(pts)
	h := (a.Max - a.Min) / float64(n-1)
	if a.Equiv {
		h = (a.Max - a.Min) / float64(n)
	}
	w = make([]float64, n)
	for i := range w {
		w[i] = h
	}
	if !a.Equiv {
		w[0] *= 0.5
		w[n-1] *= 0.5
	}
	return pts, w
}

// trapezoid2D computes the composite-trapezoidal tensor-grid estimate of
// the integral at refinement level J for both axes.
func trapezoid2D(thetaSet, phiSet config.AngleSet, f VectorFunc, ncomp, J int) []float64 {
	tPts, tW := points1D(thetaSet, J)
	pPts, pW := points1D(phiSet, J)

	acc := make([]float64, ncomp)
	for i, theta := range tPts {
		for j, phi := range pPts {
			v := f(theta, phi)
			w := tW[i] * pW[j]
			for c := 0; c < ncomp; c++ {
				acc[c] += w * v[c]
			}
		}
	}
	return acc
}

// Romberg2D integrates f over thetaSet x phiSet, Richardson-extrapolating
// the sequence of tensor-grid trapezoidal estimates at J = Jmin..Jmax the
// same way a 1-D Romberg table does, since a tensor-product composite
// trapezoidal rule has the same power-of-4 error expansion in each
// dimension (spec.md §4.6).
func Romberg2D(thetaSet, phiSet config.AngleSet, f VectorFunc, ncomp int) (Result, error) {
	jmin := commonJmin(thetaSet, phiSet)
	jmax := commonJmax(thetaSet, phiSet)
	if jmax < jmin {
		return Result{}, chk.Err("integrate: Jmax (%d) below Jmin (%d)", jmax, jmin)
	}
	eps := commonEps(thetaSet, phiSet)

	levels := jmax - jmin + 1
	table := make([][]float64, levels) // table[k] holds extrapolation row k (length k+1), each entry a ncomp-vector flattened
	row := make([][]float64, levels)

	for k := 0; k < levels; k++ {
		J := jmin + k
		row[k] = make([]float64, 0, k+1)
		t := trapezoid2D(thetaSet, phiSet, f, ncomp, J)
		row[k] = append(row[k], flatten(t))
		for m := 1; m <= k; m++ {
			prevRow := table[k-1]
			coarse := prevRow[m-1]
			fine := row[k][m-1]
			pow := math.Pow(4, float64(m))
			extrap := make([]float64, ncomp)
			for c := 0; c < ncomp; c++ {
				extrap[c] = (pow*fine[c] - coarse[c]) / (pow - 1)
			}
			row[k] = append(row[k], extrap)
		}
		table[k] = row[k]

		if k > 0 {
			best := row[k][k]
			prevBest := row[k-1][k-1]
			if converged(best, prevBest, eps) {
				return Result{Value: best, Level: J, Reached: true}, nil
			}
		}
	}
	return Result{Value: table[levels-1][levels-1], Level: jmax, Reached: false}, nil
}

func flatten(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

// converged compares the two finest Romberg rows the same way the
// teacher's ODE step-doubling convergence check does: a relative norm of
// the row-to-row difference against the finer row's own norm.
func converged(a, b []float64, eps float64) bool {
	diff := make([]float64, len(a))
	for i := range a {
		diff[i] = a[i] - b[i]
	}
	den := la.VecNorm(a)
	if den == 0 {
		return true
	}
	return la.VecNorm(diff)/den < eps
}

func commonJmin(a, b config.AngleSet) int {
	if a.Single() {
		return b.Jmin
	}
	if b.Single() {
		return a.Jmin
	}
	return maxInt(a.Jmin, b.Jmin)
}

func commonJmax(a, b config.AngleSet) int {
	if a.Single() {
		return b.Jmax
	}
	if b.Single() {
		return a.Jmax
	}
	return minInt(a.Jmax, b.Jmax)
}

func commonEps(a, b config.AngleSet) float64 {
	if a.Single() {
		return b.Eps
	}
	if b.Single() {
		return a.Eps
	}
	if a.Eps < b.Eps {
		return a.Eps
	}
	return b.Eps
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
