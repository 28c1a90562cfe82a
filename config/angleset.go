// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import "math"

// AngleSet describes one axis of angular sampling for the Romberg
// integrator (spec.md §3 "Angle sets", §4.6). N = 2^J+1 points are
// generated at the finest level J; if Equiv is set the last point is
// aliased to the first (periodic phi), giving N = 2^J distinct points.
type AngleSet struct {
	Min, Max float64
	Jmin     int
	Jmax     int
	Eps      float64
	Equiv    bool // endpoints declared equivalent (periodic)
	Periodic bool // physically periodic (phi)
	CosSpace bool // sample equally in cos(angle) rather than angle itself (beta)
}

// Values returns the 2^J+1 sample points (or 2^J if Equiv) at refinement
// level J, in radians, honoring CosSpace.
func (a AngleSet) Values(J int) []float64 {
	n := 1<<uint(J) + 1
	pts := make([]float64, n)
	if a.CosSpace {
		cmin, cmax := math.Cos(a.Max), math.Cos(a.Min) // cos is decreasing
		for i := 0; i < n; i++ {
			c := cmin + (cmax-cmin)*float64(i)/float64(n-1)
			pts[i] = math.Acos(clamp(c, -1, 1))
		}
		// Acos reverses the ordering introduced by swapping cmin/cmax; flip back.
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	} else {
		for i := 0; i < n; i++ {
			pts[i] = a.Min + (a.Max-a.Min)*float64(i)/float64(n-1)
		}
	}
	if a.Equiv {
		pts = pts[:n-1]
	}
	return pts
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Single reports whether this axis degenerates to a single fixed angle
// (Min == Max), in which case the integrator must not subdivide it.
func (a AngleSet) Single() bool { return a.Max <= a.Min }
