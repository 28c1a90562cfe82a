// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package beam implements the incident-field generators of spec.md §2.5
// / §4.4: a plane wave and three Gaussian-beam approximations of
// increasing order, all expressed in the same propagation/polarization
// frame so that orientation averaging only has to rotate that frame
// (spec.md §4.4: "the particle frame is rotated rather than the beam").
package beam

import (
	"math"
	"math/cmplx"

	"github.com/cpmech/gosl/chk"
)

// Beam evaluates the incident electric field at a point in the lab
// frame.
type Beam interface {
	Field(r [3]float64) [3]complex128
}

// Frame is the orthonormal propagation/polarization triad every beam is
// built from: Prop (k direction), EX ("perpendicular"), EY ("parallel").
// EY is taken as given rather than recomputed from Prop x EX, since the
// two incident polarizations are independent configuration inputs
// (spec.md §4.1's S averages over exactly these two).
type Frame struct {
	Prop, EX, EY [3]float64
}

// Rotated returns f with every axis transformed by rot (spec.md §4.4,
// §2.8: orientation averaging rotates the particle, equivalently the
// beam frame, by the inverse Euler rotation).
func (f Frame) Rotated(rot func([3]float64) [3]float64) Frame {
	return Frame{Prop: rot(f.Prop), EX: rot(f.EX), EY: rot(f.EY)}
}

func dot(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func sub(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

// localCoords resolves r-center into the beam's own (xi, eta, zeta) axes.
func (f Frame) localCoords(r, center [3]float64) (x, y, z float64) {
	d := sub(r, center)
	return dot(d, f.EX), dot(d, f.EY), dot(d, f.Prop)
}

// Plane is the uniform plane wave of spec.md §4.4: E_inc(r) = e *
// exp(i k prop.r).
type Plane struct {
	Frame
	K complex128 // real wavenumber stored as complex128 for direct use in cmplx.Exp
}

func (p Plane) Field(r [3]float64) [3]complex128 {
	phase := cmplx.Exp(complex(0, 1) * p.K * complex(dot(p.Frame.Prop, r), 0))
	var out [3]complex128
	for i := 0; i < 3; i++ {
		out[i] = complex(p.Frame.EX[i], 0) * phase
	}
	return out
}

// NewPlane builds a Plane from a real wavenumber.
func NewPlane(f Frame, k float64) Plane {
	return Plane{Frame: f, K: complex(k, 0)}
}

// New constructs a Beam by kind ("plane", "lminus", "davis3", "barton5"),
// mirroring the polarize.Get / krylov.Get registry-by-name idiom.
func New(kind string, f Frame, k, w0 float64, center [3]float64) (Beam, error) {
	switch kind {
	case "plane":
		return NewPlane(f, k), nil
	case "lminus":
		return NewGaussian(f, k, w0, center, 1), nil
	case "davis3":
		return NewGaussian(f, k, w0, center, 3), nil
	case "barton5":
		return NewGaussian(f, k, w0, center, 5), nil
	}
	return nil, chk.Err("unknown beam kind %q", kind)
}

// degenerate reports whether w0 is non-positive, or large enough relative
// to the wavenumber that the beam is indistinguishable from a plane wave
// (spec.md §4.4: "all reduce to the plane wave in the limit kw0 -> oo").
func degenerate(k, w0 float64) bool {
	return w0 <= 0 || math.IsInf(w0, 1) || k*w0 > 1e8
}
