// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package polarize implements the per-material, per-axis polarizability
// prescriptions of spec.md §2.2 / §4.1.
package polarize

import (
	"math"
	"math/cmplx"

	"github.com/DeFrogxX/a-dda/config"
	"github.com/cpmech/gosl/chk"
)

// Tensor is the complex polarizability of one material, one axis per
// component. Isotropic prescriptions (CM, RR, LDR, SO) populate all three
// identically; CLDR is the only one that differs per axis (spec.md §4.1).
type Tensor [3]complex128

// Isotropic reports whether all three axes carry the same value.
func (t Tensor) Isotropic() bool { return t[0] == t[1] && t[1] == t[2] }

// Params bundles everything a prescription needs.
type Params struct {
	M     complex128 // complex refractive index
	D     float64    // dipole spacing
	Kd    float64    // k*d
	Prop  [3]float64 // propagation unit vector
	EX    [3]float64 // incident polarization 1 ("perpendicular")
	EY    [3]float64 // incident polarization 2 ("parallel")
	Avg   bool        // LDR: average S over EX and EY
	UseEY bool        // LDR (no averaging): which polarization is "current"
}

// Allocator computes a material's polarizability tensor.
type Allocator func(p Params) (Tensor, error)

// registry mirrors the msolid.allocators idiom: prescription name =>
// allocator function.
var registry = map[string]Allocator{
	"cm":   clausiusMossotti,
	"rr":   radiativeReaction,
	"ldr":  ldr,
	"cldr": cldr,
	"so":   secondOrder,
}

// Get returns the allocator registered under name.
func Get(name string) (Allocator, error) {
	a, ok := registry[name]
	if !ok {
		return nil, chk.Err("unknown polarizability prescription %q", name)
	}
	return a, nil
}

const threeOverFourPi = 3.0 / (4.0 * math.Pi)

// cmScalar returns the Clausius-Mossotti polarizability, spec.md §4.1.
func cmScalar(p Params) complex128 {
	m2 := p.M * p.M
	return threeOverFourPi * (m2 - 1) / (m2 + 2) * p.D * p.D * p.D
}

func clausiusMossotti(p Params) (Tensor, error) {
	a := cmScalar(p)
	return Tensor{a, a, a}, nil
}

// radiativeReaction adds the radiative-reaction correction to 1/alpha,
// spec.md §4.1 "RRC".
func radiativeReaction(p Params) (Tensor, error) {
	aCM := cmScalar(p)
	k := p.Kd / p.D
	inv := 1/aCM - (complex(0, 1) * 2.0 / 3.0 * k * k * k)
	a := 1 / inv
	return Tensor{a, a, a}, nil
}

// sValue computes S = sum_i (prop_i * e_i)^2 for the scalar LDR case;
// ldr averages it over the two incident polarizations when asked
// (spec.md §4.1).
func sValue(prop, e [3]float64) float64 {
	var s float64
	for i := 0; i < 3; i++ {
		t := prop[i] * e[i]
		s += t * t
	}
	return s
}

func ldr(p Params) (Tensor, error) {
	aCM := cmScalar(p)
	m2 := p.M * p.M
	var s float64
	if p.Avg {
		sx := sValue(p.Prop, p.EX)
		sy := sValue(p.Prop, p.EY)
		s = 0.5 * (sx + sy)
	} else if p.UseEY {
		s = sValue(p.Prop, p.EY)
	} else {
		s = sValue(p.Prop, p.EX)
	}
	factor := 1 + (m2-1)*(config.LDRb1+config.LDRb2*m2+config.LDRb3*m2*complex(s, 0))*complex(p.Kd*p.Kd, 0)
	// Draine & Goodman (1993): alpha_LDR = alpha_CM / factor.
	a := aCM / factor
	return Tensor{a, a, a}, nil
}

// cldr is the anisotropic Corrected LDR: S is evaluated per-axis instead
// of from the incident polarization (spec.md §4.1).
func cldr(p Params) (Tensor, error) {
	aCM := cmScalar(p)
	m2 := p.M * p.M
	var t Tensor
	for axis := 0; axis < 3; axis++ {
		s := p.Prop[axis] * p.Prop[axis]
		factor := 1 + (m2-1)*(config.LDRb1+config.LDRb2*m2+config.LDRb3*m2*complex(s, 0))*complex(p.Kd*p.Kd, 0)
		t[axis] = aCM / factor
	}
	return t, nil
}

// secondOrder is the development-quality SO prescription; rejected when
// combined with the reduced-FFT mode or multi-material anisotropy
// (enforced by config.Config.Validate, not here, since this function has
// no notion of "other materials").
func secondOrder(p Params) (Tensor, error) {
	aCM := cmScalar(p)
	m2 := p.M * p.M
	factor := 1 + (m2-1)*(config.SOb1+config.SOb2*m2+config.SOb3*m2)*complex(p.Kd*p.Kd, 0)
	a := aCM / factor
	return Tensor{a, a, a}, nil
}

// Inverse returns the per-axis inverse polarizability used by the MatVec
// diagonal (spec.md §4.2: "subtracts alpha^-1-scaled x").
func (t Tensor) Inverse() Tensor {
	return Tensor{1 / t[0], 1 / t[1], 1 / t[2]}
}

// AbsCheck guards against a degenerate (zero) polarizability, which would
// make the diagonal of A singular.
func (t Tensor) AbsCheck() error {
	for axis, a := range t {
		if cmplx.Abs(a) < 1e-300 {
			return chk.Err("polarizability on axis %d is numerically zero", axis)
		}
	}
	return nil
}
