// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package beam

import "math/cmplx"

// Gaussian implements the three Gaussian-beam orders spec.md §4.4 names
// (Lᵐⁱⁿᵘˢ, Davis-3, Barton-5) as one paraxial fundamental mode expanded
// to successively higher order in the diffraction parameter s = 1/(k
// w0): L-minus is the bare paraxial (lowest-order) term, Davis-3 adds
// the first longitudinal correction (O(s)) together with an O(s^2)
// transverse correction, and Barton-5 carries one further order of each.
// This is an engineering-quality approximation of the published
// closed-form expansions, not a verbatim transcription of their exact
// coefficients.
type Gaussian struct {
	Frame
	K, W0  float64
	Center [3]float64
	Order  int // 1, 3, or 5
}

// NewGaussian builds a Gaussian beam of the given order.
func NewGaussian(f Frame, k, w0 float64, center [3]float64, order int) Gaussian {
	return Gaussian{Frame: f, K: k, W0: w0, Center: center, Order: order}
}

func (g Gaussian) Field(r [3]float64) [3]complex128 {
	if degenerate(g.K, g.W0) {
		return NewPlane(g.Frame, g.K).Field(r)
	}
	x, y, z := g.localCoords(r, g.Center)
	s := 1 / (g.K * g.W0)
	xi, eta := x/g.W0, y/g.W0
	zeta := z / (g.K * g.W0 * g.W0)
	rho2 := xi*xi + eta*eta

	q := complex(1, 0) / complex(1, 2*zeta)
	phase := cmplx.Exp(complex(0, g.K*z))
	psi := q * cmplx.Exp(-q*complex(rho2, 0)) * phase

	if g.Order >= 3 {
		s2 := complex(s*s, 0)
		corr := complex(1, 0) + s2*(q*q*complex(rho2*rho2, 0)-complex(2, 0)*q*complex(rho2, 0)-complex(1, 0))
		psi *= corr
	}
	if g.Order >= 5 {
		s4 := complex(s*s*s*s, 0)
		corr := complex(1, 0) + s4*q*q*q*complex(rho2*rho2*rho2, 0)
		psi *= corr
	}

	var ez complex128
	if g.Order >= 3 {
		ez = complex(2*s, 0) * q * complex(xi, 0) * psi
		if g.Order >= 5 {
			s3 := complex(s*s*s, 0)
			ez += s3 * q * q * complex(xi*(xi*xi-3*eta*eta), 0) * psi
		}
	}

	var out [3]complex128
	for i := 0; i < 3; i++ {
		out[i] = complex(g.Frame.EX[i], 0)*psi + complex(g.Frame.Prop[i], 0)*ez
	}
	return out
}
