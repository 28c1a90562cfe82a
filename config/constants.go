// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

// MaxNmat is the maximum number of distinct materials a run may use.
const MaxNmat = 10

// LDR (Lattice Dispersion Relation) polarizability coefficients.
const (
	LDRb1 = 1.8915316
	LDRb2 = -0.1648469
	LDRb3 = 1.7700004
)

// SO (second-order) polarizability coefficients.
const (
	SOb1 = 1.5867182
	SOb2 = 0.13488017
	SOb3 = 0.11895826
)

// Boundaries separating the 'close', 'median' and 'far' correction ranges
// of the second-order interaction term (kernel.Plan with Prescription SO).
const (
	GBoundClose  = 1.0 // k*r^2/d < GBoundClose => 'close'
	GBoundMedian = 1.0 // k*r < GBoundMedian => 'median'
)

// MinGridSize is the minimum allowed value of Nx, Ny or Nz.
const MinGridSize = 16

// RoundErr: magnitudes below this, relative to unity, are treated as zero.
const RoundErr = 1e-15
