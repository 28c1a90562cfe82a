// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package config implements the immutable configuration record that
// replaces the original program's process-wide global option pool
// (Design Note 9), plus the numeric constants and angular/scattering-grid
// file readers every other package consumes.
package config

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/utl"
)

// Config is built once by an external parser (the command-line/option
// surface of spec.md §6 is out of scope here) and handed by reference to
// every component. Nothing in this core ever mutates a Config in place;
// a new orientation or polarization state lives in the caller's own
// records (geometry.Slab, krylov.Result, ...), never here.
type Config struct {
	// geometry / discretization
	Grid    [3]int  // Nx, Ny, Nz; each even, >= MinGridSize
	Lambda  float64 // wavelength
	Dpl     float64 // dipoles per wavelength; fixes dipole spacing d = Lambda/Dpl
	NumMat  int     // number of distinct materials in use, <= MaxNmat
	M       [MaxNmat]complex128

	// incidence
	Prop [3]float64 // propagation unit vector
	EX   [3]float64 // "perpendicular" incident polarization
	EY   [3]float64 // "parallel" incident polarization

	// polarizability
	Prescription string // "cm", "rr", "ldr", "cldr", "so"
	AvgPolLDR    bool   // LDR: average S over the two incident polarizations

	// right-hand side
	BeamKind   string // "plane", "lminus", "davis3", "barton5"
	BeamW0     float64
	BeamCenter [3]float64

	// solver
	IterKind string // "cgnr", "bicgstab", "bicgcs", "qmrcs"
	Eps      float64
	MaxIter  int

	// interaction kernel
	ReducedFFT bool // symmetry-reduced storage; mutually exclusive with SO

	// checkpoint
	ChpType     string // "none", "normal", "regular", "always"
	ChpDir      string
	ChpInterval float64 // wall-clock seconds between "regular" snapshots

	// orientation averaging
	OrientAvg bool
	AngleA    AngleSet // alpha
	AngleB    AngleSet // beta (sampled in cos beta)
	AngleG    AngleSet // gamma

	// scattering integration
	AngleTheta AngleSet
	AnglePhi   AngleSet
}

// DipoleSpacing returns d = Lambda / Dpl.
func (c *Config) DipoleSpacing() float64 { return c.Lambda / c.Dpl }

// MaxGridDim returns the largest of Nx, Ny, Nz, used by memory/log
// diagnostics that report against the worst-case axis.
func (c *Config) MaxGridDim() int {
	return utl.Max(utl.Max(c.Grid[0], c.Grid[1]), c.Grid[2])
}

// MaterialParams reports material mat's complex refractive index as a
// named parameter record, in the mdl/fluid.Model.GetPrms idiom (real and
// imaginary parts as two fun.P entries rather than a single complex
// field), for display/serialization by an external reporter.
func (c *Config) MaterialParams(mat int) fun.Params {
	m := c.M[mat]
	return fun.Params{
		&fun.P{N: "ReM", V: real(m)},
		&fun.P{N: "ImM", V: imag(m)},
	}
}

// Wavenumber returns k = 2*pi/Lambda.
func (c *Config) Wavenumber() float64 { return 2 * pi / c.Lambda }

const pi = 3.14159265358979323846

// Validate checks the invariants spec.md §3/§8 name explicitly. It does
// not duplicate validation that belongs to the (external) option parser.
func (c *Config) Validate() error {
	for i, n := range c.Grid {
		if n%2 != 0 {
			return chk.Err("grid dimension %d is odd: %d", i, n)
		}
		if n < MinGridSize {
			return chk.Err("grid dimension %d is below the minimum of %d: %d", i, MinGridSize, n)
		}
	}
	if c.NumMat < 1 || c.NumMat > MaxNmat {
		return chk.Err("number of materials out of range [1,%d]: %d", MaxNmat, c.NumMat)
	}
	if c.Prescription == "so" && c.ReducedFFT {
		return chk.Err("second-order interaction prescription is incompatible with reduced-FFT storage")
	}
	if c.Prescription == "so" && c.NumMat > 1 {
		return chk.Err("second-order interaction prescription is incompatible with multi-material anisotropy")
	}
	if c.OrientAvg && c.ReducedFFT {
		return chk.Err("orientation averaging forcibly disables symmetry; ReducedFFT must be false")
	}
	return nil
}
