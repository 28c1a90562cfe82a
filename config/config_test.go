// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"math"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Grid:         [3]int{16, 16, 16},
		Lambda:       2 * math.Pi,
		Dpl:          10,
		NumMat:       1,
		Prescription: "cm",
	}
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsOddGridDimension(t *testing.T) {
	c := validConfig()
	c.Grid[1] = 17
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for an odd grid dimension")
	}
}

func TestValidateRejectsSOWithReducedFFT(t *testing.T) {
	c := validConfig()
	c.Prescription = "so"
	c.ReducedFFT = true
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error combining SO with reduced-FFT storage")
	}
}

func TestValidateRejectsSOWithMultipleMaterials(t *testing.T) {
	c := validConfig()
	c.Prescription = "so"
	c.NumMat = 2
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error combining SO with more than one material")
	}
}

func TestValidateRejectsOrientAvgWithReducedFFT(t *testing.T) {
	c := validConfig()
	c.OrientAvg = true
	c.ReducedFFT = true
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error combining orientation averaging with reduced-FFT storage")
	}
}

func TestDipoleSpacingAndWavenumber(t *testing.T) {
	c := validConfig()
	d := c.DipoleSpacing()
	if math.Abs(d-c.Lambda/c.Dpl) > 1e-12 {
		t.Errorf("DipoleSpacing() = %v, want %v", d, c.Lambda/c.Dpl)
	}
	k := c.Wavenumber()
	if math.Abs(k-2*math.Pi/c.Lambda) > 1e-12 {
		t.Errorf("Wavenumber() = %v, want %v", k, 2*math.Pi/c.Lambda)
	}
}

func TestMaxGridDimReturnsLargestAxis(t *testing.T) {
	c := validConfig()
	c.Grid = [3]int{16, 32, 24}
	if got := c.MaxGridDim(); got != 32 {
		t.Errorf("MaxGridDim() = %d, want 32", got)
	}
}

func TestMaterialParamsReportsRealAndImaginaryParts(t *testing.T) {
	c := validConfig()
	c.M[0] = complex(1.5, 0.02)
	params := c.MaterialParams(0)
	if len(params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(params))
	}
	if params[0].N != "ReM" || params[0].V != 1.5 {
		t.Errorf("params[0] = %+v, want ReM=1.5", params[0])
	}
	if params[1].N != "ImM" || params[1].V != 0.02 {
		t.Errorf("params[1] = %+v, want ImM=0.02", params[1])
	}
}
