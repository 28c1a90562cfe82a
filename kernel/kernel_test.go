// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math/cmplx"
	"testing"

	"github.com/DeFrogxX/a-dda/decomp"
	"github.com/DeFrogxX/a-dda/polarize"
	"gonum.org/v1/gonum/cmplxs"
)

func TestGreenSymmetric(t *testing.T) {
	cases := [][3]float64{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1}, {0.3, -0.7, 1.1},
	}
	for _, r := range cases {
		if !Symmetric(r, 1.5) {
			t.Errorf("Green(%v) not symmetric under r -> -r", r)
		}
	}
}

func TestGreenZeroAtOrigin(t *testing.T) {
	g := Green([3]float64{0, 0, 0}, 1.0)
	for i, v := range g {
		if v != 0 {
			t.Errorf("component %d of Green(0) = %v, want 0", i, v)
		}
	}
}

func uniformAlpha(n int) []polarize.Tensor {
	a := make([]polarize.Tensor, n)
	for i := range a {
		a[i] = polarize.Tensor{1.2 + 0.3i, 1.2 + 0.3i, 1.2 + 0.3i}
	}
	return a
}

func smallLatticeCoord(n int, d float64) [][3]float64 {
	var coord [][3]float64
	for iz := 0; iz < n; iz++ {
		for iy := 0; iy < n; iy++ {
			for ix := 0; ix < n; ix++ {
				coord = append(coord, [3]float64{
					(float64(ix) - float64(n-1)/2) * d,
					(float64(iy) - float64(n-1)/2) * d,
					(float64(iz) - float64(n-1)/2) * d,
				})
			}
		}
	}
	return coord
}

func matVecAgreesWithNaive(t *testing.T, n int, d, k float64, so bool) {
	t.Helper()
	coord := smallLatticeCoord(n, d)
	alpha := uniformAlpha(len(coord))

	x := make([]complex128, 3*len(coord))
	for i := range x {
		x[i] = complex(float64(i%5)-2, float64(i%3)-1)
	}

	plan, err := Build(decomp.Serial{}, n, n, n, d, k, false, so)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := plan.MatVec(x, coord, alpha)
	if err != nil {
		t.Fatalf("MatVec: %v", err)
	}
	want := NaiveMatVec(x, coord, alpha, k, d, so)

	scale := 0.0
	for _, v := range want {
		if a := cmplx.Abs(v); a > scale {
			scale = a
		}
	}
	if !cmplxs.EqualApprox(got, want, 1e-9*(scale+1)) {
		t.Fatalf("FFT matvec disagrees with naive reference beyond tolerance:\n got=%v\nwant=%v", got, want)
	}
}

// TestMatVecMatchesNaive checks the FFT-accelerated Plan.MatVec against
// the brute-force NaiveMatVec on a small lattice (spec.md §8).
func TestMatVecMatchesNaive(t *testing.T) {
	matVecAgreesWithNaive(t, 2, 0.1, 1.0, false)
}

// TestMatVecMatchesNaiveSO repeats the same check with the G_SO
// correction active (spec.md §4.2), confirming Plan.Build and
// NaiveMatVec agree on the corrected tensor, not just the bare one.
func TestMatVecMatchesNaiveSO(t *testing.T) {
	matVecAgreesWithNaive(t, 2, 0.1, 1.0, true)
}

// TestSOCorrectionDiffersFromBareGreenAtCloseRange checks that the SO
// path actually perturbs the tensor near the close-range boundary,
// i.e. that it is not a disguised no-op.
func TestSOCorrectionDiffersFromBareGreenAtCloseRange(t *testing.T) {
	d, k := 0.1, 1.0
	r := [3]float64{d, 0, 0}
	bare := Green(r, k)
	corrected := soCorrection(r, k, d)
	same := true
	for i := range bare {
		if cmplx.Abs(bare[i]-corrected[i]) > 1e-12 {
			same = false
		}
	}
	if same {
		t.Fatal("expected soCorrection to differ from the bare Green's tensor in the close range")
	}
}

func TestBuildRejectsSOWithReducedFFT(t *testing.T) {
	if _, err := Build(decomp.Serial{}, 2, 2, 2, 0.1, 1.0, true, true); err == nil {
		t.Fatal("expected Build to reject reduced-FFT storage combined with the SO correction")
	}
}

func TestReflectSign(t *testing.T) {
	// Gxy is odd under a single-axis reflection of x or y, even under z.
	if reflectSign(0, 1, [3]bool{true, false, false}) != -1 {
		t.Error("Gxy should flip sign under x-reflection")
	}
	if reflectSign(0, 1, [3]bool{false, false, true}) != 1 {
		t.Error("Gxy should not flip sign under z-reflection")
	}
	// Gxx is even under every single-axis reflection.
	if reflectSign(0, 0, [3]bool{true, false, false}) != 1 {
		t.Error("Gxx should not flip sign under x-reflection")
	}
	// two reflections compose: Gxy odd in x and in y, so flipping both
	// cancels.
	if reflectSign(0, 1, [3]bool{true, true, false}) != 1 {
		t.Error("Gxy should not flip sign under simultaneous x,y-reflection")
	}
}
