// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"math"
	"testing"
)

func TestAngleSetSingleDetectsDegenerateAxis(t *testing.T) {
	a := AngleSet{Min: 1.0, Max: 1.0}
	if !a.Single() {
		t.Error("expected Single() true when Min == Max")
	}
	b := AngleSet{Min: 0, Max: math.Pi}
	if b.Single() {
		t.Error("expected Single() false for a non-degenerate range")
	}
}

func TestAngleSetValuesLinearCountAndEndpoints(t *testing.T) {
	a := AngleSet{Min: 0, Max: math.Pi}
	pts := a.Values(2) // 2^2+1 = 5 points
	if len(pts) != 5 {
		t.Fatalf("expected 5 points, got %d", len(pts))
	}
	if math.Abs(pts[0]-0) > 1e-12 || math.Abs(pts[len(pts)-1]-math.Pi) > 1e-12 {
		t.Errorf("endpoints = [%v, %v], want [0, pi]", pts[0], pts[len(pts)-1])
	}
}

func TestAngleSetValuesEquivDropsLastPoint(t *testing.T) {
	a := AngleSet{Min: 0, Max: 2 * math.Pi, Equiv: true}
	pts := a.Values(2) // 2^2 = 4 distinct points after dropping the aliased endpoint
	if len(pts) != 4 {
		t.Fatalf("expected 4 points, got %d", len(pts))
	}
}

func TestAngleSetValuesCosSpaceIsMonotonicAndBounded(t *testing.T) {
	a := AngleSet{Min: 0, Max: math.Pi, CosSpace: true}
	pts := a.Values(3)
	for i := 1; i < len(pts); i++ {
		if pts[i] <= pts[i-1] {
			t.Fatalf("expected strictly increasing angles, got %v", pts)
		}
	}
	if pts[0] < -1e-12 || pts[len(pts)-1] > math.Pi+1e-12 {
		t.Fatalf("angles out of [0, pi]: %v", pts)
	}
}
