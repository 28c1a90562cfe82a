// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"math"
	"testing"

	"github.com/DeFrogxX/a-dda/config"
)

func TestRomberg2DSolidAngle(t *testing.T) {
	theta := config.AngleSet{Min: 0, Max: math.Pi, Jmin: 2, Jmax: 8, Eps: 1e-9}
	phi := config.AngleSet{Min: 0, Max: 2 * math.Pi, Jmin: 2, Jmax: 8, Eps: 1e-9, Equiv: true, Periodic: true}

	f := func(th, ph float64) []float64 {
		return []float64{math.Sin(th)}
	}
	res, err := Romberg2D(theta, phi, f, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := 4 * math.Pi
	if math.Abs(res.Value[0]-want) > 1e-6 {
		t.Fatalf("integral of sin(theta) over the sphere = %v, want %v (level %d, reached=%v)", res.Value[0], want, res.Level, res.Reached)
	}
}

func TestRomberg2DSingleAxisReducesTo1DIntegral(t *testing.T) {
	theta := config.AngleSet{Min: 0.3, Max: 0.3, Jmin: 1, Jmax: 4, Eps: 1e-9}
	phi := config.AngleSet{Min: 0, Max: 2 * math.Pi, Jmin: 2, Jmax: 8, Eps: 1e-9, Equiv: true, Periodic: true}

	f := func(th, ph float64) []float64 { return []float64{1} }
	res, err := Romberg2D(theta, phi, f, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := 2 * math.Pi
	if math.Abs(res.Value[0]-want) > 1e-9 {
		t.Fatalf("fixed-theta integral over phi = %v, want %v", res.Value[0], want)
	}
}
