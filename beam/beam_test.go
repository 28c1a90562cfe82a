// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package beam

import (
	"math/cmplx"
	"testing"
)

func frame() Frame {
	return Frame{Prop: [3]float64{0, 0, 1}, EX: [3]float64{1, 0, 0}, EY: [3]float64{0, 1, 0}}
}

func TestPlaneWavePhase(t *testing.T) {
	k := 2.0
	p := NewPlane(frame(), k)
	e := p.Field([3]float64{0, 0, 1})
	want := cmplx.Exp(complex(0, k))
	if cmplx.Abs(e[0]-want) > 1e-12 {
		t.Fatalf("Ex = %v, want %v", e[0], want)
	}
	if e[1] != 0 || e[2] != 0 {
		t.Fatalf("plane wave should be purely polarized along EX, got %v", e)
	}
}

func TestGaussianReducesToPlaneWave(t *testing.T) {
	k := 1.5
	f := frame()
	plane := NewPlane(f, k)
	r := [3]float64{0.2, -0.1, 0.7}
	want := plane.Field(r)
	for _, order := range []int{1, 3, 5} {
		g := NewGaussian(f, k, 1e9, [3]float64{0, 0, 0}, order)
		got := g.Field(r)
		for i := 0; i < 3; i++ {
			if cmplx.Abs(got[i]-want[i]) > 1e-6 {
				t.Fatalf("order %d: component %d = %v, want %v (plane-wave limit)", order, i, got[i], want[i])
			}
		}
	}
}

func TestNewUnknownKind(t *testing.T) {
	if _, err := New("not-a-beam", frame(), 1, 1, [3]float64{}); err == nil {
		t.Fatal("expected error for unknown beam kind")
	}
}
