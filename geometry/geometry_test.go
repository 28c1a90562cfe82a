// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"os"
	"path/filepath"
	"testing"
)

type sphereShape struct {
	g Grid
	r float64
}

func (s sphereShape) Occupies(ix, iy, iz int) (int, bool) {
	cx, cy, cz := float64(s.g.Nx-1)/2, float64(s.g.Ny-1)/2, float64(s.g.Nz-1)/2
	dx, dy, dz := float64(ix)-cx, float64(iy)-cy, float64(iz)-cz
	if dx*dx+dy*dy+dz*dz <= s.r*s.r {
		return 0, true
	}
	return 0, false
}

func TestGridValidateRejectsOddDimension(t *testing.T) {
	g := Grid{Nx: 3, Ny: 4, Nz: 4}
	if err := g.Validate(2); err == nil {
		t.Fatal("expected error for odd grid dimension")
	}
}

func TestGridValidateRejectsTooSmall(t *testing.T) {
	g := Grid{Nx: 2, Ny: 2, Nz: 2}
	if err := g.Validate(4); err == nil {
		t.Fatal("expected error for grid dimension below minimum")
	}
}

func TestMaterializeCountsOccupiedSites(t *testing.T) {
	g := Grid{Nx: 8, Ny: 8, Nz: 8}
	shape := sphereShape{g: g, r: 3}
	sites := Materialize(g, shape)
	if len(sites) == 0 {
		t.Fatal("expected some occupied sites inside the sphere")
	}
	for _, s := range sites {
		if s.IX < 0 || s.IX >= g.Nx || s.IY < 0 || s.IY >= g.Ny || s.IZ < 0 || s.IZ >= g.Nz {
			t.Fatalf("site %+v out of grid bounds", s)
		}
	}
}

func TestSlabPartitionCoversEveryRowExactlyOnce(t *testing.T) {
	const nz, nproc = 10, 3
	covered := make([]bool, nz)
	for rank := 0; rank < nproc; rank++ {
		z0, z1 := SlabPartition(nz, nproc, rank)
		for z := z0; z < z1; z++ {
			if covered[z] {
				t.Fatalf("row %d assigned to more than one rank", z)
			}
			covered[z] = true
		}
	}
	for z, ok := range covered {
		if !ok {
			t.Errorf("row %d not covered by any rank", z)
		}
	}
}

func TestBuildSlabCentersCoordinatesOnBox(t *testing.T) {
	g := Grid{Nx: 4, Ny: 4, Nz: 4}
	shape := sphereShape{g: g, r: 10} // fills the whole box
	slab := BuildSlab(g, shape, 1.0, 1, 0)
	if slab.N() != g.Nx*g.Ny*g.Nz {
		t.Fatalf("expected %d sites, got %d", g.Nx*g.Ny*g.Nz, slab.N())
	}
	var sum [3]float64
	for _, c := range slab.Coord {
		sum[0] += c[0]
		sum[1] += c[1]
		sum[2] += c[2]
	}
	for axis, s := range sum {
		if s > 1e-9 || s < -1e-9 {
			t.Errorf("axis %d coordinates not centered on the box: sum=%v", axis, s)
		}
	}
}

func TestSortedMaterialsDeduplicatesAndSorts(t *testing.T) {
	slab := &Slab{Material: []int{2, 0, 2, 1, 0}}
	got := slab.SortedMaterials()
	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestReadShapeParsesWhitespaceAndComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shape.dat")
	text := "# comment line\n\n0 0 0\n   1\t1   1   2   # trailing comment\n"
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := ReadShape(path, Grid{Nx: 4, Ny: 4, Nz: 4})
	if err != nil {
		t.Fatal(err)
	}
	if mat, ok := f.Occupies(1, 1, 1); !ok || mat != 2 {
		t.Fatalf("Occupies(1,1,1) = (%d,%v), want (2,true)", mat, ok)
	}
	if _, ok := f.Occupies(3, 3, 3); ok {
		t.Fatal("Occupies(3,3,3) should report unoccupied")
	}
}
