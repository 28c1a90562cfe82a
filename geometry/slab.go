// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import "sort"

// Slab is the portion of the occupied lattice owned by one process: a
// half-open Z range [Z0,Z1) and the per-site data for every dipole it
// owns, in lexicographic (z,y,x) order (spec.md §3).
type Slab struct {
	Grid     Grid
	Z0, Z1   int      // half-open Z-slab bounds, in units of grid cells
	Coord    [][3]float64 // physical (x,y,z) of each owned site from the box centre: lattice offset times d
	Material []int        // material index per owned site
	NdipGlob int          // Ndip_total across every process
}

// N returns local_Ndip, the number of sites this slab owns.
func (s *Slab) N() int { return len(s.Material) }

// SlabPartition splits Nz rows evenly across nproc processes (spec.md
// §2.9 "slab partition along the Z axis"). Remainders go to the first
// ranks so slabs differ in size by at most one Z-layer.
func SlabPartition(nz, nproc, rank int) (z0, z1 int) {
	base := nz / nproc
	rem := nz % nproc
	if rank < rem {
		z0 = rank * (base + 1)
		z1 = z0 + base + 1
	} else {
		z0 = rem*(base+1) + (rank-rem)*base
		z1 = z0 + base
	}
	return
}

// BuildSlab materializes the occupied sites for this process's Z range
// and converts lattice indices to physical coordinates measured from the
// box centre: each coordinate is the lattice offset multiplied by d, a
// length in the same unit as d rather than a multiple of d.
func BuildSlab(g Grid, shape Shape, d float64, nproc, rank int) *Slab {
	z0, z1 := SlabPartition(g.Nz, nproc, rank)
	s := &Slab{Grid: g, Z0: z0, Z1: z1}
	cx := float64(g.Nx-1) / 2
	cy := float64(g.Ny-1) / 2
	cz := float64(g.Nz-1) / 2
	for iz := z0; iz < z1; iz++ {
		for iy := 0; iy < g.Ny; iy++ {
			for ix := 0; ix < g.Nx; ix++ {
				if mat, ok := shape.Occupies(ix, iy, iz); ok {
					s.Coord = append(s.Coord, [3]float64{
						(float64(ix) - cx) * d,
						(float64(iy) - cy) * d,
						(float64(iz) - cz) * d,
					})
					s.Material = append(s.Material, mat)
				}
			}
		}
	}
	return s
}

// GlobalCount sums local dipole counts across ranks using the supplied
// reducer (for example one built on decomp.Collectives.AllReduceSumFloat64),
// recording Ndip_total.
func (s *Slab) GlobalCount(allReduceSum func(int) int) {
	s.NdipGlob = allReduceSum(s.N())
}

// SortedMaterials returns the sorted distinct material indices present in
// this slab, used by diagnostics and by memory-estimate reporting.
func (s *Slab) SortedMaterials() []int {
	seen := map[int]bool{}
	for _, m := range s.Material {
		seen[m] = true
	}
	out := make([]int, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Ints(out)
	return out
}
