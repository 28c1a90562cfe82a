// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geometry materialises the dipole occupancy grid and per-site
// material index from a shape descriptor, and partitions the occupied
// sites into Z-slabs for the distributed run (spec.md §2.1, §3).
package geometry

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Shape decides, for every cell of the padded box, whether it is occupied
// and by which material. Concrete shapes (sphere, cylinder, ellipsoid,
// ...) are external collaborators (spec.md §1); this core only implements
// the generic Shape contract and the "read from file" shape named
// explicitly in spec.md §6.
type Shape interface {
	// Occupies reports whether cell (ix,iy,iz), indexed from 0 in each
	// axis of a Nx x Ny x Nz box, is occupied, and by which material.
	Occupies(ix, iy, iz int) (material int, ok bool)
}

// Grid is the dense occupancy box (spec.md §3 "Occupancy grid").
type Grid struct {
	Nx, Ny, Nz int
}

// Validate enforces the invariants of spec.md §8: each dimension even,
// at least MinGridSize.
func (g Grid) Validate(minSize int) error {
	dims := [3]int{g.Nx, g.Ny, g.Nz}
	for i, n := range dims {
		if n%2 != 0 {
			return chk.Err("grid dimension %d must be even, got %d", i, n)
		}
		if n < minSize {
			return chk.Err("grid dimension %d must be >= %d, got %d", i, minSize, n)
		}
	}
	return nil
}

// Site is one occupied dipole: its lattice indices and material.
type Site struct {
	IX, IY, IZ int
	Material   int
}

// Materialize enumerates every occupied cell of the grid through shape,
// in lexicographic (z,y,x) order — the canonical row order of every
// per-site vector downstream (spec.md §3).
func Materialize(g Grid, shape Shape) []Site {
	var sites []Site
	for iz := 0; iz < g.Nz; iz++ {
		for iy := 0; iy < g.Ny; iy++ {
			for ix := 0; ix < g.Nx; ix++ {
				if mat, ok := shape.Occupies(ix, iy, iz); ok {
					sites = append(sites, Site{IX: ix, IY: iy, IZ: iz, Material: mat})
				}
			}
		}
	}
	return sites
}

// fromFile is the "-shape read" geometry: an explicit list of occupied
// dipoles, materialized directly rather than tested cell-by-cell.
type fromFile struct {
	g     Grid
	index map[[3]int]int // (ix,iy,iz) => material
}

// ReadShape parses the whitespace-tolerant "one line per dipole: x y z
// [material]" geometry file of spec.md §6 (used by "-shape read"). Lines
// starting with '#' are comments; a missing material field defaults to 0.
func ReadShape(path string, g Grid) (Shape, error) {
	buf, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read geometry file %q: %v", path, err)
	}
	idx := make(map[[3]int]int)
	sc := bufio.NewScanner(strings.NewReader(string(buf)))
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		x, err1 := strconv.Atoi(fields[0])
		y, err2 := strconv.Atoi(fields[1])
		z, err3 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, chk.Err("malformed geometry line %q", line)
		}
		mat := 0
		if len(fields) >= 4 {
			mat, err = strconv.Atoi(fields[3])
			if err != nil {
				return nil, chk.Err("malformed material index in line %q", line)
			}
		}
		idx[[3]int{x, y, z}] = mat
	}
	return &fromFile{g: g, index: idx}, nil
}

func (f *fromFile) Occupies(ix, iy, iz int) (int, bool) {
	mat, ok := f.index[[3]int{ix, iy, iz}]
	return mat, ok
}
