// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"github.com/DeFrogxX/a-dda/decomp"
	"github.com/DeFrogxX/a-dda/polarize"
	"github.com/cpmech/gosl/chk"
)

// Plan holds the one-time-built frequency-domain kernel Ghat and the
// padded-grid geometry needed to evaluate the matrix-free MatVec
// (spec.md §2.3, §4.2). It is built once per run and reused across
// orientations (orientation rotates the field, not the particle).
type Plan struct {
	Nx, Ny, Nz int // occupancy grid (un-padded)
	Px, Py     int // padded x,y extent = 2*Nx, 2*Ny
	D, K       float64
	Reduced    bool // symmetry-reduced real-space kernel construction

	comm   decomp.Collectives
	ghat   []Tensor6 // Y-slab layout: [yLocal][pz][px]
	yLocal int
}

// Build constructs the padded real-space kernel (in this rank's Z-slab,
// colocated with the occupancy Z-slab it owns) and transforms it once to
// frequency domain, storing the result in Y-slab layout for reuse by
// every subsequent MatVec. so selects the G_SO per-site interaction
// correction (spec.md §4.2) over the bare point-dipole Green's tensor;
// it is mutually exclusive with reduced, per spec.md §4.2 and
// config.Config.Validate.
func Build(comm decomp.Collectives, nx, ny, nz int, d, k float64, reduced, so bool) (*Plan, error) {
	if reduced && comm.Size() > 1 {
		return nil, chk.Err("reduced-FFT storage is only supported for single-process runs")
	}
	if reduced && so {
		return nil, chk.Err("second-order interaction correction is incompatible with reduced-FFT storage")
	}
	p := &Plan{Nx: nx, Ny: ny, Nz: nz, Px: 2 * nx, Py: 2 * ny, D: d, K: k, Reduced: reduced, comm: comm}

	rank := comm.Rank()
	nproc := comm.Size()
	pz0, pz1 := paddedZBounds(nz, nproc, rank)
	pzLocal := pz1 - pz0

	real6 := make([][]complex128, 6) // one padded Z-slab buffer per tensor component
	for c := range real6 {
		real6[c] = make([]complex128, pzLocal*p.Py*p.Px)
	}

	fillKernel := func(gx, gy, gz int, t Tensor6) {
		for c := 0; c < 6; c++ {
			real6[c][(gz*p.Py+gy)*p.Px+gx] = t[c]
		}
	}

	for gzLocal := 0; gzLocal < pzLocal; gzLocal++ {
		gz := pz0 + gzLocal
		sz := shift(gz, 2*nz)
		for gy := 0; gy < p.Py; gy++ {
			sy := shift(gy, p.Py)
			for gx := 0; gx < p.Px; gx++ {
				sx := shift(gx, p.Px)
				if sx == 0 && sy == 0 && sz == 0 {
					continue // self term folded into alpha
				}
				if reduced && !(sx >= 0 && sy >= 0 && sz >= 0) {
					continue // reconstructed below from the positive octant
				}
				r := [3]float64{float64(sx) * d, float64(sy) * d, float64(sz) * d}
				fillKernel(gx, gy, gzLocal, interactionTensor(r, k, d, so))
			}
		}
	}
	if reduced {
		reconstructOctants(real6, p.Px, p.Py, pzLocal)
	}

	var yLocal int
	comps := make([][]complex128, 6)
	for c := 0; c < 6; c++ {
		freq, yl := forward3D(comm, real6[c], p.Px, p.Py, pzLocal, nz)
		comps[c] = freq
		yLocal = yl
	}
	p.yLocal = yLocal
	p.ghat = make([]Tensor6, yLocal*2*nz*p.Px)
	for i := range p.ghat {
		for c := 0; c < 6; c++ {
			p.ghat[i][c] = comps[c][i]
		}
	}
	return p, nil
}

// shift maps a padded-grid index in [0,n) to the signed lattice
// displacement it represents under the zero-padding embedding used for
// FFT-accelerated linear convolution (spec.md §3): indices below n/2 are
// the non-negative shifts, indices at or above n/2 wrap to negative
// shifts.
func shift(idx, n int) int {
	half := n / 2
	if idx < half {
		return idx
	}
	return idx - n
}

// reflectSign returns the sign the (i,j) tensor component picks up when
// the coordinate axes in flip are reflected, from G_ij(r) being odd in
// exactly one of its two indices under a single-axis reflection
// (spec.md §3: "G(-r)=G(r)" for the full 3-vector reflection; individual
// per-axis components are odd/even according to how many of {i,j}
// coincide with the reflected axis).
func reflectSign(i, j int, flip [3]bool) float64 {
	s := 1.0
	for a := 0; a < 3; a++ {
		if !flip[a] {
			continue
		}
		onI, onJ := i == a, j == a
		if onI != onJ {
			s = -s
		}
	}
	return s
}

// reconstructOctants fills the seven octants not evaluated directly from
// the positive-shift octant already present in real6, using reflectSign.
func reconstructOctants(real6 [][]complex128, px, py, pzLocal int) {
	for gzLocal := 0; gzLocal < pzLocal; gzLocal++ {
		for gy := 0; gy < py; gy++ {
			for gx := 0; gx < px; gx++ {
				sx, sy, sz := shift(gx, px), shift(gy, py), shift(gzLocal, pzLocal)
				if sx >= 0 && sy >= 0 && sz >= 0 {
					continue
				}
				srcGx, flipX := mirrorIndex(gx, px, sx)
				srcGy, flipY := mirrorIndex(gy, py, sy)
				srcGz, flipZ := mirrorIndex(gzLocal, pzLocal, sz)
				flip := [3]bool{flipX, flipY, flipZ}
				dst := (gzLocal*py + gy) * px
				src := (srcGz*py + srcGy) * px
				for c, ij := range tensorPairs {
					s := reflectSign(ij[0], ij[1], flip)
					real6[c][dst+gx] = complex(s, 0) * real6[c][src+srcGx]
				}
			}
		}
	}
}

var tensorPairs = [6][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 2}, {2, 2}}

// mirrorIndex returns the padded-grid index of the non-negative shift
// matching |s|, and whether this axis was flipped.
func mirrorIndex(idx, n int, s int) (int, bool) {
	if s >= 0 {
		return idx, false
	}
	return (-s) % n, true
}

// MatVec computes y = A x with A = alpha^-1 - G, the normalized form of
// the dipole-field equation (spec.md §4.2): scatter x into the padded
// grid, forward FFT, multiply by Ghat, inverse FFT, gather, then combine
// with the per-site inverse polarizability.
func (p *Plan) MatVec(x []complex128, coord [][3]float64, alpha []polarize.Tensor) ([]complex128, error) {
	n := len(coord)
	if len(x) != 3*n || len(alpha) != n {
		return nil, chk.Err("MatVec: size mismatch (x=%d, sites=%d, alpha=%d)", len(x), n, len(alpha))
	}

	rank := p.comm.Rank()
	nproc := p.comm.Size()
	z0, _ := slabBounds(p.Nz, nproc, rank)
	pzBeg, pzEnd := paddedZBounds(p.Nz, nproc, rank)
	pzLocal := pzEnd - pzBeg

	comps := make([][]complex128, 3)
	for c := range comps {
		comps[c] = make([]complex128, pzLocal*p.Py*p.Px)
	}
	cx, cy, cz := float64(p.Nx-1)/2, float64(p.Ny-1)/2, float64(p.Nz-1)/2
	for i, r := range coord {
		ix := int(r[0]/p.D + cx + 0.5)
		iy := int(r[1]/p.D + cy + 0.5)
		iz := int(r[2]/p.D+cz+0.5) - z0
		off := (iz*p.Py+iy)*p.Px + ix
		for c := 0; c < 3; c++ {
			comps[c][off] = x[3*i+c]
		}
	}

	freq := make([][]complex128, 3)
	var yLocal int
	for c := 0; c < 3; c++ {
		f, yl := forward3D(p.comm, comps[c], p.Px, p.Py, pzLocal, p.Nz)
		freq[c] = f
		yLocal = yl
	}
	if yLocal != p.yLocal {
		return nil, chk.Err("MatVec: Y-slab size mismatch with precomputed kernel (%d != %d)", yLocal, p.yLocal)
	}

	out := make([][]complex128, 3)
	for c := range out {
		out[c] = make([]complex128, len(freq[0]))
	}
	for i := range freq[0] {
		v := [3]complex128{freq[0][i], freq[1][i], freq[2][i]}
		gv := p.ghat[i].Apply(v)
		for c := 0; c < 3; c++ {
			out[c][i] = gv[c]
		}
	}

	norm := complex(float64(p.Px*p.Py*2*p.Nz), 0)
	for c := 0; c < 3; c++ {
		zSlab, zLocal := inverse3D(p.comm, out[c], p.Px, p.Py, p.Nz, p.yLocal)
		if zLocal != pzLocal {
			return nil, chk.Err("MatVec: Z-slab size mismatch after inverse FFT")
		}
		for i := range zSlab {
			zSlab[i] /= norm
		}
		out[c] = zSlab
	}

	y := make([]complex128, 3*n)
	for i, r := range coord {
		ix := int(r[0]/p.D + cx + 0.5)
		iy := int(r[1]/p.D + cy + 0.5)
		iz := int(r[2]/p.D+cz+0.5) - z0
		off := (iz*p.Py+iy)*p.Px + ix
		inv := alpha[i].Inverse()
		for c := 0; c < 3; c++ {
			y[3*i+c] = inv[c]*x[3*i+c] - out[c][off]
		}
	}
	return y, nil
}
