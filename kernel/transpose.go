// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "github.com/DeFrogxX/a-dda/decomp"

// slabBounds returns the half-open [lo,hi) range rank owns when n rows
// are split evenly (with remainder distributed to the first ranks)
// across nproc ranks — the same scheme as geometry.SlabPartition,
// reimplemented here to avoid an import cycle between kernel and
// geometry and because it is applied to the *padded* grid, not the
// occupancy grid.
func slabBounds(n, nproc, rank int) (lo, hi int) {
	base := n / nproc
	rem := n % nproc
	if rank < rem {
		lo = rank * (base + 1)
		hi = lo + base + 1
	} else {
		lo = rem*(base+1) + (rank-rem)*base
		hi = lo + base
	}
	return
}

// paddedZBounds returns the half-open range rank owns on the *padded*
// Z axis (pz = 2*nz), derived by doubling its occupancy Z-slab bounds
// (geometry.SlabPartition) so the same process owns the padded
// counterpart of the real-space slab it owns for the occupied-site
// vector — the FFT's internal partition and the occupancy partition of
// spec.md §2.9 stay colocated.
func paddedZBounds(nz, nproc, rank int) (lo, hi int) {
	z0, z1 := slabBounds(nz, nproc, rank)
	return 2 * z0, 2 * z1
}

// transposeZtoY redistributes a field held in Z-slab layout
// ([zLocal][py][px], z is this rank's owned range of the padded Z axis)
// into Y-slab layout ([yLocal][pz][px], pz is the *global* padded Z
// extent), via the single all-to-all spec.md §4.2 calls out as the only
// one in the inner loop. nz is the un-padded occupancy Z count (pz=2*nz).
func transposeZtoY(comm decomp.Collectives, data []complex128, px, py, nz int) (out []complex128, yLocal int) {
	pz := 2 * nz
	nproc := comm.Size()
	rank := comm.Rank()
	z0, z1 := paddedZBounds(nz, nproc, rank)
	zLocal := z1 - z0

	sendCounts := make([]int, nproc)
	recvCounts := make([]int, nproc)
	var send []complex128
	// pack, for each destination q, this rank's z-range times q's y-range
	for q := 0; q < nproc; q++ {
		y0, y1 := slabBounds(py, nproc, q)
		sendCounts[q] = zLocal * (y1 - y0) * px
		for iz := 0; iz < zLocal; iz++ {
			base := iz * py * px
			for iy := y0; iy < y1; iy++ {
				row := base + iy*px
				send = append(send, data[row:row+px]...)
			}
		}
	}
	y0, y1 := slabBounds(py, nproc, rank)
	yLocal = y1 - y0
	for q := 0; q < nproc; q++ {
		zq0, zq1 := paddedZBounds(nz, nproc, q)
		recvCounts[q] = (zq1 - zq0) * yLocal * px
	}

	recv := comm.AllToAll(send, sendCounts, recvCounts)

	out = make([]complex128, yLocal*pz*px)
	pos := 0
	for q := 0; q < nproc; q++ {
		zq0, zq1 := paddedZBounds(nz, nproc, q)
		for iz := zq0; iz < zq1; iz++ {
			for iyl := 0; iyl < yLocal; iyl++ {
				dstBase := (iyl*pz + iz) * px
				copy(out[dstBase:dstBase+px], recv[pos:pos+px])
				pos += px
			}
		}
	}
	return out, yLocal
}

// transposeYtoZ is the inverse of transposeZtoY: given a field in Y-slab
// layout ([yLocal][pz][px]) it returns the Z-slab layout
// ([zLocal][py][px]). nz is the un-padded occupancy Z count (pz=2*nz).
func transposeYtoZ(comm decomp.Collectives, data []complex128, px, py, nz int) (out []complex128, zLocal int) {
	pz := 2 * nz
	nproc := comm.Size()
	rank := comm.Rank()
	y0, y1 := slabBounds(py, nproc, rank)
	yLocal := y1 - y0

	sendCounts := make([]int, nproc)
	recvCounts := make([]int, nproc)
	var send []complex128
	for q := 0; q < nproc; q++ {
		z0, z1 := paddedZBounds(nz, nproc, q)
		sendCounts[q] = yLocal * (z1 - z0) * px
		for iyl := 0; iyl < yLocal; iyl++ {
			for iz := z0; iz < z1; iz++ {
				row := (iyl*pz + iz) * px
				send = append(send, data[row:row+px]...)
			}
		}
	}
	z0, z1 := paddedZBounds(nz, nproc, rank)
	zLocal = z1 - z0
	for q := 0; q < nproc; q++ {
		yq0, yq1 := slabBounds(py, nproc, q)
		recvCounts[q] = zLocal * (yq1 - yq0) * px
	}

	recv := comm.AllToAll(send, sendCounts, recvCounts)

	out = make([]complex128, zLocal*py*px)
	pos := 0
	for q := 0; q < nproc; q++ {
		yq0, yq1 := slabBounds(py, nproc, q)
		for iyl := 0; iyl < yq1-yq0; iyl++ {
			iy := yq0 + iyl
			for izl := 0; izl < zLocal; izl++ {
				dstBase := izl*py*px + iy*px
				copy(out[dstBase:dstBase+px], recv[pos:pos+px])
				pos += px
			}
		}
	}
	return out, zLocal
}
