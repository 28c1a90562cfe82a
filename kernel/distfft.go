// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "github.com/DeFrogxX/a-dda/decomp"

// forward3D performs the distributed forward 3-D FFT of a field held in
// Z-slab layout ([zLocal][py][px]): local FFTs along x and y (no
// communication needed, each owned z-plane has the full x,y extent),
// the one all-to-all transpose into Y-slab layout, then the FFT along z
// (each owned y-plane, after the transpose, has the full z extent).
//
// Returns the transform in Y-slab layout ([yLocal][pz][px]).
// nz is the un-padded occupancy Z count; pz = 2*nz is the padded extent.
func forward3D(comm decomp.Collectives, zSlab []complex128, px, py, pzLocal, nz int) (freqYslab []complex128, yLocal int) {
	local2D(zSlab, px, py, pzLocal, false)
	ySlab, yLocal := transposeZtoY(comm, zSlab, px, py, nz)
	fftZaxis(ySlab, px, 2*nz, yLocal, false)
	return ySlab, yLocal
}

// inverse3D is the inverse of forward3D: given a field in Y-slab layout
// it performs the inverse FFT along z, transposes back to Z-slab layout,
// then the inverse FFT along x and y. The caller must divide the result
// by px*py*pz to undo gonum's unnormalized FFT/IFFT round trip.
func inverse3D(comm decomp.Collectives, freqYslab []complex128, px, py, nz, yLocal int) (zSlab []complex128, zLocal int) {
	fftZaxis(freqYslab, px, 2*nz, yLocal, true)
	zSlab, zLocal = transposeYtoZ(comm, freqYslab, px, py, nz)
	local2D(zSlab, px, py, zLocal, true)
	return zSlab, zLocal
}

// local2D transforms the x and y axes of a Z-slab-layout buffer
// ([zLocal][py][px]) in place.
func local2D(data []complex128, px, py, zLocal int, inverse bool) {
	xOffsets := make([]int, 0, py*zLocal)
	for iz := 0; iz < zLocal; iz++ {
		for iy := 0; iy < py; iy++ {
			xOffsets = append(xOffsets, (iz*py+iy)*px)
		}
	}
	axisFFT(data, xOffsets, 1, px, inverse)

	yOffsets := make([]int, 0, px*zLocal)
	for iz := 0; iz < zLocal; iz++ {
		for ix := 0; ix < px; ix++ {
			yOffsets = append(yOffsets, iz*py*px+ix)
		}
	}
	axisFFT(data, yOffsets, px, py, inverse)
}

// fftZaxis transforms the z axis of a Y-slab-layout buffer
// ([yLocal][pz][px]) in place.
func fftZaxis(data []complex128, px, pz, yLocal int, inverse bool) {
	offsets := make([]int, 0, yLocal*px)
	for iyl := 0; iyl < yLocal; iyl++ {
		base := iyl * pz * px
		for ix := 0; ix < px; ix++ {
			offsets = append(offsets, base+ix)
		}
	}
	axisFFT(data, offsets, px, pz, inverse)
}
