// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "gonum.org/v1/gonum/fourier"

// axisFFT applies a 1-D complex FFT (or inverse) along one axis of a
// flattened 3-D array, using gonum's fourier.CmplxFFT (spec.md §3
// "Frequency-domain kernel").
//
// data is indexed as data[off + i*stride] for i in [0,n); count such
// lines are transformed, each starting at offsets[j].
func axisFFT(data []complex128, offsets []int, stride, n int, inverse bool) {
	plan := fourier.NewCmplxFFT(n)
	line := make([]complex128, n)
	for _, off := range offsets {
		for i := 0; i < n; i++ {
			line[i] = data[off+i*stride]
		}
		if inverse {
			plan.IFFT(line, line)
		} else {
			plan.FFT(line, line)
		}
		for i := 0; i < n; i++ {
			data[off+i*stride] = line[i]
		}
	}
}

// localFFT3D performs an in-place, fully-resident 3-D FFT (or inverse)
// over a flattened nx*ny*nz complex128 array with index
// ((iz*ny+iy)*nx+ix), transforming the x axis, then y, then z.
//
// The transform is unnormalized in gonum's convention: a forward call
// followed by an inverse call multiplies the sequence by nx*ny*nz.
// Convolution via this pair must divide the result by that product once.
func localFFT3D(data []complex128, nx, ny, nz int, inverse bool) {
	// x axis: stride 1, one line per (iy,iz)
	xOffsets := make([]int, 0, ny*nz)
	for iz := 0; iz < nz; iz++ {
		for iy := 0; iy < ny; iy++ {
			xOffsets = append(xOffsets, (iz*ny+iy)*nx)
		}
	}
	axisFFT(data, xOffsets, 1, nx, inverse)

	// y axis: stride nx, one line per (ix,iz)
	yOffsets := make([]int, 0, nx*nz)
	for iz := 0; iz < nz; iz++ {
		for ix := 0; ix < nx; ix++ {
			yOffsets = append(yOffsets, iz*ny*nx+ix)
		}
	}
	axisFFT(data, yOffsets, nx, ny, inverse)

	// z axis: stride nx*ny, one line per (ix,iy)
	zOffsets := make([]int, 0, nx*ny)
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			zOffsets = append(zOffsets, iy*nx+ix)
		}
	}
	axisFFT(data, zOffsets, ny*nx, nz, inverse)
}
