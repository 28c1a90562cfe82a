// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runner

import "github.com/DeFrogxX/a-dda/geometry"

const bytesPerComplex = 16 // complex128

// MemoryEstimate reports the per-process byte counts a run would need,
// without actually running the solver: a supplement over spec.md's §6
// "-prognose" path, since every size it reports is already computed by
// geometry/kernel during normal setup.
type MemoryEstimate struct {
	KernelBytes   int64 // one-time forward-FFT'd interaction tensor, 6 components
	VectorBytes   int64 // one Krylov work vector (3 complex128 per dipole)
	SolverBytes   int64 // Krylov solvers keep a handful of such vectors live at once
	TotalBytes    int64
}

// krylovWorkVectors is the most any one solver keeps live simultaneously
// (QMR-CS: x, r0, vPrev, vCurr, w, pPrev, pPrev2, av, tmp — rounded up).
const krylovWorkVectors = 9

// EstimateMemory sums the grid, kernel, and per-vector byte counts for
// one process's slab, given its occupied-site count and the padded FFT
// grid dimensions it will build (spec.md §6 "-prognose").
func EstimateMemory(slab *geometry.Slab, reduced bool) MemoryEstimate {
	px, py, pz := 2*slab.Grid.Nx, 2*slab.Grid.Ny, 2*slab.Grid.Nz
	cells := int64(px) * int64(py) * int64(pz)
	if reduced {
		cells /= 8
	}
	kernelBytes := cells * 6 * bytesPerComplex

	n := int64(slab.N())
	vectorBytes := n * 3 * bytesPerComplex
	solverBytes := vectorBytes * krylovWorkVectors

	return MemoryEstimate{
		KernelBytes: kernelBytes,
		VectorBytes: vectorBytes,
		SolverBytes: solverBytes,
		TotalBytes:  kernelBytes + solverBytes,
	}
}
