// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postproc

import "github.com/DeFrogxX/a-dda/decomp"

// GatherAll replicates every rank's local coordinates, converged
// polarizations, and materials onto every rank (spec.md §4.5), the one
// collective every Far-field-based quantity and the radiation-force pair
// sum needs before they can run their O(N) or O(N^2) loop locally.
func GatherAll(comm decomp.Collectives, coord [][3]float64, p []complex128, mat []int) Gathered {
	nproc := comm.Size()
	localN := len(coord)
	counts := comm.AllGatherInt([]int{localN}, ones(nproc))

	coordFlat := make([]float64, 3*localN)
	for i, r := range coord {
		coordFlat[3*i], coordFlat[3*i+1], coordFlat[3*i+2] = r[0], r[1], r[2]
	}
	coordCounts := make([]int, nproc)
	pCounts := make([]int, nproc)
	matCounts := make([]int, nproc)
	for i, c := range counts {
		coordCounts[i] = 3 * c
		pCounts[i] = 3 * c
		matCounts[i] = c
	}

	coordGlob := comm.AllGatherFloat64(coordFlat, coordCounts)
	pGlob := comm.AllGatherComplex(p, pCounts)
	matGlob := comm.AllGatherInt(mat, matCounts)

	n := len(coordGlob) / 3
	out := Gathered{Coord: make([][3]float64, n), P: pGlob, Mat: matGlob}
	for i := range out.Coord {
		out.Coord[i] = [3]float64{coordGlob[3*i], coordGlob[3*i+1], coordGlob[3*i+2]}
	}
	return out
}

func ones(n int) []int {
	o := make([]int, n)
	for i := range o {
		o[i] = 1
	}
	return o
}
