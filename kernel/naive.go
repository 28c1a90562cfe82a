// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "github.com/DeFrogxX/a-dda/polarize"

// NaiveMatVec computes y = alpha^-1 x - G x by direct O(N^2) pairwise
// summation over all sites, with no FFT or padding involved. It is a
// reference used only to check Plan.MatVec against (spec.md §8: the two
// must agree to 1e-11 relative tolerance on small configurations), never
// on production-size problems. so selects the G_SO per-site correction,
// exactly as Plan.Build does, so the two references stay comparable
// under every prescription.
func NaiveMatVec(x []complex128, coord [][3]float64, alpha []polarize.Tensor, k, d float64, so bool) []complex128 {
	n := len(coord)
	y := make([]complex128, 3*n)
	for i := 0; i < n; i++ {
		var acc [3]complex128
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			r := [3]float64{coord[i][0] - coord[j][0], coord[i][1] - coord[j][1], coord[i][2] - coord[j][2]}
			g := interactionTensor(r, k, d, so)
			v := [3]complex128{x[3*j], x[3*j+1], x[3*j+2]}
			gv := g.Apply(v)
			acc[0] += gv[0]
			acc[1] += gv[1]
			acc[2] += gv[2]
		}
		inv := alpha[i].Inverse()
		for c := 0; c < 3; c++ {
			y[3*i+c] = inv[c]*x[3*i+c] - acc[c]
		}
	}
	return y
}
