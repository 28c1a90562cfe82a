// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

// Serial is the single-process Collectives implementation: every
// collective is the identity, used for -nproc=1 runs and for unit tests
// that exercise the kernel/krylov/postproc packages without gosl/mpi.
type Serial struct{}

func (Serial) Rank() int                 { return 0 }
func (Serial) Size() int                 { return 1 }
func (Serial) Barrier()                  {}
func (Serial) BcastFloat64(int, []float64) {}

func (Serial) AllReduceSumComplex([]complex128) {}
func (Serial) AllReduceSumFloat64([]float64)    {}

func (Serial) AllGatherComplex(local []complex128, counts []int) []complex128 {
	out := make([]complex128, len(local))
	copy(out, local)
	return out
}

func (Serial) AllGatherFloat64(local []float64, counts []int) []float64 {
	out := make([]float64, len(local))
	copy(out, local)
	return out
}

func (Serial) AllGatherInt(local []int, counts []int) []int {
	out := make([]int, len(local))
	copy(out, local)
	return out
}

func (Serial) AllToAll(send []complex128, sendCounts, recvCounts []int) []complex128 {
	out := make([]complex128, len(send))
	copy(out, send)
	return out
}
