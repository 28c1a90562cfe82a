// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package decomp implements the distributed-memory domain decomposition
// and collective operations of spec.md §2.9 / §5: the Z-slab partition,
// the all-to-all transpose inside the FFT MatVec, the all-reduce inside
// every inner product, and the all-gather before the radiation-pressure
// pair sum.
package decomp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
)

// Collectives is the minimal set of blocking operations the core needs.
// Every call is total-order across ranks (spec.md §5): every process
// observes the same sequence of convergence checks and Romberg-level
// decisions because they all consume the same all-reduced results.
type Collectives interface {
	Rank() int
	Size() int
	Barrier()
	BcastFloat64(root int, buf []float64)
	AllReduceSumComplex(buf []complex128)
	AllReduceSumFloat64(buf []float64)
	// AllGatherComplex gathers every rank's local slice (varying length,
	// given by counts) into a single global slice replicated on every
	// rank — used by the radiation-pressure pair sum (spec.md §4.5).
	AllGatherComplex(local []complex128, counts []int) []complex128
	AllGatherFloat64(local []float64, counts []int) []float64
	AllGatherInt(local []int, counts []int) []int
	// AllToAll exchanges the transposed-layout blocks needed by the 3D
	// FFT (spec.md §4.2): each rank sends sendCounts[p] complex128
	// values to rank p and receives recvCounts[p] back.
	AllToAll(send []complex128, sendCounts, recvCounts []int) []complex128
}

// MPI implements Collectives on top of gosl/mpi, in the teacher's
// mpi.Start/mpi.Rank/mpi.Size idiom (see main.go).
type MPI struct {
	comm *mpi.Communicator
}

// NewMPI wraps the default (world) communicator. The caller is
// responsible for mpi.Start/mpi.Stop around the run, exactly as the
// teacher's main.go does.
func NewMPI() *MPI {
	return &MPI{comm: mpi.NewCommunicator(nil)}
}

func (m *MPI) Rank() int { return m.comm.Rank() }
func (m *MPI) Size() int { return m.comm.Size() }
func (m *MPI) Barrier()  { m.comm.Barrier() }

func (m *MPI) BcastFloat64(root int, buf []float64) {
	m.comm.BcastFromRoot(buf)
}

func (m *MPI) AllReduceSumFloat64(buf []float64) {
	dest := make([]float64, len(buf))
	m.comm.AllReduceSum(dest, buf)
	copy(buf, dest)
}

func (m *MPI) AllReduceSumComplex(buf []complex128) {
	flat := complexToFloat(buf)
	dest := make([]float64, len(flat))
	m.comm.AllReduceSum(dest, flat)
	floatToComplex(dest, buf)
}

func (m *MPI) AllGatherFloat64(local []float64, counts []int) []float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	out := make([]float64, total)
	m.comm.AllGather(local, out, counts)
	return out
}

func (m *MPI) AllGatherInt(local []int, counts []int) []int {
	localF := make([]float64, len(local))
	for i, v := range local {
		localF[i] = float64(v)
	}
	outF := m.AllGatherFloat64(localF, counts)
	out := make([]int, len(outF))
	for i, v := range outF {
		out[i] = int(v)
	}
	return out
}

func (m *MPI) AllGatherComplex(local []complex128, counts []int) []complex128 {
	localF := complexToFloat(local)
	cF := make([]int, len(counts))
	for i, c := range counts {
		cF[i] = 2 * c
	}
	outF := m.AllGatherFloat64(localF, cF)
	out := make([]complex128, len(outF)/2)
	floatToComplex(outF, out)
	return out
}

func (m *MPI) AllToAll(send []complex128, sendCounts, recvCounts []int) []complex128 {
	sendF := complexToFloat(send)
	sF := make([]int, len(sendCounts))
	rF := make([]int, len(recvCounts))
	total := 0
	for i := range sendCounts {
		sF[i] = 2 * sendCounts[i]
		rF[i] = 2 * recvCounts[i]
		total += recvCounts[i]
	}
	recvF := make([]float64, 2*total)
	m.comm.AllToAllv(sendF, recvF, sF, rF)
	out := make([]complex128, total)
	floatToComplex(recvF, out)
	return out
}

func complexToFloat(z []complex128) []float64 {
	f := make([]float64, 2*len(z))
	for i, v := range z {
		f[2*i], f[2*i+1] = real(v), imag(v)
	}
	return f
}

func floatToComplex(f []float64, dst []complex128) {
	if 2*len(dst) != len(f) {
		chk.Panic("complex/float64 buffer size mismatch: %d floats for %d complex", len(f), len(dst))
	}
	for i := range dst {
		dst[i] = complex(f[2*i], f[2*i+1])
	}
}
