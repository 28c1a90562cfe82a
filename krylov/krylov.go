// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package krylov implements the four iterative solvers of spec.md §2.4 /
// §4.3 that drive the matrix-free interaction MatVec to a converged
// polarization vector. Every solver shares the same Solver contract and
// is selected at configuration time by name (the teacher's
// msolid.allocators registry idiom, reused in polarize.Get).
package krylov

import (
	"context"
	"math"
	"math/cmplx"

	"github.com/DeFrogxX/a-dda/decomp"
	"github.com/cpmech/gosl/chk"
)

// MatVec is the matrix-free operator the solvers drive; Transpose is set
// when the caller needs Aᴴx instead of Ax (CGNR's normal-equation form).
type MatVec func(x []complex128, transpose bool) ([]complex128, error)

// Status is the terminal state of a solve (spec.md §4.3 state machine).
type Status int

const (
	Converged Status = iota
	Breakdown
	Exhausted
	UserAbort
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case Breakdown:
		return "breakdown"
	case Exhausted:
		return "exhausted"
	case UserAbort:
		return "user-abort"
	}
	return "unknown"
}

// Settings bundles a solve's stopping criteria.
type Settings struct {
	Eps     float64 // relative residual tolerance
	MaxIter int
	X0      []complex128 // initial guess, nil for zero

	// Checkpoint, when set, is called every CheckpointEvery iterations
	// with the solver's current iterate and the history vectors its
	// recurrence needs to resume from (spec.md §4.8: "QMR needs two,
	// BiCG-CS needs two, BiCGStab needs three"). Nil/0 disables
	// checkpointing; only runner wires in a concrete Checkpointer.
	Checkpoint      Checkpointer
	CheckpointEvery int
}

// Checkpointer receives periodic solver state during a Solve so it can be
// persisted for restart (spec.md §4.8).
type Checkpointer interface {
	Save(iter int, x []complex128, history [][]complex128, resNorm float64) error
}

// maybeCheckpoint invokes s.Checkpoint if one is set and iter falls on a
// checkpoint boundary.
func maybeCheckpoint(s Settings, iter int, x []complex128, history [][]complex128, resNorm float64) error {
	if s.Checkpoint == nil || s.CheckpointEvery <= 0 || iter%s.CheckpointEvery != 0 {
		return nil
	}
	return s.Checkpoint.Save(iter, x, history, resNorm)
}

// Result is what every solver returns.
type Result struct {
	X        []complex128
	Iter     int
	Status   Status
	ResNorm  float64
	QMREst   float64 // QMR-CS's free residual estimate; zero for other solvers
}

// Solver is the shared contract of spec.md §4.3: "inputs (b, eps,
// max_iter, initial x0); output converged x and iteration count; failure
// kinds {breakdown, did-not-converge, user-abort}".
type Solver interface {
	Solve(ctx context.Context, comm decomp.Collectives, a MatVec, b []complex128, s Settings) (Result, error)
}

// registry mirrors polarize.registry / msolid.allocators: name => Solver.
var registry = map[string]Solver{
	"cgnr":     CGNR{},
	"bicgstab": BiCGStab{},
	"bicgcs":   BiCGCS{},
	"qmrcs":    QMRCS{},
}

// Get returns the solver registered under name. QMR-CS is the default
// per spec.md §4.3 when name is empty.
func Get(name string) (Solver, error) {
	if name == "" {
		name = "qmrcs"
	}
	s, ok := registry[name]
	if !ok {
		return nil, chk.Err("unknown Krylov solver %q", name)
	}
	return s, nil
}

// distNorm computes the global 2-norm of a vector distributed across
// ranks via the distributed inner product spec.md §5 calls out.
func distNorm(comm decomp.Collectives, v []complex128) float64 {
	return math.Sqrt(real(distDotConj(comm, v, v)))
}

// distDot computes the global symmetric bilinear dot product sum(v_i *
// w_i) (no conjugation: A is complex symmetric, not Hermitian, so the
// natural inner product for the BiCGStab/BiCG-CS/QMR-CS recurrences is
// the unconjugated one; CGNR uses distDotConj).
func distDot(comm decomp.Collectives, v, w []complex128) complex128 {
	var local complex128
	for i := range v {
		local += v[i] * w[i]
	}
	buf := []complex128{local}
	comm.AllReduceSumComplex(buf)
	return buf[0]
}

// distDotConj computes sum(conj(v_i) * w_i), used where a Hermitian-style
// norm is wanted (e.g. the residual norm used for the stopping test,
// which must be a true, non-negative norm regardless of A's symmetry).
func distDotConj(comm decomp.Collectives, v, w []complex128) complex128 {
	var local complex128
	for i := range v {
		local += cmplx.Conj(v[i]) * w[i]
	}
	buf := []complex128{local}
	comm.AllReduceSumComplex(buf)
	return buf[0]
}

func distNorm2(comm decomp.Collectives, v []complex128) float64 {
	return math.Sqrt(real(distDotConj(comm, v, v)))
}

func vecAdd2(dst []complex128, a complex128, x []complex128, b complex128, y []complex128) {
	for i := range dst {
		dst[i] = a*x[i] + b*y[i]
	}
}

func vecCopy(dst, src []complex128) { copy(dst, src) }

func vecAXPY(y []complex128, a complex128, x []complex128) {
	for i := range y {
		y[i] += a * x[i]
	}
}

func zeros(n int) []complex128 { return make([]complex128, n) }

// checkAbort returns ctx.Err() if ctx was cancelled (the solvers report
// that as the UserAbort status), nil otherwise.
func checkAbort(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
