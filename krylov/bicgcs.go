// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"context"

	"github.com/DeFrogxX/a-dda/decomp"
)

// BiCGCS is the complex-symmetric bi-conjugate gradient method (also
// known as COCG): since A = Aᵀ rather than merely diagonalizable, the
// shadow Krylov space of generic BiCG coincides with the primary one, so
// a single MatVec per iteration and no shadow-residual bookkeeping
// suffices (spec.md §4.3: "halving storage vs. generic BiCG").
type BiCGCS struct{}

func (BiCGCS) Solve(ctx context.Context, comm decomp.Collectives, a MatVec, b []complex128, s Settings) (Result, error) {
	n := len(b)
	x := zeros(n)
	if s.X0 != nil {
		vecCopy(x, s.X0)
	}
	ax, err := a(x, false)
	if err != nil {
		return Result{}, err
	}
	r := zeros(n)
	vecAdd2(r, 1, b, -1, ax)
	p := zeros(n)
	vecCopy(p, r)

	bnorm := distNorm2(comm, b)
	if bnorm == 0 {
		bnorm = 1
	}
	rho := distDot(comm, r, r)

	for iter := 1; iter <= s.MaxIter; iter++ {
		if err := checkAbort(ctx); err != nil {
			return Result{X: x, Iter: iter, Status: UserAbort}, nil
		}
		if underflow(rho) {
			return Result{X: x, Iter: iter, Status: Breakdown, ResNorm: distNorm2(comm, r)}, nil
		}
		q, err := a(p, false)
		if err != nil {
			return Result{}, err
		}
		pq := distDot(comm, p, q)
		if underflow(pq) {
			return Result{X: x, Iter: iter, Status: Breakdown, ResNorm: distNorm2(comm, r)}, nil
		}
		alpha := rho / pq
		vecAXPY(x, alpha, p)
		vecAXPY(r, -alpha, q)

		resNorm := distNorm2(comm, r)
		if err := maybeCheckpoint(s, iter, x, [][]complex128{p, r}, resNorm); err != nil {
			return Result{}, err
		}
		if resNorm/bnorm < s.Eps {
			return Result{X: x, Iter: iter, Status: Converged, ResNorm: resNorm}, nil
		}

		rhoNew := distDot(comm, r, r)
		beta := rhoNew / rho
		vecAdd2(p, 1, r, beta, p)
		rho = rhoNew
	}
	return Result{X: x, Iter: s.MaxIter, Status: Exhausted, ResNorm: distNorm2(comm, r)}, nil
}
