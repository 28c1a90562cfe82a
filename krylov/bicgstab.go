// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"context"

	"github.com/DeFrogxX/a-dda/decomp"
)

// BiCGStab is the stabilized bi-conjugate gradient method (spec.md
// §4.3): one MatVec plus one shadow MatVec per iteration, with explicit
// breakdown guards on |rho| and |omega| since near-zero values make the
// recurrence numerically meaningless rather than merely slow.
type BiCGStab struct{}

func (BiCGStab) Solve(ctx context.Context, comm decomp.Collectives, a MatVec, b []complex128, s Settings) (Result, error) {
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
	rhat0 := zeros(n)
	vecCopy(rhat0, r)

	bnorm := distNorm2(comm, b)
	if bnorm == 0 {
		bnorm = 1
	}

	var rhoPrev, alpha, omega complex128 = 1, 1, 1
	p := zeros(n)
	v := zeros(n)

	for iter := 1; iter <= s.MaxIter; iter++ {
		if err := checkAbort(ctx); err != nil {
			return Result{X: x, Iter: iter, Status: UserAbort}, nil
		}
		rho := distDot(comm, rhat0, r)
		if underflow(rho) {
			return Result{X: x, Iter: iter, Status: Breakdown, ResNorm: distNorm2(comm, r)}, nil
		}
		if iter == 1 {
			vecCopy(p, r)
		} else {
			beta := (rho / rhoPrev) * (alpha / omega)
			tmp := zeros(n)
			vecAdd2(tmp, 1, p, -omega, v)
			vecAdd2(p, 1, r, beta, tmp)
		}

		v, err = a(p, false)
		if err != nil {
			return Result{}, err
		}
		rhatV := distDot(comm, rhat0, v)
		if underflow(rhatV) {
			return Result{X: x, Iter: iter, Status: Breakdown, ResNorm: distNorm2(comm, r)}, nil
		}
		alpha = rho / rhatV

		sVec := zeros(n)
		vecAdd2(sVec, 1, r, -alpha, v)
		if distNorm2(comm, sVec)/bnorm < s.Eps {
			vecAXPY(x, alpha, p)
			return Result{X: x, Iter: iter, Status: Converged, ResNorm: distNorm2(comm, sVec)}, nil
		}

		t, err := a(sVec, false)
		if err != nil {
			return Result{}, err
		}
		tt := distDot(comm, t, t)
		if underflow(tt) {
			return Result{X: x, Iter: iter, Status: Breakdown, ResNorm: distNorm2(comm, sVec)}, nil
		}
		omega = distDot(comm, t, sVec) / tt

		vecAXPY(x, alpha, p)
		vecAXPY(x, omega, sVec)
		vecAdd2(r, 1, sVec, -omega, t)

		resNorm := distNorm2(comm, r)
		if err := maybeCheckpoint(s, iter, x, [][]complex128{p, v, rhat0}, resNorm); err != nil {
			return Result{}, err
		}
		if resNorm/bnorm < s.Eps {
			return Result{X: x, Iter: iter, Status: Converged, ResNorm: resNorm}, nil
		}
		if underflow(omega) {
			return Result{X: x, Iter: iter, Status: Breakdown, ResNorm: resNorm}, nil
		}
		rhoPrev = rho
	}
	return Result{X: x, Iter: s.MaxIter, Status: Exhausted, ResNorm: distNorm2(comm, r)}, nil
}
