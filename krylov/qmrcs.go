// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"context"
	"math/cmplx"

	"github.com/DeFrogxX/a-dda/decomp"
)

// QMRCS is the complex-symmetric quasi-minimal-residual method, the
// default solver (spec.md §4.3): a three-term complex-symmetric Lanczos
// recurrence with the resulting tridiagonal system solved incrementally
// by complex-orthogonal (not unitary) Givens rotations, since A = Aᵀ
// rather than Aᴴ = A. The rotated residual's leading component is a
// quasi-residual estimate available without ever forming the true
// residual (spec.md: "provides a quasi-minimised residual estimate for
// free").
type QMRCS struct{}

func (QMRCS) Solve(ctx context.Context, comm decomp.Collectives, a MatVec, b []complex128, s Settings) (Result, error) {
	n := len(b)
	x := zeros(n)
	if s.X0 != nil {
		vecCopy(x, s.X0)
	}
	ax, err := a(x, false)
	if err != nil {
		return Result{}, err
	}
	r0 := zeros(n)
	vecAdd2(r0, 1, b, -1, ax)

	bnorm := distNorm2(comm, b)
	if bnorm == 0 {
		bnorm = 1
	}

	beta1 := bilinearSqrt(comm, r0)
	if underflow(beta1) {
		return Result{X: x, Iter: 0, Status: Converged, ResNorm: 0}, nil
	}

	vPrev := zeros(n)
	vCurr := zeros(n)
	for i := range r0 {
		vCurr[i] = r0[i] / beta1
	}

	pPrev2 := zeros(n)
	pPrev := zeros(n)
	var cPrev2, sPrev2 complex128 = 1, 0
	var cPrev, sPrev complex128 = 1, 0
	betaCurr := complex128(0)
	phiBar := beta1

	for iter := 1; iter <= s.MaxIter; iter++ {
		if err := checkAbort(ctx); err != nil {
			return Result{X: x, Iter: iter, Status: UserAbort}, nil
		}
		av, err := a(vCurr, false)
		if err != nil {
			return Result{}, err
		}
		tmp := zeros(n)
		vecAdd2(tmp, 1, av, -betaCurr, vPrev)
		alpha := distDot(comm, vCurr, tmp)
		w := zeros(n)
		vecAdd2(w, 1, tmp, -alpha, vCurr)
		betaNext := bilinearSqrt(comm, w)

		var vNext []complex128
		if underflow(betaNext) {
			vNext = zeros(n) // lucky breakdown: Krylov space exhausted exactly
		} else {
			vNext = zeros(n)
			for i := range w {
				vNext[i] = w[i] / betaNext
			}
		}

		epsilon := sPrev2 * betaCurr
		delta := cPrev*cPrev2*betaCurr + sPrev*alpha
		gammaBar := -sPrev*cPrev2*betaCurr + cPrev*alpha
		gamma := cmplx.Sqrt(gammaBar*gammaBar + betaNext*betaNext)
		if underflow(gamma) {
			return Result{X: x, Iter: iter, Status: Breakdown, ResNorm: cmplx.Abs(phiBar)}, nil
		}
		cCurr := gammaBar / gamma
		sCurr := betaNext / gamma

		pCurr := zeros(n)
		for i := range vCurr {
			pCurr[i] = (vCurr[i] - delta*pPrev[i] - epsilon*pPrev2[i]) / gamma
		}
		phi := cCurr * phiBar
		vecAXPY(x, phi, pCurr)
		phiBarNext := -sCurr * phiBar

		resEst := cmplx.Abs(phiBarNext)
		if err := maybeCheckpoint(s, iter, x, [][]complex128{vCurr, vPrev}, resEst); err != nil {
			return Result{}, err
		}
		if resEst/bnorm < s.Eps || underflow(betaNext) {
			return Result{X: x, Iter: iter, Status: Converged, ResNorm: resEst, QMREst: resEst}, nil
		}

		pPrev2, pPrev = pPrev, pCurr
		vPrev, vCurr = vCurr, vNext
		betaCurr = betaNext
		cPrev2, sPrev2 = cPrev, sPrev
		cPrev, sPrev = cCurr, sCurr
		phiBar = phiBarNext
	}
	return Result{X: x, Iter: s.MaxIter, Status: Exhausted, ResNorm: cmplx.Abs(phiBar), QMREst: cmplx.Abs(phiBar)}, nil
}

// bilinearSqrt returns the principal square root of the unconjugated
// bilinear self-product (v,v), the natural "norm" for complex-symmetric
// Lanczos (spec.md §4.3 BiCG-CS/QMR-CS).
func bilinearSqrt(comm decomp.Collectives, v []complex128) complex128 {
	return cmplx.Sqrt(distDot(comm, v, v))
}
