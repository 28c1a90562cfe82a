// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"context"
	"math"
	"math/cmplx"

	"github.com/DeFrogxX/a-dda/decomp"
)

// CGNR is conjugate gradient on the normal equations AᴴA x = Aᴴb
// (spec.md §4.3): robust against an indefinite A at the cost of two
// MatVecs per iteration.
type CGNR struct{}

func (CGNR) Solve(ctx context.Context, comm decomp.Collectives, a MatVec, b []complex128, s Settings) (Result, error) {
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

	z, err := a(r, true)
	if err != nil {
		return Result{}, err
	}
	p := zeros(n)
	vecCopy(p, z)

	bnorm := distNorm2(comm, b)
	if bnorm == 0 {
		bnorm = 1
	}
	zz := real(distDotConj(comm, z, z))

	for iter := 1; iter <= s.MaxIter; iter++ {
		if err := checkAbort(ctx); err != nil {
			return Result{X: x, Iter: iter, Status: UserAbort}, nil
		}
		w, err := a(p, false)
		if err != nil {
			return Result{}, err
		}
		ww := real(distDotConj(comm, w, w))
		if ww < 1e-300 {
			return Result{X: x, Iter: iter, Status: Breakdown}, nil
		}
		alpha := complex(zz/ww, 0)
		vecAXPY(x, alpha, p)
		vecAXPY(r, -alpha, w)

		resNorm := distNorm2(comm, r)
		if err := maybeCheckpoint(s, iter, x, [][]complex128{r, p}, resNorm); err != nil {
			return Result{}, err
		}
		if resNorm/bnorm < s.Eps {
			return Result{X: x, Iter: iter, Status: Converged, ResNorm: resNorm}, nil
		}

		zNew, err := a(r, true)
		if err != nil {
			return Result{}, err
		}
		zzNew := real(distDotConj(comm, zNew, zNew))
		if zz < 1e-300 {
			return Result{X: x, Iter: iter, Status: Breakdown}, nil
		}
		beta := complex(zzNew/zz, 0)
		vecAdd2(p, 1, zNew, beta, p)
		vecCopy(z, zNew)
		zz = zzNew
	}
	return Result{X: x, Iter: s.MaxIter, Status: Exhausted, ResNorm: distNorm2(comm, r)}, nil
}

// underflow reports whether a complex scalar is close enough to zero to
// signal a Krylov breakdown (used by BiCGStab/BiCG-CS/QMR-CS's
// near-breakdown guards, spec.md §4.3).
func underflow(z complex128) bool {
	return cmplx.Abs(z) < 1e-300 || math.IsNaN(real(z)) || math.IsNaN(imag(z))
}
