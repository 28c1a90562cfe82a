// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runner

import (
	"context"

	"github.com/DeFrogxX/a-dda/beam"
	"github.com/DeFrogxX/a-dda/config"
	"github.com/DeFrogxX/a-dda/decomp"
	"github.com/DeFrogxX/a-dda/errs"
	"github.com/DeFrogxX/a-dda/geometry"
	"github.com/DeFrogxX/a-dda/orient"
	"github.com/DeFrogxX/a-dda/rlog"
)

// Averaged runs Single once per (alpha, beta, gamma) Euler-angle sample
// and returns the orientation-averaged cross-sections, in the flat order
// [Cext, Cabs, Csca, Asym.x, Asym.y, Asym.z] (spec.md §2.8, §4.7). It
// forces ReducedFFT off regardless of cfg.
func Averaged(ctx context.Context, cfg *config.Config, comm decomp.Collectives, slab *geometry.Slab, baseFrame beam.Frame, log *rlog.Logger) ([]float64, error) {
	forced := orient.ForceNonReduced(*cfg)
	compute := func(frame beam.Frame) ([]float64, error) {
		res, err := Single(ctx, &forced, comm, slab, frame, log)
		if err != nil {
			return nil, err
		}
		return []float64{
			res.Cext, res.Cabs, res.Csca,
			res.Asymmetry[0], res.Asymmetry[1], res.Asymmetry[2],
		}, nil
	}
	out, err := orient.AverageOrientations(baseFrame, cfg.AngleA, cfg.AngleB, cfg.AngleG, 6, compute)
	if err != nil {
		return nil, errs.Wrap(errs.SolverBreakdown, err, "orientation-averaged solve")
	}
	return out, nil
}
