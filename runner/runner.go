// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package runner wires geometry, polarize, kernel, beam, krylov, and
// postproc into the per-run and per-orientation control flow (spec.md
// §1: Lattice -> Polarizability -> RHS -> Krylov -> PostProcessing,
// optionally wrapped by orient.AverageOrientations). It is the only
// package allowed to turn a Fatal error into a process-wide abort and
// the only package that constructs a concrete krylov.Checkpointer.
package runner

import (
	"context"
	"math/cmplx"

	"github.com/DeFrogxX/a-dda/beam"
	"github.com/DeFrogxX/a-dda/config"
	"github.com/DeFrogxX/a-dda/decomp"
	"github.com/DeFrogxX/a-dda/errs"
	"github.com/DeFrogxX/a-dda/geometry"
	"github.com/DeFrogxX/a-dda/kernel"
	"github.com/DeFrogxX/a-dda/krylov"
	"github.com/DeFrogxX/a-dda/polarize"
	"github.com/DeFrogxX/a-dda/postproc"
	"github.com/DeFrogxX/a-dda/rlog"
)

// Results is the set of post-solution quantities one orientation sample
// (or the single fixed-orientation run) produces (spec.md §4.5).
type Results struct {
	Cext       float64
	Cabs       float64
	Csca       float64
	Asymmetry  [3]float64
	Iterations int
	Status     krylov.Status
	P          []complex128 // converged local polarization
}

// buildAlphaByMaterial computes one polarizability tensor per configured
// material (spec.md §4.1), shared across every site of that material.
func buildAlphaByMaterial(cfg *config.Config, d, k float64) ([]polarize.Tensor, error) {
	alloc, err := polarize.Get(cfg.Prescription)
	if err != nil {
		return nil, errs.Wrap(errs.ArgumentParse, err, "selecting polarizability prescription")
	}
	out := make([]polarize.Tensor, cfg.NumMat)
	for i := 0; i < cfg.NumMat; i++ {
		params := polarize.Params{
			M: cfg.M[i], D: d, Kd: k * d,
			Prop: cfg.Prop, EX: cfg.EX, EY: cfg.EY,
			Avg: cfg.AvgPolLDR,
		}
		a, err := alloc(params)
		if err != nil {
			return nil, errs.Wrap(errs.NumericRange, err, "computing polarizability for material %d", i)
		}
		if err := a.AbsCheck(); err != nil {
			return nil, errs.Wrap(errs.NumericRange, err, "material %d", i)
		}
		out[i] = a
	}
	return out, nil
}

// symmetricMatVec adapts kernel.Plan.MatVec (which only ever applies A,
// never Aᴴ) to krylov.MatVec's transpose contract. A = alpha^-1 - G is
// complex symmetric (A = Aᵀ), not Hermitian, so Aᴴ = conj(A); and for any
// matrix, conj(A)·x = conj(A·conj(x)) (conjugate both sides of
// A·conj(x) = y). CGNR is the only solver that ever sets transpose=true.
func symmetricMatVec(plan *kernel.Plan, coord [][3]float64, alpha []polarize.Tensor) krylov.MatVec {
	return func(x []complex128, transpose bool) ([]complex128, error) {
		if !transpose {
			return plan.MatVec(x, coord, alpha)
		}
		y, err := plan.MatVec(conjVec(x), coord, alpha)
		if err != nil {
			return nil, err
		}
		return conjVec(y), nil
	}
}

func conjVec(x []complex128) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = cmplx.Conj(v)
	}
	return out
}

func isPlaneLike(kind string) bool { return kind == "" || kind == "plane" }

func matSlice(cfg *config.Config) []complex128 {
	out := make([]complex128, cfg.NumMat)
	copy(out, cfg.M[:cfg.NumMat])
	return out
}

// Abort reports err through rep and, if its Kind is Fatal (a collective
// failure, an allocation failure, or an incompatible checkpoint), ends
// the process. runner is the only package allowed to do this (spec §7);
// every other package only ever returns a tagged error.
func Abort(rep errs.Reporter, comm decomp.Collectives, err error) {
	tagged, ok := errs.As(err)
	if !ok {
		tagged = errs.Wrap(errs.SolverBreakdown, err, "untagged failure")
	}
	rep.Report(tagged)
	if tagged.Kind.Fatal() {
		comm.Barrier()
		panic(tagged)
	}
}

// Single runs one fixed-orientation solve and evaluates its
// cross-sections (spec.md §1's top-level control flow: Lattice ->
// Polarizability -> RHS -> Krylov -> PostProcessing).
func Single(ctx context.Context, cfg *config.Config, comm decomp.Collectives, slab *geometry.Slab, frame beam.Frame, log *rlog.Logger) (*Results, error) {
	d := cfg.DipoleSpacing()
	k := cfg.Wavenumber()

	alphaByMat, err := buildAlphaByMaterial(cfg, d, k)
	if err != nil {
		return nil, err
	}
	alpha := make([]polarize.Tensor, slab.N())
	for i, mat := range slab.Material {
		alpha[i] = alphaByMat[mat]
	}

	plan, err := kernel.Build(comm, slab.Grid.Nx, slab.Grid.Ny, slab.Grid.Nz, d, k, cfg.ReducedFFT, cfg.Prescription == "so")
	if err != nil {
		return nil, errs.Wrap(errs.GeometryInconsistent, err, "building interaction kernel")
	}

	beamObj, err := beam.New(cfg.BeamKind, frame, k, cfg.BeamW0, cfg.BeamCenter)
	if err != nil {
		return nil, errs.Wrap(errs.ArgumentParse, err, "constructing incident beam")
	}
	einc := make([]complex128, 3*slab.N())
	for i, r := range slab.Coord {
		e := beamObj.Field(r)
		einc[3*i], einc[3*i+1], einc[3*i+2] = e[0], e[1], e[2]
	}

	matvec := symmetricMatVec(plan, slab.Coord, alpha)
	solver, err := krylov.Get(cfg.IterKind)
	if err != nil {
		return nil, errs.Wrap(errs.ArgumentParse, err, "selecting Krylov solver")
	}
	res, err := solver.Solve(ctx, comm, matvec, einc, krylov.Settings{Eps: cfg.Eps, MaxIter: cfg.MaxIter})
	if err != nil {
		return nil, errs.Wrap(errs.SolverBreakdown, err, "Krylov solve")
	}
	if log != nil {
		log.Pf("grid=%d^3 solver=%s iter=%d status=%s resnorm=%.3e\n", cfg.MaxGridDim(), cfg.IterKind, res.Iter, res.Status, res.ResNorm)
		for _, mat := range slab.SortedMaterials() {
			p := cfg.MaterialParams(mat)
			log.Pf("material %d: %s=%.4f %s=%.4f\n", mat, p[0].N, p[0].V, p[1].N, p[1].V)
		}
		if res.Status == krylov.Exhausted {
			log.Warn("solver exhausted %d iterations without converging (resnorm=%.3e); continuing with a flagged result", res.Iter, res.ResNorm)
		}
	}
	// Non-convergence is not fatal (spec.md §7): post-processing still
	// runs on whatever res.X the solver produced, and res.Status carries
	// the flag through to the caller instead of aborting the run.

	global := postproc.GatherAll(comm, slab.Coord, res.X, slab.Material)
	far := postproc.Far(global.Coord, global.P, k)
	forward := far(frame.Prop)

	var cext float64
	if isPlaneLike(cfg.BeamKind) {
		cext = postproc.CextPlane(forward, frame.EX, k)
	} else {
		cext = postproc.CextGeneral(comm, res.X, einc, k)
	}

	var cabs float64
	if cfg.Prescription == "so" {
		cabs = postproc.CabsSO(comm, slab.Material, res.X, k, d, k*d, matSlice(cfg))
	} else {
		cabs = postproc.CabsDraine(comm, slab.Material, res.X, k, alphaByMat)
	}

	intensity := postproc.ScatteredIntensity(far, frame.Prop, frame.EX, frame.EY)
	csca, err := postproc.Csca(cfg.AngleTheta, cfg.AnglePhi, intensity, k)
	if err != nil {
		return nil, err
	}
	asym, err := postproc.AsymmetryVector(cfg.AngleTheta, cfg.AnglePhi, intensity, k)
	if err != nil {
		return nil, err
	}

	return &Results{
		Cext: cext, Cabs: cabs, Csca: csca, Asymmetry: asym,
		Iterations: res.Iter, Status: res.Status, P: res.X,
	}, nil
}
