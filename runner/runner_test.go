// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runner

import (
	"context"
	"math"
	"testing"

	"github.com/DeFrogxX/a-dda/beam"
	"github.com/DeFrogxX/a-dda/config"
	"github.com/DeFrogxX/a-dda/decomp"
	"github.com/DeFrogxX/a-dda/errs"
	"github.com/DeFrogxX/a-dda/geometry"
)

type recordingReporter struct {
	last *errs.Error
}

func (r *recordingReporter) Report(err *errs.Error) { r.last = err }

type fillAll struct{}

func (fillAll) Occupies(ix, iy, iz int) (int, bool) { return 0, true }

func smallConfig() *config.Config {
	return &config.Config{
		Grid:         [3]int{2, 2, 2},
		Lambda:       2 * math.Pi,
		Dpl:          10,
		NumMat:       1,
		M:            [config.MaxNmat]complex128{complex(1.5, 0.01)},
		Prop:         [3]float64{0, 0, 1},
		EX:           [3]float64{1, 0, 0},
		EY:           [3]float64{0, 1, 0},
		Prescription: "cm",
		BeamKind:     "plane",
		IterKind:     "cgnr",
		Eps:          1e-6,
		MaxIter:      200,
		AngleTheta:   config.AngleSet{Min: 0, Max: math.Pi, Jmin: 2, Jmax: 4, Eps: 1e-3},
		AnglePhi:     config.AngleSet{Min: 0, Max: 2 * math.Pi, Jmin: 2, Jmax: 4, Eps: 1e-3, Equiv: true, Periodic: true},
	}
}

func TestSingleRunProducesPositiveCrossSections(t *testing.T) {
	cfg := smallConfig()
	g := geometry.Grid{Nx: 2, Ny: 2, Nz: 2}
	slab := geometry.BuildSlab(g, fillAll{}, cfg.DipoleSpacing(), 1, 0)

	frame := beam.Frame{Prop: cfg.Prop, EX: cfg.EX, EY: cfg.EY}
	res, err := Single(context.Background(), cfg, decomp.Serial{}, slab, frame, nil)
	if err != nil {
		t.Fatalf("Single: %v", err)
	}
	if res.Cext <= 0 {
		t.Errorf("expected positive Cext, got %v", res.Cext)
	}
	if res.Cabs <= 0 {
		t.Errorf("expected positive Cabs, got %v", res.Cabs)
	}
	if res.Csca < 0 {
		t.Errorf("expected non-negative Csca, got %v", res.Csca)
	}
}

func TestAbortReportsWithoutPanickingOnNonFatalError(t *testing.T) {
	rep := &recordingReporter{}
	err := errs.New(errs.SolverNotConverged, "exhausted iterations")
	Abort(rep, decomp.Serial{}, err)
	if rep.last == nil || rep.last.Kind != errs.SolverNotConverged {
		t.Fatalf("expected the reporter to see a SolverNotConverged error, got %+v", rep.last)
	}
}

func TestAbortPanicsOnFatalError(t *testing.T) {
	rep := &recordingReporter{}
	defer func() {
		if recover() == nil {
			t.Fatal("expected Abort to panic on a Fatal error kind")
		}
	}()
	Abort(rep, decomp.Serial{}, errs.New(errs.CollectiveFailure, "rank 2 unreachable"))
}

func TestEstimateMemoryScalesWithGrid(t *testing.T) {
	small := geometry.BuildSlab(geometry.Grid{Nx: 2, Ny: 2, Nz: 2}, fillAll{}, 0.1, 1, 0)
	big := geometry.BuildSlab(geometry.Grid{Nx: 4, Ny: 4, Nz: 4}, fillAll{}, 0.1, 1, 0)
	smallEst := EstimateMemory(small, false)
	bigEst := EstimateMemory(big, false)
	if bigEst.TotalBytes <= smallEst.TotalBytes {
		t.Fatalf("expected larger grid to need more memory: small=%v big=%v", smallEst, bigEst)
	}
	reduced := EstimateMemory(big, true)
	if reduced.KernelBytes >= bigEst.KernelBytes {
		t.Fatalf("expected reduced-FFT kernel storage to be smaller: reduced=%v full=%v", reduced.KernelBytes, bigEst.KernelBytes)
	}
}
