// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package checkpoint implements snapshot save/restart (spec.md §2.10,
// §4.8): one file per process via encoding/gob, plus a sidecar log
// recording schema version, process count, and (a supplement over
// spec.md) the reason the snapshot was taken.
package checkpoint

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/DeFrogxX/a-dda/errs"
	"github.com/cpmech/gosl/io"
)

// SchemaVersion guards against loading a snapshot written by an
// incompatible build (spec.md §4.8, §7 CheckpointIncompatible).
const SchemaVersion = 1

// Reason names why a snapshot was written, supplementing spec.md §4.8's
// schema-version/process-count fields in the idiom of const.h's
// F_CHP_LOG.
type Reason string

const (
	ReasonRegular Reason = "regular-interval"
	ReasonBudget  Reason = "wall-clock-budget"
	ReasonFinal   Reason = "final"
)

// Snapshot is the per-process solver state needed to resume a run
// (spec.md §4.8): solver kind, iteration count, the current iterate,
// the solver's own history vectors, last residual norm, and the
// orientation/polarization cursors of the outer averaging loop.
type Snapshot struct {
	SchemaVersion int
	NumProc       int
	Reason        Reason

	SolverKind string
	Iter       int
	X          []complex128
	History    [][]complex128
	ResNorm    float64

	OrientIndex  [3]int // (alpha, beta, gamma) sample indices
	OrientDone   bool
	PolarizeTier int // index into any staged polarization cursor
}

// Save gob-encodes snap to dir/chp.<rank>.gob, one file per process
// (spec.md §4.8: "one-file-per-process").
func Save(dir string, rank int, snap Snapshot) error {
	snap.SchemaVersion = SchemaVersion
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return errs.Wrap(errs.CheckpointIncompatible, err, "encode checkpoint for rank %d", rank)
	}
	path := fmt.Sprintf("%s/chp.%03d.gob", dir, rank)
	if err := io.WriteFileV(path, &buf); err != nil {
		return errs.Wrap(errs.FileNotFound, err, "write checkpoint %q", path)
	}
	return nil
}

// Load decodes the snapshot previously written for this rank, and
// rejects a schema mismatch or a process-count mismatch against the
// run's own size (spec.md §4.8, §7 CheckpointIncompatible).
func Load(dir string, rank, nproc int) (Snapshot, error) {
	path := fmt.Sprintf("%s/chp.%03d.gob", dir, rank)
	buf, err := io.ReadFile(path)
	if err != nil {
		return Snapshot{}, errs.Wrap(errs.FileNotFound, err, "read checkpoint %q", path)
	}
	var snap Snapshot
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&snap); err != nil {
		return Snapshot{}, errs.Wrap(errs.CheckpointIncompatible, err, "decode checkpoint %q", path)
	}
	if snap.SchemaVersion != SchemaVersion {
		return Snapshot{}, errs.New(errs.CheckpointIncompatible,
			"checkpoint schema version %d does not match current %d", snap.SchemaVersion, SchemaVersion)
	}
	if snap.NumProc != nproc {
		return Snapshot{}, errs.New(errs.CheckpointIncompatible,
			"checkpoint was written for %d processes, this run has %d", snap.NumProc, nproc)
	}
	return snap, nil
}

// WriteLog appends a one-line sidecar record for this snapshot (rank 0
// only), matching const.h's F_CHP_LOG: schema version, process count,
// iteration, and reason.
func WriteLog(path string, rank int, snap Snapshot) error {
	if rank != 0 {
		return nil
	}
	line := fmt.Sprintf("checkpoint schema=%d nproc=%d solver=%s iter=%d reason=%s resnorm=%.6e\n",
		snap.SchemaVersion, snap.NumProc, snap.SolverKind, snap.Iter, snap.Reason, snap.ResNorm)
	var buf bytes.Buffer
	if prev, err := io.ReadFile(path); err == nil {
		buf.Write(prev)
	}
	buf.WriteString(line)
	return io.WriteFileV(path, &buf)
}
