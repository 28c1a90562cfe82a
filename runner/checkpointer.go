// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runner

import (
	"github.com/DeFrogxX/a-dda/checkpoint"
	"github.com/DeFrogxX/a-dda/decomp"
	"github.com/DeFrogxX/a-dda/krylov"
)

// fileCheckpointer adapts checkpoint.Save/WriteLog to krylov.Checkpointer
// (spec.md §4.8): runner is the only package allowed to wire a concrete
// implementation in, since only it knows the run's output directory, the
// process's rank, and the solver's name.
type fileCheckpointer struct {
	dir        string
	comm       decomp.Collectives
	solverKind string
	reason     checkpoint.Reason
}

// NewCheckpointer returns a krylov.Checkpointer that snapshots every
// call to one file per process under dir, plus a rank-0 sidecar log.
func NewCheckpointer(dir string, comm decomp.Collectives, solverKind string, reason checkpoint.Reason) krylov.Checkpointer {
	return &fileCheckpointer{dir: dir, comm: comm, solverKind: solverKind, reason: reason}
}

func (c *fileCheckpointer) Save(iter int, x []complex128, history [][]complex128, resNorm float64) error {
	snap := checkpoint.Snapshot{
		NumProc:    c.comm.Size(),
		Reason:     c.reason,
		SolverKind: c.solverKind,
		Iter:       iter,
		X:          x,
		History:    history,
		ResNorm:    resNorm,
	}
	rank := c.comm.Rank()
	if err := checkpoint.Save(c.dir, rank, snap); err != nil {
		return err
	}
	return checkpoint.WriteLog(c.dir+"/chp.log", rank, snap)
}
