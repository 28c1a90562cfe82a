// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checkpoint

import (
	"os"
	"testing"

	"github.com/DeFrogxX/a-dda/errs"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	snap := Snapshot{
		NumProc:    4,
		Reason:     ReasonRegular,
		SolverKind: "qmrcs",
		Iter:       17,
		X:          []complex128{1, 2i, 3 + 1i},
		History:    [][]complex128{{1, 2}, {3, 4}},
		ResNorm:    1e-6,
		OrientIndex: [3]int{1, 2, 3},
	}
	if err := Save(dir, 2, snap); err != nil {
		t.Fatal(err)
	}
	got, err := Load(dir, 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got.SolverKind != snap.SolverKind || got.Iter != snap.Iter || len(got.X) != len(snap.X) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.SchemaVersion != SchemaVersion {
		t.Fatalf("schema version not stamped: %d", got.SchemaVersion)
	}
}

func TestLoadRejectsProcessCountMismatch(t *testing.T) {
	dir := t.TempDir()
	if err := Save(dir, 0, Snapshot{NumProc: 4, SolverKind: "cgnr"}); err != nil {
		t.Fatal(err)
	}
	_, err := Load(dir, 0, 8)
	if err == nil {
		t.Fatal("expected process-count mismatch error")
	}
	e, ok := errs.As(err)
	if !ok || e.Kind != errs.CheckpointIncompatible {
		t.Fatalf("expected CheckpointIncompatible, got %v", err)
	}
}

func TestWriteLogAppends(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/chp.log"
	snap := Snapshot{SchemaVersion: SchemaVersion, NumProc: 1, SolverKind: "bicgcs", Iter: 5, Reason: ReasonFinal}
	if err := WriteLog(path, 0, snap); err != nil {
		t.Fatal(err)
	}
	snap.Iter = 10
	if err := WriteLog(path, 0, snap); err != nil {
		t.Fatal(err)
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(splitLines(string(buf))); got != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", got, buf)
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	return lines
}
