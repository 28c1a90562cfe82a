// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errs

import (
	"errors"
	"testing"
)

func TestNewCapturesKindAndMessage(t *testing.T) {
	err := New(NumericRange, "value %d out of range", 42)
	if err.Kind != NumericRange {
		t.Errorf("Kind = %v, want %v", err.Kind, NumericRange)
	}
	if err.Error() == "" {
		t.Error("expected a non-empty error string")
	}
}

func TestWrapPreservesCauseForUnwrap(t *testing.T) {
	cause := errors.New("underlying failure")
	err := Wrap(FileNotFound, cause, "reading config")
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestAsExtractsTaggedError(t *testing.T) {
	wrapped := error(New(SolverBreakdown, "diverged"))
	tagged, ok := As(wrapped)
	if !ok || tagged.Kind != SolverBreakdown {
		t.Errorf("As() = (%v, %v), want a SolverBreakdown *Error", tagged, ok)
	}
	if _, ok := As(errors.New("plain")); ok {
		t.Error("expected As() to report false for a non-tagged error")
	}
}

func TestFatalKindsMatchSpec(t *testing.T) {
	fatal := []Kind{CollectiveFailure, MemoryAllocation, CheckpointIncompatible}
	for _, k := range fatal {
		if !k.Fatal() {
			t.Errorf("%v.Fatal() = false, want true", k)
		}
	}
	nonFatal := []Kind{ArgumentParse, FileNotFound, SolverNotConverged}
	for _, k := range nonFatal {
		if k.Fatal() {
			t.Errorf("%v.Fatal() = true, want false", k)
		}
	}
}
