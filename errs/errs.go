// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package errs implements the tagged-failure error kinds used across the
// solver core, in the position-tagged idiom of gosl/chk.
package errs

import (
	"fmt"
	"runtime"
)

// Kind classifies a failure so the driver can decide whether to abort the
// process, retry, or continue with a flagged result.
type Kind int

const (
	ArgumentParse Kind = iota
	FileNotFound
	FileFormat
	NumericRange
	GeometryInconsistent
	MemoryAllocation
	Incompatibility
	SolverBreakdown
	SolverNotConverged
	CollectiveFailure
	CheckpointIncompatible
)

func (k Kind) String() string {
	switch k {
	case ArgumentParse:
		return "argument-parse"
	case FileNotFound:
		return "file-not-found"
	case FileFormat:
		return "file-format"
	case NumericRange:
		return "numeric-range"
	case GeometryInconsistent:
		return "geometry-inconsistent"
	case MemoryAllocation:
		return "memory-allocation"
	case Incompatibility:
		return "incompatibility"
	case SolverBreakdown:
		return "solver-breakdown"
	case SolverNotConverged:
		return "solver-not-converged"
	case CollectiveFailure:
		return "collective-failure"
	case CheckpointIncompatible:
		return "checkpoint-incompatible"
	}
	return "unknown"
}

// Error is the tagged failure surfaced by every component. File/line are
// captured at construction, mirroring chk.Err's POSIT idiom.
type Error struct {
	Kind  Kind
	Msg   string
	File  string
	Line  int
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%s:%d): %v", e.Kind, e.Msg, e.File, e.Line, e.Cause)
	}
	return fmt.Sprintf("%s: %s (%s:%d)", e.Kind, e.Msg, e.File, e.Line)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates a tagged error with a formatted message.
func New(kind Kind, msg string, args ...interface{}) *Error {
	_, file, line, _ := runtime.Caller(1)
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...), File: file, Line: line}
}

// Wrap attaches a kind and message to an existing cause.
func Wrap(kind Kind, cause error, msg string, args ...interface{}) *Error {
	_, file, line, _ := runtime.Caller(1)
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...), File: file, Line: line, Cause: cause}
}

// Fatal reports whether an error of this kind must abort every process
// (spec §7: "every collective failure, every allocation failure,
// incompatible checkpoint").
func (k Kind) Fatal() bool {
	switch k {
	case CollectiveFailure, MemoryAllocation, CheckpointIncompatible:
		return true
	}
	return false
}

// As extracts a *Error from any error, if present.
func As(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}

// Reporter is the external collaborator that prints a failure and, for a
// Fatal kind, terminates the process (spec §7). The CLI driver supplies
// the concrete implementation; runner is the only package that calls it.
type Reporter interface {
	Report(err *Error)
}
