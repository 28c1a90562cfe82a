// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rlog implements the human-readable run log (spec §6 "log" file)
// and rank-0 console messages, in the colored-printf idiom of gosl/io.
package rlog

import (
	"bytes"
	"fmt"
	"time"

	"github.com/cpmech/gosl/io"
)

// Logger accumulates the run record for one process and optionally echoes
// to the console when this process is rank 0.
type Logger struct {
	Rank    int
	ShowMsg bool // true on rank 0 when verbose
	buf     bytes.Buffer
}

// New returns a logger for the given process rank.
func New(rank int, verbose bool) *Logger {
	return &Logger{Rank: rank, ShowMsg: verbose && rank == 0}
}

// Pf appends a line to the log buffer and, on rank 0 when verbose, prints it.
func (l *Logger) Pf(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	l.buf.WriteString(line)
	if l.ShowMsg {
		io.Pf("%s", line)
	}
}

// Section writes a timestamped section header, matching the banner style
// used for informational messages in the teacher's main.go.
func (l *Logger) Section(title string) {
	l.Pf("\n=== %s === %s\n", title, time.Now().UTC().Format(time.RFC3339))
}

// Warn prints a yellow warning, both to the log and (on rank 0 when
// verbose) console.
func (l *Logger) Warn(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	l.buf.WriteString("WARNING: " + line + "\n")
	if l.ShowMsg {
		io.PfYel("WARNING: %s\n", line)
	}
}

// Fail prints a red error line; called just before the driver aborts.
func (l *Logger) Fail(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	l.buf.WriteString("ERROR: " + line + "\n")
	if l.Rank == 0 {
		io.PfRed("ERROR: %s\n", line)
	}
}

// String returns the accumulated log text.
func (l *Logger) String() string {
	return l.buf.String()
}

// Flush writes the accumulated log text to fnamepath, one file per
// process (the driver composes the per-rank path; directory creation is
// out of scope here).
func (l *Logger) Flush(fnamepath string) error {
	return io.WriteFileV(fnamepath, bytes.NewBufferString(l.buf.String()))
}
