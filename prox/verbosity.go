// SPDX-License-Identifier: MIT

package prox

import (
	"fmt"
	"log"
)

// Verbosity gates diagnostic output. It never changes numerical results.
type Verbosity int

const (
	// VerbosityNone prints nothing.
	VerbosityNone Verbosity = iota
	// VerbosityLow prints evaluations and one summary per iterative call.
	VerbosityLow
	// VerbosityHigh also prints one line per inner iteration.
	VerbosityHigh
)

// String returns "NONE", "LOW" or "HIGH".
func (v Verbosity) String() string {
	switch v {
	case VerbosityNone:
		return "NONE"
	case VerbosityLow:
		return "LOW"
	case VerbosityHigh:
		return "HIGH"
	}

	return fmt.Sprintf("Verbosity(%d)", int(v))
}

// diag is the level-gated logger shared by all function objects.
type diag struct {
	level Verbosity
	out   *log.Logger
}

func (d diag) enable(level Verbosity) bool {
	return d.level != VerbosityNone && d.level >= level
}

func (d diag) printf(level Verbosity, format string, args ...any) {
	if d.enable(level) {
		d.out.Printf(format, args...)
	}
}
