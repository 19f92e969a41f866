// SPDX-License-Identifier: MIT

// Command gtensor post-processes spin, orbital and spin-orbit coupling
// matrices of an ab-initio run into g-tensors.
//
// Usage:
//
//	gtensor metadata run.h5
//	gtensor extract run.h5 --operator LX --basis SO
//	gtensor gtensor run.h5 --pseudospin 2
//	gtensor convert run.h5 run.yaml
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/koehnlab/gtensor/basis"
	"github.com/koehnlab/gtensor/config"
)

// Exit codes by failure kind.
const (
	exitOK = iota
	exitOther
	exitDimension
	exitSelector
	exitTolerance
	exitLayout
	exitBasis
	exitConfig
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to a process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, config.ErrInvalidConfig) {
		return exitConfig
	}
	switch basis.Classify(err) {
	case basis.FailureDimension:
		return exitDimension
	case basis.FailureSelector:
		return exitSelector
	case basis.FailureTolerance:
		return exitTolerance
	case basis.FailureLayout:
		return exitLayout
	case basis.FailureBasis:
		return exitBasis
	default:
		return exitOther
	}
}
