// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric policy of the
// Hermitian eigensolver. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the tolerance of the Hermiticity check performed
	// before decomposition.
	DefaultEpsilon = 1e-9

	// DefaultDegeneracyTolerance is the relative gap under which two
	// eigenvalues of the realified problem are treated as one cluster.
	DefaultDegeneracyTolerance = 1e-10
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid    = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicDegeneracyInvalid = "matrix: WithDegeneracyTolerance: tol must be finite, non-negative"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options holds the resolved numeric policy. Fields are unexported; public
// APIs consume ...Option.
type Options struct {
	eps           float64
	degeneracyTol float64
}

// WithEpsilon sets the Hermiticity tolerance. Panics on negative or
// non-finite values.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithDegeneracyTolerance sets the relative clustering gap used when
// recovering complex eigenvectors. Panics on negative or non-finite values.
func WithDegeneracyTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(panicDegeneracyInvalid)
	}

	return func(o *Options) { o.degeneracyTol = tol }
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{eps: DefaultEpsilon, degeneracyTol: DefaultDegeneracyTolerance}
}

// gatherOptions applies opts over the defaults in order; later options win.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
