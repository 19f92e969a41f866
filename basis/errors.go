// SPDX-License-Identifier: MIT

package basis

import "errors"

// Failure kinds shared by the whole pipeline. Every failure returned by
// basis, property and gtensor wraps exactly one of these, so callers branch
// with errors.Is (or Classify) instead of parsing messages.
var (
	// ErrDimensionMismatch: a placed block does not fill its allocated
	// composite range, or an operator's size disagrees with its declared
	// multiplicity or layout. Indicates malformed input metadata.
	ErrDimensionMismatch = errors.New("basis: dimension mismatch")

	// ErrUnknownSelector: an operator or basis name outside the closed sets.
	ErrUnknownSelector = errors.New("basis: unrecognized selector")

	// ErrTolerance: a numerical consistency check failed (imaginary trace
	// residual, asymmetric A-matrix, negative A eigenvalue).
	ErrTolerance = errors.New("basis: numerical tolerance violated")

	// ErrInvalidLayout: the (spin, spatial count) sequence is empty, has
	// unequal lengths, non-positive counts, or is not strictly descending.
	ErrInvalidLayout = errors.New("basis: invalid layout")

	// ErrWrongBasis: an operator tagged with one basis reached a boundary
	// that requires another.
	ErrWrongBasis = errors.New("basis: operator is in the wrong basis")
)

// Failure classifies an error into one of the pipeline's failure kinds.
type Failure int

// Failure kinds, in the order Classify checks them.
const (
	FailureNone Failure = iota
	FailureDimension
	FailureSelector
	FailureTolerance
	FailureLayout
	FailureBasis
	FailureOther
)

// String returns a short lowercase label.
func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureDimension:
		return "dimension"
	case FailureSelector:
		return "selector"
	case FailureTolerance:
		return "tolerance"
	case FailureLayout:
		return "layout"
	case FailureBasis:
		return "basis"
	default:
		return "other"
	}
}

// Classify maps err onto its Failure kind; nil yields FailureNone.
func Classify(err error) Failure {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrDimensionMismatch):
		return FailureDimension
	case errors.Is(err, ErrUnknownSelector):
		return FailureSelector
	case errors.Is(err, ErrTolerance):
		return FailureTolerance
	case errors.Is(err, ErrInvalidLayout):
		return FailureLayout
	case errors.Is(err, ErrWrongBasis):
		return FailureBasis
	default:
		return FailureOther
	}
}
