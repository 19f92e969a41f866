// SPDX-License-Identifier: MIT

package gtensor

import (
	"errors"
	"fmt"

	"github.com/koehnlab/gtensor/basis"
	"github.com/koehnlab/gtensor/matrix"
)

// Physical constants.
const (
	// BohrMagneton is μ_B in cm⁻¹ T⁻¹.
	BohrMagneton = 0.46686447783

	// ElectronG is the free-electron g-factor g_e.
	ElectronG = 2.00231930436256
)

// Numerical tolerances.
const (
	traceImagTol = 1e-6 // |Im tr(μ_α μ_β)| must stay below this
	symmetryTol  = 1e-9 // relative |A[α,β] − A[β,α]|
	eigenTol     = 1e-9 // relative negative-eigenvalue allowance
)

// ErrInvalidMultiplicity indicates a multiplicity below 2, for which the
// g-value formula is undefined.
var ErrInvalidMultiplicity = errors.New("gtensor: multiplicity must be at least 2")

const opMagneticMoment = "MagneticMoment"

// MagneticMoment returns μ = −μ_B(g_e·S + L), or −(g_e·S + L) when
// bohrUnits is false.
//
// Errors:
//   - basis.ErrWrongBasis when s and l carry different basis tags.
//   - basis.ErrDimensionMismatch when their shapes differ.
func MagneticMoment(s, l basis.Operator, bohrUnits bool) (basis.Operator, error) {
	if err := l.Expect(s.Basis); err != nil {
		return basis.Operator{}, fmt.Errorf("%s: %w", opMagneticMoment, err)
	}
	if err := matrix.ValidateSameShape(s.M, l.M); err != nil {
		return basis.Operator{}, fmt.Errorf("%s: %w: %w", opMagneticMoment, basis.ErrDimensionMismatch, err)
	}

	gs, err := matrix.Scale(s.M, ElectronG)
	if err != nil {
		return basis.Operator{}, fmt.Errorf("%s: %w", opMagneticMoment, err)
	}
	sum, err := matrix.Add(gs, l.M)
	if err != nil {
		return basis.Operator{}, fmt.Errorf("%s: %w", opMagneticMoment, err)
	}

	factor := complex(-1, 0)
	if bohrUnits {
		factor = -BohrMagneton
	}
	mu, err := matrix.Scale(sum, factor)
	if err != nil {
		return basis.Operator{}, fmt.Errorf("%s: %w", opMagneticMoment, err)
	}

	return basis.Operator{Basis: s.Basis, M: mu}, nil
}
