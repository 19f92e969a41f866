// SPDX-License-Identifier: MIT

package basis

import (
	"fmt"

	"github.com/koehnlab/gtensor/matrix"
)

// Operation tags used in error wrapping.
const (
	opEmbedOrbital           = "EmbedOrbital"
	opEmbedSpin              = "EmbedSpin"
	opAssembleZerothOrder    = "AssembleZerothOrder"
	opAssembleProductSpin    = "AssembleProductSpin"
	opAssembleProductOrbital = "AssembleProductOrbital"
	opTransformUnitary       = "TransformUnitary"
)

// checkShape returns ErrDimensionMismatch unless m is rows×cols.
func checkShape(op string, m *matrix.Dense, rows, cols int) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if m.Rows() != rows || m.Cols() != cols {
		return fmt.Errorf("%s: have %dx%d, want %dx%d: %w", op, m.Rows(), m.Cols(), rows, cols, ErrDimensionMismatch)
	}

	return nil
}

// EmbedOrbital lifts a spatial operator of one manifold into that
// manifold's product-basis block.
//
// Index map (N = spatial): for composite x, ms(x) = x / N and
// spatial(x) = x mod N. Entry (x,y) equals orb[spatial(x), spatial(y)] when
// ms(x) = ms(y) and is zero otherwise, so the result is block-diagonal over
// ms with every diagonal block equal to orb.
//
// Errors:
//   - ErrDimensionMismatch when orb is not N×N or mult, N < 1.
//
// Complexity:
//   - Time O(mult·N²), Space O((mult·N)²).
func EmbedOrbital(orb *matrix.Dense, mult, spatial int) (*matrix.Dense, error) {
	if mult < 1 || spatial < 1 {
		return nil, fmt.Errorf("%s: mult=%d spatial=%d: %w", opEmbedOrbital, mult, spatial, ErrDimensionMismatch)
	}
	if err := checkShape(opEmbedOrbital, orb, spatial, spatial); err != nil {
		return nil, err
	}

	dim := mult * spatial
	out, err := matrix.NewDense(dim, dim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEmbedOrbital, err)
	}
	for ms := 0; ms < mult; ms++ {
		if err = out.SetBlock(ms*spatial, ms*spatial, orb); err != nil {
			return nil, fmt.Errorf("%s: %w", opEmbedOrbital, err)
		}
	}

	return out, nil
}

// EmbedSpin lifts a spin operator of one manifold into that manifold's
// product-basis block.
//
// Entry (x,y) equals spinMat[ms(x), ms(y)] when spatial(x) = spatial(y) and
// is zero otherwise: the operator couples ms blocks but is diagonal in the
// spatial index. A singlet (mult = 1) has no spin degrees of freedom and
// yields the N×N zero matrix.
//
// Errors:
//   - ErrDimensionMismatch when spinMat is not mult×mult or mult, N < 1.
//
// Complexity:
//   - Time O(mult²·N), Space O((mult·N)²).
func EmbedSpin(spinMat *matrix.Dense, mult, spatial int) (*matrix.Dense, error) {
	if mult < 1 || spatial < 1 {
		return nil, fmt.Errorf("%s: mult=%d spatial=%d: %w", opEmbedSpin, mult, spatial, ErrDimensionMismatch)
	}
	if err := checkShape(opEmbedSpin, spinMat, mult, mult); err != nil {
		return nil, err
	}

	dim := mult * spatial
	out, err := matrix.NewDense(dim, dim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEmbedSpin, err)
	}
	if mult == 1 {
		return out, nil
	}

	var v complex128
	for a := 0; a < mult; a++ {
		for b := 0; b < mult; b++ {
			if v, err = spinMat.At(a, b); err != nil {
				return nil, fmt.Errorf("%s: %w", opEmbedSpin, err)
			}
			if v == 0 {
				continue
			}
			for i := 0; i < spatial; i++ {
				if err = out.Set(a*spatial+i, b*spatial+i, v); err != nil {
					return nil, fmt.Errorf("%s: %w", opEmbedSpin, err)
				}
			}
		}
	}

	return out, nil
}
