// SPDX-License-Identifier: MIT

package basis

import (
	"fmt"

	"github.com/koehnlab/gtensor/matrix"
)

// TransformUnitary returns vecsᴴ · m · vecs, the similarity transform of m
// into the orthonormal basis whose vectors are the columns of vecs.
//
// Errors:
//   - ErrDimensionMismatch when m or vecs is not square or their sizes differ.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func TransformUnitary(m, vecs *matrix.Dense) (*matrix.Dense, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", opTransformUnitary, ErrDimensionMismatch, err)
	}
	if err := checkShape(opTransformUnitary, vecs, m.Rows(), m.Rows()); err != nil {
		return nil, err
	}

	mv, err := matrix.Mul(m, vecs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opTransformUnitary, err)
	}
	vh, err := matrix.ConjTranspose(vecs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opTransformUnitary, err)
	}
	out, err := matrix.Mul(vh, mv)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opTransformUnitary, err)
	}

	return out, nil
}

// ToSpinOrbit moves a product-basis operator into the spin-orbit eigenbasis
// given the SOC eigenvectors (columns of vecs).
//
// Errors:
//   - ErrWrongBasis unless op is tagged Product.
//   - ErrDimensionMismatch from TransformUnitary.
func ToSpinOrbit(op Operator, vecs *matrix.Dense) (Operator, error) {
	if err := op.Expect(Product); err != nil {
		return Operator{}, fmt.Errorf("ToSpinOrbit: %w", err)
	}
	m, err := TransformUnitary(op.M, vecs)
	if err != nil {
		return Operator{}, fmt.Errorf("ToSpinOrbit: %w", err)
	}

	return Operator{Basis: SpinOrbit, M: m}, nil
}
