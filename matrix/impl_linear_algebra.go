// SPDX-License-Identifier: MIT
// Package matrix provides the complex linear-algebra kernels the basis engine
// is built from: element-wise addition and subtraction, scalar scaling,
// matrix multiplication, conjugate transpose and trace. All functions perform
// strict fail-fast validation and return clear errors on dimension mismatches.
//
// Notes:
//   - All kernels use the central validators and wrap failures via matrixErrorf.
//   - Inputs are never mutated; each result is a freshly allocated Dense.

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd           = "Add"
	opSub           = "Sub"
	opMul           = "Mul"
	opScale         = "Scale"
	opConjTranspose = "ConjTranspose"
	opTrace         = "Trace"
	opAllClose      = "AllClose"
	opEigen         = "EigenHermitian"
	opFromStacked   = "FromStacked"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Shared by Add and Sub for validation, allocation and the flat loop.
func addSub(a, b *Dense, sign complex128, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	res := &Dense{r: a.r, c: a.c, data: make([]complex128, len(a.data))}
	for idx := range a.data { // deterministic 0..n-1
		res.data[idx] = a.data[idx] + sign*b.data[idx]
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Add(a, b *Dense) (*Dense, error) { return addSub(a, b, 1, opAdd) }

// Sub computes the element-wise difference C = A - B.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Sub(a, b *Dense) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Scale returns alpha·m as a new matrix.
// Errors: ErrNilMatrix, ErrNaNInf when alpha is not finite.
func Scale(m *Dense, alpha complex128) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if cmplx.IsNaN(alpha) || cmplx.IsInf(alpha) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	res := &Dense{r: m.r, c: m.c, data: make([]complex128, len(m.data))}
	for idx, v := range m.data {
		res.data[idx] = alpha * v
	}

	return res, nil
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
//
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: i→k→j loop over row-major strides, skipping zero A[i,k].
//
// Behavior highlights:
//   - Deterministic triple loop; one allocation for C.
//   - Zero skipping pays off on block-diagonal composite operators, which are
//     mostly zeros outside their manifold blocks.
//
// Inputs:
//   - a: r×k matrix.
//   - b: k×c matrix.
//
// Returns:
//   - *Dense: newly allocated r×c product.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (from ValidateMulCompatible).
//
// Complexity:
//   - Time O(r*k*c), Space O(r*c).
func Mul(a, b *Dense) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := a.r, a.c, b.c
	res := &Dense{r: aRows, c: bCols, data: make([]complex128, aRows*bCols)}
	var (
		i, j, k                            int
		av                                 complex128
		rowOffsetA, rowOffsetB, rowOffsetR int
	)
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			av = a.data[rowOffsetA+k]
			if av == 0 {
				continue
			}
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsetR+j] += av * b.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// ConjTranspose returns mᴴ, the conjugate transpose, as a new c×r matrix.
// Errors: ErrNilMatrix.
func ConjTranspose(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opConjTranspose, err)
	}
	res := &Dense{r: m.c, c: m.r, data: make([]complex128, len(m.data))}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			res.data[j*m.r+i] = cmplx.Conj(m.data[i*m.c+j])
		}
	}

	return res, nil
}

// Trace returns Σ m[i,i] for a square matrix.
// Errors: ErrNilMatrix, ErrNonSquare.
func Trace(m *Dense) (complex128, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, matrixErrorf(opTrace, err)
	}
	var sum complex128
	for i := 0; i < m.r; i++ {
		sum += m.data[i*m.c+i]
	}

	return sum, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if every element satisfies the relation; (false,nil) otherwise.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|.
func AllClose(a, b *Dense, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for idx := range a.data {
		if cmplx.Abs(a.data[idx]-b.data[idx]) > atol+rtol*cmplx.Abs(b.data[idx]) {
			return false, nil // early-exit on first violation
		}
	}

	return true, nil
}
