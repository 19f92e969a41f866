// SPDX-License-Identifier: MIT

package gtensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/koehnlab/gtensor/basis"
	"github.com/koehnlab/gtensor/matrix"
)

const opAMatrix = "AMatrix"

// AMatrix builds the symmetric 3×3 matrix A[α,β] = ½·Re tr(μ_α μ_β) over the
// leading n×n pseudospin block of the SO-basis moment matrices.
//
// Implementation:
//   - Stage 1: all three operands must be SO-tagged, square and of one
//     dimension d; 1 ≤ n ≤ d.
//   - Stage 2: take the leading n×n blocks.
//   - Stage 3: for each (α,β) form tr(μ_α μ_β); the imaginary part must be
//     below 1e-6 since the moments are Hermitian.
//   - Stage 4: verify A[α,β] = A[β,α] to 1e-9 relative to max(1, max|A|).
//
// Errors:
//   - basis.ErrWrongBasis for a non-SO operand.
//   - basis.ErrDimensionMismatch for unequal or non-square operands or n
//     out of range.
//   - basis.ErrTolerance for an imaginary trace residual or asymmetry.
//
// Complexity:
//   - Time O(9·n³), Space O(n²).
func AMatrix(mx, my, mz basis.Operator, n int) (*mat.SymDense, error) {
	mu := [3]basis.Operator{mx, my, mz}
	dim := -1
	for i, op := range mu {
		if err := op.Expect(basis.SpinOrbit); err != nil {
			return nil, fmt.Errorf("%s: component %d: %w", opAMatrix, i, err)
		}
		if err := matrix.ValidateSquare(op.M); err != nil {
			return nil, fmt.Errorf("%s: component %d: %w: %w", opAMatrix, i, basis.ErrDimensionMismatch, err)
		}
		if dim >= 0 && op.Dim() != dim {
			return nil, fmt.Errorf("%s: component %d has dim %d, want %d: %w", opAMatrix, i, op.Dim(), dim, basis.ErrDimensionMismatch)
		}
		dim = op.Dim()
	}
	if n < 1 || n > dim {
		return nil, fmt.Errorf("%s: pseudospin size %d outside [1,%d]: %w", opAMatrix, n, dim, basis.ErrDimensionMismatch)
	}

	var blocks [3]*matrix.Dense
	for i, op := range mu {
		b, err := op.M.Slice(0, n, 0, n)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opAMatrix, err)
		}
		blocks[i] = b
	}

	var a [3][3]float64
	scale := 1.0
	for alpha := range blocks {
		for beta := range blocks {
			prod, err := matrix.Mul(blocks[alpha], blocks[beta])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", opAMatrix, err)
			}
			tr, err := matrix.Trace(prod)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", opAMatrix, err)
			}
			if math.Abs(imag(tr)) >= traceImagTol {
				return nil, fmt.Errorf("%s: Im tr(μ%dμ%d) = %g: %w", opAMatrix, alpha, beta, imag(tr), basis.ErrTolerance)
			}
			a[alpha][beta] = 0.5 * real(tr)
			scale = math.Max(scale, math.Abs(a[alpha][beta]))
		}
	}

	out := mat.NewSymDense(3, nil)
	for alpha := 0; alpha < 3; alpha++ {
		for beta := alpha; beta < 3; beta++ {
			if d := math.Abs(a[alpha][beta] - a[beta][alpha]); d > symmetryTol*scale {
				return nil, fmt.Errorf("%s: |A[%d,%d]−A[%d,%d]| = %g: %w", opAMatrix, alpha, beta, beta, alpha, d, basis.ErrTolerance)
			}
			out.SetSym(alpha, beta, 0.5*(a[alpha][beta]+a[beta][alpha]))
		}
	}

	return out, nil
}
