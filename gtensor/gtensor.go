// SPDX-License-Identifier: MIT

package gtensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/koehnlab/gtensor/basis"
	"github.com/koehnlab/gtensor/matrix"
)

const opCompute = "Compute"

// Result is a g-tensor in its principal frame.
type Result struct {
	G           *mat.Dense // diagonal principal g-values
	R           *mat.Dense // principal magnetic axes, one per column
	Values      [3]float64 // diagonal of G, ascending
	Eigenvalues [3]float64 // eigenvalues of A, ascending
	Spin        float64    // pseudospin S

	// RoundOff marks principal values whose eigenvalue was negative within
	// tolerance and is reported as g = 0.
	RoundOff [3]bool
}

// Compute diagonalizes A and returns the principal g-values
// g_i = sqrt(6λ_i / (S(S+1)(2S+1))) with S = (multiplicity−1)/2.
//
// Eigenvalues below −1e-9·max(1, max|λ|) fail with basis.ErrTolerance;
// smaller negative round-off yields g = 0 and is marked in RoundOff.
//
// Errors:
//   - ErrInvalidMultiplicity when multiplicity < 2.
//   - basis.ErrDimensionMismatch when A is not 3×3.
//   - matrix.ErrEigenFailed when the factorization does not converge.
//   - basis.ErrTolerance for a negative eigenvalue.
func Compute(a mat.Symmetric, multiplicity int) (*Result, error) {
	if multiplicity < 2 {
		return nil, fmt.Errorf("%s: multiplicity %d: %w", opCompute, multiplicity, ErrInvalidMultiplicity)
	}
	if n := a.SymmetricDim(); n != 3 {
		return nil, fmt.Errorf("%s: A is %dx%d: %w", opCompute, n, n, basis.ErrDimensionMismatch)
	}

	var es mat.EigenSym
	if ok := es.Factorize(a, true); !ok {
		return nil, fmt.Errorf("%s: %w", opCompute, matrix.ErrEigenFailed)
	}
	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	s := 0.5 * float64(multiplicity-1)
	denom := s * (s + 1) * (2*s + 1)
	scale := 1.0
	for _, v := range vals {
		scale = math.Max(scale, math.Abs(v))
	}

	res := &Result{G: mat.NewDense(3, 3, nil), R: &vecs, Spin: s}
	for i, lambda := range vals {
		res.Eigenvalues[i] = lambda
		switch {
		case lambda < -eigenTol*scale:
			return nil, fmt.Errorf("%s: eigenvalue %d of A is %g: %w", opCompute, i, lambda, basis.ErrTolerance)
		case lambda < 0:
			res.Values[i] = 0
			res.RoundOff[i] = true
		default:
			res.Values[i] = math.Sqrt(6 * lambda / denom)
		}
		res.G.Set(i, i, res.Values[i])
	}

	return res, nil
}
