// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// minResidual is the smallest residual norm accepted for a recovered
// complex eigenvector after projecting out the already accepted ones.
const minResidual = 1e-6

// EigenHermitian computes all eigenvalues (ascending) and orthonormal
// eigenvectors (columns) of a Hermitian matrix.
//
// Implementation:
//   - Stage 1: ValidateHermitian(m, eps).
//   - Stage 2: Realify H = A + iB into the 2n×2n symmetric [[A, -B], [B, A]]
//     and factorize it with gonum's EigenSym. Each eigenvalue of H appears
//     twice; eigenvector [u; v] maps back to u + iv.
//   - Stage 3: Walk the spectrum in ascending order, grouping values whose
//     gaps fall under the degeneracy tolerance into clusters of even size.
//     A cluster of size 2k yields k complex vectors, chosen by pivoted
//     Gram–Schmidt (largest residual first) under the complex inner product.
//   - Stage 4: Fix each vector's phase so its largest component is real and
//     positive.
//
// Inputs:
//   - m: n×n Hermitian matrix.
//   - opts: WithEpsilon (Hermiticity), WithDegeneracyTolerance (clustering).
//
// Returns:
//   - []float64: n eigenvalues in ascending order.
//   - *Dense   : n×n unitary matrix, column k is the eigenvector of value k.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNotHermitian (validation).
//   - ErrEigenFailed (factorization failure or rank-deficient recovery).
//
// Complexity:
//   - Time O(n³) (dominated by the 2n symmetric factorization), Space O(n²).
//
// Notes:
//   - Kramers-degenerate spectra are the common case for odd-electron
//     systems; pivoting keeps the recovered basis well conditioned there.
func EigenHermitian(m *Dense, opts ...Option) ([]float64, *Dense, error) {
	o := gatherOptions(opts...)
	if err := ValidateHermitian(m, o.eps); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	n := m.r
	big := mat.NewSymDense(2*n, nil)
	var re, im float64
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			// symmetrize numerically: H[i,j] ≈ conj(H[j,i])
			re = (real(m.data[i*n+j]) + real(m.data[j*n+i])) / 2
			im = (imag(m.data[i*n+j]) - imag(m.data[j*n+i])) / 2
			big.SetSym(i, j, re)
			big.SetSym(n+i, n+j, re)
			big.SetSym(n+i, j, im)
			if i != j {
				big.SetSym(n+j, i, -im)
			}
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(big, true); !ok {
		return nil, nil, matrixErrorf(opEigen, ErrEigenFailed)
	}
	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	scale := 1.0
	for _, v := range vals {
		scale = math.Max(scale, math.Abs(v))
	}
	tol := o.degeneracyTol * scale

	out := &Dense{r: n, c: n, data: make([]complex128, n*n)}
	values := make([]float64, 0, n)
	accepted := make([][]complex128, 0, n)

	for start := 0; start < 2*n; {
		end := start + 1
		for end < 2*n && (vals[end]-vals[end-1] <= tol || (end-start)%2 == 1) {
			end++
		}

		var mean float64
		residuals := make([][]complex128, 0, end-start)
		for col := start; col < end; col++ {
			mean += vals[col]
			z := make([]complex128, n)
			for k := 0; k < n; k++ {
				z[k] = complex(vecs.At(k, col), vecs.At(n+k, col))
			}
			for _, q := range accepted {
				project(z, q)
			}
			residuals = append(residuals, z)
		}
		mean /= float64(end - start)

		for pick := 0; pick < (end-start)/2; pick++ {
			best, bestNorm := -1, 0.0
			for idx, r := range residuals {
				if r == nil {
					continue
				}
				if nrm := norm(r); nrm > bestNorm {
					best, bestNorm = idx, nrm
				}
			}
			if best < 0 || bestNorm < minResidual {
				return nil, nil, matrixErrorf(opEigen, fmt.Errorf("cluster at %g: %w", mean, ErrEigenFailed))
			}
			q := residuals[best]
			residuals[best] = nil
			for k := range q {
				q[k] /= complex(bestNorm, 0)
			}
			fixPhase(q)
			for _, r := range residuals {
				if r != nil {
					project(r, q)
				}
			}

			col := len(accepted)
			for k := 0; k < n; k++ {
				out.data[k*n+col] = q[k]
			}
			accepted = append(accepted, q)
			values = append(values, mean)
		}
		start = end
	}

	return values, out, nil
}

// project removes from z its component along the unit vector q: z -= <q,z> q.
func project(z, q []complex128) {
	var dot complex128
	for k := range q {
		dot += cmplx.Conj(q[k]) * z[k]
	}
	for k := range q {
		z[k] -= dot * q[k]
	}
}

// norm returns the Euclidean norm of z.
func norm(z []complex128) float64 {
	var s float64
	for _, v := range z {
		s += real(v)*real(v) + imag(v)*imag(v)
	}

	return math.Sqrt(s)
}

// fixPhase rotates q so that its largest-modulus component is real positive.
func fixPhase(q []complex128) {
	best, bestAbs := 0, 0.0
	for k, v := range q {
		if a := cmplx.Abs(v); a > bestAbs {
			best, bestAbs = k, a
		}
	}
	if bestAbs == 0 {
		return
	}
	phase := cmplx.Conj(q[best]) / complex(bestAbs, 0)
	for k := range q {
		q[k] *= phase
	}
}
