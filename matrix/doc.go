// Package matrix provides the dense complex linear algebra used by the
// basis-embedding engine.
//
// The matrix package provides:
//
//   - Dense, a row-major complex128 matrix with bounds-checked At/Set and the
//     two block primitives composite bases are assembled from (Slice, SetBlock).
//   - Kernels: Add, Sub, Scale, Mul, ConjTranspose, Trace, AllClose.
//   - EigenHermitian, a Hermitian eigensolver built on gonum's symmetric
//     eigendecomposition.
//   - FromStacked / ToStacked for the real/imaginary stacked array layout
//     used by ab-initio outputs.
//
// All failures are reported through the sentinels in errors.go; nothing in
// the public surface panics on user input.
package matrix
