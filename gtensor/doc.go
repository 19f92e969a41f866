// SPDX-License-Identifier: MIT

// Package gtensor derives g-tensors from spin and orbital angular-momentum
// operators expressed in the spin-orbit eigenbasis.
//
// Overview:
//
//   - MagneticMoment:  μ = −μ_B(g_e·S + L) per Cartesian component.
//   - AMatrix:         A[α,β] = ½·Re tr(μ_α μ_β) over the n lowest SO states.
//   - Compute:         eigendecomposition of A; g_i = sqrt(6λ_i/(S(S+1)(2S+1))).
//   - Calculator:      the end-to-end workflow over a storage.Source.
//
// The steps must run in this order: product-basis assembly and SOC
// diagonalization (package property) precede moment construction, which
// precedes projection onto the pseudospin block.
//
// Errors wrap the basis failure kinds (ErrDimensionMismatch, ErrWrongBasis,
// ErrTolerance) or ErrInvalidMultiplicity.
package gtensor
