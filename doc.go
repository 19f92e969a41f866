// SPDX-License-Identifier: MIT

// Package gtensor turns the spin, orbital and spin-orbit coupling matrices
// of an ab-initio run into operators in a chosen basis and into g-tensors.
//
// What it does:
//
//   - Reads the per-manifold spin quantum numbers and spatial-state counts
//     together with the stored LX/LY/LZ, DMX/DMY/DMZ and SOC matrices
//     (HDF5, or a YAML snapshot of the same datasets).
//   - Builds any operator in the zeroth-order (WF0), product (PROD) or
//     spin-orbit (SO) basis.
//   - Computes the g-tensor of the lowest pseudospin states: principal
//     g-values and the rotation onto their axes.
//
// Packages:
//
//	spin/       spin quantum numbers and spin matrices S_x, S_y, S_z
//	matrix/     dense complex matrices and the Hermitian eigensolver
//	basis/      manifold layout, embeddings and basis transformations
//	storage/    dataset sources: HDF5, YAML snapshots, in-memory
//	property/   operator extraction by selector and basis
//	gtensor/    magnetic moments, the A-matrix and the g-tensor itself
//	config/     YAML configuration and logger construction
//	report/     text and YAML rendering of results
//	cmd/gtensor command-line front end
//
// Quick example:
//
//	calc := gtensor.NewCalculator(gtensor.WithPseudospin(2))
//	out, err := calc.RunFile(ctx, "run.h5")
//	//          out.Values holds g₁ ≤ g₂ ≤ g₃, out.R their axes.
//
// HDF5 access needs cgo; without it only YAML snapshots can be read.
package gtensor
