// SPDX-License-Identifier: MIT

// Package property extracts operator matrices from a stored run and
// expresses them in the zeroth-order, product or spin-orbit basis.
//
// Every extraction reads the layout metadata and the SOC matrix first; the
// SOC matrix must span the product basis. Operators are selected by a
// Selector (dipole DMX..DMZ, orbital LX..LZ, spin SX..SZ, or SOC) and
// returned as basis.Operator values carrying their basis tag.
//
// Extract opens the file itself and releases it on every exit path.
// ExtractFrom works on an open storage.Source. Workflows needing several
// SO-basis operators call SpinOrbitStates once and then ExtractWith, so the
// SOC matrix is diagonalized a single time.
package property
