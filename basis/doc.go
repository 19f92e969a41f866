// Package basis embeds per-manifold operator matrices into composite bases
// and moves them between the three bases the g-tensor workflow uses.
//
// Overview:
//
//   - Zeroth-order (WF0): each electronic state's spin degrees of freedom in
//     isolated diagonal blocks, dimension Σ(2S_i+1). Stored orbital operators
//     live in the spatial space of this basis, dimension Σ N_i.
//   - Product (PROD): spin ⊗ spatial for every manifold, dimension
//     Σ(2S_i+1)·N_i. Within manifold i the composite index is
//     x = ms·N_i + spatial.
//   - Spin-orbit (SO): eigenbasis of the spin-orbit coupling matrix, reached
//     from the product basis by a unitary similarity transform.
//
// A Layout, computed once from the ordered (spin, spatial count) sequence,
// carries every offset. Operators travel as tagged values (Operator) so a
// matrix cannot silently cross into the wrong basis.
//
// Every assembly step checks that a placed block fills its allocated range
// exactly; a mismatch aborts the call with ErrDimensionMismatch and no partial
// result.
//
// Errors (sentinel, see Classify):
//
//   - ErrDimensionMismatch, ErrUnknownSelector, ErrTolerance,
//     ErrInvalidLayout, ErrWrongBasis.
package basis
