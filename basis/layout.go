// SPDX-License-Identifier: MIT

package basis

import (
	"fmt"

	"github.com/koehnlab/gtensor/spin"
)

// Manifold is one spin manifold of the system: a spin quantum number and the
// number of spatial states carrying it.
type Manifold struct {
	Spin    spin.Spin
	Spatial int
}

// ProductDim returns multiplicity × spatial count.
func (m Manifold) ProductDim() int { return m.Spin.Multiplicity() * m.Spatial }

// Layout is the composite-basis bookkeeping for an ordered manifold
// sequence. It is computed once and is immutable; every offset an embedding
// needs is read from here.
//
// Index ranges are half-open. For manifold i:
//   - ZerothRange(i):  rows of its spin block in the zeroth-order basis.
//   - ProductRange(i): rows of its spin⊗spatial block in the product basis.
//   - SpatialRange(i): rows of its spatial states in a stored orbital matrix.
type Layout struct {
	manifolds []Manifold
	zeroth    []int // cumulative multiplicities, len = n+1
	product   []int // cumulative multiplicity·spatial, len = n+1
	spatial   []int // cumulative spatial counts, len = n+1
}

// NewLayout validates the sequence and precomputes all cumulative offsets.
//
// Errors (all wrap ErrInvalidLayout):
//   - empty sequence or len(spins) != len(spatial),
//   - a spatial count ≤ 0,
//   - spins not strictly descending.
func NewLayout(spins []spin.Spin, spatial []int) (*Layout, error) {
	if len(spins) == 0 {
		return nil, fmt.Errorf("NewLayout: no spin states: %w", ErrInvalidLayout)
	}
	if len(spins) != len(spatial) {
		return nil, fmt.Errorf("NewLayout: %d spins vs %d spatial counts: %w", len(spins), len(spatial), ErrInvalidLayout)
	}

	n := len(spins)
	l := &Layout{
		manifolds: make([]Manifold, n),
		zeroth:    make([]int, n+1),
		product:   make([]int, n+1),
		spatial:   make([]int, n+1),
	}
	for i, s := range spins {
		if spatial[i] <= 0 {
			return nil, fmt.Errorf("NewLayout: manifold %d has %d spatial states: %w", i, spatial[i], ErrInvalidLayout)
		}
		if i > 0 && s.Twice() >= spins[i-1].Twice() {
			return nil, fmt.Errorf("NewLayout: spin %s at %d does not descend from %s: %w", s, i, spins[i-1], ErrInvalidLayout)
		}
		m := Manifold{Spin: s, Spatial: spatial[i]}
		l.manifolds[i] = m
		l.zeroth[i+1] = l.zeroth[i] + s.Multiplicity()
		l.product[i+1] = l.product[i] + m.ProductDim()
		l.spatial[i+1] = l.spatial[i] + spatial[i]
	}

	return l, nil
}

// Len returns the number of manifolds.
func (l *Layout) Len() int { return len(l.manifolds) }

// Manifold returns manifold i.
func (l *Layout) Manifold(i int) Manifold { return l.manifolds[i] }

// Manifolds returns a copy of the manifold sequence.
func (l *Layout) Manifolds() []Manifold {
	out := make([]Manifold, len(l.manifolds))
	copy(out, l.manifolds)

	return out
}

// Spins returns the spin sequence in layout order.
func (l *Layout) Spins() []spin.Spin {
	out := make([]spin.Spin, len(l.manifolds))
	for i, m := range l.manifolds {
		out[i] = m.Spin
	}

	return out
}

// SpatialCounts returns the spatial counts in layout order.
func (l *Layout) SpatialCounts() []int {
	out := make([]int, len(l.manifolds))
	for i, m := range l.manifolds {
		out[i] = m.Spatial
	}

	return out
}

// ZerothDim returns Σ multiplicity_i.
func (l *Layout) ZerothDim() int { return l.zeroth[len(l.manifolds)] }

// ProductDim returns Σ multiplicity_i · spatial_i.
func (l *Layout) ProductDim() int { return l.product[len(l.manifolds)] }

// SpatialDim returns Σ spatial_i.
func (l *Layout) SpatialDim() int { return l.spatial[len(l.manifolds)] }

// ZerothRange returns manifold i's rows in the zeroth-order basis.
func (l *Layout) ZerothRange(i int) (lo, hi int) { return l.zeroth[i], l.zeroth[i+1] }

// ProductRange returns manifold i's rows in the product basis.
func (l *Layout) ProductRange(i int) (lo, hi int) { return l.product[i], l.product[i+1] }

// SpatialRange returns manifold i's rows in a stored orbital matrix.
func (l *Layout) SpatialRange(i int) (lo, hi int) { return l.spatial[i], l.spatial[i+1] }

// DimOf returns the dimension an operator of the given family has in basis k.
// Orbital-family operators (dipole, angular momentum) live in the spatial
// space in the zeroth-order basis; spin operators in the spin space.
func (l *Layout) DimOf(k Kind, orbital bool) int {
	switch {
	case k == ZerothOrder && orbital:
		return l.SpatialDim()
	case k == ZerothOrder:
		return l.ZerothDim()
	default:
		return l.ProductDim()
	}
}
