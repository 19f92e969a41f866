// SPDX-License-Identifier: MIT

package basis

import (
	"fmt"

	"github.com/koehnlab/gtensor/matrix"
	"github.com/koehnlab/gtensor/spin"
)

// SpinProvider supplies the elementary spin operator of one manifold in its
// own (2S+1)-dimensional basis. spin.Standard is the default implementation.
type SpinProvider interface {
	Operator(s spin.Spin, c spin.Component) (*matrix.Dense, error)
}

// placeBlock writes block on the diagonal of out over [lo,hi). The block
// must fill the range exactly; otherwise nothing is written.
func placeBlock(op string, out *matrix.Dense, lo, hi int, block *matrix.Dense, manifold int) error {
	if err := checkShape(fmt.Sprintf("%s: manifold %d", op, manifold), block, hi-lo, hi-lo); err != nil {
		return err
	}
	if err := out.SetBlock(lo, lo, block); err != nil {
		return fmt.Errorf("%s: manifold %d: %w: %w", op, manifold, ErrDimensionMismatch, err)
	}

	return nil
}

// AssembleZerothOrder builds the spin operator S_c of all manifolds in the
// zeroth-order basis: each manifold's elementary operator sits on the
// diagonal at ZerothRange(i); cross-manifold blocks are zero.
//
// Errors:
//   - ErrDimensionMismatch when a provided operator is not mult_i×mult_i.
//   - Provider errors, wrapped.
func AssembleZerothOrder(l *Layout, p SpinProvider, c spin.Component) (Operator, error) {
	out, err := matrix.NewDense(l.ZerothDim(), l.ZerothDim())
	if err != nil {
		return Operator{}, fmt.Errorf("%s: %w", opAssembleZerothOrder, err)
	}
	for i, m := range l.manifolds {
		op, err := p.Operator(m.Spin, c)
		if err != nil {
			return Operator{}, fmt.Errorf("%s: manifold %d: %w", opAssembleZerothOrder, i, err)
		}
		lo, hi := l.ZerothRange(i)
		if err = placeBlock(opAssembleZerothOrder, out, lo, hi, op, i); err != nil {
			return Operator{}, err
		}
	}

	return Operator{Basis: ZerothOrder, M: out}, nil
}

// AssembleProductSpin builds S_c in the product basis: per manifold, the
// elementary operator is lifted with EmbedSpin and placed at ProductRange(i).
//
// Errors:
//   - ErrDimensionMismatch when a provided operator is not mult_i×mult_i.
//   - Provider errors, wrapped.
func AssembleProductSpin(l *Layout, p SpinProvider, c spin.Component) (Operator, error) {
	out, err := matrix.NewDense(l.ProductDim(), l.ProductDim())
	if err != nil {
		return Operator{}, fmt.Errorf("%s: %w", opAssembleProductSpin, err)
	}
	for i, m := range l.manifolds {
		op, err := p.Operator(m.Spin, c)
		if err != nil {
			return Operator{}, fmt.Errorf("%s: manifold %d: %w", opAssembleProductSpin, i, err)
		}
		block, err := EmbedSpin(op, m.Spin.Multiplicity(), m.Spatial)
		if err != nil {
			return Operator{}, fmt.Errorf("%s: manifold %d: %w", opAssembleProductSpin, i, err)
		}
		lo, hi := l.ProductRange(i)
		if err = placeBlock(opAssembleProductSpin, out, lo, hi, block, i); err != nil {
			return Operator{}, err
		}
	}

	return Operator{Basis: Product, M: out}, nil
}

// AssembleProductOrbital lifts a spatial operator spanning every manifold
// into the product basis.
//
// Contract: full is tagged ZerothOrder and is SpatialDim×SpatialDim, its
// rows partitioned contiguously by manifold in layout order. Manifold i owns
// the diagonal sub-block SpatialRange(i); off-diagonal (cross-manifold)
// spatial blocks are ignored. Each owned block is lifted with EmbedOrbital
// and placed at ProductRange(i).
//
// Errors:
//   - ErrWrongBasis when full is not ZerothOrder.
//   - ErrDimensionMismatch when full is not SpatialDim square.
func AssembleProductOrbital(full Operator, l *Layout) (Operator, error) {
	if err := full.Expect(ZerothOrder); err != nil {
		return Operator{}, fmt.Errorf("%s: %w", opAssembleProductOrbital, err)
	}
	if err := checkShape(opAssembleProductOrbital, full.M, l.SpatialDim(), l.SpatialDim()); err != nil {
		return Operator{}, err
	}

	out, err := matrix.NewDense(l.ProductDim(), l.ProductDim())
	if err != nil {
		return Operator{}, fmt.Errorf("%s: %w", opAssembleProductOrbital, err)
	}
	for i, m := range l.manifolds {
		slo, shi := l.SpatialRange(i)
		sub, err := full.M.Slice(slo, shi, slo, shi)
		if err != nil {
			return Operator{}, fmt.Errorf("%s: manifold %d: %w: %w", opAssembleProductOrbital, i, ErrDimensionMismatch, err)
		}
		block, err := EmbedOrbital(sub, m.Spin.Multiplicity(), m.Spatial)
		if err != nil {
			return Operator{}, fmt.Errorf("%s: manifold %d: %w", opAssembleProductOrbital, i, err)
		}
		lo, hi := l.ProductRange(i)
		if err = placeBlock(opAssembleProductOrbital, out, lo, hi, block, i); err != nil {
			return Operator{}, err
		}
	}

	return Operator{Basis: Product, M: out}, nil
}
