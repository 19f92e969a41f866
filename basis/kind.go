// SPDX-License-Identifier: MIT

package basis

import (
	"fmt"
	"strings"

	"github.com/koehnlab/gtensor/matrix"
)

// Kind names the basis an operator matrix is expressed in.
type Kind int

// The three supported bases.
const (
	// ZerothOrder: per-state basis before spin/spatial mixing ("WF0").
	ZerothOrder Kind = iota + 1
	// Product: spin ⊗ spatial for all manifolds ("PROD").
	Product
	// SpinOrbit: eigenbasis of the spin-orbit coupling matrix ("SO").
	SpinOrbit
)

// String returns the short storage name: WF0, PROD or SO.
func (k Kind) String() string {
	switch k {
	case ZerothOrder:
		return "WF0"
	case Product:
		return "PROD"
	case SpinOrbit:
		return "SO"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts short (WF0, PROD, SO) and long (zeroth-order, product,
// spin-orbit) names, case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wf0", "zeroth", "zeroth-order", "zerothorder":
		return ZerothOrder, nil
	case "prod", "product":
		return Product, nil
	case "so", "spin-orbit", "spinorbit":
		return SpinOrbit, nil
	default:
		return 0, fmt.Errorf("basis %q: %w", s, ErrUnknownSelector)
	}
}

// Operator is a square operator matrix tagged with the basis it is in.
// Transformations check the tag at every boundary.
type Operator struct {
	Basis Kind
	M     *matrix.Dense
}

// NewOperator tags m with k after checking m is square and k is known.
func NewOperator(k Kind, m *matrix.Dense) (Operator, error) {
	if k < ZerothOrder || k > SpinOrbit {
		return Operator{}, fmt.Errorf("NewOperator: %s: %w", k, ErrUnknownSelector)
	}
	if err := matrix.ValidateSquare(m); err != nil {
		return Operator{}, fmt.Errorf("NewOperator: %w: %w", ErrDimensionMismatch, err)
	}

	return Operator{Basis: k, M: m}, nil
}

// Dim returns the operator's dimension.
func (o Operator) Dim() int { return o.M.Rows() }

// Expect returns ErrWrongBasis unless o is tagged k.
func (o Operator) Expect(k Kind) error {
	if o.Basis != k {
		return fmt.Errorf("want %s, have %s: %w", k, o.Basis, ErrWrongBasis)
	}

	return nil
}
