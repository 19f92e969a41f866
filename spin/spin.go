// SPDX-License-Identifier: MIT

// Package spin defines spin quantum numbers, Cartesian components and the
// elementary spin operators S_x, S_y, S_z in units of ħ.
//
// Overview:
//
//   - A Spin stores twice its quantum number so half-integers are exact.
//   - Operators are expressed in the (2S+1)-dimensional basis ordered by
//     descending projection: index k ↔ m_s = S − k.
//   - Standard is the provider used by the basis engine; it satisfies
//     [S_x, S_y] = i S_z and its cyclic permutations.
//
// Errors (sentinel):
//
//   - ErrInvalidSpin      if a quantum number is negative or not a half-integer.
//   - ErrUnknownComponent if a Cartesian label is not one of x, y, z.
package spin

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Sentinel errors returned by the spin package.
var (
	// ErrInvalidSpin indicates a negative or non-half-integer quantum number.
	ErrInvalidSpin = errors.New("spin: quantum number must be a non-negative half-integer")

	// ErrUnknownComponent indicates a Cartesian label outside {x, y, z}.
	ErrUnknownComponent = errors.New("spin: unknown cartesian component")
)

// halfIntegerTol bounds how far 2S may drift from an integer when a
// quantum number is read back from floating point storage.
const halfIntegerTol = 1e-6

// Spin is a spin quantum number S ≥ 0, stored as 2S.
type Spin struct {
	twice int
}

// New returns the spin with quantum number twiceS/2.
func New(twiceS int) (Spin, error) {
	if twiceS < 0 {
		return Spin{}, fmt.Errorf("2S=%d: %w", twiceS, ErrInvalidSpin)
	}

	return Spin{twice: twiceS}, nil
}

// FromFloat converts a stored quantum number such as 0.5 or 1.0.
func FromFloat(s float64) (Spin, error) {
	if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
		return Spin{}, fmt.Errorf("S=%g: %w", s, ErrInvalidSpin)
	}
	twice := math.Round(2 * s)
	if math.Abs(2*s-twice) > halfIntegerTol {
		return Spin{}, fmt.Errorf("S=%g: %w", s, ErrInvalidSpin)
	}

	return Spin{twice: int(twice)}, nil
}

// FromMultiplicity returns the spin whose multiplicity is mult = 2S+1.
func FromMultiplicity(mult int) (Spin, error) {
	if mult < 1 {
		return Spin{}, fmt.Errorf("multiplicity %d: %w", mult, ErrInvalidSpin)
	}

	return Spin{twice: mult - 1}, nil
}

// Twice returns 2S.
func (s Spin) Twice() int { return s.twice }

// Value returns S.
func (s Spin) Value() float64 { return float64(s.twice) / 2 }

// Multiplicity returns 2S+1.
func (s Spin) Multiplicity() int { return s.twice + 1 }

// String renders S as "1/2", "1", "3/2", ...
func (s Spin) String() string {
	if s.twice%2 == 0 {
		return fmt.Sprintf("%d", s.twice/2)
	}

	return fmt.Sprintf("%d/2", s.twice)
}

// Component is a Cartesian axis label.
type Component int

// Cartesian components in canonical order.
const (
	X Component = iota
	Y
	Z
)

// Components lists X, Y, Z in order.
var Components = [3]Component{X, Y, Z}

// String returns "x", "y" or "z".
func (c Component) String() string {
	switch c {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return fmt.Sprintf("Component(%d)", int(c))
	}
}

// ParseComponent accepts "x", "y", "z" in any case.
func ParseComponent(s string) (Component, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return X, nil
	case "y":
		return Y, nil
	case "z":
		return Z, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownComponent)
	}
}
