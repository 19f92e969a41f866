// SPDX-License-Identifier: MIT

package property

import (
	"fmt"
	"strings"

	"github.com/koehnlab/gtensor/basis"
	"github.com/koehnlab/gtensor/spin"
	"github.com/koehnlab/gtensor/storage"
)

// Selector names an operator that can be extracted from a run.
type Selector int

// Known selectors. The zero value is invalid.
const (
	DMX Selector = iota + 1
	DMY
	DMZ
	LX
	LY
	LZ
	SX
	SY
	SZ
	SOC
)

// Family groups selectors that share an extraction pipeline.
type Family int

const (
	// Dipole operators are stored in the spatial basis and used as-is.
	Dipole Family = iota + 1
	// Orbital angular-momentum operators are stored in the spatial basis
	// and carry a −i phase.
	Orbital
	// Spin operators are generated by the spin provider.
	Spin
	// Coupling is the spin-orbit coupling matrix itself.
	Coupling
)

var selectorNames = map[Selector]string{
	DMX: "DMX", DMY: "DMY", DMZ: "DMZ",
	LX: "LX", LY: "LY", LZ: "LZ",
	SX: "SX", SY: "SY", SZ: "SZ",
	SOC: "SOC",
}

// String returns the short selector name.
func (s Selector) String() string {
	if name, ok := selectorNames[s]; ok {
		return name
	}

	return fmt.Sprintf("Selector(%d)", int(s))
}

// Valid reports whether s is one of the known selectors.
func (s Selector) Valid() bool { return s >= DMX && s <= SOC }

// Family returns the pipeline family of s, or 0 for an invalid selector.
func (s Selector) Family() Family {
	switch {
	case s >= DMX && s <= DMZ:
		return Dipole
	case s >= LX && s <= LZ:
		return Orbital
	case s >= SX && s <= SZ:
		return Spin
	case s == SOC:
		return Coupling
	default:
		return 0
	}
}

// Component returns the Cartesian component of a dipole, orbital or spin
// selector.
func (s Selector) Component() (spin.Component, error) {
	switch s.Family() {
	case Dipole:
		return spin.Components[s-DMX], nil
	case Orbital:
		return spin.Components[s-LX], nil
	case Spin:
		return spin.Components[s-SX], nil
	default:
		return 0, fmt.Errorf("%s has no cartesian component: %w", s, basis.ErrUnknownSelector)
	}
}

// Dataset returns the storage name holding s, or "" for the spin family.
func (s Selector) Dataset() string {
	switch s.Family() {
	case Dipole, Orbital:
		return s.String()
	case Coupling:
		return storage.DatasetSOC
	default:
		return ""
	}
}

// For returns the selector of family f along c.
func For(f Family, c spin.Component) (Selector, error) {
	idx := -1
	for i, cc := range spin.Components {
		if cc == c {
			idx = i
		}
	}
	if idx < 0 {
		return 0, fmt.Errorf("For(%s): %w", c, spin.ErrUnknownComponent)
	}

	switch f {
	case Dipole:
		return DMX + Selector(idx), nil
	case Orbital:
		return LX + Selector(idx), nil
	case Spin:
		return SX + Selector(idx), nil
	default:
		return 0, fmt.Errorf("For: family %d: %w", int(f), basis.ErrUnknownSelector)
	}
}

// ParseSelector accepts the short names and the stored SOC dataset name,
// case-insensitively. "SO" is an alias for SOC.
func ParseSelector(name string) (Selector, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	switch key {
	case "SO", strings.ToUpper(storage.DatasetSOC):
		return SOC, nil
	}
	for sel, n := range selectorNames {
		if n == key {
			return sel, nil
		}
	}

	return 0, fmt.Errorf("ParseSelector(%q): %w", name, basis.ErrUnknownSelector)
}
