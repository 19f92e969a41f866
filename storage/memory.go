// SPDX-License-Identifier: MIT

package storage

import (
	"fmt"
	"sort"

	"github.com/koehnlab/gtensor/matrix"
)

// Memory is an in-process Source. The zero value is not usable; call
// NewMemory.
type Memory struct {
	datasets map[string]Array
}

// NewMemory returns an empty in-memory source.
func NewMemory() *Memory {
	return &Memory{datasets: make(map[string]Array)}
}

// Put stores a copy of arr under name after validating its shape.
func (m *Memory) Put(name string, arr Array) error {
	if err := arr.Validate(); err != nil {
		return fmt.Errorf("Put(%q): %w", name, err)
	}
	m.datasets[name] = Array{
		Shape: append([]int(nil), arr.Shape...),
		Data:  append([]float64(nil), arr.Data...),
	}

	return nil
}

// PutComplex stores mat in the stacked (2, r, c) layout.
func (m *Memory) PutComplex(name string, mat *matrix.Dense) error {
	shape, data, err := matrix.ToStacked(mat)
	if err != nil {
		return fmt.Errorf("PutComplex(%q): %w", name, err)
	}

	return m.Put(name, Array{Shape: shape, Data: data})
}

// PutMetadata stores the spin quantum numbers and spatial counts.
func (m *Memory) PutMetadata(spins []float64, spatial []int) error {
	counts := make([]float64, len(spatial))
	for i, c := range spatial {
		counts[i] = float64(c)
	}
	if err := m.Put(DatasetSpinQNs, Array{Shape: []int{len(spins)}, Data: spins}); err != nil {
		return err
	}

	return m.Put(DatasetSpatialStates, Array{Shape: []int{len(counts)}, Data: counts})
}

// Dataset implements Source.
func (m *Memory) Dataset(name string) (Array, error) {
	arr, ok := m.datasets[name]
	if !ok {
		return Array{}, fmt.Errorf("%q: %w", name, ErrMissingDataset)
	}

	return Array{
		Shape: append([]int(nil), arr.Shape...),
		Data:  append([]float64(nil), arr.Data...),
	}, nil
}

// Names returns the stored dataset names in lexical order.
func (m *Memory) Names() []string {
	names := make([]string, 0, len(m.datasets))
	for name := range m.datasets {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Close implements Source; it is a no-op.
func (m *Memory) Close() error { return nil }
