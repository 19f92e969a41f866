// SPDX-License-Identifier: MIT

// Package storage reads the raw operator matrices and quantum-number
// metadata written by an ab-initio run.
//
// Overview:
//
//   - Source is the read-only view every backend implements: named real
//     arrays with their shapes.
//   - HDF5 files (.h5, .hdf5) are read with gonum.org/v1/hdf5.
//   - YAML snapshots (.yaml, .yml) hold the same datasets in text form; they
//     are read under a shared file lock and written under an exclusive one.
//   - Memory is an in-process Source, also the decoded form of a snapshot.
//
// Dataset conventions:
//
//   - "Spin QNs":       spin quantum numbers, one per manifold, descending.
//   - "Spatial states": spatial-state counts, same order.
//   - "SOC matrix":     spin-orbit coupling matrix, shape (2, d, d).
//   - property datasets ("DMX", "LX", …): (r, c) real or (2, r, c) stacked.
//
// Errors (sentinel):
//
//   - ErrMissingDataset     if a named dataset is absent.
//   - ErrBadShape           if a dataset's shape disagrees with its data.
//   - ErrUnsupportedFormat  if a path's extension selects no backend.
package storage

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/koehnlab/gtensor/basis"
	"github.com/koehnlab/gtensor/matrix"
	"github.com/koehnlab/gtensor/spin"
)

// Well-known dataset names.
const (
	DatasetSpinQNs       = "Spin QNs"
	DatasetSpatialStates = "Spatial states"
	DatasetSOC           = "SOC matrix"
)

// Sentinel errors returned by the storage package.
var (
	// ErrMissingDataset indicates the named dataset does not exist.
	ErrMissingDataset = errors.New("storage: dataset not found")

	// ErrBadShape indicates a dataset whose shape and data disagree, or a
	// metadata array that is not one-dimensional or integral.
	ErrBadShape = errors.New("storage: malformed dataset")

	// ErrUnsupportedFormat indicates no backend handles the path's extension.
	ErrUnsupportedFormat = errors.New("storage: unsupported file format")
)

// Array is a dataset as stored: a flat row-major real buffer and its shape.
type Array struct {
	Shape []int
	Data  []float64
}

// Size returns the product of the shape's extents (1 for a scalar).
func (a Array) Size() int {
	n := 1
	for _, d := range a.Shape {
		n *= d
	}

	return n
}

// Validate checks that the shape describes exactly len(Data) elements.
func (a Array) Validate() error {
	for _, d := range a.Shape {
		if d < 0 {
			return fmt.Errorf("shape %v: %w", a.Shape, ErrBadShape)
		}
	}
	if a.Size() != len(a.Data) {
		return fmt.Errorf("shape %v holds %d values, have %d: %w", a.Shape, a.Size(), len(a.Data), ErrBadShape)
	}

	return nil
}

// Complex rebuilds the array as a complex matrix: (r,c) is real,
// (2,r,c) is real part stacked over imaginary part.
func (a Array) Complex() (*matrix.Dense, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	return matrix.FromStacked(a.Shape, a.Data)
}

// Source is a read-only dataset container. Close releases the underlying
// handle; a Source must not be used afterwards.
type Source interface {
	Dataset(name string) (Array, error)
	Close() error
}

// Open selects a backend from the path's extension.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".h5", ".hdf5", ".hdf":
		h, err := OpenHDF5(path)
		if err != nil {
			return nil, err
		}

		return h, nil
	case ".yaml", ".yml":
		mem, err := ReadSnapshot(path)
		if err != nil {
			return nil, err
		}

		return mem, nil
	default:
		return nil, fmt.Errorf("Open(%q): %w", path, ErrUnsupportedFormat)
	}
}

// With opens path, runs fn and always closes the source. A Close failure is
// reported only when fn succeeded.
func With(path string, fn func(Source) error) (err error) {
	src, err := Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %q: %w", path, cerr)
		}
	}()

	return fn(src)
}

// vector reads a one-dimensional dataset.
func vector(src Source, name string) ([]float64, error) {
	arr, err := src.Dataset(name)
	if err != nil {
		return nil, err
	}
	if err = arr.Validate(); err != nil {
		return nil, fmt.Errorf("%q: %w", name, err)
	}
	if len(arr.Shape) != 1 {
		return nil, fmt.Errorf("%q: shape %v is not a vector: %w", name, arr.Shape, ErrBadShape)
	}

	return arr.Data, nil
}

// ReadMetadata returns the spin states and spatial counts in storage order.
func ReadMetadata(src Source) ([]spin.Spin, []int, error) {
	qns, err := vector(src, DatasetSpinQNs)
	if err != nil {
		return nil, nil, fmt.Errorf("ReadMetadata: %w", err)
	}
	counts, err := vector(src, DatasetSpatialStates)
	if err != nil {
		return nil, nil, fmt.Errorf("ReadMetadata: %w", err)
	}

	spins := make([]spin.Spin, len(qns))
	for i, q := range qns {
		if spins[i], err = spin.FromFloat(q); err != nil {
			return nil, nil, fmt.Errorf("ReadMetadata: manifold %d: %w", i, err)
		}
	}
	spatial := make([]int, len(counts))
	for i, c := range counts {
		if c != math.Trunc(c) {
			return nil, nil, fmt.Errorf("ReadMetadata: spatial count %g: %w", c, ErrBadShape)
		}
		spatial[i] = int(c)
	}

	return spins, spatial, nil
}

// ReadLayout reads the metadata and builds the composite-basis layout.
func ReadLayout(src Source) (*basis.Layout, error) {
	spins, spatial, err := ReadMetadata(src)
	if err != nil {
		return nil, err
	}

	return basis.NewLayout(spins, spatial)
}

// ReadComplex reads a dataset and rebuilds it as a complex matrix.
func ReadComplex(src Source, name string) (*matrix.Dense, error) {
	arr, err := src.Dataset(name)
	if err != nil {
		return nil, err
	}
	m, err := arr.Complex()
	if err != nil {
		return nil, fmt.Errorf("%q: %w", name, err)
	}

	return m, nil
}
