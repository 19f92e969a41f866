// SPDX-License-Identifier: MIT

//go:build cgo

package storage

import (
	"fmt"

	"gonum.org/v1/hdf5"
)

// HDF5 is a read-only Source over an HDF5 file.
type HDF5 struct {
	path string
	f    *hdf5.File
}

// OpenHDF5 opens path read-only.
func OpenHDF5(path string) (*HDF5, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("OpenHDF5(%q): %w", path, err)
	}

	return &HDF5{path: path, f: f}, nil
}

// Dataset implements Source. The dataset is read in its stored native
// numeric type and widened to float64; non-native byte orders and
// non-numeric types are ErrUnsupportedFormat.
func (h *HDF5) Dataset(name string) (Array, error) {
	if !h.f.LinkExists(name) {
		return Array{}, fmt.Errorf("%q in %q: %w", name, h.path, ErrMissingDataset)
	}
	ds, err := h.f.OpenDataset(name)
	if err != nil {
		return Array{}, fmt.Errorf("%q in %q: %w", name, h.path, err)
	}
	defer ds.Close()

	space := ds.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return Array{}, fmt.Errorf("%q in %q: %w", name, h.path, err)
	}

	arr := Array{Shape: make([]int, len(dims))}
	for i, d := range dims {
		arr.Shape[i] = int(d)
	}
	if arr.Data, err = readNumeric(ds, arr.Size()); err != nil {
		return Array{}, fmt.Errorf("%q in %q: %w", name, h.path, err)
	}

	return arr, nil
}

// nativeReaders maps the native HDF5 numeric types onto a typed read.
// H5Dread is called with the dataset's own type as memory type, so the
// buffer must match it exactly.
var nativeReaders = []struct {
	dtype *hdf5.Datatype
	read  func(ds *hdf5.Dataset, n int) ([]float64, error)
}{
	{hdf5.T_NATIVE_DOUBLE, readAs[float64]},
	{hdf5.T_NATIVE_FLOAT, readAs[float32]},
	{hdf5.T_NATIVE_INT64, readAs[int64]},
	{hdf5.T_NATIVE_INT32, readAs[int32]},
	{hdf5.T_NATIVE_INT16, readAs[int16]},
	{hdf5.T_NATIVE_INT8, readAs[int8]},
	{hdf5.T_NATIVE_UINT64, readAs[uint64]},
	{hdf5.T_NATIVE_UINT32, readAs[uint32]},
	{hdf5.T_NATIVE_UINT16, readAs[uint16]},
	{hdf5.T_NATIVE_UINT8, readAs[uint8]},
}

func readNumeric(ds *hdf5.Dataset, n int) ([]float64, error) {
	dtype, err := ds.Datatype()
	if err != nil {
		return nil, err
	}
	defer dtype.Close()

	for _, r := range nativeReaders {
		if dtype.Equal(r.dtype) {
			return r.read(ds, n)
		}
	}

	return nil, fmt.Errorf("datatype class %d size %d: %w", dtype.Class(), dtype.Size(), ErrUnsupportedFormat)
}

func readAs[T float64 | float32 | int64 | int32 | int16 | int8 | uint64 | uint32 | uint16 | uint8](ds *hdf5.Dataset, n int) ([]float64, error) {
	buf := make([]T, n)
	if n > 0 {
		if err := ds.Read(&buf); err != nil {
			return nil, err
		}
	}
	out := make([]float64, n)
	for i, v := range buf {
		out[i] = float64(v)
	}

	return out, nil
}

// Close implements Source.
func (h *HDF5) Close() error {
	return h.f.Close()
}
