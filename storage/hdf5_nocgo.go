// SPDX-License-Identifier: MIT

//go:build !cgo

package storage

import "fmt"

// HDF5 is unavailable without cgo; OpenHDF5 always fails.
type HDF5 struct{}

// OpenHDF5 reports that HDF5 support was not compiled in.
func OpenHDF5(path string) (*HDF5, error) {
	return nil, fmt.Errorf("OpenHDF5(%q): built without cgo: %w", path, ErrUnsupportedFormat)
}

// Dataset implements Source.
func (*HDF5) Dataset(name string) (Array, error) {
	return Array{}, fmt.Errorf("%q: %w", name, ErrUnsupportedFormat)
}

// Close implements Source.
func (*HDF5) Close() error { return nil }
