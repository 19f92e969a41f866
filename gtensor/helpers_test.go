// SPDX-License-Identifier: MIT

package gtensor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/koehnlab/gtensor/basis"
	"github.com/koehnlab/gtensor/matrix"
	"github.com/koehnlab/gtensor/spin"
	"github.com/koehnlab/gtensor/storage"
)

func soOp(t *testing.T, m *matrix.Dense) basis.Operator {
	t.Helper()
	op, err := basis.NewOperator(basis.SpinOrbit, m)
	require.NoError(t, err)

	return op
}

func denseOf(t *testing.T, n int, vals ...complex128) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(n, n, vals)
	require.NoError(t, err)

	return m
}

func spinOp(t *testing.T, twice int, c spin.Component) *matrix.Dense {
	t.Helper()
	s, err := spin.New(twice)
	require.NoError(t, err)
	m, err := spin.Operator(s, c)
	require.NoError(t, err)

	return m
}

// freeMoments returns μ_α = −g_e·S_α for a bare spin, tagged SO.
func freeMoments(t *testing.T, twice int) [3]basis.Operator {
	t.Helper()
	var out [3]basis.Operator
	for i, c := range spin.Components {
		m, err := matrix.Scale(spinOp(t, twice, c), -2.00231930436256)
		require.NoError(t, err)
		out[i] = soOp(t, m)
	}

	return out
}

// diagonalSOC stores a real diagonal SOC matrix.
func diagonalSOC(t *testing.T, mem *storage.Memory, energies ...float64) {
	t.Helper()
	soc, err := matrix.NewDense(len(energies), len(energies))
	require.NoError(t, err)
	for i, e := range energies {
		require.NoError(t, soc.Set(i, i, complex(e, 0)))
	}
	require.NoError(t, mem.PutComplex(storage.DatasetSOC, soc))
}

// putZeroOrbital stores zero LX, LY, LZ of dimension n.
func putZeroOrbital(t *testing.T, mem *storage.Memory, n int) {
	t.Helper()
	for _, name := range []string{"LX", "LY", "LZ"} {
		require.NoError(t, mem.Put(name, storage.Array{Shape: []int{n, n}, Data: make([]float64, n*n)}))
	}
}

// doubletRun is a bare S=1/2 with one spatial state and no orbital moment.
func doubletRun(t *testing.T) *storage.Memory {
	t.Helper()
	mem := storage.NewMemory()
	require.NoError(t, mem.PutMetadata([]float64{0.5}, []int{1}))
	diagonalSOC(t, mem, 0, 1)
	putZeroOrbital(t, mem, 1)

	return mem
}

// tripletDoubletRun has S=1 below S=1/2, one spatial state each.
func tripletDoubletRun(t *testing.T) *storage.Memory {
	t.Helper()
	mem := storage.NewMemory()
	require.NoError(t, mem.PutMetadata([]float64{1, 0.5}, []int{1, 1}))
	diagonalSOC(t, mem, 0, 1, 2, 10, 11)
	putZeroOrbital(t, mem, 2)

	return mem
}

// orbitalRun is a spin singlet with two spatial states whose orbital
// moment, after the −i phase, is the Pauli vector. Stored LX, LY, LZ are
// i·σ_x, i·σ_y, i·σ_z as (2,2,2) arrays.
func orbitalRun(t *testing.T) *storage.Memory {
	t.Helper()
	mem := storage.NewMemory()
	require.NoError(t, mem.PutMetadata([]float64{0}, []int{2}))
	diagonalSOC(t, mem, 0, 1)

	pauli := map[string][]complex128{
		"LX": {0, 1, 1, 0},
		"LY": {0, -1i, 1i, 0},
		"LZ": {1, 0, 0, -1},
	}
	for name, vals := range pauli {
		m, err := matrix.Scale(denseOf(t, 2, vals...), 1i)
		require.NoError(t, err)
		require.NoError(t, mem.PutComplex(name, m))
	}

	return mem
}
