package basis_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/koehnlab/gtensor/basis"
	"github.com/koehnlab/gtensor/matrix"
	"github.com/koehnlab/gtensor/spin"
)

func mustSpin(t *testing.T, s float64) spin.Spin {
	t.Helper()
	out, err := spin.FromFloat(s)
	require.NoError(t, err)

	return out
}

func mustLayout(t *testing.T, spins []float64, spatial []int) *basis.Layout {
	t.Helper()
	ss := make([]spin.Spin, len(spins))
	for i, s := range spins {
		ss[i] = mustSpin(t, s)
	}
	l, err := basis.NewLayout(ss, spatial)
	require.NoError(t, err)

	return l
}

func dense(t *testing.T, n int, vals ...complex128) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(n, n, vals)
	require.NoError(t, err)

	return m
}

func at(t *testing.T, m *matrix.Dense, i, j int) complex128 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// sequential returns an n×n matrix with entries 1..n² (+ i for off-diagonals)
// so every element is distinguishable.
func sequential(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	vals := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			im := 0.0
			if i != j {
				im = float64(i - j)
			}
			vals[i*n+j] = complex(float64(i*n+j+1), im)
		}
	}

	return dense(t, n, vals...)
}

// brokenProvider returns a matrix one size too large for a chosen spin.
type brokenProvider struct {
	bad spin.Spin
}

func (b brokenProvider) Operator(s spin.Spin, c spin.Component) (*matrix.Dense, error) {
	if s == b.bad {
		return matrix.NewDense(s.Multiplicity()+1, s.Multiplicity()+1)
	}

	return spin.Operator(s, c)
}
