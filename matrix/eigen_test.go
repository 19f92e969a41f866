package matrix_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/koehnlab/gtensor/matrix"
)

// reconstruct returns V·diag(vals)·Vᴴ.
func reconstruct(t *testing.T, vals []float64, vecs *matrix.Dense) *matrix.Dense {
	t.Helper()
	n := len(vals)
	d := MustDense(t, n, n)
	for i, v := range vals {
		MustSet(t, d, i, i, complex(v, 0))
	}
	vd, err := matrix.Mul(vecs, d)
	require.NoError(t, err)
	vh, err := matrix.ConjTranspose(vecs)
	require.NoError(t, err)
	out, err := matrix.Mul(vd, vh)
	require.NoError(t, err)

	return out
}

func requireUnitary(t *testing.T, v *matrix.Dense) {
	t.Helper()
	vh, err := matrix.ConjTranspose(v)
	require.NoError(t, err)
	prod, err := matrix.Mul(vh, v)
	require.NoError(t, err)
	id, err := matrix.Identity(v.Rows())
	require.NoError(t, err)
	CompareClose(t, prod, id, 1e-10)
}

func TestEigenHermitian_Pauli(t *testing.T) {
	sy := NewFilledDense(t, 2, 2, []complex128{0, -1i, 1i, 0})
	vals, vecs, err := matrix.EigenHermitian(sy)
	require.NoError(t, err)
	require.InDelta(t, -1.0, vals[0], 1e-12)
	require.InDelta(t, 1.0, vals[1], 1e-12)
	requireUnitary(t, vecs)
	CompareClose(t, reconstruct(t, vals, vecs), sy, 1e-12)
}

func TestEigenHermitian_Random(t *testing.T) {
	for _, n := range []int{1, 3, 6, 11} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			h := RandomHermitian(t, n, int64(n))
			vals, vecs, err := matrix.EigenHermitian(h)
			require.NoError(t, err)
			require.Len(t, vals, n)
			for i := 1; i < n; i++ {
				require.LessOrEqual(t, vals[i-1], vals[i]+1e-12, "eigenvalues must ascend")
			}
			requireUnitary(t, vecs)
			CompareClose(t, reconstruct(t, vals, vecs), h, 1e-10)
		})
	}
}

func TestEigenHermitian_Degenerate(t *testing.T) {
	// Kramers-like spectrum: {-2,-2,1,1} in a rotated basis.
	d := NewFilledDense(t, 4, 4, []complex128{
		-2, 0, 0, 0,
		0, -2, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
	_, q, err := matrix.EigenHermitian(RandomHermitian(t, 4, 7))
	require.NoError(t, err)
	qh, err := matrix.ConjTranspose(q)
	require.NoError(t, err)
	qd, err := matrix.Mul(q, d)
	require.NoError(t, err)
	h, err := matrix.Mul(qd, qh)
	require.NoError(t, err)

	vals, vecs, err := matrix.EigenHermitian(h)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{-2, -2, 1, 1}, vals, 1e-10)
	requireUnitary(t, vecs)
	CompareClose(t, reconstruct(t, vals, vecs), h, 1e-10)
}

func TestEigenHermitian_Rejects(t *testing.T) {
	_, _, err := matrix.EigenHermitian(MustDense(t, 2, 3))
	AssertErrorIs(t, err, matrix.ErrNonSquare)

	nonHermitian := NewFilledDense(t, 2, 2, []complex128{1, 1i, 1i, 1})
	_, _, err = matrix.EigenHermitian(nonHermitian)
	AssertErrorIs(t, err, matrix.ErrNotHermitian)

	// a loose epsilon accepts the tiny asymmetry
	nearly := NewFilledDense(t, 2, 2, []complex128{1, 1 + 1e-7, 1, 1})
	_, _, err = matrix.EigenHermitian(nearly, matrix.WithEpsilon(1e-6))
	require.NoError(t, err)
}
