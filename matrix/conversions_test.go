package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/koehnlab/gtensor/matrix"
)

func TestFromStacked_RealImag(t *testing.T) {
	// [[[1,0],[0,1]],[[0,1],[-1,0]]] → [[1, i], [-i, 1]]
	data := []float64{1, 0, 0, 1, 0, 1, -1, 0}
	m, err := matrix.FromStacked([]int{2, 2, 2}, data)
	require.NoError(t, err)
	CompareClose(t, m, NewFilledDense(t, 2, 2, []complex128{1, 1i, -1i, 1}), 0)
}

func TestFromStacked_Real(t *testing.T) {
	m, err := matrix.FromStacked([]int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	require.Equal(t, complex128(6), MustAt(t, m, 1, 2))
}

func TestFromStacked_Errors(t *testing.T) {
	cases := map[string]struct {
		shape []int
		data  []float64
		want  error
	}{
		"rank 1":          {[]int{4}, []float64{1, 2, 3, 4}, matrix.ErrBadLayout},
		"three planes":    {[]int{3, 1, 1}, []float64{1, 2, 3}, matrix.ErrBadLayout},
		"short buffer":    {[]int{2, 2, 2}, []float64{1, 2, 3}, matrix.ErrDimensionMismatch},
		"zero dimension":  {[]int{0, 2}, nil, matrix.ErrInvalidDimensions},
		"non-finite data": {[]int{1, 1}, []float64{math.Inf(1)}, matrix.ErrNaNInf},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := matrix.FromStacked(tc.shape, tc.data)
			AssertErrorIs(t, err, tc.want)
		})
	}
}

func TestToStacked_FeedsFromStacked(t *testing.T) {
	m := NewFilledDense(t, 2, 3, []complex128{1, 2i, 3, -4i, 5, 6 + 1i})
	shape, data, err := matrix.ToStacked(m)
	require.NoError(t, err)
	require.Equal(t, []int{2, 2, 3}, shape)
	back, err := matrix.FromStacked(shape, data)
	require.NoError(t, err)
	CompareClose(t, back, m, 0)
}
