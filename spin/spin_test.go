package spin_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koehnlab/gtensor/matrix"
	"github.com/koehnlab/gtensor/spin"
)

func TestFromFloat(t *testing.T) {
	for _, tc := range []struct {
		in    float64
		mult  int
		label string
	}{
		{0, 1, "0"},
		{0.5, 2, "1/2"},
		{1, 3, "1"},
		{2.5, 6, "5/2"},
		{1.0000000001, 3, "1"},
	} {
		s, err := spin.FromFloat(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.mult, s.Multiplicity())
		assert.Equal(t, tc.label, s.String())
	}
}

func TestFromFloat_Rejects(t *testing.T) {
	for _, v := range []float64{-0.5, 0.3, 1.25} {
		_, err := spin.FromFloat(v)
		require.ErrorIs(t, err, spin.ErrInvalidSpin, "S=%g", v)
	}
	_, err := spin.New(-1)
	require.ErrorIs(t, err, spin.ErrInvalidSpin)
	_, err = spin.FromMultiplicity(0)
	require.ErrorIs(t, err, spin.ErrInvalidSpin)
}

func TestParseComponent(t *testing.T) {
	c, err := spin.ParseComponent(" Y ")
	require.NoError(t, err)
	assert.Equal(t, spin.Y, c)
	_, err = spin.ParseComponent("w")
	require.ErrorIs(t, err, spin.ErrUnknownComponent)
}

func mustOp(t *testing.T, s spin.Spin, c spin.Component) *matrix.Dense {
	t.Helper()
	m, err := spin.Standard{}.Operator(s, c)
	require.NoError(t, err)

	return m
}

func commutator(t *testing.T, a, b *matrix.Dense) *matrix.Dense {
	t.Helper()
	ab, err := matrix.Mul(a, b)
	require.NoError(t, err)
	ba, err := matrix.Mul(b, a)
	require.NoError(t, err)
	out, err := matrix.Sub(ab, ba)
	require.NoError(t, err)

	return out
}

func TestOperator_CommutationRelations(t *testing.T) {
	for twice := 1; twice <= 5; twice++ {
		s, err := spin.New(twice)
		require.NoError(t, err)
		t.Run(fmt.Sprintf("S=%s", s), func(t *testing.T) {
			sx, sy, sz := mustOp(t, s, spin.X), mustOp(t, s, spin.Y), mustOp(t, s, spin.Z)
			for _, tc := range []struct {
				a, b, c *matrix.Dense
			}{
				{sx, sy, sz},
				{sy, sz, sx},
				{sz, sx, sy},
			} {
				want, err := matrix.Scale(tc.c, 1i)
				require.NoError(t, err)
				ok, err := matrix.AllClose(commutator(t, tc.a, tc.b), want, 0, 1e-12)
				require.NoError(t, err)
				require.True(t, ok)
			}
		})
	}
}

func TestOperator_CasimirAndHermiticity(t *testing.T) {
	s, err := spin.FromFloat(1.5)
	require.NoError(t, err)
	var sum *matrix.Dense
	for _, c := range spin.Components {
		op := mustOp(t, s, c)
		require.NoError(t, matrix.ValidateHermitian(op, 1e-15))
		sq, err := matrix.Mul(op, op)
		require.NoError(t, err)
		if sum == nil {
			sum = sq
			continue
		}
		sum, err = matrix.Add(sum, sq)
		require.NoError(t, err)
	}
	id, err := matrix.Identity(4)
	require.NoError(t, err)
	want, err := matrix.Scale(id, complex(1.5*2.5, 0))
	require.NoError(t, err)
	ok, err := matrix.AllClose(sum, want, 0, 1e-12)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOperator_SpinHalfIsHalfPauli(t *testing.T) {
	s, err := spin.FromFloat(0.5)
	require.NoError(t, err)
	sz := mustOp(t, s, spin.Z)
	v, err := sz.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, complex128(0.5), v)
	sy := mustOp(t, s, spin.Y)
	v, err = sy.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, complex128(-0.5i), v)
}

func TestOperator_SpinZero(t *testing.T) {
	s, err := spin.New(0)
	require.NoError(t, err)
	op := mustOp(t, s, spin.X)
	assert.Equal(t, 1, op.Rows())
	assert.Zero(t, op.MaxAbs())

	_, err = spin.Operator(s, spin.Component(7))
	require.ErrorIs(t, err, spin.ErrUnknownComponent)
}
