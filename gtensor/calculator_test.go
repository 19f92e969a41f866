// SPDX-License-Identifier: MIT

package gtensor_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/koehnlab/gtensor/basis"
	"github.com/koehnlab/gtensor/gtensor"
	"github.com/koehnlab/gtensor/property"
	"github.com/koehnlab/gtensor/storage"
)

type CalculatorSuite struct {
	suite.Suite
}

func TestCalculatorSuite(t *testing.T) {
	suite.Run(t, new(CalculatorSuite))
}

func (s *CalculatorSuite) TearDownTest() {
	goleak.VerifyNone(s.T())
}

func (s *CalculatorSuite) calc(opts ...gtensor.CalculatorOption) *gtensor.Calculator {
	opts = append([]gtensor.CalculatorOption{gtensor.WithLogger(zaptest.NewLogger(s.T()))}, opts...)

	return gtensor.NewCalculator(opts...)
}

// A bare doublet has isotropic g = g_e.
func (s *CalculatorSuite) TestFreeDoublet() {
	t := s.T()
	out, err := s.calc().Run(context.Background(), doubletRun(t))
	require.NoError(t, err)

	g := gtensor.ElectronG
	require.Empty(t, cmp.Diff([3]float64{g, g, g}, out.Values, approx))
	require.Equal(t, 2, out.Pseudospin)
	require.Equal(t, 2, out.Multiplicity)
	require.Equal(t, 0.5, out.Spin)
	require.Empty(t, cmp.Diff([]float64{0, 1}, out.Energies, approx))
}

func (s *CalculatorSuite) TestBohrUnitsScaleG() {
	t := s.T()
	out, err := s.calc(gtensor.WithBohrUnits(true)).Run(context.Background(), doubletRun(t))
	require.NoError(t, err)

	g := gtensor.ElectronG * gtensor.BohrMagneton
	require.Empty(t, cmp.Diff([3]float64{g, g, g}, out.Values, approx))
}

// The triplet is the lowest manifold; its three states form the pseudospin.
func (s *CalculatorSuite) TestTripletBelowDoublet() {
	t := s.T()
	out, err := s.calc(gtensor.WithPseudospin(3)).Run(context.Background(), tripletDoubletRun(t))
	require.NoError(t, err)

	g := gtensor.ElectronG
	require.Equal(t, 3, out.Multiplicity)
	require.Empty(t, cmp.Diff([3]float64{g, g, g}, out.Values, approx))
	require.Empty(t, cmp.Diff([]float64{0, 1, 2}, out.Energies, approx))
}

// Orbital-only doublet: μ = −σ after the −i phase, so A = 1 and g = 2.
func (s *CalculatorSuite) TestOrbitalMoment() {
	t := s.T()
	out, err := s.calc().Run(context.Background(), orbitalRun(t))
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([3]float64{2, 2, 2}, out.Values, approx))
	require.Empty(t, cmp.Diff([3]float64{1, 1, 1}, out.Eigenvalues, approx))
}

func (s *CalculatorSuite) TestExplicitMultiplicity() {
	t := s.T()
	out, err := s.calc(gtensor.WithMultiplicity(3)).Run(context.Background(), orbitalRun(t))
	require.NoError(t, err)
	require.Equal(t, 2, out.Pseudospin)
	require.Equal(t, 3, out.Multiplicity)
	require.Equal(t, 1.0, out.Spin)
}

func (s *CalculatorSuite) TestPseudospinTooLarge() {
	t := s.T()
	_, err := s.calc(gtensor.WithPseudospin(3)).Run(context.Background(), doubletRun(t))
	require.ErrorIs(t, err, basis.ErrDimensionMismatch)
}

func (s *CalculatorSuite) TestMissingOrbitalDataset() {
	t := s.T()
	mem := storage.NewMemory()
	require.NoError(t, mem.PutMetadata([]float64{0.5}, []int{1}))
	diagonalSOC(t, mem, 0, 1)

	_, err := s.calc().Run(context.Background(), mem)
	require.ErrorIs(t, err, storage.ErrMissingDataset)
}

func (s *CalculatorSuite) TestCancelledContext() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.calc().Run(ctx, doubletRun(t))
	require.ErrorIs(t, err, context.Canceled)
}

func (s *CalculatorSuite) TestRunFile() {
	t := s.T()
	path := filepath.Join(t.TempDir(), "run.yaml")
	src := tripletDoubletRun(t)
	require.NoError(t, storage.WriteSnapshot(path, src, src.Names()))

	fromFile, err := s.calc(gtensor.WithPseudospin(3)).RunFile(context.Background(), path)
	require.NoError(t, err)
	inMemory, err := s.calc(gtensor.WithPseudospin(3)).Run(context.Background(), src)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(inMemory.Values, fromFile.Values, approx))
}

func (s *CalculatorSuite) TestCustomExtractor() {
	t := s.T()
	ex := property.NewExtractor(property.WithLogger(zaptest.NewLogger(t)))
	out, err := s.calc(gtensor.WithExtractor(ex)).Run(context.Background(), doubletRun(t))
	require.NoError(t, err)
	require.InDelta(t, gtensor.ElectronG, out.Values[2], tol)
}

func TestCalculatorOptions_Panic(t *testing.T) {
	require.Panics(t, func() { gtensor.WithExtractor(nil) })
	require.Panics(t, func() { gtensor.WithLogger(nil) })
	require.Panics(t, func() { gtensor.WithPseudospin(0) })
	require.Panics(t, func() { gtensor.WithMultiplicity(1) })
}
