// SPDX-License-Identifier: MIT

package property

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/koehnlab/gtensor/basis"
	"github.com/koehnlab/gtensor/matrix"
	"github.com/koehnlab/gtensor/spin"
	"github.com/koehnlab/gtensor/storage"
)

// orbitalPhase multiplies stored orbital angular-momentum matrices.
const orbitalPhase = complex(0, -1)

// Opener opens a path as a storage source.
type Opener func(path string) (storage.Source, error)

// Extractor drives the basis engine to produce operators in a requested
// basis. An Extractor is immutable after construction and safe for
// concurrent use.
type Extractor struct {
	provider basis.SpinProvider
	logger   *zap.Logger
	open     Opener
	eigen    []matrix.Option
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithProvider sets the spin-operator provider. Panics on nil.
func WithProvider(p basis.SpinProvider) Option {
	if p == nil {
		panic("property: WithProvider(nil)")
	}

	return func(e *Extractor) { e.provider = p }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("property: WithLogger(nil)")
	}

	return func(e *Extractor) { e.logger = l }
}

// WithOpener replaces storage.Open. Panics on nil.
func WithOpener(fn Opener) Option {
	if fn == nil {
		panic("property: WithOpener(nil)")
	}

	return func(e *Extractor) { e.open = fn }
}

// WithEigenOptions forwards tolerances to the SOC eigensolver.
func WithEigenOptions(opts ...matrix.Option) Option {
	return func(e *Extractor) { e.eigen = append(e.eigen, opts...) }
}

// NewExtractor returns an Extractor using spin.Standard, storage.Open and a
// no-op logger unless overridden.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		provider: spin.Standard{},
		logger:   zap.NewNop(),
		open:     storage.Open,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// States holds what every extraction from one source shares: the layout,
// the SOC matrix and, once diagonalized, its eigenpairs.
type States struct {
	Layout   *basis.Layout
	SOC      *matrix.Dense
	Energies []float64     // ascending, nil until diagonalized
	Vectors  *matrix.Dense // eigenvectors in columns, nil until diagonalized
}

// With opens path with the configured opener, runs fn and closes the
// source on every exit path.
func (e *Extractor) With(path string, fn func(storage.Source) error) (err error) {
	src, err := e.open(path)
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

// Metadata returns the spin states and spatial counts stored at path.
func (e *Extractor) Metadata(path string) ([]spin.Spin, []int, error) {
	var (
		spins   []spin.Spin
		spatial []int
	)
	err := e.With(path, func(src storage.Source) error {
		var err error
		spins, spatial, err = storage.ReadMetadata(src)

		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return spins, spatial, nil
}

// Extract returns operator sel in basis kind from the run stored at path.
func (e *Extractor) Extract(path string, sel Selector, kind basis.Kind) (basis.Operator, error) {
	var op basis.Operator
	err := e.With(path, func(src storage.Source) error {
		var err error
		op, err = e.ExtractFrom(src, sel, kind)

		return err
	})
	if err != nil {
		return basis.Operator{}, err
	}

	return op, nil
}

// ExtractFrom is Extract over an already open source. The SOC matrix is
// diagonalized only when kind is SpinOrbit.
func (e *Extractor) ExtractFrom(src storage.Source, sel Selector, kind basis.Kind) (basis.Operator, error) {
	if err := checkRequest(sel, kind); err != nil {
		return basis.Operator{}, err
	}
	st, err := e.load(src, kind == basis.SpinOrbit && sel != SOC)
	if err != nil {
		return basis.Operator{}, err
	}

	return e.ExtractWith(src, st, sel, kind)
}

// SpinOrbitStates reads the layout and SOC matrix and diagonalizes it once,
// for workflows that extract several operators in the SO basis.
func (e *Extractor) SpinOrbitStates(src storage.Source) (*States, error) {
	return e.load(src, true)
}

// ExtractWith extracts sel in basis kind reusing st. A SpinOrbit request
// needs st to carry eigenvectors.
//
// Pipeline:
//   - SOC is returned as stored, tagged Product, for every basis.
//   - Orbital operators are multiplied by −i, dipoles are used as stored,
//     spin operators come from the provider.
//   - WF0 returns the stored matrix (spin family: zeroth-order assembly).
//   - PROD embeds each manifold's block at its product offset.
//   - SO transforms the product form into the SOC eigenbasis.
func (e *Extractor) ExtractWith(src storage.Source, st *States, sel Selector, kind basis.Kind) (basis.Operator, error) {
	if err := checkRequest(sel, kind); err != nil {
		return basis.Operator{}, err
	}
	if kind == basis.SpinOrbit && sel != SOC && st.Vectors == nil {
		return basis.Operator{}, fmt.Errorf("ExtractWith(%s): SOC not diagonalized: %w", sel, basis.ErrWrongBasis)
	}
	e.logger.Debug("extract operator",
		zap.Stringer("selector", sel),
		zap.Stringer("basis", kind),
		zap.Int("manifolds", st.Layout.Len()),
		zap.Int("product_dim", st.Layout.ProductDim()),
	)

	if sel == SOC {
		return basis.NewOperator(basis.Product, st.SOC)
	}

	if kind == basis.ZerothOrder {
		return e.zerothOrder(src, st.Layout, sel)
	}

	prod, err := e.product(src, st.Layout, sel)
	if err != nil {
		return basis.Operator{}, err
	}
	if kind == basis.Product {
		return prod, nil
	}

	so, err := basis.ToSpinOrbit(prod, st.Vectors)
	if err != nil {
		return basis.Operator{}, fmt.Errorf("ExtractWith(%s): %w", sel, err)
	}

	return so, nil
}

func checkRequest(sel Selector, kind basis.Kind) error {
	if !sel.Valid() {
		return fmt.Errorf("selector %s: %w", sel, basis.ErrUnknownSelector)
	}
	if kind < basis.ZerothOrder || kind > basis.SpinOrbit {
		return fmt.Errorf("basis %s: %w", kind, basis.ErrUnknownSelector)
	}

	return nil
}

// load reads the layout and the SOC matrix, checks the SOC spans the
// product basis and optionally diagonalizes it.
func (e *Extractor) load(src storage.Source, diagonalize bool) (*States, error) {
	layout, err := storage.ReadLayout(src)
	if err != nil {
		return nil, err
	}
	soc, err := storage.ReadComplex(src, storage.DatasetSOC)
	if err != nil {
		return nil, err
	}
	if d := layout.ProductDim(); soc.Rows() != d || soc.Cols() != d {
		return nil, fmt.Errorf("SOC is %dx%d, product basis has %d: %w", soc.Rows(), soc.Cols(), d, basis.ErrDimensionMismatch)
	}

	st := &States{Layout: layout, SOC: soc}
	if !diagonalize {
		return st, nil
	}

	st.Energies, st.Vectors, err = matrix.EigenHermitian(soc, e.eigen...)
	if err != nil {
		return nil, fmt.Errorf("diagonalize SOC: %w", err)
	}
	e.logger.Debug("diagonalized SOC",
		zap.Int("dim", soc.Rows()),
		zap.Float64("lowest", st.Energies[0]),
		zap.Float64("highest", st.Energies[len(st.Energies)-1]),
	)

	return st, nil
}

// stored reads a dipole or orbital dataset and applies its phase.
func stored(src storage.Source, sel Selector) (*matrix.Dense, error) {
	m, err := storage.ReadComplex(src, sel.Dataset())
	if err != nil {
		return nil, err
	}
	if sel.Family() == Orbital {
		if m, err = matrix.Scale(m, orbitalPhase); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (e *Extractor) zerothOrder(src storage.Source, l *basis.Layout, sel Selector) (basis.Operator, error) {
	if sel.Family() == Spin {
		c, err := sel.Component()
		if err != nil {
			return basis.Operator{}, err
		}

		return basis.AssembleZerothOrder(l, e.provider, c)
	}

	m, err := stored(src, sel)
	if err != nil {
		return basis.Operator{}, err
	}

	return basis.NewOperator(basis.ZerothOrder, m)
}

func (e *Extractor) product(src storage.Source, l *basis.Layout, sel Selector) (basis.Operator, error) {
	if sel.Family() == Spin {
		c, err := sel.Component()
		if err != nil {
			return basis.Operator{}, err
		}

		return basis.AssembleProductSpin(l, e.provider, c)
	}

	full, err := e.zerothOrder(src, l, sel)
	if err != nil {
		return basis.Operator{}, err
	}

	return basis.AssembleProductOrbital(full, l)
}
