// SPDX-License-Identifier: MIT

package gtensor

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/koehnlab/gtensor/basis"
	"github.com/koehnlab/gtensor/property"
	"github.com/koehnlab/gtensor/spin"
	"github.com/koehnlab/gtensor/storage"
)

// DefaultPseudospin is the number of lowest SO states used when none is
// configured: a Kramers doublet.
const DefaultPseudospin = 2

// Calculator runs the whole workflow from stored matrices to a g-tensor.
// A Calculator is immutable after construction and safe for concurrent use.
type Calculator struct {
	extractor    *property.Extractor
	logger       *zap.Logger
	pseudospin   int
	multiplicity int // 0 means "same as pseudospin"
	bohrUnits    bool
}

// CalculatorOption configures a Calculator.
type CalculatorOption func(*Calculator)

// WithExtractor sets the operator extractor. Panics on nil.
func WithExtractor(e *property.Extractor) CalculatorOption {
	if e == nil {
		panic("gtensor: WithExtractor(nil)")
	}

	return func(c *Calculator) { c.extractor = e }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *zap.Logger) CalculatorOption {
	if l == nil {
		panic("gtensor: WithLogger(nil)")
	}

	return func(c *Calculator) { c.logger = l }
}

// WithPseudospin sets the number of lowest SO states forming the
// pseudospin block. Panics when n < 1.
func WithPseudospin(n int) CalculatorOption {
	if n < 1 {
		panic(fmt.Sprintf("gtensor: WithPseudospin(%d): must be ≥ 1", n))
	}

	return func(c *Calculator) { c.pseudospin = n }
}

// WithMultiplicity sets the pseudospin multiplicity 2S+1 used in the
// g-value formula. Panics when m < 2.
func WithMultiplicity(m int) CalculatorOption {
	if m < 2 {
		panic(fmt.Sprintf("gtensor: WithMultiplicity(%d): must be ≥ 2", m))
	}

	return func(c *Calculator) { c.multiplicity = m }
}

// WithBohrUnits selects moments in cm⁻¹ T⁻¹ (true) or in Bohr magnetons.
func WithBohrUnits(on bool) CalculatorOption {
	return func(c *Calculator) { c.bohrUnits = on }
}

// NewCalculator returns a Calculator with a default Extractor, a no-op
// logger and a pseudospin of DefaultPseudospin.
func NewCalculator(opts ...CalculatorOption) *Calculator {
	c := &Calculator{
		extractor:  property.NewExtractor(),
		logger:     zap.NewNop(),
		pseudospin: DefaultPseudospin,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Outcome is a finished calculation with its intermediates.
type Outcome struct {
	*Result
	A            *mat.SymDense
	Pseudospin   int
	Multiplicity int
	Energies     []float64 // SO energies of the pseudospin states, ascending
}

// RunFile opens path through the extractor's opener and calls Run.
func (c *Calculator) RunFile(ctx context.Context, path string) (*Outcome, error) {
	var out *Outcome
	err := c.extractor.With(path, func(src storage.Source) error {
		var err error
		out, err = c.Run(ctx, src)

		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Run diagonalizes the SOC matrix once, builds the three magnetic-moment
// matrices in the SO basis concurrently and derives the g-tensor.
//
// The first failing component cancels the others. ctx is checked between
// extraction steps.
func (c *Calculator) Run(ctx context.Context, src storage.Source) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src = storage.Synchronized(src)

	st, err := c.extractor.SpinOrbitStates(src)
	if err != nil {
		return nil, err
	}
	n := c.pseudospin
	if dim := st.Layout.ProductDim(); n > dim {
		return nil, fmt.Errorf("pseudospin size %d exceeds SO dimension %d: %w", n, dim, basis.ErrDimensionMismatch)
	}
	mult := c.multiplicity
	if mult == 0 {
		mult = n
	}
	c.logger.Info("computing g-tensor",
		zap.Int("product_dim", st.Layout.ProductDim()),
		zap.Int("pseudospin", n),
		zap.Int("multiplicity", mult),
		zap.Bool("bohr_units", c.bohrUnits),
	)

	var moments [3]basis.Operator
	g, gctx := errgroup.WithContext(ctx)
	for i, comp := range spin.Components {
		i, comp := i, comp
		g.Go(func() error {
			mu, err := c.moment(gctx, src, st, comp)
			if err != nil {
				return fmt.Errorf("component %s: %w", comp, err)
			}
			moments[i] = mu

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	a, err := AMatrix(moments[0], moments[1], moments[2], n)
	if err != nil {
		return nil, err
	}
	res, err := Compute(a, mult)
	if err != nil {
		return nil, err
	}
	for i, clamped := range res.RoundOff {
		if clamped {
			c.logger.Warn("negative A eigenvalue within tolerance reported as g = 0",
				zap.Int("index", i),
				zap.Float64("eigenvalue", res.Eigenvalues[i]),
			)
		}
	}
	c.logger.Info("g-tensor computed",
		zap.Float64s("g", res.Values[:]),
		zap.Float64s("a_eigenvalues", res.Eigenvalues[:]),
	)

	return &Outcome{
		Result:       res,
		A:            a,
		Pseudospin:   n,
		Multiplicity: mult,
		Energies:     append([]float64(nil), st.Energies[:n]...),
	}, nil
}

// moment builds μ_comp in the SO basis.
func (c *Calculator) moment(ctx context.Context, src storage.Source, st *property.States, comp spin.Component) (basis.Operator, error) {
	ops := make([]basis.Operator, 2)
	for i, fam := range []property.Family{property.Spin, property.Orbital} {
		if err := ctx.Err(); err != nil {
			return basis.Operator{}, err
		}
		sel, err := property.For(fam, comp)
		if err != nil {
			return basis.Operator{}, err
		}
		if ops[i], err = c.extractor.ExtractWith(src, st, sel, basis.SpinOrbit); err != nil {
			return basis.Operator{}, err
		}
	}

	return MagneticMoment(ops[0], ops[1], c.bohrUnits)
}
