// SPDX-License-Identifier: MIT

// Package report renders g-tensor results, operator matrices and run
// metadata as aligned text or YAML with a fixed number of decimal places.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/koehnlab/gtensor/basis"
	"github.com/koehnlab/gtensor/gtensor"
	"github.com/koehnlab/gtensor/spin"
)

// Output formats.
const (
	Text = "text"
	YAML = "yaml"
)

// ErrUnknownFormat indicates an output format other than Text or YAML.
var ErrUnknownFormat = errors.New("report: unknown output format")

// GTensor is the rendered form of a g-tensor calculation.
type GTensor struct {
	RunID        string     `yaml:"run_id,omitempty"`
	Source       string     `yaml:"source,omitempty"`
	Pseudospin   int        `yaml:"pseudospin"`
	Multiplicity int        `yaml:"multiplicity"`
	Spin         string     `yaml:"spin"`
	Energies     []Number   `yaml:"so_energies,flow"`
	GValues      []Number   `yaml:"g_values,flow"`
	Axes         [][]Number `yaml:"axes"`     // one principal axis per row
	AMatrix      [][]Number `yaml:"a_matrix"` // row-major

	// RoundOff lists the axes (1-based) whose g = 0 comes from a slightly
	// negative A eigenvalue.
	RoundOff []int `yaml:"round_off,omitempty,flow"`
}

// NewGTensor rounds an outcome to precision decimal places.
func NewGTensor(out *gtensor.Outcome, precision int32) (*GTensor, error) {
	s, err := spin.FromMultiplicity(out.Multiplicity)
	if err != nil {
		return nil, err
	}
	doc := &GTensor{
		Pseudospin:   out.Pseudospin,
		Multiplicity: out.Multiplicity,
		Spin:         s.String(),
		Energies:     fixedSlice(out.Energies, precision),
		GValues:      fixedSlice(out.Values[:], precision),
		Axes:         make([][]Number, 3),
		AMatrix:      make([][]Number, 3),
	}
	for i := 0; i < 3; i++ {
		doc.Axes[i] = make([]Number, 3)
		doc.AMatrix[i] = make([]Number, 3)
		for j := 0; j < 3; j++ {
			doc.Axes[i][j] = Fixed(out.R.At(j, i), precision)
			doc.AMatrix[i][j] = Fixed(out.A.At(i, j), precision)
		}
		if out.RoundOff[i] {
			doc.RoundOff = append(doc.RoundOff, i+1)
		}
	}

	return doc, nil
}

// Write renders doc in format.
func (doc *GTensor) Write(w io.Writer, format string) error {
	switch format {
	case YAML:
		return writeYAML(w, doc)
	case Text:
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if doc.RunID != "" {
		fmt.Fprintf(tw, "run\t%s\t\n", doc.RunID)
	}
	if doc.Source != "" {
		fmt.Fprintf(tw, "source\t%s\t\n", doc.Source)
	}
	fmt.Fprintf(tw, "pseudospin states\t%d\t\n", doc.Pseudospin)
	fmt.Fprintf(tw, "effective spin\t%s\t\n", doc.Spin)
	fmt.Fprintf(tw, "SO energies\t%s\t\n", join(doc.Energies))
	fmt.Fprintln(tw, "\t\t")
	fmt.Fprintln(tw, "axis\tg\tx\ty\tz\t")
	for i, g := range doc.GValues {
		row := doc.Axes[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", i+1, g, row[0], row[1], row[2])
	}
	for _, i := range doc.RoundOff {
		fmt.Fprintf(tw, "note\taxis %d: negative round-off eigenvalue, g set to 0\t\n", i)
	}
	fmt.Fprintln(tw, "\t\t")
	fmt.Fprintln(tw, "A\tx\ty\tz\t")
	for i, label := range []string{"x", "y", "z"} {
		row := doc.AMatrix[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", label, row[0], row[1], row[2])
	}

	return tw.Flush()
}

// Matrix is the rendered form of an operator.
type Matrix struct {
	Operator string     `yaml:"operator"`
	Basis    string     `yaml:"basis"`
	Rows     int        `yaml:"rows"`
	Cols     int        `yaml:"cols"`
	Real     [][]Number `yaml:"real"`
	Imag     [][]Number `yaml:"imag"`
}

// NewMatrix rounds op to precision decimal places.
func NewMatrix(name string, op basis.Operator, precision int32) (*Matrix, error) {
	r, c := op.M.Rows(), op.M.Cols()
	doc := &Matrix{
		Operator: name,
		Basis:    op.Basis.String(),
		Rows:     r,
		Cols:     c,
		Real:     make([][]Number, r),
		Imag:     make([][]Number, r),
	}
	for i := 0; i < r; i++ {
		doc.Real[i] = make([]Number, c)
		doc.Imag[i] = make([]Number, c)
		for j := 0; j < c; j++ {
			v, err := op.M.At(i, j)
			if err != nil {
				return nil, err
			}
			doc.Real[i][j] = Fixed(real(v), precision)
			doc.Imag[i][j] = Fixed(imag(v), precision)
		}
	}

	return doc, nil
}

// Write renders doc in format. Text output prints one row per line with
// entries as re+imi.
func (doc *Matrix) Write(w io.Writer, format string) error {
	switch format {
	case YAML:
		return writeYAML(w, doc)
	case Text:
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}

	if _, err := fmt.Fprintf(w, "%s in %s basis (%dx%d)\n", doc.Operator, doc.Basis, doc.Rows, doc.Cols); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for i := range doc.Real {
		for j := range doc.Real[i] {
			im := doc.Imag[i][j].String()
			if !strings.HasPrefix(im, "-") {
				im = "+" + im
			}
			fmt.Fprintf(tw, "%s%si\t", doc.Real[i][j], im)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

// Manifold is one (spin, spatial count) entry of the run metadata.
type Manifold struct {
	Spin         string `yaml:"spin"`
	Multiplicity int    `yaml:"multiplicity"`
	Spatial      int    `yaml:"spatial_states"`
}

// Metadata is the rendered layout of a run.
type Metadata struct {
	Manifolds  []Manifold `yaml:"manifolds"`
	ZerothDim  int        `yaml:"zeroth_order_dim"`
	ProductDim int        `yaml:"product_dim"`
}

// NewMetadata summarizes a layout.
func NewMetadata(l *basis.Layout) *Metadata {
	doc := &Metadata{ZerothDim: l.ZerothDim(), ProductDim: l.ProductDim()}
	for _, m := range l.Manifolds() {
		doc.Manifolds = append(doc.Manifolds, Manifold{
			Spin:         m.Spin.String(),
			Multiplicity: m.Spin.Multiplicity(),
			Spatial:      m.Spatial,
		})
	}

	return doc
}

// Write renders doc in format.
func (doc *Metadata) Write(w io.Writer, format string) error {
	switch format {
	case YAML:
		return writeYAML(w, doc)
	case Text:
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "S\t2S+1\tspatial\t")
	for _, m := range doc.Manifolds {
		fmt.Fprintf(tw, "%s\t%d\t%d\t\n", m.Spin, m.Multiplicity, m.Spatial)
	}
	fmt.Fprintf(tw, "WF0 dim\t%d\t\t\n", doc.ZerothDim)
	fmt.Fprintf(tw, "PROD dim\t%d\t\t\n", doc.ProductDim)

	return tw.Flush()
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}

func join(ns []Number) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = n.String()
	}

	return strings.Join(parts, " ")
}
