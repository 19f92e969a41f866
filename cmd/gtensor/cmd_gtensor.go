// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/koehnlab/gtensor/config"
	"github.com/koehnlab/gtensor/gtensor"
	"github.com/koehnlab/gtensor/report"
)

func newGTensorCmd(a *app) *cobra.Command {
	var (
		pseudospin   int
		multiplicity int
		bohr         bool
	)

	cmd := &cobra.Command{
		Use:   "gtensor FILE",
		Short: "Compute the g-tensor of the lowest pseudospin states",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calc := a.cfg.Calculation
			if cmd.Flags().Changed("pseudospin") {
				calc.Pseudospin = pseudospin
			}
			if cmd.Flags().Changed("multiplicity") {
				calc.Multiplicity = multiplicity
			}
			if bohr {
				calc.BohrUnits = true
			}
			if calc.Pseudospin < 1 {
				return fmt.Errorf("--pseudospin %d: %w", calc.Pseudospin, config.ErrInvalidConfig)
			}
			if calc.Multiplicity != 0 && calc.Multiplicity < 2 {
				return fmt.Errorf("--multiplicity %d: %w", calc.Multiplicity, config.ErrInvalidConfig)
			}

			opts := []gtensor.CalculatorOption{
				gtensor.WithExtractor(a.extractor()),
				gtensor.WithLogger(a.logger),
				gtensor.WithPseudospin(calc.Pseudospin),
				gtensor.WithBohrUnits(calc.BohrUnits),
			}
			if calc.Multiplicity != 0 {
				opts = append(opts, gtensor.WithMultiplicity(calc.Multiplicity))
			}

			out, err := gtensor.NewCalculator(opts...).RunFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			doc, err := report.NewGTensor(out, a.cfg.Report.Precision)
			if err != nil {
				return err
			}
			doc.RunID = a.runID
			doc.Source = args[0]

			return doc.Write(cmd.OutOrStdout(), a.cfg.Report.Format)
		},
	}

	cmd.Flags().IntVarP(&pseudospin, "pseudospin", "n", 0, "number of lowest SO states (default from config)")
	cmd.Flags().IntVarP(&multiplicity, "multiplicity", "m", 0, "pseudospin multiplicity 2S+1 (default: pseudospin size)")
	cmd.Flags().BoolVar(&bohr, "bohr", false, "scale moments by μ_B (cm⁻¹ T⁻¹) instead of Bohr-magneton multiples")

	return cmd
}
