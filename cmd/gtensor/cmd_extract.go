// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/koehnlab/gtensor/basis"
	"github.com/koehnlab/gtensor/property"
	"github.com/koehnlab/gtensor/report"
)

func newExtractCmd(a *app) *cobra.Command {
	var operator, basisName string

	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Print one operator matrix in the requested basis",
		Long: `Print one operator matrix in the requested basis.

Operators: DMX DMY DMZ (dipole), LX LY LZ (orbital angular momentum),
SX SY SZ (spin), SOC (spin-orbit coupling).
Bases: WF0 (zeroth order), PROD (product), SO (spin-orbit eigenbasis).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := property.ParseSelector(operator)
			if err != nil {
				return err
			}
			kind, err := basis.ParseKind(basisName)
			if err != nil {
				return err
			}

			op, err := a.extractor().Extract(args[0], sel, kind)
			if err != nil {
				return err
			}
			a.logger.Info("extracted operator",
				zap.Stringer("operator", sel),
				zap.Stringer("requested", kind),
				zap.Stringer("returned", op.Basis),
				zap.Int("dim", op.Dim()),
			)

			doc, err := report.NewMatrix(sel.String(), op, a.cfg.Report.Precision)
			if err != nil {
				return err
			}

			return doc.Write(cmd.OutOrStdout(), a.cfg.Report.Format)
		},
	}

	cmd.Flags().StringVarP(&operator, "operator", "o", "", "operator to extract")
	cmd.Flags().StringVarP(&basisName, "basis", "b", "SO", "target basis")
	_ = cmd.MarkFlagRequired("operator")

	return cmd
}
