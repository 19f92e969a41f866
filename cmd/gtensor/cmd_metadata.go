// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/koehnlab/gtensor/basis"
	"github.com/koehnlab/gtensor/report"
)

func newMetadataCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata FILE",
		Short: "Show the spin manifolds and basis dimensions of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spins, spatial, err := a.extractor().Metadata(args[0])
			if err != nil {
				return err
			}
			layout, err := basis.NewLayout(spins, spatial)
			if err != nil {
				return err
			}
			a.logger.Info("read metadata",
				zap.String("file", args[0]),
				zap.Int("manifolds", layout.Len()),
				zap.Int("product_dim", layout.ProductDim()),
			)

			return report.NewMetadata(layout).Write(cmd.OutOrStdout(), a.cfg.Report.Format)
		},
	}
}
