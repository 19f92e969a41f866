// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/koehnlab/gtensor/storage"
)

// requiredDatasets must be present in every run.
var requiredDatasets = []string{
	storage.DatasetSpinQNs,
	storage.DatasetSpatialStates,
	storage.DatasetSOC,
}

// optionalDatasets are copied when present.
var optionalDatasets = []string{"DMX", "DMY", "DMZ", "LX", "LY", "LZ"}

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert IN OUT.yaml",
		Short: "Export the datasets of a run to a YAML snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			mem := storage.NewMemory()

			err := storage.With(in, func(src storage.Source) error {
				for _, name := range requiredDatasets {
					if err := copyDataset(mem, src, name); err != nil {
						return err
					}
				}
				for _, name := range optionalDatasets {
					err := copyDataset(mem, src, name)
					if errors.Is(err, storage.ErrMissingDataset) {
						a.logger.Debug("dataset absent", zap.String("name", name))
						continue
					}
					if err != nil {
						return err
					}
				}

				return nil
			})
			if err != nil {
				return err
			}
			if _, err = storage.ReadLayout(mem); err != nil {
				return fmt.Errorf("convert %q: %w", in, err)
			}

			if err = storage.WriteSnapshot(out, mem, mem.Names()); err != nil {
				return err
			}
			a.logger.Info("snapshot written",
				zap.String("from", in),
				zap.String("to", out),
				zap.Strings("datasets", mem.Names()),
			)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d datasets to %s\n", len(mem.Names()), out)

			return err
		},
	}
}

func copyDataset(dst *storage.Memory, src storage.Source, name string) error {
	arr, err := src.Dataset(name)
	if err != nil {
		return err
	}

	return dst.Put(name, arr)
}
