// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/koehnlab/gtensor/config"
	"github.com/koehnlab/gtensor/matrix"
	"github.com/koehnlab/gtensor/property"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	configPath string
	verbose    bool
	format     string
	precision  int32

	cfg    *config.Config
	logger *zap.Logger
	runID  string
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "gtensor",
		Short: "g-tensors from ab-initio spin-orbit calculations",
		Long: `gtensor reads spin quantum numbers, orbital angular-momentum and
spin-orbit coupling matrices written by an ab-initio run (HDF5 or YAML
snapshot), assembles them in the zeroth-order, product or spin-orbit basis
and derives the g-tensor of the lowest pseudospin states.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "configuration file (YAML)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	pf.StringVarP(&a.format, "format", "f", "", "output format: text or yaml (default from config)")
	pf.Int32Var(&a.precision, "precision", -1, "decimal places (default from config)")

	root.AddCommand(
		newMetadataCmd(a),
		newExtractCmd(a),
		newGTensorCmd(a),
		newConvertCmd(a),
	)

	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger tagged with a fresh run id.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.format != "" {
		cfg.Report.Format = a.format
	}
	if a.precision >= 0 {
		cfg.Report.Precision = a.precision
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.runID = uuid.NewString()
	logger, err := cfg.Logging.Build(a.verbose,
		zap.String("run_id", a.runID),
		zap.String("command", cmd.Name()),
	)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("path", a.configPath),
		zap.String("format", cfg.Report.Format),
		zap.Int32("precision", cfg.Report.Precision),
	)

	return nil
}

// extractor builds the operator extractor from the loaded configuration.
func (a *app) extractor() *property.Extractor {
	return property.NewExtractor(
		property.WithLogger(a.logger),
		property.WithEigenOptions(matrix.WithDegeneracyTolerance(a.cfg.Calculation.DegeneracyTolerance)),
	)
}
