// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLevel parses Level.
func (l LoggingConfig) ZapLevel() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return 0, fmt.Errorf("logging.level %q: %w", l.Level, ErrInvalidConfig)
	}

	return lvl, nil
}

// Build returns a production zap logger writing to stderr at the configured
// level and encoding. verbose forces debug level.
func (l LoggingConfig) Build(verbose bool, fields ...zap.Field) (*zap.Logger, error) {
	lvl, err := l.ZapLevel()
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = l.Format
	zc.OutputPaths = []string{"stderr"}
	if l.Format == "console" {
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.With(fields...), nil
}
