// SPDX-License-Identifier: EPL-2.0

// Package logging builds the zap loggers used by the command.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel keeps the console quiet unless something goes wrong.
const DefaultLevel = "warn"

// New returns a JSON logger, or a console logger when dev is set, writing
// to stderr at level ("debug", "info", "warn", "error"). An empty level
// means DefaultLevel.
func New(level string, dev bool) (*zap.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	config := zap.NewProductionConfig()
	if dev {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	return logger, nil
}
