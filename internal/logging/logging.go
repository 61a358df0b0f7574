// Package logging builds the zap logger shared by disparo commands.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	derrors "github.com/disparo/disparo/pkg/errors"
)

// New returns a logger at the given level. verbose switches to the
// development encoder (console, caller info) and forces debug level.
// Logs go to stderr so they never interleave with the report on stdout.
func New(level string, verbose bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CodeInvalidConfig, "invalid log level").
			WithContext("level", level)
	}

	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		lvl = zapcore.DebugLevel
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.DisableStacktrace = true
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}
