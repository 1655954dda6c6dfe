// Package logging builds the zap loggers used across wsp.
//
// Diagnostics go to stderr so that stdout stays clean for command output and
// for the MCP stdio transport.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to stderr at the named level
func New(level string) (*zap.Logger, error) {
	return NewWithWriter(level, os.Stderr)
}

// NewWithWriter returns a console logger writing to w at the named level
func NewWithWriter(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core), nil
}

// Level picks the effective level: verbose forces debug
func Level(configured string, verbose bool) string {
	if verbose {
		return zapcore.DebugLevel.String()
	}
	return configured
}
