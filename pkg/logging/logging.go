// Package logging builds the application's zap logger.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnv selects the log level; "debug" enables debug output.
const LevelEnv = "PORTFOLIO_LOG_LEVEL"

// New returns a JSON production logger writing to stderr.
func New() (*zap.Logger, error) {
	return NewWithLevel(os.Getenv(LevelEnv))
}

// NewWithLevel is New with an explicit level name.
func NewWithLevel(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.LevelKey = "level"

	if lvl, err := zapcore.ParseLevel(strings.ToLower(level)); err == nil && level != "" {
		config.Level = zap.NewAtomicLevelAt(lvl)
	}

	return config.Build()
}

// Debug reports whether debug logging was requested.
func Debug() bool {
	return strings.EqualFold(os.Getenv(LevelEnv), "debug")
}
