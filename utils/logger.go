package utils

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log     *zap.Logger
	logErr  error
	logOnce sync.Once
)

// LoggerOptions selects the level, encoding and sinks of the process
// logger. Zero values mean info level, JSON and stderr.
type LoggerOptions struct {
	Level       zapcore.Level
	Encoding    string
	OutputPaths []string
}

// NewLogger builds a standalone logger from opts.
func NewLogger(opts LoggerOptions) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(opts.Level)
	if opts.Encoding != "" {
		cfg.Encoding = opts.Encoding
	}
	// stdout carries quotes, so the default sink is stderr
	cfg.OutputPaths = []string{"stderr"}
	if len(opts.OutputPaths) > 0 {
		cfg.OutputPaths = opts.OutputPaths
	}
	cfg.ErrorOutputPaths = []string{"stderr"}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Encoding == "console" {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	logger, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Named("dexroute"), nil
}

// InitLogger installs the process logger. Only the first call builds it;
// later calls return the same logger and error.
func InitLogger(opts LoggerOptions) (*zap.Logger, error) {
	logOnce.Do(func() {
		log, logErr = NewLogger(opts)
	})
	return log, logErr
}

// GetLogger returns the process logger, or a no-op logger when it could
// not be built.
func GetLogger() *zap.Logger {
	logger, err := InitLogger(LoggerOptions{})
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// CleanupLogger flushes any buffered log entries
func CleanupLogger() {
	if log != nil {
		_ = log.Sync()
	}
}
