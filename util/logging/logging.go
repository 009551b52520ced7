// Package logging builds zap loggers from configuration and carries
// them through contexts.
package logging

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the logger's level and output format.
type Config struct {
	Level  string `conf:"level"`
	Format string `conf:"format"`
}

// New builds a logger from cfg. Format "development" selects the
// human-readable console encoder; anything else selects production
// JSON. An unparseable level falls back to info.
func New(cfg Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Format == "development" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	zcfg.Level = level

	return zcfg.Build()
}

type contextKey int

const loggerKey contextKey = iota

// ErrNoLoggerInContext is returned by LoggerFromContext when no logger
// was stored.
var ErrNoLoggerInContext = errors.New("logging: no logger in context")

// ContextWithLogger returns a context carrying log.
func ContextWithLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// LoggerFromContext returns the logger stored by ContextWithLogger.
func LoggerFromContext(ctx context.Context) (*zap.Logger, error) {
	log, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok {
		return nil, ErrNoLoggerInContext
	}
	return log, nil
}
