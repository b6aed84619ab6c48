// Package logging builds configurable zap loggers for searchcore services.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Style selects the logger's output encoding.
type Style string

const (
	StyleTerminal Style = "terminal"
	StyleJson     Style = "json"
	StyleNoop     Style = "noop"
)

// Level names a minimum log level, mirroring zapcore's own names so a
// config file can spell it the same way operators already know.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Config controls New. A zero Config defaults to terminal style at info
// level, matching what a developer expects when running locally.
type Config struct {
	Style Style
	Level Level
}

// New builds a zap.Logger from cfg. Style chooses the encoder (human
// readable for local development, structured JSON for production
// ingestion, or discarded entirely); Level filters below which severity
// entries are dropped.
func New(cfg Config) (*zap.Logger, error) {
	style := cfg.Style
	if style == "" {
		style = StyleTerminal
	}
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		lvl, err := zapcore.ParseLevel(string(cfg.Level))
		if err != nil {
			return nil, fmt.Errorf("logging: invalid level %q: %w", cfg.Level, err)
		}
		level = lvl
	}

	switch style {
	case StyleNoop:
		return zap.NewNop(), nil
	case StyleJson:
		c := zap.NewProductionConfig()
		c.Level = zap.NewAtomicLevelAt(level)
		return c.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	case StyleTerminal:
		c := zap.NewDevelopmentConfig()
		c.Level = zap.NewAtomicLevelAt(level)
		return c.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	default:
		return nil, fmt.Errorf("logging: invalid style %q: must be one of terminal, json, noop", style)
	}
}

// Must builds a logger and panics on error, for call sites (mostly
// cmd/searchcore's root command) that can't meaningfully continue
// without one.
func Must(cfg Config) *zap.Logger {
	l, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return l
}
