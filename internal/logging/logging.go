// Package logging provides the injected logger used by the reader packages.
//
// Loggers are passed in through options and never read from a global. When no
// logger is configured, a discard logger is used. Parsing logs at block
// boundaries only; record walks and float decoding never log.
package logging

import (
	"context"
	"log/slog"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// Discard returns a logger that discards all output.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// Default returns the provided logger if non-nil, otherwise a discard logger.
func Default(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return Discard()
}

// Component scopes logger with a "component" attribute.
func Component(logger *slog.Logger, name string) *slog.Logger {
	return Default(logger).With("component", name)
}
