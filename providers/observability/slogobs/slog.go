// Package slogobs adapts the standard library's log/slog to the
// [observability.Observer] interface. It is the default diagnostic backend:
// construct one with [New] (or [Default] for the process-wide logger) and
// attach it to a call context via observability.ContextWithObserver.
package slogobs

import (
	"context"
	"log/slog"

	"github.com/Ophelia-Chat/ophelia-sub001/providers/observability"
)

// LevelTrace sits below slog.LevelDebug; slog has no trace level of its own.
const LevelTrace = slog.LevelDebug - 4

// Observer implements observability.Observer on top of a slog.Logger.
type Observer struct {
	logger *slog.Logger
}

// New returns an Observer backed by the given logger. A nil logger falls back
// to slog.Default().
func New(logger *slog.Logger) *Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Observer{logger: logger}
}

// Default returns an Observer backed by the process-wide default slog logger.
func Default() *Observer {
	return New(slog.Default())
}

// Trace logs at LevelTrace.
func (o *Observer) Trace(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.Log(ctx, LevelTrace, msg, toSlogArgs(attrs)...)
}

// Debug logs at slog.LevelDebug.
func (o *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.Log(ctx, slog.LevelDebug, msg, toSlogArgs(attrs)...)
}

// Warn logs at slog.LevelWarn.
func (o *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.Log(ctx, slog.LevelWarn, msg, toSlogArgs(attrs)...)
}

// Error logs at slog.LevelError.
func (o *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.Log(ctx, slog.LevelError, msg, toSlogArgs(attrs)...)
}

// toSlogArgs converts Attribute pairs to the alternating key/value form
// slog.Logger.Log expects.
func toSlogArgs(attrs []observability.Attribute) []any {
	args := make([]any, 0, len(attrs)*2)
	for _, attr := range attrs {
		args = append(args, attr.Key, attr.Value)
	}
	return args
}
