// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package sdk

import (
	"context"
	"log/slog"
)

// Logger is the structured logger handed to resolvers through the context.
// Records go to the plugin's stderr and carry the plugin name and input path.
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)
	With(attrs ...any) Logger
}

type loggerKey struct{}

// LoggerFromContext returns the request's logger, or a no-op logger when
// the resolver runs outside Main.
func LoggerFromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return l
	}
	return noopLogger{}
}

func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

type slogLogger struct {
	slog  *slog.Logger
	attrs []any
}

func NewLogger(logger *slog.Logger) Logger {
	return &slogLogger{slog: logger}
}

func (l *slogLogger) Debug(msg string, attrs ...any) {
	l.slog.Debug(msg, append(l.attrs, attrs...)...)
}

func (l *slogLogger) Info(msg string, attrs ...any) {
	l.slog.Info(msg, append(l.attrs, attrs...)...)
}

func (l *slogLogger) Warn(msg string, attrs ...any) {
	l.slog.Warn(msg, append(l.attrs, attrs...)...)
}

func (l *slogLogger) Error(msg string, attrs ...any) {
	l.slog.Error(msg, append(l.attrs, attrs...)...)
}

func (l *slogLogger) With(attrs ...any) Logger {
	return &slogLogger{slog: l.slog, attrs: append(l.attrs[:len(l.attrs):len(l.attrs)], attrs...)}
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, attrs ...any) {}
func (noopLogger) Info(msg string, attrs ...any)  {}
func (noopLogger) Warn(msg string, attrs ...any)  {}
func (noopLogger) Error(msg string, attrs ...any) {}
func (noopLogger) With(attrs ...any) Logger       { return noopLogger{} }
