package log

import (
	"context"
	"log/slog"
	"os"
)

// DefaultContextProvider supplies the context used by the context-unaware
// logging functions and methods (both package-level and on [Logger]).
// It defaults to [context.TODO] and may be reassigned to thread request
// or trace context through call sites that don't carry one explicitly.
var DefaultContextProvider = context.TODO

// defaultLog is the package-level logger used by the free functions below.
// It writes to stderr with the package defaults until reconfigured by
// [Config].
var defaultLog = Make(os.Stderr)

// Config reconfigures the package-level default logger, replacing it with a
// new [Logger] built from the given options.
func Config(opts ...Option) {
	defaultLog = defaultLog.Wrap(opts...)
}

// With returns a copy of the package-level default logger with the given
// attributes attached.
func With(attrs ...slog.Attr) Logger {
	return defaultLog.With(attrs...)
}

// TraceContext logs a message at Trace level on the default logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.TraceContext(ctx, msg, attrs...)
}

// Trace logs a message at Trace level on the default logger.
func Trace(msg string, attrs ...slog.Attr) {
	defaultLog.Trace(msg, attrs...)
}

// DebugContext logs a message at Debug level on the default logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.DebugContext(ctx, msg, attrs...)
}

// Debug logs a message at Debug level on the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	defaultLog.Debug(msg, attrs...)
}

// InfoContext logs a message at Info level on the default logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.InfoContext(ctx, msg, attrs...)
}

// Info logs a message at Info level on the default logger.
func Info(msg string, attrs ...slog.Attr) {
	defaultLog.Info(msg, attrs...)
}

// WarnContext logs a message at Warn level on the default logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.WarnContext(ctx, msg, attrs...)
}

// Warn logs a message at Warn level on the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	defaultLog.Warn(msg, attrs...)
}

// ErrorContext logs a message at Error level on the default logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.ErrorContext(ctx, msg, attrs...)
}

// Error logs a message at Error level on the default logger.
func Error(msg string, attrs ...slog.Attr) {
	defaultLog.Error(msg, attrs...)
}
