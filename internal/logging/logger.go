// Package logging defines the structured-logging interface used by the
// careercoach client. The default implementation wraps log/slog.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "session restored", "user", user.Email)
type Logger interface {
	// Debug logs diagnostic detail such as request ids and frame types.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a recoverable problem, e.g. a dropped realtime frame.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs a failed operation.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
