// Package log defines the structured logging interface used across genex.
//
// Overview:
//   - Responsibility: Stable logging contract shared by generator, descriptor merger and CLI
//   - Key Types: Logger interface with key-value logging
//   - Concurrency Model: Implementations must be safe for concurrent use
//   - Error Semantics: Error takes the error as its first parameter
//   - Performance Notes: Key-value pairs are passed through without formatting
//
// Usage:
//
//	logger.Info("artifact written", log.Str("path", path), log.Int("bytes", n))
package log

// Logger is a structured logger compatible with slog concepts.
type Logger interface {
	// With returns a Logger that attaches kv to every record.
	With(kv ...any) Logger

	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)

	// Error logs err under the "error" key followed by kv.
	Error(err error, msg string, kv ...any)
}

// Str creates a string key-value pair.
func Str(k, v string) any {
	return []any{k, v}
}

// Int creates an integer key-value pair.
func Int(k string, v int) any {
	return []any{k, v}
}

// Bool creates a boolean key-value pair.
func Bool(k string, v bool) any {
	return []any{k, v}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (n nopLogger) With(...any) Logger        { return n }
func (nopLogger) Debug(string, ...any)        {}
func (nopLogger) Info(string, ...any)         {}
func (nopLogger) Warn(string, ...any)         {}
func (nopLogger) Error(error, string, ...any) {}
